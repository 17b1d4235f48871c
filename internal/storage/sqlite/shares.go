package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/internal/storage"
)

// Shares carry no currency of their own; it is read from the owning expense.
const shareSelect = `SELECT s.id, s.expense_id, s.user_id, s.amount_cents, s.paid_cents, e.currency
	FROM expense_shares s JOIN expenses e ON e.id = s.expense_id`

func scanShare(row rowScanner) (*models.ExpenseShare, error) {
	var (
		share        models.ExpenseShare
		amount, paid int64
		currency     string
	)
	if err := row.Scan(&share.ID, &share.ExpenseID, &share.UserID, &amount, &paid, &currency); err != nil {
		return nil, err
	}
	share.Amount = money.New(amount, currency)
	share.Paid = money.New(paid, currency)
	return &share, nil
}

// ListShares retrieves the shares of an expense in insertion order.
func (s *SQLiteStore) ListShares(ctx context.Context, expenseID string) ([]*models.ExpenseShare, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		shareSelect+` WHERE s.expense_id = ? ORDER BY s.position`, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	defer rows.Close()

	var shares []*models.ExpenseShare
	for rows.Next() {
		share, err := scanShare(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}
	return shares, nil
}

// GetShare retrieves the share of userID in an expense.
func (s *SQLiteStore) GetShare(ctx context.Context, expenseID, userID string) (*models.ExpenseShare, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		shareSelect+` WHERE s.expense_id = ? AND s.user_id = ?`, expenseID, userID)
	share, err := scanShare(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("share of %s in expense %s: %w", userID, expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get share: %w", err)
	}
	return share, nil
}

// CreateShares appends shares after the existing shares of their expense.
func (s *SQLiteStore) CreateShares(ctx context.Context, shares []*models.ExpenseShare) error {
	q := s.q(ctx)
	for _, share := range shares {
		if share.ID == "" {
			share.ID = uuid.New().String()
		}
		_, err := q.ExecContext(ctx,
			`INSERT INTO expense_shares (id, expense_id, user_id, amount_cents, paid_cents, position)
			 VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM expense_shares WHERE expense_id = ?))`,
			share.ID, share.ExpenseID, share.UserID, share.Amount.Cents(), share.Paid.Cents(), share.ExpenseID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}
	return nil
}

// UpdateShare updates amount and paid of the share identified by (ExpenseID, UserID).
func (s *SQLiteStore) UpdateShare(ctx context.Context, share *models.ExpenseShare) error {
	result, err := s.q(ctx).ExecContext(ctx,
		`UPDATE expense_shares SET amount_cents = ?, paid_cents = ? WHERE expense_id = ? AND user_id = ?`,
		share.Amount.Cents(), share.Paid.Cents(), share.ExpenseID, share.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update share: %w", err)
	}
	return expectOneRow(result, "share", share.ExpenseID+"/"+share.UserID)
}

// DeleteShare removes the share of userID from an expense.
func (s *SQLiteStore) DeleteShare(ctx context.Context, expenseID, userID string) error {
	result, err := s.q(ctx).ExecContext(ctx,
		"DELETE FROM expense_shares WHERE expense_id = ? AND user_id = ?", expenseID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete share: %w", err)
	}
	return expectOneRow(result, "share", expenseID+"/"+userID)
}

const lineSelect = `SELECT e.id, e.name, e.group_id, e.created_by, s.user_id, s.amount_cents, s.paid_cents, e.currency
	FROM expense_shares s JOIN expenses e ON e.id = s.expense_id`

// ListDebtorLines returns the shares userID holds in expenses created by someone else.
func (s *SQLiteStore) ListDebtorLines(ctx context.Context, userID, groupID string) ([]models.ShareLine, error) {
	return s.listLines(ctx,
		lineSelect+` WHERE s.user_id = ? AND e.created_by != ? AND (? = '' OR e.group_id = ?)
		 ORDER BY e.created_at, e.rowid`,
		userID, userID, groupID, groupID,
	)
}

// ListCreditorLines returns the shares other users hold in expenses created by userID.
func (s *SQLiteStore) ListCreditorLines(ctx context.Context, userID, groupID string) ([]models.ShareLine, error) {
	return s.listLines(ctx,
		lineSelect+` WHERE e.created_by = ? AND s.user_id != ? AND (? = '' OR e.group_id = ?)
		 ORDER BY e.created_at, e.rowid, s.position`,
		userID, userID, groupID, groupID,
	)
}

func (s *SQLiteStore) listLines(ctx context.Context, query string, args ...any) ([]models.ShareLine, error) {
	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list share lines: %w", err)
	}
	defer rows.Close()

	var lines []models.ShareLine
	for rows.Next() {
		var (
			l            models.ShareLine
			amount, paid int64
			currency     string
		)
		if err := rows.Scan(&l.ExpenseID, &l.ExpenseName, &l.GroupID, &l.CreatorID, &l.UserID,
			&amount, &paid, &currency); err != nil {
			return nil, fmt.Errorf("failed to scan share line: %w", err)
		}
		l.Amount = money.New(amount, currency)
		l.Paid = money.New(paid, currency)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate share lines: %w", err)
	}
	return lines, nil
}
