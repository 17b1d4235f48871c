package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/internal/storage"
)

const expenseColumns = `id, group_id, created_by, name, description, amount_cents, currency,
	expense_date, active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	var (
		e        models.Expense
		cents    int64
		currency string
		date     string
	)
	if err := row.Scan(&e.ID, &e.GroupID, &e.CreatedBy, &e.Name, &e.Description,
		&cents, &currency, &date, &e.Active, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid expense_date %q: %w", date, err)
	}
	e.Date = d
	e.Amount = money.New(cents, currency)
	return &e, nil
}

// CreateExpense persists a new expense to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate ID if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.UpdatedAt == 0 {
		expense.UpdatedAt = expense.CreatedAt
	}

	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.CreatedBy, expense.Name, expense.Description,
		expense.Amount.Cents(), expense.Currency(), expense.Date.Format(models.DateLayout),
		expense.Active, expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, expenseID)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// ListExpensesByGroup retrieves all expenses of a group, oldest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE group_id = ? ORDER BY created_at, rowid`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by group: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

// UpdateExpense updates the header fields of an existing expense.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	result, err := s.q(ctx).ExecContext(ctx,
		`UPDATE expenses
		 SET name = ?, description = ?, amount_cents = ?, currency = ?, expense_date = ?, active = ?, updated_at = ?
		 WHERE id = ?`,
		expense.Name, expense.Description, expense.Amount.Cents(), expense.Currency(),
		expense.Date.Format(models.DateLayout), expense.Active, expense.UpdatedAt, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return expectOneRow(result, "expense", expense.ID)
}

// TouchExpense bumps updated_at of an expense.
func (s *SQLiteStore) TouchExpense(ctx context.Context, expenseID string, updatedAt int64) error {
	result, err := s.q(ctx).ExecContext(ctx,
		"UPDATE expenses SET updated_at = ? WHERE id = ?", updatedAt, expenseID)
	if err != nil {
		return fmt.Errorf("failed to touch expense: %w", err)
	}
	return expectOneRow(result, "expense", expenseID)
}

// DeleteExpense removes an expense; its shares go with it through ON DELETE CASCADE.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	result, err := s.q(ctx).ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return expectOneRow(result, "expense", expenseID)
}

func expectOneRow(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
