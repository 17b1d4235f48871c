package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "github.com/mmynk/splitledger/internal/errors"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/internal/notify"
	"github.com/mmynk/splitledger/internal/storage"
)

const (
	titleDebtUpdate  = "Debt update"
	titleDebtRemoved = "Debt removed"
)

// GetExpenseShares returns the shares of an expense in insertion order.
// The requester must be a member of the expense's group.
func (l *Ledger) GetExpenseShares(ctx context.Context, expenseID, requesterID string) ([]*models.ExpenseShare, error) {
	var shares []*models.ExpenseShare
	err := l.store.WithReadTx(ctx, func(ctx context.Context) error {
		expense, err := l.loadExpense(ctx, "", expenseID)
		if err != nil {
			return err
		}
		if err := l.requireMember(ctx, expense.GroupID, requesterID, apperrors.CodeNotMember); err != nil {
			return err
		}
		shares, err = l.store.ListShares(ctx, expense.ID)
		if err != nil {
			return storageErr("list shares", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shares, nil
}

// ReplaceShares makes requests the complete share set of an expense.
// Only the creator may replace shares and the amounts must add up to the
// expense amount exactly. Existing shares are updated in place, missing ones
// removed and new ones appended.
func (l *Ledger) ReplaceShares(ctx context.Context, expenseID, requesterID string, requests []ShareInput) ([]*models.ExpenseShare, error) {
	var (
		shares  []*models.ExpenseShare
		notices []notify.Notice
	)
	err := l.store.WithTx(ctx, func(ctx context.Context) error {
		expense, err := l.loadExpense(ctx, "", expenseID)
		if err != nil {
			return err
		}
		if expense.CreatedBy != requesterID {
			return forbidden("change the shares of this expense")
		}
		if err := l.requireOpen(ctx, expense.GroupID); err != nil {
			return err
		}
		members, err := l.groups.Members(ctx, expense.GroupID)
		if err != nil {
			return groupErr(expense.GroupID, err)
		}
		if !contains(members, requesterID) {
			return apperrors.New(apperrors.CodeNotMember, "user "+requesterID+" is not a member of group "+expense.GroupID)
		}
		if err := validateShareRequests(requests, members, expense.Amount); err != nil {
			return err
		}

		existing, err := l.store.ListShares(ctx, expense.ID)
		if err != nil {
			return storageErr("list shares", err)
		}
		current := make(map[string]*models.ExpenseShare, len(existing))
		for _, s := range existing {
			current[s.UserID] = s
		}

		currency := expense.Currency()
		requested := make(map[string]bool, len(requests))
		var added []*models.ExpenseShare
		for _, r := range requests {
			requested[r.UserID] = true
			share := &models.ExpenseShare{
				ExpenseID: expense.ID,
				UserID:    r.UserID,
				Amount:    money.New(r.Amount, currency),
				Paid:      money.New(r.Paid, currency),
			}
			if _, ok := current[r.UserID]; !ok {
				added = append(added, share)
				continue
			}
			if err := l.store.UpdateShare(ctx, share); err != nil {
				return storageErr("update share", err)
			}
		}
		for _, s := range existing {
			if requested[s.UserID] {
				continue
			}
			if err := l.store.DeleteShare(ctx, expense.ID, s.UserID); err != nil {
				return storageErr("delete share", err)
			}
			notices = append(notices, notify.Notice{
				UserID: s.UserID,
				Title:  titleDebtRemoved,
				Body:   fmt.Sprintf("Your debt for %s was removed in group %s", expense.Name, l.groupName(ctx, expense.GroupID)),
			})
		}
		if err := l.store.CreateShares(ctx, added); err != nil {
			return storageErr("create shares", err)
		}
		if err := l.store.TouchExpense(ctx, expense.ID, l.timestamp()); err != nil {
			return storageErr("touch expense", err)
		}

		shares, err = l.store.ListShares(ctx, expense.ID)
		if err != nil {
			return storageErr("list shares", err)
		}

		group := l.groupName(ctx, expense.GroupID)
		for _, r := range requests {
			notices = append(notices, notify.Notice{
				UserID: r.UserID,
				Title:  titleDebtUpdate,
				Body:   fmt.Sprintf("Expense %s was updated in group %s", expense.Name, group),
			})
		}
		return nil
	})
	l.record("replace_shares", err)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Shares replaced",
		"expense_id", expenseID,
		"user_id", requesterID,
		"participants", len(shares),
	)
	l.notifier.Send(ctx, notices...)
	return shares, nil
}

// validateShareRequests checks a replacement share set against the group
// members and the expense amount.
func validateShareRequests(requests []ShareInput, members []string, total money.Money) error {
	seen := make(map[string]bool, len(requests))
	sum := money.Zero(total.Currency())
	for _, r := range requests {
		if r.UserID == "" {
			return apperrors.InvalidArgument("user_id", "is required")
		}
		if seen[r.UserID] {
			return apperrors.InvalidArgument("user_id", "duplicate participant "+r.UserID)
		}
		seen[r.UserID] = true
		if !contains(members, r.UserID) {
			return apperrors.InvalidArgument("user_id", r.UserID+" is not a member of the group")
		}
		if r.Amount < 0 {
			return apperrors.InvalidArgument("amount", "must not be negative")
		}
		if !money.InRange(r.Amount) {
			return apperrors.InvalidArgument("amount", money.ErrTooLarge.Error())
		}
		if r.Paid < 0 {
			return apperrors.InvalidArgument("paid", "must not be negative")
		}
		if !money.InRange(r.Paid) {
			return apperrors.InvalidArgument("paid", money.ErrTooLarge.Error())
		}
		sum = sum.Add(money.New(r.Amount, total.Currency()))
	}
	if !sum.Equal(total) {
		return apperrors.WithMetadata(apperrors.CodeAmountMismatch,
			"shares add up to "+sum.String()+", expected "+total.String(),
			map[string]string{"Expected": total.String()})
	}
	return nil
}

// UpdatePaidAmount records what targetUserID has paid towards their share.
// Any group member may do so; paying more than the share is allowed.
func (l *Ledger) UpdatePaidAmount(ctx context.Context, expenseID, targetUserID, requesterID string, paid int64) (*models.ExpenseShare, error) {
	if paid < 0 {
		return nil, apperrors.InvalidArgument("paid", "must not be negative")
	}
	if !money.InRange(paid) {
		return nil, apperrors.InvalidArgument("paid", money.ErrTooLarge.Error())
	}

	var (
		share  *models.ExpenseShare
		notice notify.Notice
	)
	err := l.store.WithTx(ctx, func(ctx context.Context) error {
		expense, err := l.loadExpense(ctx, "", expenseID)
		if err != nil {
			return err
		}
		if err := l.requireOpen(ctx, expense.GroupID); err != nil {
			return err
		}
		if err := l.requireMember(ctx, expense.GroupID, requesterID, apperrors.CodeNotMember); err != nil {
			return err
		}

		share, err = l.targetShare(ctx, expense.ID, targetUserID)
		if err != nil {
			return err
		}
		share.Paid = money.New(paid, expense.Currency())
		if err := l.store.UpdateShare(ctx, share); err != nil {
			return storageErr("update share", err)
		}
		if err := l.store.TouchExpense(ctx, expense.ID, l.timestamp()); err != nil {
			return storageErr("touch expense", err)
		}

		notice = notify.Notice{
			UserID: targetUserID,
			Title:  titleDebtUpdate,
			Body:   fmt.Sprintf("Your debt for %s was revised in group %s", expense.Name, l.groupName(ctx, expense.GroupID)),
		}
		return nil
	})
	l.record("update_paid_amount", err)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Paid amount updated",
		"expense_id", expenseID,
		"user_id", targetUserID,
		"paid", share.Paid.String(),
	)
	l.notifier.Send(ctx, notice)
	return share, nil
}

// RemoveParticipant deletes targetUserID's share. The freed amount is not
// redistributed; the remaining shares may add up to less than the expense.
func (l *Ledger) RemoveParticipant(ctx context.Context, expenseID, targetUserID, requesterID string) error {
	var notice notify.Notice
	err := l.store.WithTx(ctx, func(ctx context.Context) error {
		expense, err := l.loadExpense(ctx, "", expenseID)
		if err != nil {
			return err
		}
		if err := l.requireOpen(ctx, expense.GroupID); err != nil {
			return err
		}
		if err := l.requireMember(ctx, expense.GroupID, requesterID, apperrors.CodeNotMember); err != nil {
			return err
		}

		if _, err := l.targetShare(ctx, expense.ID, targetUserID); err != nil {
			return err
		}
		if err := l.store.DeleteShare(ctx, expense.ID, targetUserID); err != nil {
			return storageErr("delete share", err)
		}
		if err := l.store.TouchExpense(ctx, expense.ID, l.timestamp()); err != nil {
			return storageErr("touch expense", err)
		}

		notice = notify.Notice{
			UserID: targetUserID,
			Title:  titleDebtRemoved,
			Body:   fmt.Sprintf("Your debt for %s was removed in group %s", expense.Name, l.groupName(ctx, expense.GroupID)),
		}
		return nil
	})
	l.record("remove_participant", err)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Participant removed",
		"expense_id", expenseID,
		"user_id", targetUserID,
		"requester_id", requesterID,
	)
	l.notifier.Send(ctx, notice)
	return nil
}

func (l *Ledger) targetShare(ctx context.Context, expenseID, userID string) (*models.ExpenseShare, error) {
	share, err := l.store.GetShare(ctx, expenseID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.New(apperrors.CodeShareNotFound, "user "+userID+" has no share in expense "+expenseID)
	}
	if err != nil {
		return nil, storageErr("get share", err)
	}
	return share, nil
}
