package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/splitledger/internal/calculator"
	apperrors "github.com/mmynk/splitledger/internal/errors"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/internal/storage"
)

// ExpenseView is an expense annotated with the requester's own share.
type ExpenseView struct {
	Expense *models.Expense
	MyShare *money.Money // nil when the requester has no share
}

// CreateExpense records an expense paid by payerID and splits it equally
// among the current members of the group, in member order.
func (l *Ledger) CreateExpense(ctx context.Context, groupID, payerID string, in ExpenseInput) (*models.Expense, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	var expense *models.Expense
	err = l.store.WithTx(ctx, func(ctx context.Context) error {
		members, err := l.groups.Members(ctx, groupID)
		if err != nil {
			return groupErr(groupID, err)
		}
		if !contains(members, payerID) {
			return apperrors.New(apperrors.CodeNotMember, "payer "+payerID+" is not a member of group "+groupID)
		}
		if err := l.requireOpen(ctx, groupID); err != nil {
			return err
		}

		allocation, err := calculator.Allocate(in.Amount, members, payerID)
		if err != nil {
			return err
		}

		now := l.timestamp()
		expense = &models.Expense{
			GroupID:     groupID,
			CreatedBy:   payerID,
			Name:        in.Name,
			Description: in.Description,
			Amount:      in.Amount,
			Date:        in.Date,
			CreatedAt:   now,
			UpdatedAt:   now,
			Active:      true,
		}
		if err := l.store.CreateExpense(ctx, expense); err != nil {
			return storageErr("create expense", err)
		}

		shares := make([]*models.ExpenseShare, len(allocation))
		for i, a := range allocation {
			shares[i] = &models.ExpenseShare{
				ExpenseID: expense.ID,
				UserID:    a.UserID,
				Amount:    a.Amount,
				Paid:      a.Paid,
			}
		}
		if err := l.store.CreateShares(ctx, shares); err != nil {
			return storageErr("create shares", err)
		}
		return nil
	})
	l.record("create_expense", err)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Expense created",
		"expense_id", expense.ID,
		"group_id", groupID,
		"user_id", payerID,
		"amount", expense.Amount.String(),
	)
	return expense, nil
}

// GetExpenses lists the expenses of a group, oldest first.
// The requester must be a member; a group without expenses is NOT_FOUND.
func (l *Ledger) GetExpenses(ctx context.Context, groupID, requesterID string) ([]ExpenseView, error) {
	var views []ExpenseView
	err := l.store.WithReadTx(ctx, func(ctx context.Context) error {
		if err := l.requireMember(ctx, groupID, requesterID, apperrors.CodeForbidden); err != nil {
			return err
		}

		expenses, err := l.store.ListExpensesByGroup(ctx, groupID)
		if err != nil {
			return storageErr("list expenses", err)
		}
		if len(expenses) == 0 {
			return notFound("Expenses", "group "+groupID+" has no expenses")
		}

		views = make([]ExpenseView, len(expenses))
		for i, e := range expenses {
			views[i] = ExpenseView{Expense: e}
			share, err := l.store.GetShare(ctx, e.ID, requesterID)
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			if err != nil {
				return storageErr("get share", err)
			}
			amount := share.Amount
			views[i].MyShare = &amount
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// UpdateExpense changes the header fields of an expense. Only its creator
// may do so. The new amount may not drop below the sum already allocated to
// shares; shares themselves are left untouched.
func (l *Ledger) UpdateExpense(ctx context.Context, groupID, expenseID, requesterID string, in ExpenseInput) (*models.Expense, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	var expense *models.Expense
	err = l.store.WithTx(ctx, func(ctx context.Context) error {
		e, err := l.loadExpense(ctx, groupID, expenseID)
		if err != nil {
			return err
		}
		expense = e
		if expense.CreatedBy != requesterID {
			return forbidden("edit this expense")
		}
		if err := l.requireOpen(ctx, expense.GroupID); err != nil {
			return err
		}

		shares, err := l.store.ListShares(ctx, expense.ID)
		if err != nil {
			return storageErr("list shares", err)
		}
		allocated := money.Zero(in.Amount.Currency())
		for _, s := range shares {
			allocated = allocated.Add(s.Amount.WithCurrency(allocated.Currency()))
		}
		if in.Amount.LessThan(allocated) {
			return apperrors.WithMetadata(apperrors.CodeAmountTooLow,
				"new amount "+in.Amount.String()+" is below allocated "+allocated.String(),
				map[string]string{"Allocated": allocated.String()})
		}

		expense.Name = in.Name
		expense.Description = in.Description
		expense.Date = in.Date
		expense.Amount = in.Amount
		expense.UpdatedAt = l.timestamp()
		if err := l.store.UpdateExpense(ctx, expense); err != nil {
			return storageErr("update expense", err)
		}
		return nil
	})
	l.record("update_expense", err)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Expense updated",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"user_id", requesterID,
	)
	return expense, nil
}

// DeleteExpense removes an expense and all of its shares.
// Only the owner of the group may delete.
func (l *Ledger) DeleteExpense(ctx context.Context, groupID, expenseID, requesterID string) error {
	err := l.store.WithTx(ctx, func(ctx context.Context) error {
		expense, err := l.loadExpense(ctx, groupID, expenseID)
		if err != nil {
			return err
		}
		owner, err := l.groups.Owner(ctx, expense.GroupID)
		if err != nil {
			return groupErr(expense.GroupID, err)
		}
		if owner != requesterID {
			return forbidden("delete this expense")
		}
		if err := l.requireOpen(ctx, expense.GroupID); err != nil {
			return err
		}
		if err := l.store.DeleteExpense(ctx, expense.ID); err != nil {
			return storageErr("delete expense", err)
		}
		return nil
	})
	l.record("delete_expense", err)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Expense deleted", "expense_id", expenseID, "user_id", requesterID)
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
