package service

import (
	"strings"
	"time"

	"github.com/mmynk/splitledger/internal/calculator"
	apperrors "github.com/mmynk/splitledger/internal/errors"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/pkg/api"
)

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, apperrors.InvalidArgument("date", "is required")
	}
	date, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, apperrors.InvalidArgument("date", "must be YYYY-MM-DD")
	}
	return date, nil
}

// parseMinor parses a wire amount into minor units. An empty value is zero
// when optional is set.
func parseMinor(field, s string, optional bool) (int64, error) {
	if optional && strings.TrimSpace(s) == "" {
		return 0, nil
	}
	cents, err := money.ParseMinor(s)
	if err != nil {
		return 0, apperrors.InvalidArgument(field, err.Error())
	}
	return cents, nil
}

func expenseInput(name, description, date, amount, currency string) (ledger.ExpenseInput, error) {
	day, err := parseDate(date)
	if err != nil {
		return ledger.ExpenseInput{}, err
	}
	cents, err := parseMinor("amount", amount, false)
	if err != nil {
		return ledger.ExpenseInput{}, err
	}
	return ledger.ExpenseInput{
		Name:        name,
		Description: description,
		Date:        day,
		Amount:      money.New(cents, currency),
	}, nil
}

func toAPIExpense(e *models.Expense, myShare *money.Money) *api.Expense {
	out := &api.Expense{
		ID:          e.ID,
		GroupID:     e.GroupID,
		CreatedBy:   e.CreatedBy,
		Name:        e.Name,
		Description: e.Description,
		Amount:      e.Amount.Amount(),
		Currency:    e.Currency(),
		Date:        e.Date.Format(models.DateLayout),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if myShare != nil {
		out.MyShare = myShare.Amount()
	}
	return out
}

func toAPIShare(s *models.ExpenseShare) *api.Share {
	return &api.Share{
		ID:          s.ID,
		ExpenseID:   s.ExpenseID,
		UserID:      s.UserID,
		Amount:      s.Amount.Amount(),
		Paid:        s.Paid.Amount(),
		Outstanding: s.Outstanding().Amount(),
		Currency:    s.Amount.Currency(),
	}
}

func toAPIShares(shares []*models.ExpenseShare) []*api.Share {
	out := make([]*api.Share, len(shares))
	for i, s := range shares {
		out[i] = toAPIShare(s)
	}
	return out
}

func toAPIGroup(g *models.Group) *api.Group {
	members := g.Members
	if members == nil {
		members = []string{}
	}
	return &api.Group{
		ID:        g.ID,
		Name:      g.Name,
		OwnerID:   g.OwnerID,
		Members:   members,
		Closed:    g.Closed,
		CreatedAt: g.CreatedAt,
	}
}

func toAPIBalances(balances []calculator.NetBalance) []*api.Balance {
	out := make([]*api.Balance, len(balances))
	for i, b := range balances {
		out[i] = &api.Balance{
			CounterpartyID: b.CounterpartyID,
			Currency:       b.Net.Currency(),
			YouOwe:         b.YouOwe.Amount(),
			OwesYou:        b.OwesYou.Amount(),
			Net:            b.Net.Amount(),
		}
	}
	return out
}

func toAPIDebts(debts []calculator.CounterpartyDebt) []*api.CounterpartyDebt {
	out := make([]*api.CounterpartyDebt, len(debts))
	for i, d := range debts {
		expenses := make([]*api.ExpenseDebt, len(d.Expenses))
		for j, e := range d.Expenses {
			expenses[j] = &api.ExpenseDebt{
				ExpenseID:   e.ExpenseID,
				ExpenseName: e.ExpenseName,
				Amount:      e.Amount.Amount(),
				Paid:        e.Paid.Amount(),
			}
		}
		out[i] = &api.CounterpartyDebt{
			CounterpartyID: d.CounterpartyID,
			Currency:       d.Currency(),
			Total:          d.Total.Amount(),
			Paid:           d.Paid.Amount(),
			Outstanding:    d.Outstanding().Amount(),
			Expenses:       expenses,
		}
	}
	return out
}

func toAPIGroupDebts(groups []calculator.GroupDebts) []*api.GroupDebts {
	out := make([]*api.GroupDebts, len(groups))
	for i, g := range groups {
		out[i] = &api.GroupDebts{
			GroupID:   g.GroupID,
			GroupName: g.GroupName,
			Debts:     toAPIDebts(g.Debts),
		}
	}
	return out
}
