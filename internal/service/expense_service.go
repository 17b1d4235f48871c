package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/pkg/api"
)

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	ledger *ledger.Ledger
}

var _ api.ExpenseServiceHandler = (*ExpenseService)(nil)

// NewExpenseService creates an ExpenseService over the given ledger.
func NewExpenseService(l *ledger.Ledger) *ExpenseService {
	return &ExpenseService{ledger: l}
}

// CreateExpense records an expense paid by the caller and splits it
// equally among the group members.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateExpense request received",
		"group_id", req.Msg.GroupID,
		"user_id", userID,
		"amount", req.Msg.Amount,
		"currency", req.Msg.Currency,
	)

	in, err := expenseInput(req.Msg.Name, req.Msg.Description, req.Msg.Date, req.Msg.Amount, req.Msg.Currency)
	if err != nil {
		return nil, toConnectError(ctx, "CreateExpense", err)
	}

	expense, err := s.ledger.CreateExpense(ctx, req.Msg.GroupID, userID, in)
	if err != nil {
		return nil, toConnectError(ctx, "CreateExpense", err)
	}

	shares, err := s.ledger.GetExpenseShares(ctx, expense.ID, userID)
	if err != nil {
		return nil, toConnectError(ctx, "CreateExpense", err)
	}

	myShare := shareOf(shares, userID)
	return connect.NewResponse(&api.CreateExpenseResponse{
		Expense: toAPIExpense(expense, myShare),
		Shares:  toAPIShares(shares),
	}), nil
}

// ListExpenses lists the expenses of a group with the caller's own share.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.ledger.GetExpenses(ctx, req.Msg.GroupID, userID)
	if err != nil {
		return nil, toConnectError(ctx, "ListExpenses", err)
	}

	expenses := make([]*api.Expense, len(views))
	for i, v := range views {
		expenses[i] = toAPIExpense(v.Expense, v.MyShare)
	}
	slog.Debug("ListExpenses successful", "group_id", req.Msg.GroupID, "count", len(expenses))

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: expenses}), nil
}

// UpdateExpense edits the expense header. Shares are left as they are.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateExpense request received",
		"group_id", req.Msg.GroupID,
		"expense_id", req.Msg.ExpenseID,
		"user_id", userID,
	)

	in, err := expenseInput(req.Msg.Name, req.Msg.Description, req.Msg.Date, req.Msg.Amount, req.Msg.Currency)
	if err != nil {
		return nil, toConnectError(ctx, "UpdateExpense", err)
	}

	expense, err := s.ledger.UpdateExpense(ctx, req.Msg.GroupID, req.Msg.ExpenseID, userID, in)
	if err != nil {
		return nil, toConnectError(ctx, "UpdateExpense", err)
	}

	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: toAPIExpense(expense, nil)}), nil
}

// DeleteExpense removes an expense and its shares. Only the group owner may delete.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.DeleteExpense(ctx, req.Msg.GroupID, req.Msg.ExpenseID, userID); err != nil {
		return nil, toConnectError(ctx, "DeleteExpense", err)
	}

	slog.Info("Expense deleted", "expense_id", req.Msg.ExpenseID, "user_id", userID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}
