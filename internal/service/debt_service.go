package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/debts"
	"github.com/mmynk/splitledger/pkg/api"
)

// DebtService implements the Connect DebtService.
type DebtService struct {
	aggregator *debts.Aggregator
}

var _ api.DebtServiceHandler = (*DebtService)(nil)

// NewDebtService creates a DebtService.
func NewDebtService(a *debts.Aggregator) *DebtService {
	return &DebtService{aggregator: a}
}

// GetDebtSummary returns the caller's debts across all groups.
func (s *DebtService) GetDebtSummary(ctx context.Context, req *connect.Request[api.GetDebtSummaryRequest]) (*connect.Response[api.GetDebtSummaryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	set, err := s.aggregator.Aggregate(ctx, userID)
	if err != nil {
		return nil, toConnectError(ctx, "GetDebtSummary", err)
	}

	return connect.NewResponse(&api.GetDebtSummaryResponse{
		UserID:    set.UserID,
		Balances:  toAPIBalances(set.Balances),
		YouOwe:    toAPIGroupDebts(set.YouOwe),
		OwedToYou: toAPIGroupDebts(set.OwedToYou),
	}), nil
}

// GetGroupDebtSummary returns the caller's debts inside one group.
func (s *DebtService) GetGroupDebtSummary(ctx context.Context, req *connect.Request[api.GetGroupDebtSummaryRequest]) (*connect.Response[api.GetGroupDebtSummaryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := s.aggregator.AggregateForGroup(ctx, userID, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(ctx, "GetGroupDebtSummary", err)
	}

	return connect.NewResponse(&api.GetGroupDebtSummaryResponse{
		UserID:    summary.UserID,
		GroupID:   summary.GroupID,
		GroupName: summary.GroupName,
		Balances:  toAPIBalances(summary.Balances),
		YouOwe:    toAPIDebts(summary.YouOwe),
		OwedToYou: toAPIDebts(summary.OwedToYou),
	}), nil
}
