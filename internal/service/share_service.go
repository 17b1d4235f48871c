package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/pkg/api"
)

// ShareService implements the Connect ShareService.
type ShareService struct {
	ledger *ledger.Ledger
}

var _ api.ShareServiceHandler = (*ShareService)(nil)

// NewShareService creates a ShareService over the given ledger.
func NewShareService(l *ledger.Ledger) *ShareService {
	return &ShareService{ledger: l}
}

// GetExpenseShares lists the shares of an expense in allocation order.
func (s *ShareService) GetExpenseShares(ctx context.Context, req *connect.Request[api.GetExpenseSharesRequest]) (*connect.Response[api.GetExpenseSharesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	shares, err := s.ledger.GetExpenseShares(ctx, req.Msg.ExpenseID, userID)
	if err != nil {
		return nil, toConnectError(ctx, "GetExpenseShares", err)
	}
	return connect.NewResponse(&api.GetExpenseSharesResponse{Shares: toAPIShares(shares)}), nil
}

// ReplaceShares sets the complete share list of an expense.
func (s *ShareService) ReplaceShares(ctx context.Context, req *connect.Request[api.ReplaceSharesRequest]) (*connect.Response[api.ReplaceSharesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ReplaceShares request received",
		"expense_id", req.Msg.ExpenseID,
		"user_id", userID,
		"shares_count", len(req.Msg.Shares),
	)

	requests := make([]ledger.ShareInput, 0, len(req.Msg.Shares))
	for _, line := range req.Msg.Shares {
		if line == nil {
			continue
		}
		amount, err := parseMinor("amount", line.Amount, false)
		if err != nil {
			return nil, toConnectError(ctx, "ReplaceShares", err)
		}
		paid, err := parseMinor("paid", line.Paid, true)
		if err != nil {
			return nil, toConnectError(ctx, "ReplaceShares", err)
		}
		requests = append(requests, ledger.ShareInput{UserID: line.UserID, Amount: amount, Paid: paid})
	}

	shares, err := s.ledger.ReplaceShares(ctx, req.Msg.ExpenseID, userID, requests)
	if err != nil {
		return nil, toConnectError(ctx, "ReplaceShares", err)
	}
	return connect.NewResponse(&api.ReplaceSharesResponse{Shares: toAPIShares(shares)}), nil
}

// UpdatePaidAmount records how much a participant has paid.
func (s *ShareService) UpdatePaidAmount(ctx context.Context, req *connect.Request[api.UpdatePaidAmountRequest]) (*connect.Response[api.UpdatePaidAmountResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	paid, err := parseMinor("paid", req.Msg.Paid, false)
	if err != nil {
		return nil, toConnectError(ctx, "UpdatePaidAmount", err)
	}

	share, err := s.ledger.UpdatePaidAmount(ctx, req.Msg.ExpenseID, req.Msg.UserID, userID, paid)
	if err != nil {
		return nil, toConnectError(ctx, "UpdatePaidAmount", err)
	}

	slog.Info("Paid amount updated",
		"expense_id", req.Msg.ExpenseID,
		"participant", req.Msg.UserID,
		"user_id", userID,
		"paid", share.Paid.Amount(),
	)
	return connect.NewResponse(&api.UpdatePaidAmountResponse{Share: toAPIShare(share)}), nil
}

// RemoveParticipant drops one participant from an expense.
func (s *ShareService) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.RemoveParticipant(ctx, req.Msg.ExpenseID, req.Msg.UserID, userID); err != nil {
		return nil, toConnectError(ctx, "RemoveParticipant", err)
	}
	return connect.NewResponse(&api.RemoveParticipantResponse{}), nil
}

// shareOf returns the amount of userID's share, or nil.
func shareOf(shares []*models.ExpenseShare, userID string) *money.Money {
	for _, s := range shares {
		if s.UserID == userID {
			amount := s.Amount
			return &amount
		}
	}
	return nil
}
