// Package debts answers "who owes whom" for a user from the stored shares.
package debts

import (
	"context"
	"errors"

	"github.com/mmynk/splitledger/internal/calculator"
	apperrors "github.com/mmynk/splitledger/internal/errors"
	"github.com/mmynk/splitledger/internal/membership"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Aggregator builds debt summaries. It never writes.
type Aggregator struct {
	store  storage.Store
	groups membership.Oracle
}

// NewAggregator creates an Aggregator.
func NewAggregator(store storage.Store, groups membership.Oracle) *Aggregator {
	return &Aggregator{store: store, groups: groups}
}

// Aggregate returns the debts of userID across all groups.
func (a *Aggregator) Aggregate(ctx context.Context, userID string) (calculator.NetBalanceSet, error) {
	var set calculator.NetBalanceSet
	err := a.store.WithReadTx(ctx, func(ctx context.Context) error {
		debtor, creditor, err := a.lines(ctx, userID, "")
		if err != nil {
			return err
		}
		set = calculator.SummarizeDebts(userID, debtor, creditor)

		names := map[string]string{}
		for _, list := range [][]calculator.GroupDebts{set.YouOwe, set.OwedToYou} {
			for i := range list {
				list[i].GroupName, err = a.cachedName(ctx, names, list[i].GroupID)
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return calculator.NetBalanceSet{}, err
	}
	return set, nil
}

// AggregateForGroup returns the debts of userID inside one group, with the
// expenses that contribute to each counterparty total.
func (a *Aggregator) AggregateForGroup(ctx context.Context, userID, groupID string) (calculator.GroupDebtSummary, error) {
	var summary calculator.GroupDebtSummary
	err := a.store.WithReadTx(ctx, func(ctx context.Context) error {
		name, err := a.groups.Name(ctx, groupID)
		if errors.Is(err, membership.ErrGroupNotFound) {
			return apperrors.WithMetadata(apperrors.CodeNotFound, "group "+groupID+" not found",
				map[string]string{"Resource": "Group"})
		}
		if err != nil {
			return apperrors.Storage("read group", err)
		}

		debtor, creditor, err := a.lines(ctx, userID, groupID)
		if err != nil {
			return err
		}
		summary = calculator.SummarizeGroupDebts(userID, groupID, debtor, creditor)
		summary.GroupName = name
		return nil
	})
	if err != nil {
		return calculator.GroupDebtSummary{}, err
	}
	return summary, nil
}

func (a *Aggregator) lines(ctx context.Context, userID, groupID string) (debtor, creditor []models.ShareLine, err error) {
	debtor, err = a.store.ListDebtorLines(ctx, userID, groupID)
	if err != nil {
		return nil, nil, apperrors.Storage("list debtor shares", err)
	}
	creditor, err = a.store.ListCreditorLines(ctx, userID, groupID)
	if err != nil {
		return nil, nil, apperrors.Storage("list creditor shares", err)
	}
	return debtor, creditor, nil
}

// cachedName resolves a group name once per aggregation. Groups that have
// disappeared from the directory keep an empty name.
func (a *Aggregator) cachedName(ctx context.Context, cache map[string]string, groupID string) (string, error) {
	if name, ok := cache[groupID]; ok {
		return name, nil
	}
	name, err := a.groups.Name(ctx, groupID)
	if err != nil && !errors.Is(err, membership.ErrGroupNotFound) {
		return "", apperrors.Storage("read group", err)
	}
	cache[groupID] = name
	return name, nil
}
