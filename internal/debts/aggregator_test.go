package debts

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	apperrors "github.com/mmynk/splitledger/internal/errors"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
)

type env struct {
	store      *sqlite.SQLiteStore
	ledger     *ledger.Ledger
	aggregator *Aggregator
}

func setup(t *testing.T) *env {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "debts.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &env{
		store:      store,
		ledger:     ledger.New(store, store),
		aggregator: NewAggregator(store, store),
	}
}

func (e *env) group(t *testing.T, name string, members ...string) string {
	t.Helper()
	g := &models.Group{Name: name, OwnerID: members[0], Members: members}
	if err := e.store.CreateGroup(context.Background(), g); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return g.ID
}

func (e *env) expense(t *testing.T, groupID, payer string, cents int64) *models.Expense {
	t.Helper()
	exp, err := e.ledger.CreateExpense(context.Background(), groupID, payer, ledger.ExpenseInput{
		Name:   "Dinner",
		Date:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Amount: money.New(cents, "RUB"),
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	return exp
}

func TestAggregateScenario(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	groupID := e.group(t, "Roommates", "A", "B", "C")
	exp := e.expense(t, groupID, "A", 10000)

	set, err := e.aggregator.Aggregate(ctx, "B")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(set.Balances) != 1 {
		t.Fatalf("Got %d balances, want 1", len(set.Balances))
	}
	b := set.Balances[0]
	if b.CounterpartyID != "A" || b.YouOwe.Cents() != 3333 || b.Net.Cents() != -3333 {
		t.Errorf("Balance = %+v, want B owes A 33.33", b)
	}
	if len(set.YouOwe) != 1 || set.YouOwe[0].GroupName != "Roommates" {
		t.Errorf("YouOwe = %+v", set.YouOwe)
	}

	if _, err := e.ledger.UpdatePaidAmount(ctx, exp.ID, "B", "B", 3333); err != nil {
		t.Fatalf("UpdatePaidAmount failed: %v", err)
	}
	set, err = e.aggregator.Aggregate(ctx, "B")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if got := set.Balances[0].YouOwe; !got.IsZero() || got.Amount() != "0.00" {
		t.Errorf("YouOwe after payment = %s, want 0.00", got)
	}

	creditor, err := e.aggregator.Aggregate(ctx, "A")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	want := map[string]int64{"B": 0, "C": 3333}
	if len(creditor.Balances) != len(want) {
		t.Fatalf("Creditor balances = %+v", creditor.Balances)
	}
	for _, b := range creditor.Balances {
		if b.OwesYou.Cents() != want[b.CounterpartyID] {
			t.Errorf("%s owes A %s, want %d cents", b.CounterpartyID, b.OwesYou, want[b.CounterpartyID])
		}
		if b.CounterpartyID == "A" {
			t.Error("Creator appears in own summary")
		}
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	g1 := e.group(t, "Flat", "A", "B", "C")
	g2 := e.group(t, "Trip", "B", "A")
	e.expense(t, g1, "A", 10000)
	e.expense(t, g1, "C", 4500)
	e.expense(t, g2, "B", 2001)

	first, err := e.aggregator.Aggregate(ctx, "A")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	second, err := e.aggregator.Aggregate(ctx, "A")
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Aggregate not idempotent:\n%+v\n%+v", first, second)
	}

	// A owes C 15.00 (g1) and B 10.00 (g2: 20.01 / 2, remainder to B as first member)
	// B owes A 33.33, C owes A 33.33
	want := map[string]struct{ youOwe, owesYou int64 }{
		"B": {1000, 3333},
		"C": {1500, 3333},
	}
	for _, b := range first.Balances {
		w, ok := want[b.CounterpartyID]
		if !ok {
			t.Errorf("Unexpected counterparty %s", b.CounterpartyID)
			continue
		}
		if b.YouOwe.Cents() != w.youOwe || b.OwesYou.Cents() != w.owesYou {
			t.Errorf("%s: youOwe=%s owesYou=%s, want %d/%d", b.CounterpartyID, b.YouOwe, b.OwesYou, w.youOwe, w.owesYou)
		}
		if !b.Net.Equal(b.OwesYou.Sub(b.YouOwe)) {
			t.Errorf("%s: net %s != owesYou - youOwe", b.CounterpartyID, b.Net)
		}
	}
}

func TestAggregateForGroup(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	g1 := e.group(t, "Flat", "A", "B")
	g2 := e.group(t, "Trip", "A", "B")
	first := e.expense(t, g1, "A", 1000)
	e.expense(t, g2, "A", 9000)
	second := e.expense(t, g1, "A", 3000)

	summary, err := e.aggregator.AggregateForGroup(ctx, "B", g1)
	if err != nil {
		t.Fatalf("AggregateForGroup failed: %v", err)
	}
	if summary.GroupName != "Flat" || summary.GroupID != g1 {
		t.Errorf("Unexpected group %s/%s", summary.GroupID, summary.GroupName)
	}
	if len(summary.YouOwe) != 1 {
		t.Fatalf("YouOwe = %+v", summary.YouOwe)
	}
	debt := summary.YouOwe[0]
	if debt.CounterpartyID != "A" || debt.Outstanding().Cents() != 2000 {
		t.Errorf("Debt = %+v, want 20.00 to A", debt)
	}
	var ids []string
	for _, d := range debt.Expenses {
		ids = append(ids, d.ExpenseID)
	}
	if len(ids) != 2 || !(ids[0] == first.ID || ids[1] == first.ID) || !(ids[0] == second.ID || ids[1] == second.ID) {
		t.Errorf("Contributing expenses = %v", ids)
	}
	if len(summary.OwedToYou) != 0 {
		t.Errorf("OwedToYou = %+v", summary.OwedToYou)
	}

	t.Run("unknown group", func(t *testing.T) {
		_, err := e.aggregator.AggregateForGroup(ctx, "B", "missing")
		if !apperrors.IsCode(err, apperrors.CodeNotFound) {
			t.Errorf("error = %v, want NOT_FOUND", err)
		}
	})

	t.Run("user without shares", func(t *testing.T) {
		summary, err := e.aggregator.AggregateForGroup(ctx, "Z", g1)
		if err != nil {
			t.Fatalf("AggregateForGroup failed: %v", err)
		}
		if len(summary.Balances) != 0 || len(summary.YouOwe) != 0 {
			t.Errorf("Expected empty summary, got %+v", summary)
		}
	})
}
