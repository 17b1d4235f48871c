package ledger

import (
	"context"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	apperrors "github.com/mmynk/splitledger/internal/errors"
	"github.com/mmynk/splitledger/internal/money"
)

func TestReplaceShares(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		requester string
		requests  []ShareInput
		close     bool
		wantCode  apperrors.Code
		wantUsers []string
	}{
		{
			name:      "update in place and drop missing",
			requester: "A",
			requests: []ShareInput{
				{UserID: "A", Amount: 5000, Paid: 5000},
				{UserID: "B", Amount: 5000, Paid: 1000},
			},
			wantUsers: []string{"A", "B"},
		},
		{
			name:      "new participants are appended",
			requester: "A",
			requests: []ShareInput{
				{UserID: "D", Amount: 2500},
				{UserID: "C", Amount: 2500},
				{UserID: "A", Amount: 5000, Paid: 5000},
			},
			wantUsers: []string{"A", "D", "C"},
		},
		{
			name:      "sum below amount",
			requester: "A",
			requests:  []ShareInput{{UserID: "A", Amount: 5000}, {UserID: "B", Amount: 4999}},
			wantCode:  apperrors.CodeAmountMismatch,
		},
		{
			name:      "sum above amount",
			requester: "A",
			requests:  []ShareInput{{UserID: "A", Amount: 5000}, {UserID: "B", Amount: 5001}},
			wantCode:  apperrors.CodeAmountMismatch,
		},
		{
			name:      "empty request",
			requester: "A",
			wantCode:  apperrors.CodeAmountMismatch,
		},
		{
			name:      "not creator",
			requester: "B",
			requests:  []ShareInput{{UserID: "A", Amount: 10000}},
			wantCode:  apperrors.CodeForbidden,
		},
		{
			name:      "closed group",
			requester: "A",
			close:     true,
			requests:  []ShareInput{{UserID: "A", Amount: 10000}},
			wantCode:  apperrors.CodeGroupClosed,
		},
		{
			name:      "duplicate user",
			requester: "A",
			requests:  []ShareInput{{UserID: "A", Amount: 5000}, {UserID: "A", Amount: 5000}},
			wantCode:  apperrors.CodeInvalidArgument,
		},
		{
			name:      "non member participant",
			requester: "A",
			requests:  []ShareInput{{UserID: "A", Amount: 5000}, {UserID: "Z", Amount: 5000}},
			wantCode:  apperrors.CodeInvalidArgument,
		},
		{
			name:      "negative paid",
			requester: "A",
			requests:  []ShareInput{{UserID: "A", Amount: 10000, Paid: -1}},
			wantCode:  apperrors.CodeInvalidArgument,
		},
		{
			name:      "amounts that wrap around to the total",
			requester: "A",
			requests: []ShareInput{
				{UserID: "A", Amount: math.MaxInt64},
				{UserID: "B", Amount: math.MaxInt64},
				{UserID: "C", Amount: 10002},
			},
			wantCode: apperrors.CodeInvalidArgument,
		},
		{
			name:      "amount above limit",
			requester: "A",
			requests: []ShareInput{
				{UserID: "A", Amount: money.MaxCents + 1},
				{UserID: "B", Amount: 10000 - money.MaxCents - 1},
			},
			wantCode: apperrors.CodeInvalidArgument,
		},
		{
			name:      "paid above limit",
			requester: "A",
			requests:  []ShareInput{{UserID: "A", Amount: 10000, Paid: money.MaxCents + 1}},
			wantCode:  apperrors.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupLedger(t)
			groupID := f.group(t, "A", "A", "B", "C", "D")
			expense, err := f.ledger.CreateExpense(ctx, groupID, "A", input(10000))
			if err != nil {
				t.Fatalf("CreateExpense failed: %v", err)
			}
			// Start from a three-way split so removal and insertion are both exercised
			if _, err := f.ledger.ReplaceShares(ctx, expense.ID, "A", []ShareInput{
				{UserID: "A", Amount: 3334, Paid: 3334},
				{UserID: "B", Amount: 3333},
				{UserID: "D", Amount: 3333},
			}); err != nil {
				t.Fatalf("initial ReplaceShares failed: %v", err)
			}
			f.notifier.notices = nil
			if tt.close {
				f.store.CloseGroup(ctx, groupID)
			}

			before, _ := f.ledger.GetExpenseShares(ctx, expense.ID, "A")
			shares, err := f.ledger.ReplaceShares(ctx, expense.ID, tt.requester, tt.requests)
			if tt.wantCode != "" {
				wantCode(t, err, tt.wantCode)
				after, _ := f.ledger.GetExpenseShares(ctx, expense.ID, "A")
				if !reflect.DeepEqual(before, after) {
					t.Errorf("Shares changed despite error: %+v -> %+v", before, after)
				}
				if len(f.notifier.notices) != 0 {
					t.Errorf("Notified on failure: %+v", f.notifier.notices)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReplaceShares failed: %v", err)
			}

			var users []string
			sum := rub(0)
			for _, s := range shares {
				users = append(users, s.UserID)
				sum = sum.Add(s.Amount)
			}
			if !reflect.DeepEqual(users, tt.wantUsers) {
				t.Errorf("Users = %v, want %v", users, tt.wantUsers)
			}
			if !sum.Equal(expense.Amount) {
				t.Errorf("Sum = %s, want %s", sum, expense.Amount)
			}
			for _, r := range tt.requests {
				for _, s := range shares {
					if s.UserID == r.UserID && (s.Amount.Cents() != r.Amount || s.Paid.Cents() != r.Paid) {
						t.Errorf("Share %s = %s/%s, want %d/%d", s.UserID, s.Amount, s.Paid, r.Amount, r.Paid)
					}
				}
			}

			notified := map[string]bool{}
			for _, u := range f.notifier.recipients() {
				notified[u] = true
			}
			for _, r := range tt.requests {
				if !notified[r.UserID] {
					t.Errorf("%s was not notified", r.UserID)
				}
			}
		})
	}
}

func TestReplaceSharesNotifiesRemovedUsers(t *testing.T) {
	ctx := context.Background()
	f := setupLedger(t)
	groupID := f.group(t, "A", "A", "B", "C")
	expense, err := f.ledger.CreateExpense(ctx, groupID, "A", input(9000))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	if _, err := f.ledger.ReplaceShares(ctx, expense.ID, "A", []ShareInput{
		{UserID: "A", Amount: 4500, Paid: 4500},
		{UserID: "B", Amount: 4500},
	}); err != nil {
		t.Fatalf("ReplaceShares failed: %v", err)
	}

	var removed, updated []string
	for _, n := range f.notifier.notices {
		switch n.Title {
		case titleDebtRemoved:
			removed = append(removed, n.UserID)
		case titleDebtUpdate:
			updated = append(updated, n.UserID)
			if !strings.Contains(n.Body, "Trip to Kazan") || !strings.Contains(n.Body, "Groceries") {
				t.Errorf("Body = %q, want expense and group names", n.Body)
			}
		}
	}
	if !reflect.DeepEqual(removed, []string{"C"}) {
		t.Errorf("Removed notices = %v, want [C]", removed)
	}
	if !reflect.DeepEqual(updated, []string{"A", "B"}) {
		t.Errorf("Update notices = %v, want [A B]", updated)
	}
}

func TestUpdatePaidAmount(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		target    string
		requester string
		paid      int64
		close     bool
		wantCode  apperrors.Code
	}{
		{name: "debtor pays in full", target: "B", requester: "B", paid: 3333},
		{name: "another member records payment", target: "B", requester: "C", paid: 1000},
		{name: "overpayment allowed", target: "B", requester: "B", paid: 100000},
		{name: "negative paid", target: "B", requester: "B", paid: -1, wantCode: apperrors.CodeInvalidArgument},
		{name: "paid above limit", target: "B", requester: "B", paid: math.MaxInt64, wantCode: apperrors.CodeInvalidArgument},
		{name: "requester not member", target: "B", requester: "Z", paid: 10, wantCode: apperrors.CodeNotMember},
		{name: "target has no share", target: "Z", requester: "A", paid: 10, wantCode: apperrors.CodeShareNotFound},
		{name: "closed group", target: "B", requester: "B", paid: 10, close: true, wantCode: apperrors.CodeGroupClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupLedger(t)
			groupID := f.group(t, "A", "A", "B", "C")
			expense, err := f.ledger.CreateExpense(ctx, groupID, "A", input(10000))
			if err != nil {
				t.Fatalf("CreateExpense failed: %v", err)
			}
			if tt.close {
				f.store.CloseGroup(ctx, groupID)
			}
			f.advance(time.Minute)

			share, err := f.ledger.UpdatePaidAmount(ctx, expense.ID, tt.target, tt.requester, tt.paid)
			if tt.wantCode != "" {
				wantCode(t, err, tt.wantCode)
				if len(f.notifier.notices) != 0 {
					t.Errorf("Notified on failure: %+v", f.notifier.notices)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdatePaidAmount failed: %v", err)
			}
			if share.Paid.Cents() != tt.paid || share.Amount.Cents() != 3333 {
				t.Errorf("Share = %s/%s", share.Amount, share.Paid)
			}

			stored, err := f.store.GetExpense(ctx, expense.ID)
			if err != nil {
				t.Fatalf("GetExpense failed: %v", err)
			}
			if stored.UpdatedAt != epoch.Add(time.Minute).Unix() {
				t.Errorf("UpdatedAt = %d, want bumped", stored.UpdatedAt)
			}
			if got := f.notifier.recipients(); !reflect.DeepEqual(got, []string{tt.target}) {
				t.Errorf("Notified %v, want [%s]", got, tt.target)
			}
		})
	}
}

func TestRemoveParticipant(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		target    string
		requester string
		close     bool
		wantCode  apperrors.Code
	}{
		{name: "creator removes debtor", target: "C", requester: "A"},
		{name: "non creator member may remove", target: "C", requester: "B"},
		{name: "requester not member", target: "C", requester: "Z", wantCode: apperrors.CodeNotMember},
		{name: "target has no share", target: "Z", requester: "A", wantCode: apperrors.CodeShareNotFound},
		{name: "closed group", target: "C", requester: "A", close: true, wantCode: apperrors.CodeGroupClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupLedger(t)
			groupID := f.group(t, "A", "A", "B", "C")
			expense, err := f.ledger.CreateExpense(ctx, groupID, "A", input(10000))
			if err != nil {
				t.Fatalf("CreateExpense failed: %v", err)
			}
			if tt.close {
				f.store.CloseGroup(ctx, groupID)
			}

			err = f.ledger.RemoveParticipant(ctx, expense.ID, tt.target, tt.requester)
			if tt.wantCode != "" {
				wantCode(t, err, tt.wantCode)
				return
			}
			if err != nil {
				t.Fatalf("RemoveParticipant failed: %v", err)
			}

			shares, _ := f.ledger.GetExpenseShares(ctx, expense.ID, "A")
			if len(shares) != 2 {
				t.Fatalf("Got %d shares, want 2", len(shares))
			}
			// No redistribution: the remaining shares keep their amounts
			if shares[0].Amount.Cents() != 3334 || shares[1].Amount.Cents() != 3333 {
				t.Errorf("Remaining shares changed: %+v", shares)
			}
			if got := f.notifier.recipients(); !reflect.DeepEqual(got, []string{tt.target}) {
				t.Errorf("Notified %v, want [%s]", got, tt.target)
			}

			// Under-allocated expense can be fixed with a replacement
			_, err = f.ledger.ReplaceShares(ctx, expense.ID, "A", []ShareInput{
				{UserID: "A", Amount: 5000, Paid: 5000},
				{UserID: "B", Amount: 5000},
			})
			if err != nil {
				t.Errorf("ReplaceShares after removal failed: %v", err)
			}
		})
	}
}
