package calculator

import (
	"testing"

	apperrors "github.com/mmynk/splitledger/internal/errors"
	"github.com/mmynk/splitledger/internal/money"
)

func TestAllocate(t *testing.T) {
	tests := []struct {
		name         string
		total        money.Money
		participants []string
		payer        string
		wantCode     apperrors.Code
		validateFunc func(t *testing.T, shares []Share)
	}{
		{
			name:         "hundred split three ways puts remainder on first",
			total:        money.New(10000, "RUB"),
			participants: []string{"A", "B", "C"},
			payer:        "A",
			validateFunc: func(t *testing.T, shares []Share) {
				want := []int64{3334, 3333, 3333}
				for i, s := range shares {
					if s.Amount.Cents() != want[i] {
						t.Errorf("%s amount = %s, want %d cents", s.UserID, s.Amount, want[i])
					}
				}
			},
		},
		{
			name:         "remainder stays on first participant when payer is last",
			total:        money.New(10000, "RUB"),
			participants: []string{"A", "B", "C"},
			payer:        "C",
			validateFunc: func(t *testing.T, shares []Share) {
				if shares[0].Amount.Cents() != 3334 {
					t.Errorf("first participant amount = %s, want 33.34", shares[0].Amount)
				}
				if shares[2].Amount.Cents() != 3333 {
					t.Errorf("payer amount = %s, want 33.33", shares[2].Amount)
				}
			},
		},
		{
			name:         "payer pre-paid, others zero",
			total:        money.New(10000, "RUB"),
			participants: []string{"A", "B", "C"},
			payer:        "B",
			validateFunc: func(t *testing.T, shares []Share) {
				for _, s := range shares {
					if s.UserID == "B" {
						if !s.Paid.Equal(s.Amount) {
							t.Errorf("payer paid = %s, want %s", s.Paid, s.Amount)
						}
						continue
					}
					if !s.Paid.IsZero() {
						t.Errorf("%s paid = %s, want 0", s.UserID, s.Paid)
					}
				}
			},
		},
		{
			name:         "one cent over three participants",
			total:        money.New(1, "EUR"),
			participants: []string{"A", "B", "C"},
			payer:        "A",
			validateFunc: func(t *testing.T, shares []Share) {
				if shares[0].Amount.Cents() != 1 || shares[1].Amount.Cents() != 0 || shares[2].Amount.Cents() != 0 {
					t.Errorf("unexpected shares %v", shares)
				}
			},
		},
		{
			name:         "single participant owes everything",
			total:        money.New(4999, "USD"),
			participants: []string{"A"},
			payer:        "A",
			validateFunc: func(t *testing.T, shares []Share) {
				if len(shares) != 1 || shares[0].Amount.Cents() != 4999 || shares[0].Paid.Cents() != 4999 {
					t.Errorf("unexpected shares %v", shares)
				}
			},
		},
		{
			name:         "no participants",
			total:        money.New(10000, "RUB"),
			participants: nil,
			payer:        "A",
			wantCode:     apperrors.CodeEmptyGroup,
		},
		{
			name:         "payer not among participants",
			total:        money.New(10000, "RUB"),
			participants: []string{"A", "B"},
			payer:        "Z",
			wantCode:     apperrors.CodeEmptyGroup,
		},
		{
			name:         "duplicate participant",
			total:        money.New(10000, "RUB"),
			participants: []string{"A", "B", "A"},
			payer:        "A",
			wantCode:     apperrors.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Allocate(tt.total, tt.participants, tt.payer)
			if tt.wantCode != "" {
				if !apperrors.IsCode(err, tt.wantCode) {
					t.Fatalf("Allocate() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Allocate() unexpected error: %v", err)
			}
			if len(shares) != len(tt.participants) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.participants))
			}
			for i, s := range shares {
				if s.UserID != tt.participants[i] {
					t.Errorf("share %d belongs to %s, want %s", i, s.UserID, tt.participants[i])
				}
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, shares)
			}
		})
	}
}

func TestAllocatePreservesSum(t *testing.T) {
	for cents := int64(0); cents <= 2000; cents += 7 {
		for n := 1; n <= 12; n++ {
			participants := make([]string, n)
			for i := range participants {
				participants[i] = string(rune('a' + i))
			}
			total := money.New(cents, "RUB")
			shares, err := Allocate(total, participants, participants[n-1])
			if err != nil {
				t.Fatalf("Allocate(%d, n=%d) error: %v", cents, n, err)
			}
			if sum := SumAmounts("RUB", shares); !sum.Equal(total) {
				t.Fatalf("Allocate(%d, n=%d) sum = %s, want %s", cents, n, sum, total)
			}
			for i := 1; i < n; i++ {
				if shares[i].Amount.GreaterThan(shares[0].Amount) {
					t.Fatalf("Allocate(%d, n=%d): share %d larger than first", cents, n, i)
				}
			}
		}
	}
}
