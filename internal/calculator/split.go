package calculator

import (
	"fmt"

	apperrors "github.com/mmynk/splitledger/internal/errors"
	"github.com/mmynk/splitledger/internal/money"
)

// Share represents the calculated allocation for one participant.
type Share struct {
	UserID string
	Amount money.Money
	Paid   money.Money
}

// Allocate splits total equally among participants.
//
// Algorithm:
//   - share, remainder = total / len(participants), truncated at two decimals
//   - every participant owes share
//   - participants[0] additionally owes remainder, whoever the payer is
//   - the payer's share starts fully paid; everyone else starts at zero
//
// The returned shares follow the order of participants and always sum to total.
func Allocate(total money.Money, participants []string, payerID string) ([]Share, error) {
	if len(participants) == 0 {
		return nil, apperrors.New(apperrors.CodeEmptyGroup, "allocation requires at least one participant")
	}

	seen := make(map[string]bool, len(participants))
	payerFound := false
	for _, p := range participants {
		if seen[p] {
			return nil, apperrors.InvalidArgument("participants", fmt.Sprintf("duplicate participant %s", p))
		}
		seen[p] = true
		if p == payerID {
			payerFound = true
		}
	}
	if !payerFound {
		return nil, apperrors.WithMetadata(apperrors.CodeEmptyGroup,
			fmt.Sprintf("payer %s is not among the participants", payerID),
			map[string]string{"PayerID": payerID})
	}

	share, remainder := total.DivideEqually(len(participants))
	zero := money.Zero(total.Currency())

	shares := make([]Share, len(participants))
	for i, p := range participants {
		amount := share
		if i == 0 {
			amount = share.Add(remainder)
		}
		paid := zero
		if p == payerID {
			paid = amount
		}
		shares[i] = Share{UserID: p, Amount: amount, Paid: paid}
	}

	if sum := SumAmounts(total.Currency(), shares); !sum.Equal(total) {
		return nil, fmt.Errorf("allocation of %s produced %s", total, sum)
	}
	return shares, nil
}

// SumAmounts returns the sum of the shares' Amount in the given currency.
func SumAmounts(currency string, shares []Share) money.Money {
	total := money.Zero(currency)
	for _, s := range shares {
		total = total.Add(s.Amount)
	}
	return total
}
