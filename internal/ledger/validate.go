package ledger

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/mmynk/splitledger/internal/errors"
	"github.com/mmynk/splitledger/internal/money"
)

const (
	minNameLen        = 3
	maxNameLen        = 100
	maxDescriptionLen = 500
)

// ExpenseInput holds the editable fields of an expense.
type ExpenseInput struct {
	Name        string
	Description string
	Date        time.Time   // calendar day; the time of day is dropped
	Amount      money.Money // total, in the expense currency
}

// normalize trims and validates the input and returns the cleaned copy.
func (in ExpenseInput) normalize() (ExpenseInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if n := utf8.RuneCountInString(in.Name); n < minNameLen || n > maxNameLen {
		return in, apperrors.InvalidArgument("name",
			fmt.Sprintf("must be between %d and %d characters", minNameLen, maxNameLen))
	}
	if utf8.RuneCountInString(in.Description) > maxDescriptionLen {
		return in, apperrors.InvalidArgument("description",
			fmt.Sprintf("must be at most %d characters", maxDescriptionLen))
	}
	if in.Date.IsZero() {
		return in, apperrors.InvalidArgument("date", "is required")
	}
	y, m, d := in.Date.Date()
	in.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	if !in.Amount.IsPositive() {
		return in, apperrors.InvalidArgument("amount", "must be positive")
	}
	if !money.InRange(in.Amount.Cents()) {
		return in, apperrors.InvalidArgument("amount", money.ErrTooLarge.Error())
	}
	currency, err := money.NormalizeCurrency(in.Amount.Currency())
	if err != nil {
		return in, apperrors.InvalidArgument("currency", err.Error())
	}
	in.Amount = in.Amount.WithCurrency(currency)
	return in, nil
}

// ShareInput is one participant line of a share replacement, in minor
// units of the expense currency.
type ShareInput struct {
	UserID string
	Amount int64
	Paid   int64
}
