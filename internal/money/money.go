// Package money provides a fixed-point monetary amount with two decimal
// places and an ISO-4217 style currency code.
//
// Amounts are stored as int64 minor units (cents). Binary operations require
// both operands to carry the same currency; a mismatch is a programming error
// and panics, since multi-currency arithmetic is never valid inside one
// expense.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits kept by Money.
const Scale = 2

// MaxCents bounds the magnitude of any amount accepted from outside.
const MaxCents int64 = 1e13

var (
	// ErrInvalidAmount is returned when a decimal string cannot be parsed.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrTooPrecise is returned when a decimal string has more than two
	// fractional digits.
	ErrTooPrecise = errors.New("amount has more than 2 decimal places")
	// ErrInvalidCurrency is returned for currency codes that are not three letters.
	ErrInvalidCurrency = errors.New("currency must be a 3-letter code")
	// ErrTooLarge is returned for amounts whose magnitude exceeds MaxCents.
	ErrTooLarge = errors.New("amount is too large")
)

// Money is an amount of minor units in a single currency.
type Money struct {
	cents    int64
	currency string
}

// New returns Money for the given minor units and currency.
func New(cents int64, currency string) Money {
	return Money{cents: cents, currency: currency}
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Money {
	return Money{currency: currency}
}

// Parse converts a decimal string such as "33.34" into Money.
func Parse(s, currency string) (Money, error) {
	cents, err := ParseMinor(s)
	if err != nil {
		return Money{}, err
	}
	return New(cents, currency), nil
}

// ParseMinor converts a decimal string into minor units. Values with more
// than two fractional digits are rejected instead of rounded.
func ParseMinor(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !d.Equal(d.Truncate(Scale)) {
		return 0, ErrTooPrecise
	}
	if d.Shift(Scale).Abs().GreaterThan(decimal.NewFromInt(MaxCents)) {
		return 0, ErrTooLarge
	}
	return d.Shift(Scale).IntPart(), nil
}

// InRange reports whether |cents| is within MaxCents.
func InRange(cents int64) bool {
	return cents >= -MaxCents && cents <= MaxCents
}

// NormalizeCurrency upper-cases and validates a three-letter currency code.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", ErrInvalidCurrency
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCurrency
		}
	}
	return code, nil
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 { return m.cents }

// Currency returns the currency code.
func (m Money) Currency() string { return m.currency }

// WithCurrency relabels the amount without any conversion.
func (m Money) WithCurrency(currency string) Money {
	return Money{cents: m.cents, currency: currency}
}

func (m Money) mustMatch(o Money) {
	if m.currency != o.currency {
		panic(fmt.Sprintf("money: currency mismatch %q vs %q", m.currency, o.currency))
	}
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	m.mustMatch(o)
	return Money{cents: m.cents + o.cents, currency: m.currency}
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	m.mustMatch(o)
	return Money{cents: m.cents - o.cents, currency: m.currency}
}

// MulInt returns m * n.
func (m Money) MulInt(n int64) Money {
	return Money{cents: m.cents * n, currency: m.currency}
}

// DivideEqually splits m into n equal shares truncated toward zero at two
// decimal places. The remainder is m - share*n and must be assigned by the
// caller.
func (m Money) DivideEqually(n int) (share, remainder Money) {
	if n <= 0 {
		panic(fmt.Sprintf("money: cannot divide into %d shares", n))
	}
	share = Money{cents: m.cents / int64(n), currency: m.currency}
	remainder = m.Sub(share.MulInt(int64(n)))
	return share, remainder
}

// Cmp compares m and o and returns -1, 0 or +1.
func (m Money) Cmp(o Money) int {
	m.mustMatch(o)
	switch {
	case m.cents < o.cents:
		return -1
	case m.cents > o.cents:
		return 1
	default:
		return 0
	}
}

// Equal reports whether m and o have the same currency and amount.
func (m Money) Equal(o Money) bool {
	return m.currency == o.currency && m.cents == o.cents
}

// LessThan reports whether m < o.
func (m Money) LessThan(o Money) bool { return m.Cmp(o) < 0 }

// GreaterThan reports whether m > o.
func (m Money) GreaterThan(o Money) bool { return m.Cmp(o) > 0 }

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.cents == 0 }

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.cents < 0 }

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool { return m.cents > 0 }

// Decimal returns the amount as a decimal value.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.cents, -Scale)
}

// Amount formats the amount with exactly two fractional digits, e.g. "33.34".
func (m Money) Amount() string {
	return m.Decimal().StringFixed(Scale)
}

// String formats the amount with its currency, e.g. "33.34 RUB".
func (m Money) String() string {
	if m.currency == "" {
		return m.Amount()
	}
	return m.Amount() + " " + m.currency
}

// Sum adds up amounts that share the given currency.
func Sum(currency string, amounts ...Money) Money {
	total := Zero(currency)
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
