package models

import (
	"time"

	"github.com/mmynk/splitledger/internal/money"
)

// DateLayout is the wire and storage format of Expense.Date.
const DateLayout = "2006-01-02"

// Expense represents money spent by one group member on behalf of the group.
//
// Invariant: after a successful create or replace of shares,
// the sum of its shares' Amount equals Amount.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// CreatedBy is the user who created (and paid for) the expense.
	// Only the creator may edit the expense header or replace its shares.
	CreatedBy string

	// Name is the short title of the expense (3 to 100 characters).
	Name string

	// Description is optional free text (up to 500 characters).
	Description string

	// Amount is the total cost. Its currency is the currency of every share.
	Amount money.Money

	// Date is the calendar day the expense happened (UTC midnight).
	Date time.Time

	// CreatedAt is the Unix timestamp when the expense was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last change to the expense or its shares.
	UpdatedAt int64

	// Active is kept for compatibility; deleted expenses are removed, not deactivated.
	Active bool
}

// Currency returns the expense currency code.
func (e *Expense) Currency() string {
	return e.Amount.Currency()
}

// ExpenseShare represents one participant's portion of an expense.
// At most one share exists per (ExpenseID, UserID).
type ExpenseShare struct {
	// ID is the unique identifier for the share (UUID format).
	ID string

	// ExpenseID is the owning expense.
	ExpenseID string

	// UserID is the participant.
	UserID string

	// Amount is what the participant owes for this expense. Never negative.
	Amount money.Money

	// Paid is what the participant has already paid. Never negative;
	// may exceed Amount (overpayment is allowed).
	Paid money.Money
}

// Outstanding returns Amount - Paid. Negative when the participant overpaid.
func (s *ExpenseShare) Outstanding() money.Money {
	return s.Amount.Sub(s.Paid)
}

// ShareLine is an ExpenseShare joined with the expense fields needed to
// aggregate debts. It is produced by storage queries and never persisted.
type ShareLine struct {
	ExpenseID   string
	ExpenseName string
	GroupID     string
	CreatorID   string
	UserID      string
	Amount      money.Money
	Paid        money.Money
}
