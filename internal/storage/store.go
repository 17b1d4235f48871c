// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitledger/internal/models"
)

// ErrNotFound is wrapped by every lookup that finds no row.
var ErrNotFound = errors.New("not found")

// Store defines the interface for expense and share persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the ledger.
//
// Every method runs inside the transaction carried by ctx when there is one,
// and in its own implicit transaction otherwise.
type Store interface {
	// WithTx runs fn in a write transaction that is committed when fn returns
	// nil and rolled back otherwise. The transaction must prevent other
	// writers from changing rows fn has read before it commits.
	// Nested calls join the outer transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	// WithReadTx runs fn against one consistent snapshot.
	WithReadTx(ctx context.Context, fn func(ctx context.Context) error) error

	// CreateExpense persists a new expense.
	// The expense.ID field will be populated by the store if empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by its ID.
	// Returns an error wrapping ErrNotFound if the expense does not exist.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup retrieves the expenses of a group, oldest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// UpdateExpense updates the header fields of an existing expense.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// TouchExpense sets the expense's UpdatedAt.
	TouchExpense(ctx context.Context, expenseID string, updatedAt int64) error

	// DeleteExpense removes an expense together with its shares.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListShares retrieves the shares of an expense in insertion order.
	ListShares(ctx context.Context, expenseID string) ([]*models.ExpenseShare, error)

	// GetShare retrieves the share of userID in an expense.
	GetShare(ctx context.Context, expenseID, userID string) (*models.ExpenseShare, error)

	// CreateShares appends shares to their expense.
	// Share IDs are populated by the store if empty.
	CreateShares(ctx context.Context, shares []*models.ExpenseShare) error

	// UpdateShare updates the amount and paid fields of an existing share.
	UpdateShare(ctx context.Context, share *models.ExpenseShare) error

	// DeleteShare removes the share of userID from an expense.
	DeleteShare(ctx context.Context, expenseID, userID string) error

	// ListDebtorLines returns the shares held by userID, joined with their
	// expense. An empty groupID selects every group.
	ListDebtorLines(ctx context.Context, userID, groupID string) ([]models.ShareLine, error)

	// ListCreditorLines returns the shares of expenses created by userID.
	// An empty groupID selects every group.
	ListCreditorLines(ctx context.Context, userID, groupID string) ([]models.ShareLine, error)

	// Close releases any resources held by the store.
	Close() error
}
