// Package ledger implements expense bookkeeping for groups: creating and
// editing expenses, splitting them into per-member shares and tracking what
// each member has paid.
//
// Every mutation runs in one storage transaction that also covers the
// membership reads it depends on. Notifications are sent after commit and
// never affect the outcome of the mutation.
package ledger

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/mmynk/splitledger/internal/errors"
	"github.com/mmynk/splitledger/internal/membership"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/notify"
	"github.com/mmynk/splitledger/internal/storage"
)

// Notifier accepts notices for background delivery.
type Notifier interface {
	Send(ctx context.Context, notices ...notify.Notice)
}

type nopNotifier struct{}

func (nopNotifier) Send(context.Context, ...notify.Notice) {}

// Ledger is the expense ledger.
type Ledger struct {
	store    storage.Store
	groups   membership.Oracle
	notifier Notifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithNotifier sets where change notices go. The default drops them.
func WithNotifier(n Notifier) Option {
	return func(l *Ledger) { l.notifier = n }
}

// WithMetrics sets the collectors mutations are counted in.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Ledger) { l.metrics = m }
}

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New creates a Ledger over store, reading membership from groups.
// When groups is backed by the same database as store it must honor the
// transaction store carries in ctx.
func New(store storage.Store, groups membership.Oracle, opts ...Option) *Ledger {
	l := &Ledger{
		store:    store,
		groups:   groups,
		notifier: nopNotifier{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.metrics == nil {
		l.metrics = metrics.NewNop()
	}
	return l
}

// record counts a finished mutation.
func (l *Ledger) record(op string, err error) {
	code := "ok"
	if err != nil {
		code = string(apperrors.GetCode(err))
	}
	l.metrics.LedgerMutations.WithLabelValues(op, code).Inc()
}

func (l *Ledger) timestamp() int64 {
	return l.now().Unix()
}

// storageErr passes domain errors through and wraps anything else as STORAGE.
func storageErr(op string, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Storage(op, err)
}

// groupErr translates oracle failures.
func groupErr(groupID string, err error) error {
	if errors.Is(err, membership.ErrGroupNotFound) {
		return apperrors.WithMetadata(apperrors.CodeNotFound, "group "+groupID+" not found",
			map[string]string{"Resource": "Group"})
	}
	return apperrors.Storage("read group membership", err)
}

func notFound(resource, message string) error {
	return apperrors.WithMetadata(apperrors.CodeNotFound, message, map[string]string{"Resource": resource})
}

func forbidden(action string) error {
	return apperrors.WithMetadata(apperrors.CodeForbidden, "not allowed to "+action,
		map[string]string{"Action": action})
}

// loadExpense fetches an expense. A non-empty groupID must match the expense's group.
func (l *Ledger) loadExpense(ctx context.Context, groupID, expenseID string) (*models.Expense, error) {
	expense, err := l.store.GetExpense(ctx, expenseID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound("Expense", "expense "+expenseID+" not found")
	}
	if err != nil {
		return nil, storageErr("get expense", err)
	}
	if groupID != "" && expense.GroupID != groupID {
		return nil, notFound("Expense", "expense "+expenseID+" not found in group "+groupID)
	}
	return expense, nil
}

// requireMember fails with code unless userID belongs to the group.
func (l *Ledger) requireMember(ctx context.Context, groupID, userID string, code apperrors.Code) error {
	ok, err := membership.IsMember(ctx, l.groups, groupID, userID)
	if err != nil {
		return groupErr(groupID, err)
	}
	if !ok {
		return apperrors.New(code, "user "+userID+" is not a member of group "+groupID)
	}
	return nil
}

// requireOpen fails with GROUP_CLOSED for closed groups.
func (l *Ledger) requireOpen(ctx context.Context, groupID string) error {
	closed, err := l.groups.IsClosed(ctx, groupID)
	if err != nil {
		return groupErr(groupID, err)
	}
	if closed {
		return apperrors.New(apperrors.CodeGroupClosed, "group "+groupID+" is closed")
	}
	return nil
}

// groupName returns the display name for notices, falling back to the id.
func (l *Ledger) groupName(ctx context.Context, groupID string) string {
	name, err := l.groups.Name(ctx, groupID)
	if err != nil || name == "" {
		return groupID
	}
	return name
}
