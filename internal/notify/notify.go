// Package notify delivers best-effort notices about ledger changes.
//
// Delivery happens after the ledger transaction commits. A failed delivery
// is logged and counted but never reported to the caller of the mutation.
package notify

import (
	"context"
	"log/slog"
)

// Notice is a message for one user.
type Notice struct {
	UserID string
	Title  string
	Body   string
}

// Sink receives notices.
type Sink interface {
	Notify(ctx context.Context, userID, title, body string) error
}

// LogSink writes notices to the default logger. Used when no broker is configured.
type LogSink struct{}

// Notify logs the notice.
func (LogSink) Notify(ctx context.Context, userID, title, body string) error {
	slog.InfoContext(ctx, "Notification", "user_id", userID, "title", title, "body", body)
	return nil
}
