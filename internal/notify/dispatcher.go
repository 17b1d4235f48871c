package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mmynk/splitledger/internal/metrics"
)

// DefaultTimeout bounds the delivery of one batch of notices.
const DefaultTimeout = 5 * time.Second

// Dispatcher sends notices in the background.
type Dispatcher struct {
	sink    Sink
	timeout time.Duration
	metrics *metrics.Metrics
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. A non-positive timeout selects DefaultTimeout.
func NewDispatcher(sink Sink, timeout time.Duration, m *metrics.Metrics) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &Dispatcher{sink: sink, timeout: timeout, metrics: m}
}

// Send delivers notices asynchronously and returns immediately.
// Cancellation of ctx does not stop delivery; its values are kept for logging.
func (d *Dispatcher) Send(ctx context.Context, notices ...Notice) {
	if len(notices) == 0 {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()

		for _, n := range notices {
			if err := d.sink.Notify(ctx, n.UserID, n.Title, n.Body); err != nil {
				d.metrics.Notifications.WithLabelValues("failed").Inc()
				slog.WarnContext(ctx, "Failed to deliver notification",
					"user_id", n.UserID,
					"title", n.Title,
					"error", err)
				continue
			}
			d.metrics.Notifications.WithLabelValues("sent").Inc()
		}
	}()
}

// Wait blocks until every pending Send has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
