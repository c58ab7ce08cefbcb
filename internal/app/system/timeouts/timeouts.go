// Package timeouts centralizes the context deadlines handlers use for
// database work.
//
// Guidelines:
//   - Ping: health checks
//   - Short: single-document reads
//   - Medium: list queries and simple writes
//   - Long: deletes with cascades and other multi-collection work
//   - Batch: the tenant migration and other one-shot batch jobs
package timeouts

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
	batch  = 5 * time.Minute
)

// Ping returns the timeout for connectivity checks.
func Ping() time.Duration { return ping }

// Short returns the timeout for single-document lookups.
func Short() time.Duration { return short }

// Medium returns the timeout for list queries and simple writes.
func Medium() time.Duration { return medium }

// Long returns the timeout for operations touching multiple collections,
// such as the client-delete cascade.
func Long() time.Duration { return long }

// Batch returns the timeout for one-shot batch jobs.
func Batch() time.Duration { return batch }

// WithTimeout wraps context.WithTimeout and logs a warning when the
// returned cancel fires after the deadline was exceeded, which makes
// slow operations visible without instrumenting every call site.
func WithTimeout(parent context.Context, d time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, d)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", d))
		}
		cancel()
	}
}
