package commands

import (
	"context"
	"time"

	"github.com/mikecat1024/notion-to-markdown/internal/logging"
	"github.com/mikecat1024/notion-to-markdown/pkg/interfaces"
)

// DefaultCommandTimeout bounds one export or render, rate-limit retries
// included. notion-md export --timeout and WithTimeout override it.
const DefaultCommandTimeout = 5 * time.Minute

// ExportDeadline derives the context a page export runs under. A nil ctx
// starts from context.Background. A zero or negative timeout leaves the
// export unbounded so it can wait out Notion's Retry-After hints.
func ExportDeadline(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// EnsureLogger returns logger, or a no-op logger when it is nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
