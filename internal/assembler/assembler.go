// Package assembler materializes Notion block trees by walking the paged
// block children listing depth-first.
package assembler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/mikecat1024/notion-to-markdown/internal/blocks"
	"github.com/mikecat1024/notion-to-markdown/internal/logging"
	"github.com/mikecat1024/notion-to-markdown/pkg/interfaces"
)

const (
	// DefaultRetryInterval is the fixed wait after a rate-limited request.
	DefaultRetryInterval = 500 * time.Millisecond
	// DefaultPageSize is the page size used when none is requested.
	DefaultPageSize = 100
	// MaxPageSize is the largest page size the listing endpoint accepts.
	MaxPageSize = 100
)

// ErrNoLister is returned when the assembler has nothing to fetch from.
var ErrNoLister = errors.New("assembler: lister is required")

// Lister lists one page of a block's children starting at cursor.
type Lister interface {
	ListChildren(ctx context.Context, blockID, startCursor string, pageSize int) (*blocks.ChildrenPage, error)
}

// Assembler fetches and assembles block trees.
type Assembler struct {
	lister     Lister
	interval   time.Duration
	maxRetries uint
	logger     interfaces.Logger
}

// Option customises an Assembler.
type Option func(*Assembler)

// WithRetryInterval overrides the wait between rate-limited attempts.
func WithRetryInterval(d time.Duration) Option {
	return func(a *Assembler) {
		if d > 0 {
			a.interval = d
		}
	}
}

// WithMaxRetries caps the retries of a rate-limited page fetch. Zero, the
// default, retries until the context is done.
func WithMaxRetries(n uint) Option {
	return func(a *Assembler) { a.maxRetries = n }
}

// WithLogger sets the assembler logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New constructs an Assembler over lister.
func New(lister Lister, opts ...Option) *Assembler {
	a := &Assembler{
		lister:   lister,
		interval: DefaultRetryInterval,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Materialize returns the children of rootID with every container that
// reports children hydrated recursively, in listing order. Subtrees are
// fetched depth-first, one request at a time. Rate-limited requests are
// retried after a fixed interval; any other failure aborts the whole call.
//
// Child pages and other leaves are not descended into even when the API
// flags them as having children.
func (a *Assembler) Materialize(ctx context.Context, rootID string, pageSize int) ([]blocks.Block, error) {
	if a == nil || a.lister == nil {
		return nil, ErrNoLister
	}
	return a.materialize(ctx, rootID, normalizePageSize(pageSize))
}

func (a *Assembler) materialize(ctx context.Context, blockID string, pageSize int) ([]blocks.Block, error) {
	nodes, err := a.listAll(ctx, blockID, pageSize)
	if err != nil {
		return nil, err
	}

	for _, node := range nodes {
		container, ok := node.(blocks.Container)
		if !ok || !node.HasChildren() {
			continue
		}
		children, err := a.materialize(ctx, node.ID(), pageSize)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			container.AppendChild(child)
		}
	}
	return nodes, nil
}

// listAll follows next_cursor until the listing is exhausted.
func (a *Assembler) listAll(ctx context.Context, blockID string, pageSize int) ([]blocks.Block, error) {
	var (
		out    []blocks.Block
		cursor string
	)
	for {
		page, err := a.fetch(ctx, blockID, cursor, pageSize)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Results...)

		a.logger.WithContext(ctx).Debug("assembler.page.fetched",
			"block_id", blockID,
			"results", len(page.Results),
			"has_more", page.HasMore,
		)

		next, ok := page.Cursor()
		if !ok {
			return out, nil
		}
		cursor = next
	}
}

func (a *Assembler) fetch(ctx context.Context, blockID, cursor string, pageSize int) (*blocks.ChildrenPage, error) {
	operation := func() (*blocks.ChildrenPage, error) {
		page, err := a.lister.ListChildren(ctx, blockID, cursor, pageSize)
		if err == nil {
			if page == nil {
				page = &blocks.ChildrenPage{}
			}
			return page, nil
		}
		if errors.Is(err, interfaces.ErrRateLimited) {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(backoff.NewConstantBackOff(a.interval)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, wait time.Duration) {
			a.logger.WithContext(ctx).Warn("assembler.rate_limited",
				"block_id", blockID,
				"cursor", cursor,
				"retry_in", wait.String(),
				"error", err,
			)
		}),
	}
	if a.maxRetries > 0 {
		opts = append(opts, backoff.WithMaxTries(a.maxRetries+1))
	}

	page, err := backoff.Retry(ctx, operation, opts...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = errors.Join(ctxErr, err)
		}
		return nil, fmt.Errorf("list children of %s: %w", blockID, err)
	}
	return page, nil
}

func normalizePageSize(size int) int {
	switch {
	case size <= 0:
		return DefaultPageSize
	case size > MaxPageSize:
		return MaxPageSize
	default:
		return size
	}
}
