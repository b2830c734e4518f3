package interfaces

import (
	"context"
	"errors"
)

// ErrRateLimited is matched by errors returned when the Notion API answers
// with HTTP 429. The tree assembler retries these instead of failing.
var ErrRateLimited = errors.New("notion: rate limited")

// Page is the subset of page metadata used when exporting documents.
type Page struct {
	ID             string
	Title          string
	URL            string
	LastEditedTime string
}

// PageRetriever fetches page metadata by identifier.
type PageRetriever interface {
	RetrievePage(ctx context.Context, pageID string) (*Page, error)
}
