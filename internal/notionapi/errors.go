package notionapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mikecat1024/notion-to-markdown/pkg/interfaces"
)

var (
	// ErrMissingToken is returned when a client is built without a token.
	ErrMissingToken = errors.New("notion: integration token is required")
	// ErrInvalidID is returned when an input cannot be read as a Notion id.
	ErrInvalidID = errors.New("notion: invalid block or page id")
)

// StatusError reports a non-2xx response from the Notion API.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("notion: %s %s: status %d", e.Method, e.Path, e.StatusCode)
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is lets rate-limit responses match interfaces.ErrRateLimited.
func (e *StatusError) Is(target error) bool {
	return target == interfaces.ErrRateLimited && e.RateLimited()
}

// RateLimited reports whether the response was HTTP 429.
func (e *StatusError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// StatusCode extracts the HTTP status from err, or 0 when err carries none.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

type errorBody struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
