package notionapi

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
)

// NormalizeID accepts a dashed or undashed id, or a Notion page URL, and
// returns the canonical dashed form.
func NormalizeID(input string) (string, error) {
	candidate := strings.TrimSpace(input)
	if candidate == "" {
		return "", ErrInvalidID
	}

	if strings.Contains(candidate, "://") {
		u, err := url.Parse(candidate)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidID, err)
		}
		candidate = path.Base(u.Path)
	}

	if id, err := uuid.Parse(candidate); err == nil {
		return id.String(), nil
	}
	// Page URLs carry the id as the last 32 hex characters of a slug.
	if len(candidate) > 32 {
		if id, err := uuid.Parse(candidate[len(candidate)-32:]); err == nil {
			return id.String(), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidID, input)
}

// CompactID strips dashes from an id, the form used in notion.so URLs.
func CompactID(id string) string {
	return strings.ReplaceAll(id, "-", "")
}
