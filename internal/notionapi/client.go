// Package notionapi is a minimal client for the Notion REST API covering the
// endpoints needed to export pages: block children listing and page
// retrieval.
package notionapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/mikecat1024/notion-to-markdown/internal/blocks"
	"github.com/mikecat1024/notion-to-markdown/internal/logging"
	"github.com/mikecat1024/notion-to-markdown/pkg/interfaces"
)

const (
	// DefaultBaseURL is the public Notion API endpoint.
	DefaultBaseURL = "https://api.notion.com"
	// DefaultVersion is the Notion-Version header sent with every request.
	DefaultVersion = "2022-06-28"
	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second

	versionHeader = "Notion-Version"
	maxErrorBody  = 64 << 10
)

// Client talks to the Notion API with a static integration token.
type Client struct {
	http    *http.Client
	baseURL string
	version string
	logger  interfaces.Logger
}

type clientConfig struct {
	base    *http.Client
	baseURL string
	version string
	timeout time.Duration
	logger  interfaces.Logger
}

// Option customises a Client.
type Option func(*clientConfig)

// WithBaseURL points the client at another API host, typically a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *clientConfig) { c.baseURL = baseURL }
}

// WithVersion overrides the Notion-Version header.
func WithVersion(version string) Option {
	return func(c *clientConfig) { c.version = version }
}

// WithHTTPClient sets the client whose transport carries authenticated
// requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) { c.base = client }
}

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.timeout = d }
}

// WithLogger sets the client logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}

// New builds a client authenticating with token as a bearer credential.
func New(token string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	cfg := clientConfig{
		baseURL: DefaultBaseURL,
		version: DefaultVersion,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = logging.NoOp()
	}
	if strings.TrimSpace(cfg.version) == "" {
		cfg.version = DefaultVersion
	}

	ctx := context.Background()
	if cfg.base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, cfg.base)
	}
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	httpClient.Timeout = cfg.timeout

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(cfg.baseURL, "/"),
		version: cfg.version,
		logger:  cfg.logger,
	}, nil
}

// ListChildren fetches one page of the children of blockID. An empty cursor
// requests the first page; a non-positive pageSize leaves the API default.
func (c *Client) ListChildren(ctx context.Context, blockID, startCursor string, pageSize int) (*blocks.ChildrenPage, error) {
	query := url.Values{}
	if startCursor != "" {
		query.Set("start_cursor", startCursor)
	}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}

	var page blocks.ChildrenPage
	if err := c.get(ctx, "/v1/blocks/"+url.PathEscape(blockID)+"/children", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// RetrievePage fetches page metadata and extracts its title property.
func (c *Client) RetrievePage(ctx context.Context, pageID string) (*interfaces.Page, error) {
	var raw pageResponse
	if err := c.get(ctx, "/v1/pages/"+url.PathEscape(pageID), nil, &raw); err != nil {
		return nil, err
	}
	return &interfaces.Page{
		ID:             raw.ID,
		Title:          raw.title(),
		URL:            raw.URL,
		LastEditedTime: raw.LastEditedTime,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("notion: build request: %w", err)
	}
	req.Header.Set(versionHeader, c.version)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("notion.request.failed", "path", path, "error", err)
		return fmt.Errorf("notion: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("notion.request.completed",
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("notion: decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) statusError(resp *http.Response, path string) error {
	statusErr := &StatusError{
		Method:     resp.Request.Method,
		Path:       path,
		StatusCode: resp.StatusCode,
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload errorBody
	if json.Unmarshal(body, &payload) == nil {
		statusErr.Code = payload.Code
		statusErr.Message = payload.Message
	}
	if !statusErr.RateLimited() {
		c.logger.Warn("notion.request.rejected", "path", path, "status", resp.StatusCode, "code", statusErr.Code)
	}
	return statusErr
}

type pageResponse struct {
	ID             string                  `json:"id"`
	URL            string                  `json:"url"`
	LastEditedTime string                  `json:"last_edited_time"`
	Properties     map[string]pageProperty `json:"properties"`
}

type pageProperty struct {
	Type  string `json:"type"`
	Title []struct {
		PlainText string `json:"plain_text"`
	} `json:"title"`
}

func (p pageResponse) title() string {
	for _, prop := range p.Properties {
		if prop.Type != "title" {
			continue
		}
		var sb strings.Builder
		for _, part := range prop.Title {
			sb.WriteString(part.PlainText)
		}
		return sb.String()
	}
	return ""
}
