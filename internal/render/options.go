package render

import (
	"fmt"
	"strings"

	"github.com/mikecat1024/notion-to-markdown/internal/logging"
	"github.com/mikecat1024/notion-to-markdown/pkg/interfaces"
)

// DefaultOrigin is the host used for links back to Notion.
const DefaultOrigin = "https://www.notion.so"

// LinkTarget selects where child page and child database links point.
type LinkTarget int

const (
	// RemoteOrigin links to the page on the Notion host.
	RemoteOrigin LinkTarget = iota
	// MarkdownFile links to a sibling Markdown file named after the title.
	MarkdownFile
)

func (t LinkTarget) String() string {
	switch t {
	case MarkdownFile:
		return "markdown_file"
	default:
		return "remote_origin"
	}
}

// ParseLinkTarget parses the configuration spelling of a LinkTarget.
func ParseLinkTarget(value string) (LinkTarget, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "remote_origin", "remote", "origin":
		return RemoteOrigin, nil
	case "markdown_file", "markdown", "file":
		return MarkdownFile, nil
	default:
		return RemoteOrigin, fmt.Errorf("render: unknown link target %q", value)
	}
}

// WidthMode selects how table cell display widths are measured.
type WidthMode int

const (
	// WidthASCIIDouble counts one column per ASCII rune and two otherwise.
	WidthASCIIDouble WidthMode = iota
	// WidthEastAsian uses terminal cell widths, treating ambiguous runes as
	// wide.
	WidthEastAsian
)

func (m WidthMode) String() string {
	if m == WidthEastAsian {
		return "east_asian"
	}
	return "ascii_double"
}

// ParseWidthMode parses the configuration spelling of a WidthMode.
func ParseWidthMode(value string) (WidthMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "ascii_double", "ascii":
		return WidthASCIIDouble, nil
	case "east_asian", "eastasian", "runewidth":
		return WidthEastAsian, nil
	default:
		return WidthASCIIDouble, fmt.Errorf("render: unknown table width mode %q", value)
	}
}

// Options configures a Renderer.
type Options struct {
	ChildPageLinkTarget     LinkTarget
	ChildDatabaseLinkTarget LinkTarget
	Origin                  string
	TableWidth              WidthMode
	Logger                  interfaces.Logger
	// ChildPageFile names the file a MarkdownFile child page link points at.
	// When it is nil or reports false the escaped title is used.
	ChildPageFile func(pageID string) (string, bool)
}

// DefaultOptions links child pages and databases back to Notion and measures
// tables with the ASCII/double rule.
func DefaultOptions() Options {
	return Options{
		ChildPageLinkTarget:     RemoteOrigin,
		ChildDatabaseLinkTarget: RemoteOrigin,
		Origin:                  DefaultOrigin,
		TableWidth:              WidthASCIIDouble,
	}
}

// Option mutates Options.
type Option func(*Options)

// WithChildPageLinkTarget sets where child page links point.
func WithChildPageLinkTarget(target LinkTarget) Option {
	return func(o *Options) { o.ChildPageLinkTarget = target }
}

// WithChildDatabaseLinkTarget sets where child database links point.
func WithChildDatabaseLinkTarget(target LinkTarget) Option {
	return func(o *Options) { o.ChildDatabaseLinkTarget = target }
}

// WithChildPageFile resolves MarkdownFile child page links through names.
func WithChildPageFile(names func(pageID string) (string, bool)) Option {
	return func(o *Options) { o.ChildPageFile = names }
}

// WithOrigin overrides the Notion host used for remote links.
func WithOrigin(origin string) Option {
	return func(o *Options) { o.Origin = origin }
}

// WithTableWidth selects the table width rule.
func WithTableWidth(mode WidthMode) Option {
	return func(o *Options) { o.TableWidth = mode }
}

// WithLogger sets the logger used to report placeholder output.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithOptions replaces every option at once.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

func resolveOptions(opts ...Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg.Origin = strings.TrimRight(strings.TrimSpace(cfg.Origin), "/")
	if cfg.Origin == "" {
		cfg.Origin = DefaultOrigin
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NoOp()
	}
	return cfg
}
