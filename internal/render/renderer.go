// Package render turns materialized Notion block trees into Markdown.
//
// Each block renders its own lines relative to itself; nesting is expressed
// by indenting child output two spaces per level. Rendering is a pure
// function of the tree and the renderer options.
package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mikecat1024/notion-to-markdown/internal/blocks"
	"github.com/mikecat1024/notion-to-markdown/internal/richtext"
	"github.com/mikecat1024/notion-to-markdown/pkg/interfaces"
)

// Placeholders emitted for blocks without Markdown content.
const (
	PlaceholderUnsupported = "<!-- unsupported block -->"
	PlaceholderUnexpected  = "<!-- unexpected block -->"
	PlaceholderBreadcrumb  = "<!-- breadcrumb block -->"
	PlaceholderTemplate    = "<!-- template block -->"
)

// Divider is the thematic break emitted for divider blocks. Asterisks keep a
// preceding paragraph from turning into a setext heading.
const Divider = "***"

// ErrStandaloneTableRow is the panic value (wrapped) raised when a table row
// is rendered outside of its table.
var ErrStandaloneTableRow = errors.New("render: table_row rendered outside of a table")

// Renderer converts blocks to Markdown. It is safe for concurrent use.
type Renderer struct {
	opts   Options
	width  widthFunc
	logger interfaces.Logger
}

// New builds a renderer from the supplied options.
func New(opts ...Option) *Renderer {
	cfg := resolveOptions(opts...)
	return &Renderer{
		opts:   cfg,
		width:  cfg.TableWidth.measure(),
		logger: cfg.Logger,
	}
}

// Options returns the resolved renderer options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Block renders a single block with its children as a top-level block.
// A table of contents rendered this way is empty since there is no document
// to collect headings from. Rendering a *blocks.TableRow panics.
func (r *Renderer) Block(b blocks.Block) string {
	if b == nil {
		return ""
	}
	return r.render(blocks.WithMeta(b, blocks.DefaultMeta()), nil)
}

// Document renders top-level blocks in order, each followed by a newline.
func (r *Renderer) Document(doc blocks.Document) string {
	st := newState(doc)
	var sb strings.Builder
	for _, part := range r.sequence(doc.Blocks, 0, st) {
		sb.WriteString(part)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Blocks is shorthand for rendering a slice of top-level blocks as a document.
func (r *Renderer) Blocks(list []blocks.Block) string {
	return r.Document(blocks.NewDocument(list))
}

func (r *Renderer) render(b blocks.Block, st *state) string {
	switch v := b.(type) {
	case *blocks.Paragraph:
		return r.nested(richtext.Render(v.Content.RichText), v, st)
	case *blocks.Heading:
		level := min(max(v.Level, 1), 3)
		head := strings.Repeat("#", level) + " " + richtext.Render(v.Content.RichText)
		return r.nested(head, v, st)
	case *blocks.BulletedListItem:
		return r.nested("- "+richtext.Render(v.Content.RichText), v, st)
	case *blocks.NumberedListItem:
		return r.nested(strconv.Itoa(v.Meta().Order)+". "+richtext.Render(v.Content.RichText), v, st)
	case *blocks.ToDo:
		box := "- [ ] "
		if v.Content.Checked {
			box = "- [x] "
		}
		return r.nested(box+richtext.Render(v.Content.RichText), v, st)
	case *blocks.Toggle:
		return r.flat(richtext.Render(v.Content.RichText), v, st)
	case *blocks.Quote:
		return r.quote(richtext.Render(v.Content.RichText), v, st)
	case *blocks.Callout:
		text := richtext.Render(v.Content.RichText)
		if emoji := v.Content.Emoji(); emoji != "" {
			text = emoji + " " + text
		}
		return r.quote(text, v, st)
	case *blocks.Code:
		return codeBlock(v.Content.Language, richtext.PlainText(v.Content.RichText))
	case *blocks.Equation:
		return "$$\n" + v.Content.Expression + "\n$$"
	case *blocks.Divider:
		return Divider
	case *blocks.Table:
		return r.table(v)
	case *blocks.TableRow:
		panic(fmt.Errorf("%w: block %s", ErrStandaloneTableRow, v.ID()))
	case *blocks.Image:
		return image(v)
	case *blocks.Video:
		return labelled("Video", v.Content.URL())
	case *blocks.File:
		return file(v)
	case *blocks.PDF:
		return labelled("PDF", v.Content.URL())
	case *blocks.Embed:
		return labelled("Embed", v.Content.URL)
	case *blocks.Bookmark:
		return labelled("Bookmark", v.Content.URL)
	case *blocks.LinkPreview:
		return "<" + v.Content.URL + ">"
	case *blocks.LinkToPage:
		return r.linkToPage(v)
	case *blocks.ChildPage:
		return r.childPage(v)
	case *blocks.ChildDatabase:
		return r.childDatabase(v)
	case *blocks.ColumnList:
		return r.flat("", v, st)
	case *blocks.Column:
		return r.flat("", v, st)
	case *blocks.SyncedBlock:
		return r.flat("", v, st)
	case *blocks.TableOfContents:
		return tableOfContents(st)
	case *blocks.Breadcrumb:
		return PlaceholderBreadcrumb
	case *blocks.Template:
		return PlaceholderTemplate
	case *blocks.Unsupported:
		return PlaceholderUnsupported
	case *blocks.Unexpected:
		r.logger.Debug("render.block.unexpected", "block_id", v.ID(), "type", v.Tag)
		return PlaceholderUnexpected
	default:
		r.logger.Debug("render.block.unexpected", "block_id", b.ID(), "type", string(b.Type()))
		return PlaceholderUnexpected
	}
}

// quote renders head and the container's children inside one blockquote.
func (r *Renderer) quote(head string, c blocks.Container, st *state) string {
	body := r.children(c, c.Meta().Depth+1, st)
	if body == "" {
		return quoteLines(head)
	}
	return quoteLines(head + "\n" + body)
}

// codeBlock fences code with a backtick run longer than any run inside it.
func codeBlock(language, code string) string {
	fence := strings.Repeat("`", max(longestRun(code, '`')+1, 3))
	return fence + language + "\n" + code + "\n" + fence
}

func longestRun(s string, c rune) int {
	longest, current := 0, 0
	for _, r := range s {
		if r == c {
			current++
			longest = max(longest, current)
		} else {
			current = 0
		}
	}
	return longest
}
