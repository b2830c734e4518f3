package render

import (
	"strings"
	"unicode"

	"github.com/mikecat1024/notion-to-markdown/internal/blocks"
	"github.com/mikecat1024/notion-to-markdown/internal/richtext"
)

const zeroWidthSpace = '\u200b'

// EscapeTitle turns a page title into a file name stem by replacing
// whitespace and zero-width spaces with underscores.
func EscapeTitle(title string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == zeroWidthSpace {
			return '_'
		}
		return r
	}, title)
}

// PageURL returns the Notion URL of a page or database id under origin.
func PageURL(origin, id string) string {
	return strings.TrimRight(origin, "/") + "/" + strings.ReplaceAll(id, "-", "")
}

var labelEscaper = strings.NewReplacer("[", `\[`, "]", `\]`)

func (r *Renderer) childPage(b *blocks.ChildPage) string {
	title := b.Content.Title
	label := labelEscaper.Replace(title)
	if r.opts.ChildPageLinkTarget == MarkdownFile {
		if r.opts.ChildPageFile != nil {
			if name, ok := r.opts.ChildPageFile(b.ID()); ok {
				return "[" + label + "](" + name + ")"
			}
		}
		return "[" + label + "](" + EscapeTitle(title) + ".md)"
	}
	return "[" + label + "](" + PageURL(r.opts.Origin, b.ID()) + ")"
}

func (r *Renderer) childDatabase(b *blocks.ChildDatabase) string {
	title := b.Content.Title
	label := "Database: " + labelEscaper.Replace(title)
	if r.opts.ChildDatabaseLinkTarget == MarkdownFile {
		escaped := EscapeTitle(title)
		return "[" + label + "](" + escaped + "/" + escaped + ".md)"
	}
	return "[" + label + "](" + PageURL(r.opts.Origin, b.ID()) + ")"
}

func (r *Renderer) linkToPage(b *blocks.LinkToPage) string {
	return "<" + r.opts.Origin + "/" + b.Content.Target() + ">"
}

func image(b *blocks.Image) string {
	return "![" + richtext.PlainText(b.Content.Caption) + "](" + b.Content.URL() + ")"
}

func labelled(kind, url string) string {
	return "[" + kind + ": " + url + "](" + url + ")"
}

func file(b *blocks.File) string {
	url := b.Content.URL()
	name := b.Content.Name
	if name == "" {
		name = url
	}
	return "[" + labelEscaper.Replace(name) + "](" + url + ")"
}
