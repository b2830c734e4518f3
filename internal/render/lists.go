package render

import (
	"strings"

	"github.com/mikecat1024/notion-to-markdown/internal/blocks"
)

// indent is the per-level prefix applied to nested child lines.
const indent = "  "

// run is a maximal sequence of siblings that are either all list items or
// all non-list blocks. A list run renders as one contiguous list.
type run struct {
	list   bool
	blocks []blocks.Block
}

// groupRuns partitions siblings into list and non-list runs, keeping order.
func groupRuns(siblings []blocks.Block) []run {
	var runs []run
	for _, b := range siblings {
		if b == nil {
			continue
		}
		isList := b.Type().IsListItem()
		if n := len(runs); n > 0 && runs[n-1].list == isList {
			runs[n-1].blocks = append(runs[n-1].blocks, b)
			continue
		}
		runs = append(runs, run{list: isList, blocks: []blocks.Block{b}})
	}
	return runs
}

// annotate assigns render metadata to every sibling. Numbered items are
// ordered by their position among consecutive numbered siblings; any other
// sibling, and every run boundary, restarts the count.
func annotate(siblings []blocks.Block, depth int) []blocks.Block {
	out := make([]blocks.Block, 0, len(siblings))
	for _, r := range groupRuns(siblings) {
		order := 0
		for _, b := range r.blocks {
			if b.Type() == blocks.TypeNumberedListItem {
				order++
			} else {
				order = 0
			}
			position := order
			if position == 0 {
				position = 1
			}
			out = append(out, blocks.WithMeta(b, blocks.Meta{Order: position, Depth: depth}))
		}
	}
	return out
}

// sequence renders siblings at depth and returns one entry per sibling.
func (r *Renderer) sequence(siblings []blocks.Block, depth int, st *state) []string {
	annotated := annotate(siblings, depth)
	out := make([]string, 0, len(annotated))
	for _, b := range annotated {
		out = append(out, r.render(b, st))
	}
	return out
}

// children renders the children of c at depth, dropping empty renderings,
// joined by newlines without a trailing newline.
func (r *Renderer) children(c blocks.Container, depth int, st *state) string {
	kids := c.Children()
	if len(kids) == 0 {
		return ""
	}
	parts := r.sequence(kids, depth, st)
	lines := parts[:0]
	for _, part := range parts {
		if part != "" {
			lines = append(lines, part)
		}
	}
	return strings.Join(lines, "\n")
}

// nested renders the children of c one level deeper and appends them,
// indented, under head.
func (r *Renderer) nested(head string, c blocks.Container, st *state) string {
	body := r.children(c, c.Meta().Depth+1, st)
	if body == "" {
		return head
	}
	return head + "\n" + indentLines(body, indent)
}

// flat renders the children of c at c's own depth, under head when head is
// not empty.
func (r *Renderer) flat(head string, c blocks.Container, st *state) string {
	body := r.children(c, c.Meta().Depth, st)
	switch {
	case body == "":
		return head
	case head == "":
		return body
	default:
		return head + "\n" + body
	}
}

// indentLines prefixes every non-empty line of text.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// quoteLines prefixes every line with a blockquote marker.
func quoteLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return strings.Join(lines, "\n")
}
