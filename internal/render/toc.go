package render

import (
	"strings"

	"github.com/mikecat1024/notion-to-markdown/internal/blocks"
	"github.com/mikecat1024/notion-to-markdown/internal/richtext"
)

// state is shared across one document rendering.
type state struct {
	headings []*blocks.Heading
}

func newState(doc blocks.Document) *state {
	st := &state{}
	doc.Walk(func(b blocks.Block) bool {
		if h, ok := b.(*blocks.Heading); ok {
			st.headings = append(st.headings, h)
		}
		return true
	})
	return st
}

// tableOfContents renders one bullet per heading, nested by heading level.
// Without document context there is nothing to list.
func tableOfContents(st *state) string {
	if st == nil || len(st.headings) == 0 {
		return ""
	}
	lines := make([]string, 0, len(st.headings))
	for _, h := range st.headings {
		text := richtext.Render(h.Content.RichText)
		level := min(max(h.Level, 1), 3)
		lines = append(lines, strings.Repeat(indent, level-1)+"- ["+text+"](#"+text+")")
	}
	return strings.Join(lines, "\n")
}
