package render

import (
	"strings"

	"github.com/mikecat1024/notion-to-markdown/internal/blocks"
	"github.com/mikecat1024/notion-to-markdown/internal/richtext"
)

const minSeparatorWidth = 3

// table renders a pipe table. Every row is laid out against the first row's
// column count: shorter rows are padded with empty cells, longer rows are
// truncated. A table without rows renders nothing.
func (r *Renderer) table(t *blocks.Table) string {
	grid := make([][]string, 0, len(t.Children()))
	for _, row := range t.Rows() {
		cells := make([]string, 0, len(row.Content.Cells))
		for _, cell := range row.Content.Cells {
			cells = append(cells, escapeCell(richtext.Render(cell)))
		}
		grid = append(grid, cells)
	}
	if len(grid) == 0 {
		return ""
	}

	columns := len(grid[0])
	for i, row := range grid {
		switch {
		case len(row) < columns:
			grid[i] = append(row, make([]string, columns-len(row))...)
		case len(row) > columns:
			grid[i] = row[:columns]
		}
	}

	widths := make([]int, columns)
	for _, row := range grid {
		for i, cell := range row {
			widths[i] = max(widths[i], r.width(cell))
		}
	}

	lines := make([]string, 0, len(grid)+1)
	lines = append(lines, r.tableRow(grid[0], widths))

	separators := make([]string, columns)
	for i, w := range widths {
		separators[i] = strings.Repeat("-", max(w, minSeparatorWidth))
	}
	lines = append(lines, "| "+strings.Join(separators, " | ")+" |")

	for _, row := range grid[1:] {
		lines = append(lines, r.tableRow(row, widths))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) tableRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		target := max(widths[i], minSeparatorWidth)
		padded[i] = cell + strings.Repeat(" ", max(target-r.width(cell), 0))
	}
	return "| " + strings.Join(padded, " | ") + " |"
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", "<br>")

func escapeCell(cell string) string {
	return cellEscaper.Replace(cell)
}
