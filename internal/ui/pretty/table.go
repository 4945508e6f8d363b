package pretty

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	tablePadding    = 2
	minFlexWidth    = 12
	heavySeparator  = "="
	defaultTermWide = DefaultWidth
)

// Table is a column-aligned listing. The Flex column shrinks, with its
// cells truncated, when the table would overflow Width.
type Table struct {
	Headers []string
	Rows    [][]string

	// Flex is the index of the column that absorbs overflow.
	Flex int

	// Width is the terminal width. Zero uses DefaultWidth.
	Width int
}

// AddRow appends a row. Missing cells are blank.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// FormatTable renders t. It returns "" for a table without rows.
func (s *Styles) FormatTable(t *Table) string {
	if t == nil || len(t.Rows) == 0 {
		return ""
	}

	widths := t.columnWidths()

	var builder strings.Builder
	builder.WriteString(s.TableHeader.Render(formatCells(t.Headers, widths)))
	builder.WriteString("\n")
	builder.WriteString(s.TableSeparator.Render(strings.Repeat(heavySeparator, totalWidth(widths))))
	builder.WriteString("\n")
	for _, row := range t.Rows {
		builder.WriteString(formatCells(row, widths))
		builder.WriteString("\n")
	}
	return builder.String()
}

func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	limit := t.Width
	if limit <= 0 {
		limit = defaultTermWide
	}
	if t.Flex >= 0 && t.Flex < len(widths) {
		if excess := totalWidth(widths) - limit; excess > 0 {
			widths[t.Flex] = max(minFlexWidth, widths[t.Flex]-excess)
		}
	}
	return widths
}

func totalWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	if len(widths) > 1 {
		total += tablePadding * (len(widths) - 1)
	}
	return total
}

func formatCells(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		cell = Truncate(cell, w)
		if i == len(widths)-1 {
			parts[i] = cell
			continue
		}
		parts[i] = runewidth.FillRight(cell, w)
	}
	return strings.TrimRight(strings.Join(parts, strings.Repeat(" ", tablePadding)), " ")
}
