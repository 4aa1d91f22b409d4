package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders tabular data with pre-styled multi-line cells. Cells may
// contain ANSI styling and newlines; rows are joined top-aligned so the
// stacked signal columns of the residue table line up.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// NewTable creates a new Table with the given title and headers.
func NewTable(title string, headers []string) *Table {
	return &Table{
		Title:   title,
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table using the provided styles.
func (t *Table) View(styles Styles) string {
	if len(t.Headers) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	// Column widths from headers and cell content, including multi-line
	// cells.
	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	sepStyle := styles.Muted

	// Header row
	headerCells := make([]string, 0, len(t.Headers))
	for i, h := range t.Headers {
		headerCells = append(headerCells, headerStyle.Width(colWidths[i]).Render(h))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headerCells...))
	sb.WriteString("\n")

	totalWidth := 0
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", totalWidth)) + "\n")

	// Data rows, top-aligned so multi-line cells stay in their row.
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row))
		for i, cell := range row {
			if i < len(colWidths) {
				cells = append(cells, cellStyle.Width(colWidths[i]).Render(cell))
			}
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		sb.WriteString("\n")
	}

	return sb.String()
}
