package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table Styles
var (
	TableHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent).
		Align(lipgloss.Center)

	TableNameStyle = lipgloss.NewStyle().
		Foreground(ColorAccent).
		Padding(0, 1)

	TableValueStyle = lipgloss.NewStyle().
		Padding(0, 1)

	TableEmptyStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)

	TableBorderStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
)

// emptyMark stands in for an empty value so blank rows stay visible.
const emptyMark = "-"

// NewResultTable creates a new table with default result styling
func NewResultTable(width int) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(TableBorderStyle).
		Width(width)
}

// RenderRow renders one result row vertically: a line per column, with
// the property name beside its value. Names beyond len(values) are
// dropped; values without a name are labelled by position.
func RenderRow(title string, names, values []string, width int) string {
	rows := make([][]string, 0, len(values))
	for i, v := range values {
		name := "#" + strconv.Itoa(i+1)
		if i < len(names) {
			name = names[i]
		}
		if strings.TrimSpace(v) == "" {
			v = emptyMark
		}
		rows = append(rows, []string{name, v})
	}

	t := NewResultTable(width).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle
			case col == 0:
				return TableNameStyle
			case row >= 0 && row < len(rows) && rows[row][1] == emptyMark:
				return TableEmptyStyle
			}
			return TableValueStyle
		})
	if title != "" {
		t = t.Headers("property", title)
	}
	return t.String()
}
