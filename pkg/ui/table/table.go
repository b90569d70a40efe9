// Package table renders rows of tools, catalog records and tool calls as
// terminal tables backed by lipgloss, or as markdown tables for glamour.
package table

import (
	"fmt"
	"os"
	"strings"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// TableData is the interface that data sources implement to be rendered
// as a table.
type TableData interface {
	// Header returns the column header labels.
	Header() []string

	// Len returns the number of rows.
	Len() int

	// Row returns the cell values for row i. Return nil to skip a row.
	// Wrap a value in Bold{} to emphasise it.
	Row(i int) []any
}

// Bold wraps a cell value so that it is rendered with emphasis
type Bold struct{ Value any }

///////////////////////////////////////////////////////////////////////////////
// STYLES

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cellStyle   = lipgloss.NewStyle()
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Render renders the table for the terminal attached to stdout, wrapping
// columns when the table is wider than the terminal
func Render(data TableData) string {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width = 0
	}
	return RenderWidth(data, width)
}

// RenderWidth renders the table, constrained to width columns when the
// natural rendering is wider. A width of zero leaves the table unconstrained.
func RenderWidth(data TableData, width int) string {
	t := lgtable.New().
		Headers(data.Header()...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, cells := range rows(data, FormatCell) {
		t.Row(cells...)
	}

	result := t.Render()
	if width > 0 && lipgloss.Width(result) > width {
		t.Width(width)
		result = t.Render()
	}
	return result
}

// RenderMarkdown renders the table as a markdown table
func RenderMarkdown(data TableData) string {
	header := data.Header()
	if len(header) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString("| " + strings.Join(header, " | ") + " |\n|")
	buf.WriteString(strings.Repeat("---|", len(header)))
	for _, cells := range rows(data, formatMarkdownCell) {
		for len(cells) < len(header) {
			cells = append(cells, "-")
		}
		buf.WriteString("\n| " + strings.Join(cells[:len(header)], " | ") + " |")
	}
	return buf.String()
}

// Truncate shortens s to max runes, collapsing newlines and appending "…"
// if truncated
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// FormatCell converts a value to a display string for a terminal cell
func FormatCell(v any) string {
	if b, ok := v.(Bold); ok {
		return boldStyle.Render(FormatCell(b.Value))
	}
	return plain(v)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func rows(data TableData, format func(any) string) [][]string {
	result := make([][]string, 0, data.Len())
	for i := range data.Len() {
		row := data.Row(i)
		if row == nil {
			continue
		}
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = format(v)
		}
		result = append(result, cells)
	}
	return result
}

func formatMarkdownCell(v any) string {
	if b, ok := v.(Bold); ok {
		if inner := formatMarkdownCell(b.Value); inner != "-" {
			return "**" + inner + "**"
		}
		return "-"
	}
	return strings.ReplaceAll(plain(v), "|", "\\|")
}

// plain formats nil and zero values as "-"
func plain(v any) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		if val == "" {
			return "-"
		}
		return val
	case int:
		if val == 0 {
			return "-"
		}
	case uint:
		if val == 0 {
			return "-"
		}
	case bool:
		if !val {
			return "-"
		}
		return "yes"
	}
	if s := fmt.Sprint(v); s != "" {
		return s
	}
	return "-"
}
