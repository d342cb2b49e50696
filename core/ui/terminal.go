// Package ui - Terminal user interface
// Tables, colors and the ticket summary box.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

// Writer is the UI output destination
type Writer struct {
	out     io.Writer
	noColor bool
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:     out,
		noColor: noColor,
	}
}

// color applies color if enabled
func (w *Writer) color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Print writes formatted text
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println("%s", w.color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println("%s", w.color(Bold, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println("%s%s", w.color(Green, "✓ "), fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Println("%s%s", w.color(Yellow, "⚠ "), fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.Println("%s%s", w.color(Red, "✗ "), fmt.Sprintf(format, args...))
}

// Detail prints a dimmed, indented line
func (w *Writer) Detail(format string, args ...interface{}) {
	w.Println("%s", w.color(Dim, "  "+fmt.Sprintf(format, args...)))
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		rows:    [][]string{},
		widths:  widths,
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if len(row[i]) > t.widths[i] {
			t.widths[i] = len(row[i])
		}
	}
	t.rows = append(t.rows, row)
}

// Render prints the table
func (t *Table) Render() {
	var format strings.Builder
	for i, w := range t.widths {
		if i > 0 {
			format.WriteString(" │ ")
		}
		fmt.Fprintf(&format, "%%-%ds", w)
	}
	format.WriteString("\n")

	t.w.Print("%s", t.w.color(Bold, fmt.Sprintf(format.String(), cells(t.headers)...)))

	sep := make([]string, len(t.widths))
	for i, w := range t.widths {
		sep[i] = strings.Repeat("─", w)
	}
	t.w.Println("%s", strings.Join(sep, "─┼─"))

	for _, row := range t.rows {
		t.w.Print(format.String(), cells(row)...)
	}
}

func cells(row []string) []interface{} {
	args := make([]interface{}, len(row))
	for i, cell := range row {
		args[i] = cell
	}
	return args
}

// TicketSummary renders the fee box of a priced ticket
type TicketSummary struct {
	w              *Writer
	Title          string
	DisposalFee    string
	TippingFee     string
	Margin         string
	NegativeMargin bool
	Overridden     bool
	MinFee         bool
}

// NewTicketSummary creates a ticket summary
func (w *Writer) NewTicketSummary(title string) *TicketSummary {
	return &TicketSummary{w: w, Title: title}
}

// Render prints the ticket summary
func (s *TicketSummary) Render() {
	s.w.Header(s.Title)

	s.w.Println("%s", s.w.color(Bold, "╭─────────────────────────────────────╮"))
	s.w.Println("%s%s%s", s.w.color(Bold, "│"), s.w.color(Green, fmt.Sprintf("  Disposal Fee: %-21s", s.DisposalFee)), s.w.color(Bold, "│"))
	s.w.Println("%s%s%s", s.w.color(Bold, "│"), fmt.Sprintf("  Tipping Fee:  %-21s", s.TippingFee), s.w.color(Bold, "│"))
	marginColor := Dim
	if s.NegativeMargin {
		marginColor = Red
	}
	s.w.Println("%s%s%s", s.w.color(Bold, "│"), s.w.color(marginColor, fmt.Sprintf("  Margin:       %-21s", s.Margin)), s.w.color(Bold, "│"))
	s.w.Println("%s", s.w.color(Bold, "╰─────────────────────────────────────╯"))

	if s.Overridden {
		s.w.Warning("work order pricing override applied")
	}
	if s.MinFee {
		s.w.Warning("minimum fee applied")
	}
}
