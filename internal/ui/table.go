package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Placeholder is printed for cells that have no value.
const Placeholder = "-"

// Table renders rows of data in aligned columns.
type Table struct {
	w    *tabwriter.Writer
	cols int
}

// NewTable creates a table writer with the given column headers.
func NewTable(out io.Writer, headers ...string) *Table {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return &Table{w: tw, cols: len(headers)}
}

// Row appends a row. Missing trailing cells and empty strings are printed as
// Placeholder so columns stay aligned.
func (t *Table) Row(values ...string) {
	cells := make([]string, max(t.cols, len(values)))
	for i := range cells {
		cells[i] = Placeholder
		if i < len(values) && values[i] != "" {
			cells[i] = values[i]
		}
	}
	_, _ = fmt.Fprintln(t.w, strings.Join(cells, "\t"))
}

// Optional returns *s, or "" when s is nil.
func Optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Flush writes the buffered output.
func (t *Table) Flush() error {
	return t.w.Flush()
}
