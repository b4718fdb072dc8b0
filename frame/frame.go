// Package frame turns the raw string rows accumulated from a PDF into a
// column-typed table ready for a spreadsheet.
//
// The first row is consumed as the header. When it holds more than one cell
// it provides the column labels; otherwise the columns are labelled with
// their ordinal position (0, 1, 2, ...). Every column is then offered to
// [Frame.Coerce], which turns it numeric when all of its values parse.
package frame

import (
	"errors"
	"fmt"
	"strconv"
)

// Kind is the value type of a column.
type Kind int

const (
	// Text columns keep the original strings.
	Text Kind = iota
	// Integer columns hold int64 values.
	Integer
	// Float columns hold float64 values. Blank cells are NaN.
	Float
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Integer:
		return "integer"
	case Float:
		return "float"
	default:
		return "unknown"
	}
}

var (
	// ErrEmpty is returned by Build when there are no rows at all.
	ErrEmpty = errors.New("frame: no rows")
	// ErrShape is returned by Build when the data rows are wider or
	// narrower than the header.
	ErrShape = errors.New("frame: shape mismatch")
)

// Column is a labelled, typed column of values.
type Column struct {
	Label string
	Kind  Kind

	raw    []string
	null   []bool
	ints   []int64
	floats []float64
}

// Len returns the number of values in the column.
func (c *Column) Len() int {
	return len(c.raw)
}

// Raw returns the original string at row i. Missing cells are "".
func (c *Column) Raw(i int) string {
	return c.raw[i]
}

// IsNull reports whether row i is blank or was missing from its source row.
func (c *Column) IsNull(i int) bool {
	return c.null[i]
}

// Value returns the typed value at row i: nil for a null, int64 for Integer
// columns, float64 for Float columns and string for Text columns.
func (c *Column) Value(i int) any {
	if c.null[i] {
		return nil
	}
	switch c.Kind {
	case Integer:
		return c.ints[i]
	case Float:
		return c.floats[i]
	default:
		return c.raw[i]
	}
}

// Frame is a table of equal-length columns.
type Frame struct {
	Columns []*Column

	// Ordinal is set when the labels were generated rather than read from
	// the header row.
	Ordinal bool

	rows int
}

// Build makes a text frame from rows, consuming rows[0] as the header.
//
// A header with more than one cell must be exactly as wide as the widest
// data row, otherwise ErrShape is returned. Data rows narrower than the
// frame are padded with nulls.
func Build(rows [][]string) (*Frame, error) {
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	header, data := rows[0], rows[1:]

	width := 0
	for _, row := range data {
		width = max(width, len(row))
	}

	f := &Frame{rows: len(data)}
	if len(header) > 1 {
		if len(data) > 0 && width != len(header) {
			return nil, fmt.Errorf("%w: %d columns passed, passed data had %d columns",
				ErrShape, len(header), width)
		}
		width = len(header)
	} else {
		f.Ordinal = true
	}

	f.Columns = make([]*Column, width)
	for j := range f.Columns {
		col := &Column{
			raw:  make([]string, len(data)),
			null: make([]bool, len(data)),
		}
		if f.Ordinal {
			col.Label = strconv.Itoa(j)
		} else {
			col.Label = header[j]
		}
		for i, row := range data {
			if j < len(row) {
				col.raw[i] = row[j]
			}
			col.null[i] = isBlank(col.raw[i])
		}
		f.Columns[j] = col
	}

	return f, nil
}

// RowCount returns the number of data rows, excluding the header.
func (f *Frame) RowCount() int {
	return f.rows
}

// ColCount returns the number of columns.
func (f *Frame) ColCount() int {
	return len(f.Columns)
}

// Labels returns the column labels in order.
func (f *Frame) Labels() []string {
	labels := make([]string, len(f.Columns))
	for j, c := range f.Columns {
		labels[j] = c.Label
	}
	return labels
}

// Row returns the typed values of data row i.
func (f *Frame) Row(i int) []any {
	values := make([]any, len(f.Columns))
	for j, c := range f.Columns {
		values[j] = c.Value(i)
	}
	return values
}
