package frame

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CoercionError describes a column that stayed text because one of its
// values is not a number.
type CoercionError struct {
	Column string
	Row    int // 0-indexed data row of the first offending value
	Value  string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("unable to parse string %q at position %d", e.Value, e.Row)
}

// Coerce converts every column whose values all parse as numbers. A column
// of whole numbers becomes Integer unless it contains nulls, which only a
// Float column can hold. Columns that fail keep their strings and are
// reported, one error per column, in column order. Coerce never aborts
// part way.
func (f *Frame) Coerce() []*CoercionError {
	var failed []*CoercionError
	for _, col := range f.Columns {
		if err := col.coerce(); err != nil {
			failed = append(failed, err)
		}
	}
	return failed
}

func (c *Column) coerce() *CoercionError {
	if c.Kind != Text {
		return nil
	}

	floats := make([]float64, len(c.raw))
	ints := make([]int64, len(c.raw))
	integral := true

	for i, s := range c.raw {
		if c.null[i] {
			floats[i] = math.NaN()
			integral = false
			continue
		}
		v, ok := parseNumber(s)
		if !ok {
			return &CoercionError{Column: c.Label, Row: i, Value: s}
		}
		floats[i] = v

		if integral {
			n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				integral = false
				continue
			}
			ints[i] = n
		}
	}

	if integral {
		c.Kind = Integer
		c.ints = ints
		return nil
	}
	c.Kind = Float
	c.floats = floats
	return nil
}

// parseNumber accepts finite decimal numbers with an optional sign,
// fraction and exponent. Hex literals, digit separators and the spelled
// forms of infinity and NaN are rejected.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789+-.eE", r) {
			return 0, false
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
