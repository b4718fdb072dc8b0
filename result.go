package pdf2xlsx

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the outcome of a conversion and of each warning
// raised along the way.
type ErrorKind int

const (
	// KindNone marks a successful conversion.
	KindNone ErrorKind = iota
	// KindMissingInput means the input path does not exist.
	KindMissingInput
	// KindPageExtraction means one page could not be read or analysed. It
	// only ever appears on warnings.
	KindPageExtraction
	// KindNoUsableTable means no page yielded a table with data rows.
	KindNoUsableTable
	// KindColumnCoercion means a column stayed text. It only ever appears
	// on warnings.
	KindColumnCoercion
	// KindUnexpected covers every other failure: unreadable files, shape
	// mismatches, write errors and cancellation.
	KindUnexpected
)

// String returns the name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindMissingInput:
		return "MissingInputFile"
	case KindPageExtraction:
		return "PageExtractionFailure"
	case KindNoUsableTable:
		return "NoUsableTable"
	case KindColumnCoercion:
		return "ColumnCoercionFailure"
	case KindUnexpected:
		return "UnexpectedFailure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

var (
	// ErrMissingInput is wrapped by results for inputs that do not exist.
	ErrMissingInput = errors.New("PDF file not found")
	// ErrNoUsableTable is wrapped by results for PDFs without table data.
	ErrNoUsableTable = errors.New("no valid table data found in PDF")
)

// Warning is a non-fatal problem met during a conversion.
type Warning struct {
	Kind    ErrorKind
	Page    int    // 1-indexed page, 0 when not page specific
	Column  string // column label, empty when not column specific
	Message string
}

// String renders the warning with its location.
func (w Warning) String() string {
	switch {
	case w.Page > 0:
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	case w.Column != "":
		return fmt.Sprintf("column '%s': %s", w.Column, w.Message)
	default:
		return w.Message
	}
}

// Result is the outcome of converting one file. Failures are reported here
// rather than as Go errors, so a batch can carry on past them.
type Result struct {
	Input  string
	Output string

	Kind     ErrorKind
	Err      error
	Warnings []Warning

	Pages   int // pages in the input
	Rows    int // data rows written, header excluded
	Columns int
}

// OK reports whether the output file was written.
func (r *Result) OK() bool {
	return r.Kind == KindNone
}

func (r *Result) fail(kind ErrorKind, err error) *Result {
	r.Kind = kind
	r.Err = err
	return r
}

func (r *Result) warn(w Warning) {
	r.Warnings = append(r.Warnings, w)
}
