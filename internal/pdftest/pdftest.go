// Package pdftest generates small PDF fixtures for tests: bordered tables,
// tables ruled with stroked lines, unruled column layouts and prose pages.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
)

// Layout constants, in millimetres.
const (
	cellWidth  = 32.0
	cellHeight = 8.0
	margin     = 15.0
	fontSize   = 10.0
)

// fixed creation date keeps generated files byte-stable
var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newDocument() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(epoch)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetFont("Helvetica", "", fontSize)
	return pdf
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// BorderedTables renders one bordered table per page. Each element of pages
// is the full row list for that page, header included.
func BorderedTables(pages ...[][]string) ([]byte, error) {
	pdf := newDocument()
	for _, rows := range pages {
		pdf.AddPage()
		pdf.SetXY(margin, margin)
		for _, row := range rows {
			for i, text := range row {
				ln := 0
				if i == len(row)-1 {
					ln = 1
				}
				pdf.CellFormat(cellWidth, cellHeight, text, "1", ln, "L", false, 0, "")
			}
		}
	}
	return output(pdf)
}

// StrokedTable renders rows as a grid ruled with individual stroked lines
// rather than cell rectangles.
func StrokedTable(rows [][]string) ([]byte, error) {
	pdf := newDocument()
	pdf.AddPage()

	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	right := margin + cellWidth*float64(cols)
	bottom := margin + cellHeight*float64(len(rows))

	for r := 0; r <= len(rows); r++ {
		y := margin + cellHeight*float64(r)
		pdf.Line(margin, y, right, y)
	}
	for c := 0; c <= cols; c++ {
		x := margin + cellWidth*float64(c)
		pdf.Line(x, margin, x, bottom)
	}

	for r, row := range rows {
		for c, text := range row {
			pdf.SetXY(margin+cellWidth*float64(c), margin+cellHeight*float64(r))
			pdf.CellFormat(cellWidth, cellHeight, text, "", 0, "L", false, 0, "")
		}
	}
	return output(pdf)
}

// UnruledTable renders rows as left-aligned columns with no ruling lines.
func UnruledTable(rows [][]string) ([]byte, error) {
	pdf := newDocument()
	pdf.AddPage()
	for r, row := range rows {
		y := margin + cellHeight*float64(r+1)
		for c, text := range row {
			if text == "" {
				continue
			}
			pdf.Text(margin+cellWidth*float64(c), y, text)
		}
	}
	return output(pdf)
}

// Prose renders each line as a single left-aligned text run, one page per
// element of pages.
func Prose(pages ...[]string) ([]byte, error) {
	pdf := newDocument()
	for _, lines := range pages {
		pdf.AddPage()
		for i, line := range lines {
			pdf.Text(margin, margin+cellHeight*float64(i+1), line)
		}
	}
	return output(pdf)
}

// Blank renders n empty pages.
func Blank(n int) ([]byte, error) {
	pdf := newDocument()
	for i := 0; i < n; i++ {
		pdf.AddPage()
	}
	return output(pdf)
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Repeat builds a page list where every page carries header followed by
// rows.
func Repeat(header []string, rows [][]string, pages int) [][][]string {
	out := make([][][]string, pages)
	for i := range out {
		page := make([][]string, 0, len(rows)+1)
		page = append(page, header)
		page = append(page, rows...)
		out[i] = page
	}
	return out
}
