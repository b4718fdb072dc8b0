// Package xlsx writes typed frames to Excel workbooks.
//
// A workbook holds a single sheet. The first row carries the column labels in
// bold, bordered, centred cells; data follows from the second row with no
// index column. Integer and Float columns are stored as numbers, Text columns
// as strings, and null values leave the cell empty.
//
// # Basic Usage
//
//	f, err := frame.Build(rows)
//	if err != nil {
//	    return err
//	}
//	f.Coerce()
//	if err := xlsx.Write("out/report.xlsx", f); err != nil {
//	    return err
//	}
package xlsx

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tsawler/pdf2xlsx/frame"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the name of the sheet frames are written to.
const DefaultSheet = "Sheet1"

// HeaderStyle is the style applied to the label row.
var HeaderStyle = excelize.Style{
	Font: &excelize.Font{Bold: true},
	Border: []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	},
	Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top"},
}

// Writer serializes frames to .xlsx files.
type Writer struct {
	// Sheet names the worksheet. Empty means DefaultSheet.
	Sheet string

	// Creator is recorded in the workbook's document properties when set.
	Creator string
}

// NewWriter creates a writer with default settings.
func NewWriter() *Writer {
	return &Writer{Sheet: DefaultSheet}
}

// Write saves f to path with a default writer.
func Write(path string, f *frame.Frame) error {
	return NewWriter().Write(path, f)
}

// Write saves f to path, creating any missing parent directories. An
// existing file at path is replaced.
func (w *Writer) Write(path string, f *frame.Frame) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	book := excelize.NewFile()
	defer book.Close()

	sheet := w.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}
	if current := book.GetSheetName(0); current != sheet {
		if err := book.SetSheetName(current, sheet); err != nil {
			return fmt.Errorf("name sheet: %w", err)
		}
	}

	if w.Creator != "" {
		if err := book.SetDocProps(&excelize.DocProperties{Creator: w.Creator}); err != nil {
			return fmt.Errorf("set document properties: %w", err)
		}
	}

	if err := writeHeader(book, sheet, f); err != nil {
		return err
	}
	if err := writeData(book, sheet, f); err != nil {
		return err
	}

	if err := book.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeHeader(book *excelize.File, sheet string, f *frame.Frame) error {
	if f.ColCount() == 0 {
		return nil
	}

	for j, label := range f.Labels() {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return err
		}
		var value any = label
		if f.Ordinal {
			value = j
		}
		if err := book.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("write header %s: %w", cell, err)
		}
	}

	style, err := book.NewStyle(&HeaderStyle)
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(f.ColCount(), 1)
	if err != nil {
		return err
	}
	return book.SetCellStyle(sheet, "A1", last, style)
}

func writeData(book *excelize.File, sheet string, f *frame.Frame) error {
	for i := 0; i < f.RowCount(); i++ {
		for j, value := range f.Row(i) {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := book.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}
	return nil
}

// ReadRows returns the cell texts of the first sheet of the workbook at
// path, row by row. Trailing empty cells are trimmed from each row.
func ReadRows(path string) ([][]string, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer book.Close()

	return book.GetRows(book.GetSheetName(0))
}
