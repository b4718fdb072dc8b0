package model

import (
	"encoding/csv"
	"strings"
)

// Table represents a table with cells organized in rows and columns
type Table struct {
	Rows       [][]Cell
	BBox       BBox
	HasGrid    bool    // Whether table has visible gridlines
	Confidence float64 // Detection confidence (0-1)
	Detector   string  // Name of the detector that produced the table
}

// NewTable creates a new table with given dimensions
func NewTable(rows, cols int) *Table {
	table := &Table{
		Rows:       make([][]Cell, rows),
		Confidence: 1.0,
	}
	for i := 0; i < rows; i++ {
		table.Rows[i] = make([]Cell, cols)
	}
	return table
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns in the widest row
func (t *Table) ColCount() int {
	cols := 0
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// CellCount returns the total number of cells across all rows
func (t *Table) CellCount() int {
	n := 0
	for _, row := range t.Rows {
		n += len(row)
	}
	return n
}

// GetCell returns the cell at the given row and column (0-indexed)
func (t *Table) GetCell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return &t.Rows[row][col]
}

// Strings returns the cell texts row by row
func (t *Table) Strings() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = cell.Text
		}
	}
	return out
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	for _, row := range t.Rows {
		record := make([]string, len(row))
		for j, cell := range row {
			record[j] = cell.Text
		}
		// Writes into a strings.Builder cannot fail.
		_ = w.Write(record)
	}
	w.Flush()
	return sb.String()
}

// Cell represents a table cell
type Cell struct {
	Text string
	BBox BBox
}

// Append adds text to the cell, separating successive runs with a space.
func (c *Cell) Append(text string, bbox BBox) {
	if text == "" {
		return
	}
	if c.Text != "" {
		c.Text += " "
	}
	c.Text += text
	c.BBox = c.BBox.Union(bbox)
}

// TableGrid represents the detected grid structure
type TableGrid struct {
	Rows []float64 // Y-coordinates of row boundaries, top to bottom
	Cols []float64 // X-coordinates of column boundaries, left to right
}

// RowCount returns the number of rows
func (g *TableGrid) RowCount() int {
	if len(g.Rows) <= 1 {
		return 0
	}
	return len(g.Rows) - 1
}

// ColCount returns the number of columns
func (g *TableGrid) ColCount() int {
	if len(g.Cols) <= 1 {
		return 0
	}
	return len(g.Cols) - 1
}

// BBox returns the outer bounds of the grid
func (g *TableGrid) BBox() BBox {
	if g.RowCount() == 0 || g.ColCount() == 0 {
		return BBox{}
	}
	return BBox{
		X:      g.Cols[0],
		Y:      g.Rows[len(g.Rows)-1],
		Width:  g.Cols[len(g.Cols)-1] - g.Cols[0],
		Height: g.Rows[0] - g.Rows[len(g.Rows)-1],
	}
}

// Locate returns the row and column of the cell containing p, or -1, -1
// when p lies outside the grid.
func (g *TableGrid) Locate(p Point) (row, col int) {
	row, col = -1, -1
	for i := 0; i < g.RowCount(); i++ {
		if p.Y <= g.Rows[i] && p.Y >= g.Rows[i+1] {
			row = i
			break
		}
	}
	for i := 0; i < g.ColCount(); i++ {
		if p.X >= g.Cols[i] && p.X <= g.Cols[i+1] {
			col = i
			break
		}
	}
	if row < 0 || col < 0 {
		return -1, -1
	}
	return row, col
}
