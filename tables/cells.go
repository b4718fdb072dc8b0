package tables

import (
	"math"
	"sort"

	"github.com/tsawler/pdf2xlsx/model"
)

// readingOrder sorts fragments top to bottom, then left to right. Baselines
// within half a font size of each other count as the same line.
func readingOrder(fragments []model.TextFragment) []model.TextFragment {
	sorted := make([]model.TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !sameLine(a, b) {
			return a.Baseline > b.Baseline
		}
		return a.BBox.X < b.BBox.X
	})
	return sorted
}

func sameLine(a, b model.TextFragment) bool {
	return math.Abs(a.Baseline-b.Baseline) <= 0.5*math.Max(a.FontSize, b.FontSize)
}

// fillCells assigns each fragment to the grid cell containing its centre.
// Fragments sharing a cell are joined with a space on the same line and a
// newline across lines. It returns the number of fragments placed.
func fillCells(table *model.Table, grid *model.TableGrid, fragments []model.TextFragment) int {
	type slot struct{ row, col int }
	last := make(map[slot]model.TextFragment)
	placed := 0

	for _, frag := range readingOrder(fragments) {
		row, col := grid.Locate(frag.BBox.Center())
		cell := table.GetCell(row, col)
		if cell == nil {
			continue
		}

		key := slot{row, col}
		if prev, ok := last[key]; ok && !sameLine(prev, frag) {
			cell.Text += "\n" + frag.Text
			cell.BBox = cell.BBox.Union(frag.BBox)
		} else {
			cell.Append(frag.Text, frag.BBox)
		}
		last[key] = frag
		placed++
	}

	return placed
}

// mean computes the arithmetic mean of a slice of float64 values.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance computes the population variance of a slice of float64 values.
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		diff := v - m
		sum += diff * diff
	}
	return sum / float64(len(values))
}
