package model

import "math"

// TextFragment represents a positioned run of text on a page.
// BBox.Y is the bottom of the glyph box, not the baseline.
type TextFragment struct {
	Text     string
	BBox     BBox
	Baseline float64
	FontSize float64
	FontName string
}

// Line represents a ruling segment on a page. Rectangles are decomposed
// into their four edges before they reach a Line.
type Line struct {
	Start  Point
	End    Point
	Width  float64
	IsRect bool // true when the segment came from a rectangle edge
}

// Length returns the Euclidean length of the segment
func (l Line) Length() float64 {
	dx := l.End.X - l.Start.X
	dy := l.End.Y - l.Start.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// IsHorizontal reports whether the segment deviates from horizontal by at
// most tolerance points.
func (l Line) IsHorizontal(tolerance float64) bool {
	return math.Abs(l.End.Y-l.Start.Y) <= tolerance && math.Abs(l.End.X-l.Start.X) > tolerance
}

// IsVertical reports whether the segment deviates from vertical by at most
// tolerance points.
func (l Line) IsVertical(tolerance float64) bool {
	return math.Abs(l.End.X-l.Start.X) <= tolerance && math.Abs(l.End.Y-l.Start.Y) > tolerance
}
