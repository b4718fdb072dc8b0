package reader

import (
	"testing"

	"github.com/tsawler/pdf2xlsx/graphicsstate"
	"github.com/tsawler/pdf2xlsx/model"
)

func TestRulingLinesFromRects(t *testing.T) {
	rects := []graphicsstate.Rect{
		// bordered cell
		{BBox: model.BBox{X: 10, Y: 80, Width: 50, Height: 20}, Stroked: true},
		// thin filled horizontal rule
		{BBox: model.BBox{X: 10, Y: 50, Width: 190, Height: 0.5}, Filled: true},
		// thin filled vertical rule
		{BBox: model.BBox{X: 300, Y: 10, Width: 1, Height: 190}, Filled: true},
		// dot
		{BBox: model.BBox{X: 5, Y: 5, Width: 1, Height: 1}, Filled: true},
		// page background
		{BBox: model.BBox{Width: 612, Height: 792}, Filled: true},
	}

	lines := rulingLines(nil, rects, 612*792)
	if len(lines) != 6 {
		t.Fatalf("len(lines) = %d, want 6", len(lines))
	}

	var boxEdges, horizontal, vertical int
	for _, l := range lines {
		if l.IsRect {
			boxEdges++
			continue
		}
		if l.IsHorizontal(2) {
			horizontal++
			if l.Start.Y != 50.25 {
				t.Errorf("horizontal rule at y=%v, want 50.25", l.Start.Y)
			}
		}
		if l.IsVertical(2) {
			vertical++
			if l.Start.X != 300.5 {
				t.Errorf("vertical rule at x=%v, want 300.5", l.Start.X)
			}
		}
	}
	if boxEdges != 4 || horizontal != 1 || vertical != 1 {
		t.Errorf("edges=%d horizontal=%d vertical=%d, want 4/1/1", boxEdges, horizontal, vertical)
	}

	if lines[0].Start.Y != 80 || lines[1].Start.Y != 100 {
		t.Errorf("cell edges at y=%v and y=%v, want 80 and 100", lines[0].Start.Y, lines[1].Start.Y)
	}
}

func TestRulingLinesFromSegments(t *testing.T) {
	segments := []graphicsstate.Segment{
		{Start: model.Point{X: 42.52, Y: 799.37}, End: model.Point{X: 224.0, Y: 799.37}, Width: 0.57},
		{Start: model.Point{X: 42.52, Y: 799.37}, End: model.Point{X: 42.52, Y: 730.0}, Width: 0.57},
		// speck from a dotted leader
		{Start: model.Point{X: 100, Y: 100}, End: model.Point{X: 100.5, Y: 100}, Width: 0.57},
	}

	lines := rulingLines(segments, nil, 612*792)
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if !lines[0].IsHorizontal(0.5) || !lines[1].IsVertical(0.5) {
		t.Errorf("unexpected orientation: %+v", lines)
	}
	for _, l := range lines {
		if l.IsRect {
			t.Errorf("stroked segment %+v marked as rectangle edge", l)
		}
		if l.Width != 0.57 {
			t.Errorf("width = %v, want 0.57", l.Width)
		}
	}
}

func TestRulingLinesThinStrokedRectKeepsLineWidth(t *testing.T) {
	rects := []graphicsstate.Rect{
		{BBox: model.BBox{X: 10, Y: 50, Width: 100}, Stroked: true, LineWidth: 0.8},
	}
	lines := rulingLines(nil, rects, 0)
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}
	if lines[0].Width != 0.8 {
		t.Errorf("width = %v, want 0.8", lines[0].Width)
	}
}
