package reader

import (
	"github.com/tsawler/pdf2xlsx/graphicsstate"
	"github.com/tsawler/pdf2xlsx/model"
)

// ruleThickness is the largest extent, in points, for a rectangle to be read
// as a single ruling line rather than a box.
const ruleThickness = 2.0

// backgroundCoverage is the fraction of the page area above which a
// rectangle is treated as a page background or frame and ignored.
const backgroundCoverage = 0.9

// minSegmentLength drops stroked specks such as dotted leaders.
const minSegmentLength = 1.0

// rulingLines turns the geometry painted on a page into ruling segments.
// Stroked straight segments are kept as drawn. Thin rectangles become one
// line along their long axis; boxes contribute their four edges.
func rulingLines(segments []graphicsstate.Segment, rects []graphicsstate.Rect, pageArea float64) []model.Line {
	lines := make([]model.Line, 0, len(segments)+len(rects)*4)

	for _, s := range segments {
		line := model.Line{Start: s.Start, End: s.End, Width: s.Width}
		if line.Length() < minSegmentLength {
			continue
		}
		lines = append(lines, line)
	}

	for _, r := range rects {
		b := r.BBox

		switch {
		case b.Width <= ruleThickness && b.Height <= ruleThickness:
			continue
		case b.Width <= ruleThickness:
			x := b.Center().X
			lines = append(lines, model.Line{
				Start: model.Point{X: x, Y: b.Bottom()},
				End:   model.Point{X: x, Y: b.Top()},
				Width: max(b.Width, r.LineWidth),
			})
		case b.Height <= ruleThickness:
			y := b.Center().Y
			lines = append(lines, model.Line{
				Start: model.Point{X: b.Left(), Y: y},
				End:   model.Point{X: b.Right(), Y: y},
				Width: max(b.Height, r.LineWidth),
			})
		default:
			if pageArea > 0 && b.Area() >= pageArea*backgroundCoverage {
				continue
			}
			lines = append(lines, boxEdges(b)...)
		}
	}

	return lines
}

// boxEdges returns the bottom, top, left and right edges of b.
func boxEdges(b model.BBox) []model.Line {
	bl := model.Point{X: b.Left(), Y: b.Bottom()}
	br := model.Point{X: b.Right(), Y: b.Bottom()}
	tl := model.Point{X: b.Left(), Y: b.Top()}
	tr := model.Point{X: b.Right(), Y: b.Top()}

	return []model.Line{
		{Start: bl, End: br, IsRect: true},
		{Start: tl, End: tr, IsRect: true},
		{Start: bl, End: tl, IsRect: true},
		{Start: br, End: tr, IsRect: true},
	}
}
