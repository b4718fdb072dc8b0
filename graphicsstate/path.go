package graphicsstate

import (
	"math"

	"github.com/tsawler/pdf2xlsx/model"
)

// axisTolerance is how far, in points, an edge may lean and still count as
// horizontal or vertical when recognising rectangles.
const axisTolerance = 0.5

type segmentKind int

const (
	moveTo segmentKind = iota
	lineTo
	curveTo
	closePath
)

// pathSegment is one path construction step. Points are held in device
// space; a curve keeps only its end point since curves never become
// rulings.
type pathSegment struct {
	kind segmentKind
	to   model.Point
}

// Path is the path under construction between painting operators.
type Path struct {
	segments   []pathSegment
	current    model.Point
	start      model.Point
	hasCurrent bool
}

// MoveTo starts a new subpath at p (m operator)
func (p *Path) MoveTo(pt model.Point) {
	p.segments = append(p.segments, pathSegment{kind: moveTo, to: pt})
	p.current = pt
	p.start = pt
	p.hasCurrent = true
}

// LineTo appends a straight segment to pt (l operator). Without a current
// point it starts a subpath instead.
func (p *Path) LineTo(pt model.Point) {
	if !p.hasCurrent {
		p.MoveTo(pt)
		return
	}
	p.segments = append(p.segments, pathSegment{kind: lineTo, to: pt})
	p.current = pt
}

// CurveTo appends a Bézier curve ending at pt (c, v and y operators)
func (p *Path) CurveTo(pt model.Point) {
	if !p.hasCurrent {
		p.MoveTo(pt)
		return
	}
	p.segments = append(p.segments, pathSegment{kind: curveTo, to: pt})
	p.current = pt
}

// ClosePath closes the current subpath (h operator)
func (p *Path) ClosePath() {
	if !p.hasCurrent {
		return
	}
	p.segments = append(p.segments, pathSegment{kind: closePath, to: p.start})
	p.current = p.start
}

// Rectangle appends a closed subpath through the four given device space
// corners (re operator)
func (p *Path) Rectangle(corners [4]model.Point) {
	p.MoveTo(corners[0])
	p.LineTo(corners[1])
	p.LineTo(corners[2])
	p.LineTo(corners[3])
	p.ClosePath()
}

// Reset discards the path.
func (p *Path) Reset() {
	p.segments = p.segments[:0]
	p.hasCurrent = false
}

// IsEmpty reports whether the path has no segments.
func (p *Path) IsEmpty() bool {
	return len(p.segments) == 0
}

// subpaths splits the path at every moveto.
func (p *Path) subpaths() [][]pathSegment {
	var out [][]pathSegment
	for i, seg := range p.segments {
		if seg.kind == moveTo || i == 0 {
			out = append(out, nil)
		}
		out[len(out)-1] = append(out[len(out)-1], seg)
	}
	return out
}

// asRect returns the bounds of sub when it outlines an axis-aligned
// rectangle. An open outline only qualifies when implicitly closed, which
// is the case for filled paths.
func asRect(sub []pathSegment, implicitClose bool) (model.BBox, bool) {
	if len(sub) < 4 || sub[0].kind != moveTo {
		return model.BBox{}, false
	}

	corners := []model.Point{sub[0].to}
	closed := implicitClose
	for _, seg := range sub[1:] {
		switch seg.kind {
		case lineTo:
			corners = append(corners, seg.to)
		case closePath:
			closed = true
		default:
			return model.BBox{}, false
		}
	}

	if len(corners) == 5 && samePoint(corners[0], corners[4]) {
		corners = corners[:4]
		closed = true
	}
	if len(corners) != 4 || !closed {
		return model.BBox{}, false
	}

	for i := range corners {
		a, b := corners[i], corners[(i+1)%4]
		if !axisAligned(a, b) {
			return model.BBox{}, false
		}
	}

	return model.NewBBoxFromPoints(corners[0], corners[2]), true
}

// lineSegments returns the straight segments of sub, including the edge a
// closepath draws back to the subpath start.
func lineSegments(sub []pathSegment) [][2]model.Point {
	var out [][2]model.Point
	var cur model.Point
	for _, seg := range sub {
		switch seg.kind {
		case lineTo, closePath:
			if !samePoint(cur, seg.to) {
				out = append(out, [2]model.Point{cur, seg.to})
			}
		}
		cur = seg.to
	}
	return out
}

func axisAligned(a, b model.Point) bool {
	return math.Abs(a.X-b.X) <= axisTolerance || math.Abs(a.Y-b.Y) <= axisTolerance
}

func samePoint(a, b model.Point) bool {
	return math.Abs(a.X-b.X) < 0.1 && math.Abs(a.Y-b.Y) < 0.1
}
