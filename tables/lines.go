package tables

import (
	"math"
	"sort"

	"github.com/tsawler/pdf2xlsx/model"
)

// LinesDetector finds tables drawn with ruling lines or bordered cells.
// Segments are split into horizontals and verticals, connected into
// independent line networks, and every network with at least two lines on
// each axis becomes a grid whose cells receive the text inside them.
type LinesDetector struct {
	config Config

	// Minimum number of aligned lines to form a grid axis
	MinAlignedLines int
}

// NewLinesDetector creates a new ruling-line detector with default settings
func NewLinesDetector() *LinesDetector {
	return &LinesDetector{
		config:          DefaultConfig(),
		MinAlignedLines: 2,
	}
}

// Name returns the detector's identifier ("lines").
func (d *LinesDetector) Name() string {
	return StrategyLines
}

// Configure sets the detector configuration.
func (d *LinesDetector) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	d.config = config
	return nil
}

// GridHypothesis represents a potential table grid detected from lines
type GridHypothesis struct {
	// Bounding box of the grid
	BBox model.BBox

	// Horizontal line positions (Y coordinates, sorted descending)
	HorizontalLines []float64

	// Vertical line positions (X coordinates, sorted ascending)
	VerticalLines []float64

	// Number of rows and columns
	Rows int
	Cols int

	// Confidence score (0-1)
	Confidence float64
}

// ToTableGrid converts a grid hypothesis to a model.TableGrid
func (h *GridHypothesis) ToTableGrid() *model.TableGrid {
	grid := &model.TableGrid{
		Rows: make([]float64, len(h.HorizontalLines)),
		Cols: make([]float64, len(h.VerticalLines)),
	}
	copy(grid.Rows, h.HorizontalLines)
	copy(grid.Cols, h.VerticalLines)
	return grid
}

// AlignedLineGroup represents a group of lines aligned on an axis
type AlignedLineGroup struct {
	// Position on the alignment axis (X for vertical lines, Y for horizontal)
	Position float64

	// Lines in this group
	Lines []model.Line

	// Span of the lines (min to max on the perpendicular axis)
	MinExtent float64
	MaxExtent float64
}

// Detect finds ruled tables on a page. Tables are returned top to bottom.
func (d *LinesDetector) Detect(page *model.Page) ([]*model.Table, error) {
	horizontals, verticals := d.classify(page.RawLines)
	if len(horizontals) < d.MinAlignedLines || len(verticals) < d.MinAlignedLines {
		return nil, nil
	}

	var tables []*model.Table
	for _, hyp := range d.DetectFromLines(horizontals, verticals) {
		table := d.buildTable(hyp, page.RawText)
		if table != nil {
			tables = append(tables, table)
		}
	}

	return tables, nil
}

// classify splits segments into horizontals and verticals, dropping
// diagonals and anything shorter than MinLineLength.
func (d *LinesDetector) classify(lines []model.Line) (horizontals, verticals []model.Line) {
	for _, line := range lines {
		if line.Length() < d.config.MinLineLength {
			continue
		}
		switch {
		case line.IsHorizontal(d.config.SnapTolerance):
			horizontals = append(horizontals, line)
		case line.IsVertical(d.config.SnapTolerance):
			verticals = append(verticals, line)
		}
	}
	return horizontals, verticals
}

// DetectFromLines detects grid hypotheses from horizontal and vertical lines,
// one per connected line network, sorted top to bottom.
func (d *LinesDetector) DetectFromLines(horizontals, verticals []model.Line) []*GridHypothesis {
	var hypotheses []*GridHypothesis

	for _, network := range d.networks(horizontals, verticals) {
		hGroups := d.groupAlignedLines(network.horizontals, true)
		vGroups := d.groupAlignedLines(network.verticals, false)
		if len(hGroups) < d.MinAlignedLines || len(vGroups) < d.MinAlignedLines {
			continue
		}
		if hyp := d.findGrid(hGroups, vGroups); hyp != nil {
			hypotheses = append(hypotheses, hyp)
		}
	}

	sort.SliceStable(hypotheses, func(i, j int) bool {
		return hypotheses[i].BBox.Top() > hypotheses[j].BBox.Top()
	})

	return hypotheses
}

// lineNetwork is a set of lines connected through intersections
type lineNetwork struct {
	horizontals []model.Line
	verticals   []model.Line
}

// networks partitions lines into connected components: a horizontal and a
// vertical line are connected when they cross or touch within tolerance.
func (d *LinesDetector) networks(horizontals, verticals []model.Line) []lineNetwork {
	n := len(horizontals) + len(verticals)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	tol := d.config.AlignmentTolerance
	for i, h := range horizontals {
		y := (h.Start.Y + h.End.Y) / 2
		hMin, hMax := math.Min(h.Start.X, h.End.X), math.Max(h.Start.X, h.End.X)
		for j, v := range verticals {
			x := (v.Start.X + v.End.X) / 2
			vMin, vMax := math.Min(v.Start.Y, v.End.Y), math.Max(v.Start.Y, v.End.Y)
			if x >= hMin-tol && x <= hMax+tol && y >= vMin-tol && y <= vMax+tol {
				union(i, len(horizontals)+j)
			}
		}
	}

	byRoot := make(map[int]*lineNetwork)
	var order []int
	get := func(root int) *lineNetwork {
		nw, ok := byRoot[root]
		if !ok {
			nw = &lineNetwork{}
			byRoot[root] = nw
			order = append(order, root)
		}
		return nw
	}
	for i, h := range horizontals {
		nw := get(find(i))
		nw.horizontals = append(nw.horizontals, h)
	}
	for j, v := range verticals {
		nw := get(find(len(horizontals) + j))
		nw.verticals = append(nw.verticals, v)
	}

	out := make([]lineNetwork, 0, len(order))
	for _, root := range order {
		out = append(out, *byRoot[root])
	}
	return out
}

// groupAlignedLines groups lines that are aligned on the same axis
func (d *LinesDetector) groupAlignedLines(lines []model.Line, isHorizontal bool) []AlignedLineGroup {
	if len(lines) == 0 {
		return nil
	}

	positions := make([]float64, len(lines))
	for i, line := range lines {
		if isHorizontal {
			positions[i] = (line.Start.Y + line.End.Y) / 2
		} else {
			positions[i] = (line.Start.X + line.End.X) / 2
		}
	}

	indices := make([]int, len(lines))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return positions[indices[i]] < positions[indices[j]]
	})

	var groups []AlignedLineGroup
	current := AlignedLineGroup{
		Position: positions[indices[0]],
		Lines:    []model.Line{lines[indices[0]]},
	}

	for _, idx := range indices[1:] {
		pos := positions[idx]
		if pos-current.Position <= d.config.AlignmentTolerance {
			current.Lines = append(current.Lines, lines[idx])
			// running average keeps the group centred on its members
			current.Position += (pos - current.Position) / float64(len(current.Lines))
			continue
		}
		finalizeGroup(&current, isHorizontal)
		groups = append(groups, current)
		current = AlignedLineGroup{
			Position: pos,
			Lines:    []model.Line{lines[idx]},
		}
	}
	finalizeGroup(&current, isHorizontal)
	groups = append(groups, current)

	return groups
}

// finalizeGroup calculates the extent of an aligned line group
func finalizeGroup(group *AlignedLineGroup, isHorizontal bool) {
	group.MinExtent = math.MaxFloat64
	group.MaxExtent = -math.MaxFloat64

	for _, line := range group.Lines {
		var lo, hi float64
		if isHorizontal {
			lo, hi = math.Min(line.Start.X, line.End.X), math.Max(line.Start.X, line.End.X)
		} else {
			lo, hi = math.Min(line.Start.Y, line.End.Y), math.Max(line.Start.Y, line.End.Y)
		}
		group.MinExtent = math.Min(group.MinExtent, lo)
		group.MaxExtent = math.Max(group.MaxExtent, hi)
	}
}

// findGrid builds the grid hypothesis for one line network. Left and right
// come from vertical line positions, top and bottom from horizontal ones;
// lines covering less than half of the grid are ignored as stray rules.
func (d *LinesDetector) findGrid(hGroups, vGroups []AlignedLineGroup) *GridHypothesis {
	gridLeft, gridRight := positionRange(vGroups)
	gridBottom, gridTop := positionRange(hGroups)

	if gridRight <= gridLeft || gridTop <= gridBottom {
		return nil
	}

	relevantH := filterGroupsByExtent(hGroups, gridLeft, gridRight)
	relevantV := filterGroupsByExtent(vGroups, gridBottom, gridTop)

	if len(relevantH) < d.MinAlignedLines || len(relevantV) < d.MinAlignedLines {
		return nil
	}

	// top to bottom in PDF coords
	sort.Slice(relevantH, func(i, j int) bool {
		return relevantH[i].Position > relevantH[j].Position
	})
	sort.Slice(relevantV, func(i, j int) bool {
		return relevantV[i].Position < relevantV[j].Position
	})

	hyp := &GridHypothesis{
		HorizontalLines: make([]float64, len(relevantH)),
		VerticalLines:   make([]float64, len(relevantV)),
		Rows:            len(relevantH) - 1,
		Cols:            len(relevantV) - 1,
	}
	for i, g := range relevantH {
		hyp.HorizontalLines[i] = g.Position
	}
	for i, g := range relevantV {
		hyp.VerticalLines[i] = g.Position
	}

	hyp.BBox = hyp.ToTableGrid().BBox()
	hyp.Confidence = d.calculateConfidence(hyp, len(hGroups)+len(vGroups))

	return hyp
}

// positionRange returns the smallest and largest group positions
func positionRange(groups []AlignedLineGroup) (lo, hi float64) {
	lo, hi = math.MaxFloat64, -math.MaxFloat64
	for _, g := range groups {
		lo = math.Min(lo, g.Position)
		hi = math.Max(hi, g.Position)
	}
	return lo, hi
}

// filterGroupsByExtent keeps groups whose lines span at least half of the
// given extent and overlap it
func filterGroupsByExtent(groups []AlignedLineGroup, minExtent, maxExtent float64) []AlignedLineGroup {
	var result []AlignedLineGroup
	required := (maxExtent - minExtent) * 0.5

	for _, g := range groups {
		if g.MaxExtent-g.MinExtent < required {
			continue
		}
		if math.Min(g.MaxExtent, maxExtent) > math.Max(g.MinExtent, minExtent) {
			result = append(result, g)
		}
	}

	return result
}

// calculateConfidence scores a grid by its regularity and by the share of
// aligned line groups that ended up in it
func (d *LinesDetector) calculateConfidence(h *GridHypothesis, groupCount int) float64 {
	rowHeights := make([]float64, h.Rows)
	for i := range rowHeights {
		rowHeights[i] = h.HorizontalLines[i] - h.HorizontalLines[i+1]
	}
	colWidths := make([]float64, h.Cols)
	for i := range colWidths {
		colWidths[i] = h.VerticalLines[i+1] - h.VerticalLines[i]
	}
	regularity := (math.Max(0, 1-coefficientOfVariation(rowHeights)) +
		math.Max(0, 1-coefficientOfVariation(colWidths))) / 2

	coverage := 0.0
	if groupCount > 0 {
		coverage = float64(len(h.HorizontalLines)+len(h.VerticalLines)) / float64(groupCount)
	}

	return math.Min(1, 0.5+regularity*0.25+coverage*0.25)
}

// buildTable fills the grid cells with the text fragments whose centre lies
// inside them. Grids without any text are discarded.
func (d *LinesDetector) buildTable(hyp *GridHypothesis, fragments []model.TextFragment) *model.Table {
	grid := hyp.ToTableGrid()
	table := model.NewTable(grid.RowCount(), grid.ColCount())

	if fillCells(table, grid, fragments) == 0 {
		return nil
	}

	table.BBox = grid.BBox()
	table.HasGrid = true
	table.Confidence = hyp.Confidence
	table.Detector = d.Name()
	return table
}

// coefficientOfVariation calculates CV (std dev / mean)
func coefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	if m == 0 {
		return 0
	}
	return math.Sqrt(variance(values)) / m
}
