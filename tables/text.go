package tables

import (
	"math"
	"sort"

	"github.com/tsawler/pdf2xlsx/model"
)

// clusterGap is the vertical gap, in points, that separates two blocks of
// text into independent table candidates.
const clusterGap = 50.0

// TextDetector finds tables without ruling lines. Text is split into
// vertically separated blocks; inside a block, rows come from shared
// baselines and columns from the whitespace gutters that run through every
// multi-cell row.
type TextDetector struct {
	config Config
}

// NewTextDetector creates a new text-alignment detector with default
// configuration.
func NewTextDetector() *TextDetector {
	return &TextDetector{
		config: DefaultConfig(),
	}
}

// Name returns the detector's identifier ("text").
func (d *TextDetector) Name() string {
	return StrategyText
}

// Configure sets the detector configuration.
func (d *TextDetector) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	d.config = config
	return nil
}

// Detect finds text-aligned tables on a page, top to bottom.
func (d *TextDetector) Detect(page *model.Page) ([]*model.Table, error) {
	if len(page.RawText) == 0 {
		return nil, nil
	}

	var tables []*model.Table
	for _, cluster := range d.clusterFragments(page.RawText) {
		if table := d.detectTableInCluster(cluster); table != nil {
			tables = append(tables, table)
		}
	}

	return tables, nil
}

// clusterFragments groups text fragments that are vertically close.
// Fragments separated by more than clusterGap points start new clusters.
func (d *TextDetector) clusterFragments(fragments []model.TextFragment) [][]model.TextFragment {
	sorted := make([]model.TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Top() > sorted[j].BBox.Top()
	})

	var clusters [][]model.TextFragment
	current := []model.TextFragment{sorted[0]}
	bottom := sorted[0].BBox.Bottom()

	for _, frag := range sorted[1:] {
		if bottom-frag.BBox.Top() > clusterGap {
			clusters = append(clusters, current)
			current = nil
			bottom = frag.BBox.Bottom()
		}
		current = append(current, frag)
		bottom = math.Min(bottom, frag.BBox.Bottom())
	}
	clusters = append(clusters, current)

	return clusters
}

// textRow is one baseline's worth of fragments, left to right
type textRow struct {
	baseline  float64
	fragments []model.TextFragment
}

// groupRows clusters fragments by baseline
func (d *TextDetector) groupRows(fragments []model.TextFragment) []textRow {
	var rows []textRow
	for _, frag := range readingOrder(fragments) {
		n := len(rows)
		tol := math.Max(d.config.AlignmentTolerance, 0.3*frag.FontSize)
		if n > 0 && math.Abs(rows[n-1].baseline-frag.Baseline) <= tol {
			rows[n-1].fragments = append(rows[n-1].fragments, frag)
			continue
		}
		rows = append(rows, textRow{baseline: frag.Baseline, fragments: []model.TextFragment{frag}})
	}
	return rows
}

// span is a horizontal interval
type span struct{ lo, hi float64 }

// columnSpans projects the fragments of multi-cell rows onto the x axis and
// returns the covered intervals, left to right. Single-fragment rows such as
// captions are left out so they cannot bridge a gutter.
func (d *TextDetector) columnSpans(rows []textRow) []span {
	var spans []span
	for _, row := range rows {
		if len(row.fragments) < 2 {
			continue
		}
		for _, f := range row.fragments {
			spans = append(spans, span{f.BBox.Left(), f.BBox.Right()})
		}
	}
	if len(spans) == 0 {
		return nil
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].lo < spans[j].lo })

	merged := []span{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.lo <= last.hi+d.config.AlignmentTolerance {
			last.hi = math.Max(last.hi, s.hi)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// columnFor returns the index of the span containing x, or the nearest one.
func columnFor(spans []span, x float64) int {
	best, bestDist := 0, math.MaxFloat64
	for i, s := range spans {
		if x >= s.lo && x <= s.hi {
			return i
		}
		dist := math.Min(math.Abs(x-s.lo), math.Abs(x-s.hi))
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// detectTableInCluster attempts to find a table in a cluster of fragments.
func (d *TextDetector) detectTableInCluster(fragments []model.TextFragment) *model.Table {
	if len(fragments) < d.config.MinRows*d.config.MinCols {
		return nil
	}

	rows := d.groupRows(fragments)
	if len(rows) < d.config.MinRows {
		return nil
	}

	spans := d.columnSpans(rows)
	if len(spans) < d.config.MinCols {
		return nil
	}

	table := model.NewTable(len(rows), len(spans))
	multiCell := 0
	for r, row := range rows {
		used := make(map[int]bool)
		for _, frag := range row.fragments {
			col := columnFor(spans, frag.BBox.Center().X)
			table.Rows[r][col].Append(frag.Text, frag.BBox)
			used[col] = true
		}
		if len(used) >= 2 {
			multiCell++
		}
	}

	confidence := float64(multiCell) / float64(len(rows))
	if confidence < d.config.MinConfidence {
		return nil
	}

	bbox := model.BBox{}
	for _, f := range fragments {
		bbox = bbox.Union(f.BBox)
	}

	table.BBox = bbox
	table.Confidence = confidence
	table.Detector = d.Name()
	return table
}
