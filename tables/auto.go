package tables

import "github.com/tsawler/pdf2xlsx/model"

// AutoDetector runs the ruling-line detector first and falls back to text
// alignment only when a page has no ruled table.
type AutoDetector struct {
	lines *LinesDetector
	text  *TextDetector
}

// NewAutoDetector creates a detector chaining lines then text detection.
func NewAutoDetector() *AutoDetector {
	return &AutoDetector{
		lines: NewLinesDetector(),
		text:  NewTextDetector(),
	}
}

// Name returns the detector's identifier ("auto").
func (d *AutoDetector) Name() string {
	return StrategyAuto
}

// Configure passes config to both underlying detectors.
func (d *AutoDetector) Configure(config Config) error {
	if err := d.lines.Configure(config); err != nil {
		return err
	}
	return d.text.Configure(config)
}

// Detect returns ruled tables when there are any, text-aligned ones
// otherwise.
func (d *AutoDetector) Detect(page *model.Page) ([]*model.Table, error) {
	found, err := d.lines.Detect(page)
	if err != nil || len(found) > 0 {
		return found, err
	}
	return d.text.Detect(page)
}

// Largest returns the table with the most cells, preferring the earliest on
// ties, or nil when tables is empty.
func Largest(tables []*model.Table) *model.Table {
	var best *model.Table
	for _, t := range tables {
		if t == nil || t.RowCount() == 0 {
			continue
		}
		if best == nil || t.CellCount() > best.CellCount() {
			best = t
		}
	}
	return best
}
