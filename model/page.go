package model

// Page holds the raw geometry of a single PDF page: every text fragment and
// every ruling line, in PDF user space (origin bottom-left).
type Page struct {
	Number int     // 1-indexed page number
	Width  float64 // Page width in points
	Height float64 // Page height in points

	RawText  []TextFragment // All text fragments with positions
	RawLines []Line         // All detected lines and rectangle edges
}

// NewPage creates a new page with given dimensions
func NewPage(number int, width, height float64) *Page {
	return &Page{
		Number:   number,
		Width:    width,
		Height:   height,
		RawText:  make([]TextFragment, 0),
		RawLines: make([]Line, 0),
	}
}

// IsBlank reports whether the page carries no text at all
func (p *Page) IsBlank() bool {
	return len(p.RawText) == 0
}
