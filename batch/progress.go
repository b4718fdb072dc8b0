package batch

import (
	"fmt"
	"io"
)

// ConsoleProgress prints page progress on a single, rewritten line.
type ConsoleProgress struct {
	w io.Writer
}

// NewConsoleProgress creates a progress printer writing to w.
func NewConsoleProgress(w io.Writer) *ConsoleProgress {
	return &ConsoleProgress{w: w}
}

// Start prints the file name and its page count.
func (p *ConsoleProgress) Start(name string, pages int) {
	fmt.Fprintf(p.w, "Processing %s (%d pages)\n", name, pages)
}

// Page rewrites the progress line.
func (p *ConsoleProgress) Page(n, total int) {
	pct := 100.0
	if total > 0 {
		pct = float64(n) / float64(total) * 100
	}
	fmt.Fprintf(p.w, "\rProcessing page %d/%d (%.2f%%)", n, total, pct)
}

// Done ends the progress line.
func (p *ConsoleProgress) Done() {
	fmt.Fprintln(p.w)
}
