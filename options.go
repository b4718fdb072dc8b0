package pdf2xlsx

import (
	"github.com/tsawler/pdf2xlsx/tables"
)

// Options holds conversion settings.
type Options struct {
	// Strategy names the table detector: "auto", "lines" or "text".
	Strategy string

	// Tables tunes the detector.
	Tables tables.Config

	// Sheet names the worksheet written to each workbook.
	Sheet string
}

// DefaultOptions returns the settings used by New.
func DefaultOptions() Options {
	return Options{
		Strategy: tables.StrategyAuto,
		Tables:   tables.DefaultConfig(),
		Sheet:    "Sheet1",
	}
}
