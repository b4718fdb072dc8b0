// Package tables detects tables on PDF pages from their raw geometry.
//
// # Detectors
//
// Table detection is performed by types implementing the [Detector] interface.
// The package provides:
//
//   - [LinesDetector] ("lines") - grids drawn with ruling lines or bordered cells
//   - [TextDetector] ("text") - columns separated by whitespace gutters
//   - [AutoDetector] ("auto") - lines first, text when no ruled table exists
//
// Detectors are registered globally as factories and built by name:
//
//	detector, err := tables.New("auto", tables.DefaultConfig())
//	found, err := detector.Detect(page)
//	table := tables.Largest(found)
//
// # Ruled Tables
//
// The [LinesDetector] works in four steps:
//
//  1. Split segments into horizontals and verticals, dropping short ones
//  2. Partition them into connected networks (one per table)
//  3. Group aligned lines into grid boundaries
//  4. Assign each text fragment to the cell containing its centre
//
// # Text Tables
//
// The [TextDetector] clusters text into vertically separated blocks, groups
// each block into rows by baseline and derives columns from the gaps left
// between fragments of multi-cell rows. Blocks where fewer than
// MinConfidence of the rows span two or more columns are rejected, which
// keeps prose out.
//
// # Configuration
//
//	config := tables.DefaultConfig()
//	config.MinRows = 3
//	config.AlignmentTolerance = 5
//	detector.Configure(config)
package tables
