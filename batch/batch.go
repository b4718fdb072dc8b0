// Package batch converts every PDF below an input folder, mirroring the
// folder structure into an output folder.
//
// For an input root "in" and an output parent "out", results land in
// "out/in": "in/a.pdf" becomes "out/in/a.xlsx" and "in/sub/b.pdf" becomes
// "out/in/sub/b.xlsx". Files are converted one at a time in walk order, and
// a failed file never stops the run.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/tsawler/pdf2xlsx"
	"github.com/tsawler/pdf2xlsx/format"
)

// Converter converts a single file.
type Converter interface {
	Convert(ctx context.Context, inputPath, outputPath string) *pdf2xlsx.Result
}

// Summary describes a finished run.
type Summary struct {
	RunID        string
	InputRoot    string
	OutputFolder string
	Started      time.Time
	Finished     time.Time
	Files        []*pdf2xlsx.Result
}

// Succeeded returns the number of files written.
func (s *Summary) Succeeded() int {
	n := 0
	for _, f := range s.Files {
		if f.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of files that could not be converted.
func (s *Summary) Failed() int {
	return len(s.Files) - s.Succeeded()
}

// Runner walks input folders and converts the PDFs it finds.
type Runner struct {
	conv    Converter
	console io.Writer
	logger  *log.Logger
}

// New creates a runner. Status lines go to console; walk problems are
// logged to logger.
func New(conv Converter, console io.Writer, logger *log.Logger) *Runner {
	return &Runner{conv: conv, console: console, logger: logger}
}

// OutputFolder returns the folder results for inputRoot are written to: a
// folder named after inputRoot inside outputParent.
func OutputFolder(inputRoot, outputParent string) string {
	return filepath.Join(outputParent, filepath.Base(filepath.Clean(inputRoot)))
}

// OutputPath maps a path relative to the input root to its workbook path.
func OutputPath(folder, rel string) string {
	return filepath.Join(folder, format.SwapExtension(rel, format.XLSX))
}

// Run converts every .pdf file below inputRoot. The returned error is only
// set when the run could not start; per-file failures are recorded in the
// summary.
func (r *Runner) Run(ctx context.Context, inputRoot, outputParent string) (*Summary, error) {
	info, err := os.Stat(inputRoot)
	if err != nil {
		return nil, fmt.Errorf("input folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input folder: %s is not a directory", inputRoot)
	}

	summary := &Summary{
		RunID:        uuid.NewString(),
		InputRoot:    inputRoot,
		OutputFolder: OutputFolder(inputRoot, outputParent),
		Started:      time.Now(),
	}
	if err := os.MkdirAll(summary.OutputFolder, 0o755); err != nil {
		return nil, fmt.Errorf("create output folder: %w", err)
	}

	err = filepath.WalkDir(inputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == inputRoot {
				return err
			}
			r.logger.Warn().Str("path", path).Msgf("Skipping unreadable path: %v", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !format.IsPDF(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(inputRoot, path)
		if err != nil {
			return err
		}
		summary.Files = append(summary.Files, r.convert(ctx, path, OutputPath(summary.OutputFolder, rel), d.Name()))
		return nil
	})
	summary.Finished = time.Now()

	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return summary, fmt.Errorf("walk %s: %w", inputRoot, err)
	}
	if err != nil {
		r.logger.Warn().Msgf("Run interrupted: %v", err)
	}

	fmt.Fprintf(r.console, "All files processed. Output stored in: %s\n", summary.OutputFolder)
	return summary, nil
}

func (r *Runner) convert(ctx context.Context, in, out, name string) *pdf2xlsx.Result {
	fmt.Fprintf(r.console, "Converting %s...\n", name)
	res := r.conv.Convert(ctx, in, out)
	if res.OK() {
		fmt.Fprintf(r.console, "Successfully converted %s to Excel!\n", name)
	} else {
		fmt.Fprintf(r.console, "Failed to convert %s.\n", name)
	}
	return res
}
