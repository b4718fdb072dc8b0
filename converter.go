package pdf2xlsx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/phuslu/log"

	"github.com/tsawler/pdf2xlsx/frame"
	"github.com/tsawler/pdf2xlsx/logging"
	"github.com/tsawler/pdf2xlsx/model"
	"github.com/tsawler/pdf2xlsx/reader"
	"github.com/tsawler/pdf2xlsx/tables"
	"github.com/tsawler/pdf2xlsx/xlsx"
)

// Document is an open PDF that can be read page by page.
type Document interface {
	PageCount() int
	Page(n int) (*model.Page, error)
	Close() error
}

// OpenFunc opens the PDF at path.
type OpenFunc func(path string) (Document, error)

// OpenPDF opens path with the reader package.
func OpenPDF(path string) (Document, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Converter turns PDFs into Excel workbooks. Configuration methods return a
// new Converter, so a configured value can be shared between goroutines.
type Converter struct {
	options  Options
	detector tables.Detector
	open     OpenFunc
	logger   *log.Logger
	progress Progress

	// Accumulated configuration error (fail-fast)
	err error
}

// New creates a converter with default options, logging nowhere.
func New() *Converter {
	c := &Converter{
		options:  DefaultOptions(),
		open:     OpenPDF,
		logger:   logging.Discard(),
		progress: nopProgress{},
	}
	c.detector, c.err = tables.New(c.options.Strategy, c.options.Tables)
	return c
}

func (c *Converter) clone() *Converter {
	n := *c
	return &n
}

// WithOptions replaces the conversion options. An unknown strategy or an
// invalid detector configuration is reported by the next conversion.
//
// Example:
//
//	opts := pdf2xlsx.DefaultOptions()
//	opts.Strategy = "lines"
//	res := pdf2xlsx.New().WithOptions(opts).Convert(ctx, "in.pdf", "out.xlsx")
func (c *Converter) WithOptions(opts Options) *Converter {
	n := c.clone()
	n.options = opts
	n.detector, n.err = tables.New(opts.Strategy, opts.Tables)
	return n
}

// WithLogger sets the logger conversion events are written to.
func (c *Converter) WithLogger(logger *log.Logger) *Converter {
	n := c.clone()
	n.logger = logger
	return n
}

// WithProgress sets the page progress observer.
func (c *Converter) WithProgress(p Progress) *Converter {
	n := c.clone()
	if p == nil {
		p = nopProgress{}
	}
	n.progress = p
	return n
}

// WithOpener replaces the function used to open PDFs.
func (c *Converter) WithOpener(open OpenFunc) *Converter {
	n := c.clone()
	n.open = open
	return n
}

// Options returns the converter's options.
func (c *Converter) Options() Options {
	return c.options
}

// Err returns the configuration error, if any.
func (c *Converter) Err() error {
	return c.err
}

// ExtractPageTable returns the largest table detected on page, or nil when
// the page holds none. A panic inside detection is returned as an error.
// Errors do not name the page; callers add that context.
func (c *Converter) ExtractPageTable(page *model.Page) (table *model.Table, err error) {
	if c.err != nil {
		return nil, c.err
	}
	if page == nil {
		return nil, errors.New("no page")
	}

	defer func() {
		if rec := recover(); rec != nil {
			table = nil
			err = fmt.Errorf("table detection failed: %v", rec)
		}
	}()

	found, err := c.detector.Detect(page)
	if err != nil {
		return nil, err
	}

	table = tables.Largest(found)
	if table == nil || table.RowCount() == 0 {
		return nil, nil
	}
	return table, nil
}

// Convert converts the PDF at inputPath into a workbook at outputPath.
//
// Pages are read in order. The first table found is kept whole; every later
// table loses its first row, which is taken to be a repeated header. The
// accumulated rows then become a frame whose numeric columns are stored as
// numbers. Failures never escape as panics: they are logged and described
// by the returned Result.
func (c *Converter) Convert(ctx context.Context, inputPath, outputPath string) (res *Result) {
	res = &Result{Input: inputPath, Output: outputPath}

	if c.err != nil {
		return c.unexpected(res, c.err)
	}

	if _, err := os.Stat(inputPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Error().Str("file", inputPath).Msgf("PDF file not found: %s", inputPath)
			return res.fail(KindMissingInput, fmt.Errorf("%w: %s", ErrMissingInput, inputPath))
		}
		return c.unexpected(res, err)
	}

	defer func() {
		if rec := recover(); rec != nil {
			res = c.unexpected(res, fmt.Errorf("panic: %v", rec))
		}
	}()

	doc, err := c.open(inputPath)
	if err != nil {
		return c.unexpected(res, err)
	}
	defer doc.Close()

	rows, err := c.collect(ctx, doc, res)
	if err != nil {
		return c.unexpected(res, err)
	}

	if len(rows) <= 1 {
		c.logger.Warn().Str("file", inputPath).Msg("No valid table data found in PDF")
		return res.fail(KindNoUsableTable, ErrNoUsableTable)
	}

	f, err := frame.Build(rows)
	if err != nil {
		return c.unexpected(res, err)
	}

	for _, ce := range f.Coerce() {
		c.logger.Warn().Str("file", inputPath).Str("column", ce.Column).
			Msgf("Column '%s' could not be converted: %v", ce.Column, ce)
		res.warn(Warning{Kind: KindColumnCoercion, Column: ce.Column, Message: ce.Error()})
	}

	w := xlsx.NewWriter()
	w.Sheet = c.options.Sheet
	if err := w.Write(outputPath, f); err != nil {
		return c.unexpected(res, err)
	}

	res.Rows = f.RowCount()
	res.Columns = f.ColCount()
	c.logger.Info().Str("file", inputPath).Int("rows", res.Rows).
		Msgf("Successfully converted to: %s", outputPath)
	return res
}

// collect walks the pages of doc and accumulates table rows.
func (c *Converter) collect(ctx context.Context, doc Document, res *Result) ([][]string, error) {
	total := doc.PageCount()
	res.Pages = total

	c.progress.Start(filepath.Base(res.Input), total)
	defer c.progress.Done()

	var rows [][]string
	for n := 1; n <= total; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		table, err := c.pageTable(doc, n)
		if err != nil {
			c.logger.Warn().Str("file", res.Input).Int("page", n).
				Msgf("Could not extract table from page: %v", err)
			res.warn(Warning{Kind: KindPageExtraction, Page: n, Message: err.Error()})
		} else if table != nil {
			found := table.Strings()
			if rows == nil {
				rows = found
			} else {
				rows = append(rows, found[1:]...)
			}
		}

		c.progress.Page(n, total)
	}

	return rows, nil
}

func (c *Converter) pageTable(doc Document, n int) (table *model.Table, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			table = nil
			err = fmt.Errorf("panic: %v", rec)
		}
	}()

	page, err := doc.Page(n)
	if err != nil {
		return nil, err
	}
	return c.ExtractPageTable(page)
}

func (c *Converter) unexpected(res *Result, err error) *Result {
	c.logger.Error().Str("file", res.Input).Msgf("Conversion failed: %v", err)
	return res.fail(KindUnexpected, err)
}
