package pdf2xlsx

import (
	"fmt"

	"github.com/tsawler/pdf2xlsx/model"
	"github.com/tsawler/pdf2xlsx/reader"
)

// Inspect reads the metadata of the PDF at path and runs table detection
// on every page, keeping all tables rather than only the largest. Page
// failures are recorded on the page and do not stop the walk.
func (c *Converter) Inspect(path string) (*model.Document, error) {
	if c.err != nil {
		return nil, c.err
	}

	meta, err := reader.ReadMetadata(path)
	if err != nil {
		return nil, err
	}

	doc, err := c.open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	if v, ok := doc.(interface{ Version() reader.PDFVersion }); ok {
		meta.Version = v.Version().String()
	}

	result := &model.Document{Path: path, Metadata: meta}
	for n := 1; n <= doc.PageCount(); n++ {
		result.Pages = append(result.Pages, c.inspectPage(doc, n))
	}
	return result, nil
}

func (c *Converter) inspectPage(doc Document, n int) (pt model.PageTables) {
	pt.Page = n
	defer func() {
		if rec := recover(); rec != nil {
			pt.Tables = nil
			pt.Err = fmt.Errorf("panic: %v", rec)
		}
	}()

	page, err := doc.Page(n)
	if err != nil {
		pt.Err = err
		return pt
	}
	pt.Blank = page.IsBlank()
	pt.Tables, pt.Err = c.detector.Detect(page)
	return pt
}
