package reader

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdf2xlsx/graphicsstate"
	"github.com/tsawler/pdf2xlsx/model"
)

// Letter size, used when no MediaBox can be found in the page tree.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0

	// maxTreeDepth bounds the walk up the page tree for inherited attributes.
	maxTreeDepth = 32
)

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)`)

// PDFVersion represents a PDF version
type PDFVersion struct {
	Major int
	Minor int
}

// String returns the version as a string (e.g., "1.7")
func (v PDFVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Reader represents an open PDF file. It owns the underlying file handle,
// which is released by Close.
type Reader struct {
	file    *os.File
	doc     *pdf.Reader
	version PDFVersion
	pages   int
}

// NewReader creates a new PDF reader for the given file. The caller keeps
// ownership of file on error.
func NewReader(file *os.File) (*Reader, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	r := &Reader{file: file}

	version, err := r.parseHeader()
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}
	r.version = version

	doc, err := newDocument(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	r.doc = doc

	pages, err := countPages(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	r.pages = pages

	return r, nil
}

// Open opens a PDF file and returns a Reader
func Open(filename string) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r, err := NewReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}

	return r, nil
}

// newDocument wraps pdf.NewReader so a panic on a damaged trailer surfaces
// as an error.
func newDocument(ra io.ReaderAt, size int64) (doc *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = fmt.Errorf("malformed document: %v", rec)
		}
	}()
	return pdf.NewReader(ra, size)
}

// countPages reads the page count from the page tree. A tree that cannot be
// read or holds no pages makes the document unusable.
func countPages(doc *pdf.Reader) (count int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			count = 0
			err = fmt.Errorf("malformed page tree: %v", rec)
		}
	}()

	count = doc.NumPage()
	if count <= 0 {
		return 0, fmt.Errorf("document has no pages")
	}
	return count, nil
}

// Close closes the PDF file. It is safe to call Close more than once.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// Version returns the PDF version from the file header
func (r *Reader) Version() PDFVersion {
	return r.version
}

// parseHeader parses the PDF header (%PDF-x.y)
func (r *Reader) parseHeader() (PDFVersion, error) {
	header := make([]byte, 8)
	n, err := r.file.ReadAt(header, 0)
	if err != nil && err != io.EOF {
		return PDFVersion{}, fmt.Errorf("failed to read header: %w", err)
	}
	if n < 8 {
		return PDFVersion{}, fmt.Errorf("header too short: %d bytes", n)
	}

	headerStr := string(header)
	if !strings.HasPrefix(headerStr, "%PDF-") {
		return PDFVersion{}, fmt.Errorf("invalid PDF header: %q", headerStr)
	}

	versionStr := headerStr[5:]
	matches := versionPattern.FindStringSubmatch(versionStr)
	if len(matches) < 3 {
		return PDFVersion{}, fmt.Errorf("invalid version format: %s", versionStr)
	}

	var major, minor int
	fmt.Sscanf(matches[1], "%d", &major)
	fmt.Sscanf(matches[2], "%d", &minor)

	return PDFVersion{Major: major, Minor: minor}, nil
}

// PageCount returns the number of pages in the document
func (r *Reader) PageCount() int {
	return r.pages
}

// Page reads the geometry of page n (1-indexed): its text fragments and the
// ruling lines painted by its content stream, including stroked paths and
// Form XObjects. Damaged content streams are reported as errors rather than
// panics.
func (r *Reader) Page(n int) (page *model.Page, err error) {
	if n < 1 || n > r.pages {
		return nil, fmt.Errorf("page %d out of range [1, %d]", n, r.pages)
	}

	defer func() {
		if rec := recover(); rec != nil {
			page = nil
			err = fmt.Errorf("malformed content: %v", rec)
		}
	}()

	p := r.doc.Page(n)
	if p.V.IsNull() {
		return nil, fmt.Errorf("missing page object")
	}

	width, height := mediaBox(p.V)

	data, err := pageContent(p.V)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	graphics := graphicsstate.NewExtractor(xobjects{dict: p.Resources().Key("XObject")})
	if err := graphics.ExtractFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}

	page = model.NewPage(n, width, height)
	page.RawText = buildFragments(p.Content().Text)
	page.RawLines = rulingLines(graphics.Segments, graphics.Rects, width*height)

	return page, nil
}

// mediaBox returns the page size, following the Parent chain for an
// inherited MediaBox.
func mediaBox(v pdf.Value) (width, height float64) {
	for depth := 0; depth < maxTreeDepth && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() == 4 {
			width = box.Index(2).Float64() - box.Index(0).Float64()
			height = box.Index(3).Float64() - box.Index(1).Float64()
			if width > 0 && height > 0 {
				return width, height
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageWidth, defaultPageHeight
}
