package model

// Metadata contains document-level information read from the PDF trailer
// and Info dictionary.
type Metadata struct {
	Title     string
	Author    string
	Creator   string
	Producer  string
	Version   string // header version, e.g. "1.7"
	PageCount int
	Encrypted bool
}

// PageTables pairs a page number with the tables detected on it
type PageTables struct {
	Page   int
	Tables []*Table
	Blank  bool  // the page carries no text
	Err    error // non-nil when the page could not be read
}

// Document is the inspection view of a PDF: metadata plus the tables found
// on each page.
type Document struct {
	Path     string
	Metadata Metadata
	Pages    []PageTables
}

// TableCount returns the number of tables found across all pages
func (d *Document) TableCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Tables)
	}
	return n
}
