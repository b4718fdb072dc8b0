package pdf2xlsx

// Progress observes a conversion page by page. Implementations must not
// affect the conversion; they only report on it.
type Progress interface {
	// Start is called once the page count of name is known.
	Start(name string, pages int)
	// Page is called after page n of total has been processed.
	Page(n, total int)
	// Done is called when the page loop ends, successfully or not.
	Done()
}

type nopProgress struct{}

func (nopProgress) Start(string, int) {}
func (nopProgress) Page(int, int)     {}
func (nopProgress) Done()             {}
