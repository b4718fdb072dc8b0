// Package pdf2xlsx converts the tables in PDF files to Excel workbooks.
//
// Each page contributes its largest detected table. The first page's table
// is kept whole, and later pages drop their first row as a repeated header.
// The first row of the result becomes the column labels, and every column
// whose values all parse as numbers is stored as a number.
//
// Basic usage:
//
//	res := pdf2xlsx.New().Convert(ctx, "report.pdf", "report.xlsx")
//	if !res.OK() {
//	    log.Println(res.Kind, res.Err)
//	}
//	for _, w := range res.Warnings {
//	    log.Println(w.Kind, w)
//	}
//
// With options:
//
//	opts := pdf2xlsx.DefaultOptions()
//	opts.Strategy = "text"
//	res := pdf2xlsx.New().
//	    WithOptions(opts).
//	    WithLogger(logger).
//	    Convert(ctx, "scan.pdf", "scan.xlsx")
//
// Converting whole folders is handled by the batch package.
package pdf2xlsx
