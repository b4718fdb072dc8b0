// Package reader opens PDF files and turns their pages into the geometry that
// table detection works on.
//
// # Opening PDF Files
//
// Use [Open] to open a PDF file for reading:
//
//	r, err := reader.Open("statement.pdf")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
// # Page Geometry
//
// [Reader.Page] returns a [model.Page] (1-indexed) holding:
//
//   - RawText: glyphs merged into word and phrase fragments, NFKC-folded
//   - RawLines: ruling segments taken from painted rectangles
//
// Content streams that the decoder cannot interpret produce an error for that
// page only; the rest of the document stays readable.
//
// # Metadata
//
// [ReadMetadata] parses the file a second time with pdfcpu to report page
// count, encryption and Info dictionary fields.
package reader
