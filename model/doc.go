// Package model provides the intermediate representation shared by the PDF
// reader, the table detectors and the converter.
//
// # Page geometry
//
// A [Page] carries everything table detection needs from a PDF page:
//
//   - RawText: positioned [TextFragment] values (word or phrase runs)
//   - RawLines: ruling [Line] segments, including rectangle edges
//
// Coordinates are PDF user space, origin at the bottom-left corner.
//
// # Tables
//
// A [Table] is an ordered list of rows of [Cell] values as detected on one
// page. [TableGrid] describes the row and column boundaries a detector found
// and maps points to cells via [TableGrid.Locate].
//
// # Geometry
//
//   - [BBox] - bounding box with union and containment
//   - [Point] - 2D point
package model
