// Package contentstream tokenizes PDF page content streams into operations.
//
// A content stream is a postfix program: operands are pushed until an
// operator consumes them.
//
//	ops, err := contentstream.NewParser(data).Parse()
//	for _, op := range ops {
//	    if op.Operator == "re" {
//	        box, _ := op.Floats(4)
//	        ...
//	    }
//	}
//
// Operands are Number, String, Name, Array, Dict, Bool or Null. Comments
// are dropped and inline image data (BI ... ID ... EI) is skipped, so only
// the painting program is returned.
package contentstream
