// Package graphicsstate replays the path painting operators of a content
// stream and records the ruling geometry they draw.
//
// The replay tracks the current transformation matrix and line width
// through q/Q and cm, builds paths from m, l, c, v, y, h and re, and
// classifies each painted subpath:
//   - an axis-aligned closed four-corner subpath is a Rect, whether it was
//     stroked, filled or both
//   - any other stroked subpath contributes its straight segments
//   - curves and paths ended with n (clipping) paint no rulings
//
// Form XObjects drawn with Do are replayed in place when a FormResolver is
// supplied.
//
//	ext := graphicsstate.NewExtractor(nil)
//	if err := ext.ExtractFromBytes(content); err != nil {
//	    return err
//	}
//	for _, s := range ext.Segments {
//	    fmt.Println(s.Start, s.End)
//	}
//
// All coordinates are reported in default user space (the page's points,
// origin bottom-left).
package graphicsstate
