package graphicsstate

import (
	"fmt"

	"github.com/tsawler/pdf2xlsx/contentstream"
	"github.com/tsawler/pdf2xlsx/model"
)

// maxFormDepth bounds Form XObject nesting, which also stops self
// referencing forms.
const maxFormDepth = 8

// Segment is a stroked straight line in default user space.
type Segment struct {
	Start model.Point
	End   model.Point
	Width float64
}

// Rect is a painted axis-aligned rectangle in default user space.
type Rect struct {
	BBox      model.BBox
	Stroked   bool
	Filled    bool
	LineWidth float64
}

// Form is a Form XObject ready to be replayed.
type Form struct {
	Content []byte
	Matrix  model.Matrix

	// Resources resolves the form's own XObjects. When nil the resolver
	// of the drawing stream is used.
	Resources FormResolver
}

// FormResolver looks up the XObjects named by Do operators. ok is false
// for names that are not forms, such as images.
type FormResolver interface {
	Form(name string) (form *Form, ok bool, err error)
}

// Extractor collects the segments and rectangles painted by a content
// stream.
type Extractor struct {
	Segments []Segment
	Rects    []Rect

	state *State
	path  *Path
	forms FormResolver
	depth int

	// floor is the save depth a Q may not pop below, so a form cannot
	// restore state saved by the stream that drew it.
	floor int
}

// NewExtractor creates an extractor. forms may be nil, in which case Do
// operators are ignored.
func NewExtractor(forms FormResolver) *Extractor {
	return &Extractor{
		state: NewState(),
		path:  &Path{},
		forms: forms,
	}
}

// ExtractFromBytes parses data and replays its operations.
func (e *Extractor) ExtractFromBytes(data []byte) error {
	ops, err := contentstream.NewParser(data).Parse()
	if err != nil {
		return err
	}
	return e.Extract(ops)
}

// Extract replays operations, appending to Segments and Rects.
func (e *Extractor) Extract(ops []contentstream.Operation) error {
	for _, op := range ops {
		if err := e.apply(op); err != nil {
			return err
		}
	}
	return nil
}

func (e *Extractor) apply(op contentstream.Operation) error {
	switch op.Operator {
	case "q":
		e.state.Save()
	case "Q":
		// Unbalanced Q is common in the wild and leaves the state as is.
		if e.state.Depth() > e.floor {
			_ = e.state.Restore()
		}
	case "cm":
		if v, ok := op.Floats(6); ok {
			e.state.Concat(model.Matrix{v[0], v[1], v[2], v[3], v[4], v[5]})
		}
	case "w":
		if v, ok := op.Floats(1); ok {
			e.state.SetLineWidth(v[0])
		}

	case "m":
		if v, ok := op.Floats(2); ok {
			e.path.MoveTo(e.state.toDevice(v[0], v[1]))
		}
	case "l":
		if v, ok := op.Floats(2); ok {
			e.path.LineTo(e.state.toDevice(v[0], v[1]))
		}
	case "c":
		if v, ok := op.Floats(6); ok {
			e.path.CurveTo(e.state.toDevice(v[4], v[5]))
		}
	case "v", "y":
		if v, ok := op.Floats(4); ok {
			e.path.CurveTo(e.state.toDevice(v[2], v[3]))
		}
	case "h":
		e.path.ClosePath()
	case "re":
		if v, ok := op.Floats(4); ok {
			x, y, w, h := v[0], v[1], v[2], v[3]
			e.path.Rectangle([4]model.Point{
				e.state.toDevice(x, y),
				e.state.toDevice(x+w, y),
				e.state.toDevice(x+w, y+h),
				e.state.toDevice(x, y+h),
			})
		}

	case "S":
		e.paint(true, false)
	case "s":
		e.path.ClosePath()
		e.paint(true, false)
	case "f", "F", "f*":
		e.paint(false, true)
	case "B", "B*":
		e.paint(true, true)
	case "b", "b*":
		e.path.ClosePath()
		e.paint(true, true)
	case "n":
		e.path.Reset()

	case "Do":
		if name, ok := op.Name(); ok {
			return e.drawForm(name)
		}
	}
	return nil
}

// paint classifies every subpath of the current path and clears it.
func (e *Extractor) paint(stroke, fill bool) {
	width := e.state.DeviceLineWidth()

	for _, sub := range e.path.subpaths() {
		if box, ok := asRect(sub, fill); ok {
			e.Rects = append(e.Rects, Rect{BBox: box, Stroked: stroke, Filled: fill, LineWidth: width})
			continue
		}
		if !stroke {
			continue
		}
		for _, s := range lineSegments(sub) {
			e.Segments = append(e.Segments, Segment{Start: s[0], End: s[1], Width: width})
		}
	}

	e.path.Reset()
}

// drawForm replays the named Form XObject under the current CTM.
func (e *Extractor) drawForm(name string) error {
	if e.forms == nil || e.depth >= maxFormDepth {
		return nil
	}
	form, ok, err := e.forms.Form(name)
	if err != nil {
		return fmt.Errorf("form %s: %w", name, err)
	}
	if !ok {
		return nil
	}

	ops, err := contentstream.NewParser(form.Content).Parse()
	if err != nil {
		return fmt.Errorf("form %s: %w", name, err)
	}

	depth := e.state.Depth()
	e.state.Save()
	e.state.Concat(form.Matrix)

	outerPath, outerForms, outerFloor := e.path, e.forms, e.floor
	e.path = &Path{}
	if form.Resources != nil {
		e.forms = form.Resources
	}
	e.floor = e.state.Depth()
	e.depth++

	err = e.Extract(ops)

	e.depth--
	e.path, e.forms, e.floor = outerPath, outerForms, outerFloor
	e.state.restoreTo(depth)

	return err
}
