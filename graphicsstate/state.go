package graphicsstate

import (
	"errors"
	"math"

	"github.com/tsawler/pdf2xlsx/model"
)

// ErrStackUnderflow is returned by Restore without a matching Save.
var ErrStackUnderflow = errors.New("graphics state stack underflow")

// State is the part of the PDF graphics state that affects ruling geometry.
type State struct {
	// Current Transformation Matrix
	CTM model.Matrix

	// Line width in user space units
	LineWidth float64

	stack []saved
}

type saved struct {
	ctm       model.Matrix
	lineWidth float64
}

// NewState returns the initial graphics state of a page.
func NewState() *State {
	return &State{
		CTM:       model.Identity(),
		LineWidth: 1.0,
	}
}

// Save pushes the current state (q operator)
func (s *State) Save() {
	s.stack = append(s.stack, saved{ctm: s.CTM, lineWidth: s.LineWidth})
}

// Restore pops the most recently saved state (Q operator)
func (s *State) Restore() error {
	if len(s.stack) == 0 {
		return ErrStackUnderflow
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.CTM = top.ctm
	s.LineWidth = top.lineWidth
	return nil
}

// Depth returns the number of saved states.
func (s *State) Depth() int {
	return len(s.stack)
}

// restoreTo pops saved states until depth remain.
func (s *State) restoreTo(depth int) {
	for len(s.stack) > depth {
		_ = s.Restore()
	}
}

// Concat prepends m to the CTM (cm operator), so m applies before the
// transformations already in effect.
func (s *State) Concat(m model.Matrix) {
	s.CTM = m.Multiply(s.CTM)
}

// SetLineWidth sets the line width (w operator)
func (s *State) SetLineWidth(w float64) {
	s.LineWidth = w
}

// DeviceLineWidth returns the line width scaled into default user space.
func (s *State) DeviceLineWidth() float64 {
	det := s.CTM[0]*s.CTM[3] - s.CTM[1]*s.CTM[2]
	return s.LineWidth * math.Sqrt(math.Abs(det))
}

// toDevice maps a user space point through the CTM.
func (s *State) toDevice(x, y float64) model.Point {
	return s.CTM.Transform(model.Point{X: x, Y: y})
}
