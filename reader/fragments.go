package reader

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pdf2xlsx/model"
)

// Glyph merging thresholds, as fractions of the font size.
const (
	// A space is assumed to be a quarter em; a gap wider than half a space
	// starts a new word.
	wordGapRatio = 0.125

	// A gap wider than one em starts a new fragment.
	runGapRatio = 1.0

	// Glyphs further than half the font size from the current baseline are on
	// a different line.
	baselineRatio = 0.5

	// Advance per glyph when the font carries no width table.
	fallbackAdvanceRatio = 0.5

	// Descent below the baseline used for fragment boxes.
	descentRatio = 0.2

	defaultFontSize = 10.0
)

// run accumulates consecutive glyphs into one text fragment.
type run struct {
	text      strings.Builder
	x         float64
	baseline  float64
	end       float64 // x of the advance point after the last glyph
	size      float64
	font      string
	glyphs    int
	estimated bool // at least one glyph had no width
}

func newRun(g pdf.Text, size float64) *run {
	r := &run{
		x:        g.X,
		baseline: g.Y,
		end:      g.X,
		size:     size,
		font:     g.Font,
	}
	r.add(g)
	return r
}

func (r *run) add(g pdf.Text) {
	r.text.WriteString(g.S)
	r.glyphs += utf8.RuneCountInString(g.S)
	if g.W > 0 {
		r.end = g.X + g.W
	} else {
		r.estimated = true
		r.end = math.Max(r.end, g.X)
	}
}

// accepts reports whether g continues the run, and whether a word break
// must be inserted before it.
func (r *run) accepts(g pdf.Text, size float64) (ok, space bool) {
	if math.Abs(g.Y-r.baseline) > baselineRatio*math.Max(size, r.size) {
		return false, false
	}
	if math.Abs(size-r.size) > r.size*0.5 {
		return false, false
	}

	gap := g.X - r.end
	if gap < -r.size*baselineRatio || gap > runGapRatio*r.size {
		return false, false
	}

	space = gap > wordGapRatio*r.size && !strings.HasSuffix(r.text.String(), " ") && g.S != " "
	return true, space
}

func (r *run) fragment() (model.TextFragment, bool) {
	text := strings.Join(strings.Fields(norm.NFKC.String(r.text.String())), " ")
	if text == "" {
		return model.TextFragment{}, false
	}

	width := r.end - r.x
	if r.estimated {
		width = math.Max(width, float64(r.glyphs)*r.size*fallbackAdvanceRatio)
	}

	return model.TextFragment{
		Text:     text,
		Baseline: r.baseline,
		FontSize: r.size,
		FontName: r.font,
		BBox: model.BBox{
			X:      r.x,
			Y:      r.baseline - r.size*descentRatio,
			Width:  width,
			Height: r.size,
		},
	}, true
}

// buildFragments merges glyphs, in content-stream order, into fragments.
// Glyphs on the same baseline that follow each other closely form one
// fragment; a wide horizontal gap, a baseline change or a font size jump
// starts a new one. Text is NFKC-folded so ligatures, non-breaking spaces
// and full-width digits read as their plain forms.
func buildFragments(glyphs []pdf.Text) []model.TextFragment {
	fragments := make([]model.TextFragment, 0, len(glyphs)/4+1)

	var cur *run
	flush := func() {
		if cur == nil {
			return
		}
		if frag, ok := cur.fragment(); ok {
			fragments = append(fragments, frag)
		}
		cur = nil
	}

	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		size := math.Abs(g.FontSize)
		if size < 0.1 {
			size = defaultFontSize
		}

		if cur != nil {
			if ok, space := cur.accepts(g, size); ok {
				if space {
					cur.text.WriteByte(' ')
				}
				cur.add(g)
				continue
			}
		}

		flush()
		cur = newRun(g, size)
	}
	flush()

	return fragments
}
