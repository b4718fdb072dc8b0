package reader

import (
	"testing"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdf2xlsx/model"
)

// glyphs lays out s left to right starting at x with a fixed advance; an
// advance of 0 mimics fonts without a width table.
func glyphs(s string, x, y, size, advance float64) []pdf.Text {
	out := make([]pdf.Text, 0, len(s))
	for _, r := range s {
		out = append(out, pdf.Text{Font: "Helvetica", FontSize: size, X: x, Y: y, W: advance, S: string(r)})
		x += advance
	}
	return out
}

func concat(runs ...[]pdf.Text) []pdf.Text {
	var out []pdf.Text
	for _, r := range runs {
		out = append(out, r...)
	}
	return out
}

func texts(frags []model.TextFragment) []string {
	out := make([]string, len(frags))
	for i, f := range frags {
		out[i] = f.Text
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuildFragments(t *testing.T) {
	tests := []struct {
		name   string
		glyphs []pdf.Text
		want   []string
	}{
		{
			name:   "single word",
			glyphs: glyphs("Total", 10, 700, 10, 5),
			want:   []string{"Total"},
		},
		{
			name:   "explicit space glyph",
			glyphs: glyphs("Unit Price", 10, 700, 10, 5),
			want:   []string{"Unit Price"},
		},
		{
			name:   "small gap inserts word break",
			glyphs: concat(glyphs("Unit", 10, 700, 10, 5), glyphs("Price", 33, 700, 10, 5)),
			want:   []string{"Unit Price"},
		},
		{
			name:   "wide gap splits fragments",
			glyphs: concat(glyphs("Name", 10, 700, 10, 5), glyphs("Qty", 100, 700, 10, 5)),
			want:   []string{"Name", "Qty"},
		},
		{
			name:   "baseline change splits fragments",
			glyphs: concat(glyphs("row1", 10, 700, 10, 5), glyphs("row2", 30, 680, 10, 5)),
			want:   []string{"row1", "row2"},
		},
		{
			name:   "backwards jump splits fragments",
			glyphs: concat(glyphs("second", 100, 700, 10, 5), glyphs("first", 10, 700, 10, 5)),
			want:   []string{"second", "first"},
		},
		{
			name:   "missing widths",
			glyphs: concat(glyphs("apple", 10, 700, 10, 0), glyphs("3", 100, 700, 10, 0)),
			want:   []string{"apple", "3"},
		},
		{
			name:   "whitespace only is dropped",
			glyphs: glyphs("   ", 10, 700, 10, 5),
			want:   []string{},
		},
		{
			name:   "ligature folded",
			glyphs: glyphs("ﬁle", 10, 700, 10, 5),
			want:   []string{"file"},
		},
		{
			name:   "non-breaking space folded",
			glyphs: glyphs("1\u00a0000", 10, 700, 10, 5),
			want:   []string{"1 000"},
		},
		{
			name:   "font size jump splits fragments",
			glyphs: concat(glyphs("Big", 10, 700, 24, 12), glyphs("small", 46, 700, 8, 4)),
			want:   []string{"Big", "small"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := texts(buildFragments(tt.glyphs))
			if !equalStrings(got, tt.want) {
				t.Errorf("buildFragments() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildFragmentsBBox(t *testing.T) {
	frags := buildFragments(glyphs("abcd", 10, 700, 10, 5))
	if len(frags) != 1 {
		t.Fatalf("got %d fragments, want 1", len(frags))
	}

	f := frags[0]
	if f.BBox.X != 10 {
		t.Errorf("BBox.X = %v, want 10", f.BBox.X)
	}
	if f.BBox.Width != 20 {
		t.Errorf("BBox.Width = %v, want 20", f.BBox.Width)
	}
	if f.BBox.Height != 10 {
		t.Errorf("BBox.Height = %v, want 10", f.BBox.Height)
	}
	if f.BBox.Y != 698 {
		t.Errorf("BBox.Y = %v, want 698", f.BBox.Y)
	}
	if f.Baseline != 700 {
		t.Errorf("Baseline = %v, want 700", f.Baseline)
	}
	if f.FontName != "Helvetica" || f.FontSize != 10 {
		t.Errorf("font = %s %v, want Helvetica 10", f.FontName, f.FontSize)
	}
}

func TestBuildFragmentsEstimatedWidth(t *testing.T) {
	frags := buildFragments(glyphs("abcd", 10, 700, 10, 0))
	if len(frags) != 1 {
		t.Fatalf("got %d fragments, want 1", len(frags))
	}
	// four glyphs at half an em each
	if frags[0].BBox.Width != 20 {
		t.Errorf("BBox.Width = %v, want 20", frags[0].BBox.Width)
	}
}

func TestBuildFragmentsZeroFontSize(t *testing.T) {
	frags := buildFragments(glyphs("x", 10, 700, 0, 0))
	if len(frags) != 1 {
		t.Fatalf("got %d fragments, want 1", len(frags))
	}
	if frags[0].FontSize != defaultFontSize {
		t.Errorf("FontSize = %v, want %v", frags[0].FontSize, defaultFontSize)
	}
}
