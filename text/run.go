package text

import (
	"strings"

	"github.com/tsawler/stylus/font"
	"github.com/tsawler/stylus/model"
)

// Styles is a bit set of styling flags carried by a run. Bold and
// italic select the font variant; the remaining flags drive decoration
// overlays and baseline shifts during drawing.
type Styles uint16

const (
	StyleBold Styles = 1 << iota
	StyleItalic
	StyleUnderline
	StyleStrikethrough
	StyleSubscript
	StyleSuperscript
)

// Has reports whether all bits of other are set.
func (s Styles) Has(other Styles) bool {
	return s&other == other
}

// FontStyle maps the bold and italic bits to a font variant selector.
func (s Styles) FontStyle() font.Style {
	var fs font.Style
	if s.Has(StyleBold) {
		fs |= font.Bold
	}
	if s.Has(StyleItalic) {
		fs |= font.Italic
	}
	return fs
}

// String returns the set flags as a comma-separated list.
func (s Styles) String() string {
	if s == 0 {
		return "none"
	}

	var parts []string
	flags := []struct {
		bit  Styles
		name string
	}{
		{StyleBold, "bold"},
		{StyleItalic, "italic"},
		{StyleUnderline, "underline"},
		{StyleStrikethrough, "strikethrough"},
		{StyleSubscript, "subscript"},
		{StyleSuperscript, "superscript"},
	}
	for _, f := range flags {
		if s.Has(f.bit) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, ",")
}

// Run is a maximal span of text sharing one style set before wrapping.
// Zero-valued fields inherit from the enclosing box and document.
type Run struct {
	// Text is the run's content. Newlines force line breaks.
	Text string

	// Styles is the set of styling flags applied to the whole run.
	Styles Styles

	// Font overrides the box's font family when non-empty.
	Font string

	// Size overrides the box's font size when non-zero.
	Size float64

	// CharSpacing overrides the box's character spacing when non-nil.
	CharSpacing *float64

	// Color overrides the document's fill color when non-nil.
	Color *model.Color

	// Link is an external URI the drawn text links to.
	Link string

	// Anchor is the name of an internal destination the drawn text
	// links to.
	Anchor string

	// Callbacks are arbitrary values consulted while drawing. A value
	// implementing [BehindPainter] paints before the glyphs, one
	// implementing [FrontPainter] paints after.
	Callbacks []any
}

// IsEmpty reports whether the run carries no text.
func (r Run) IsEmpty() bool {
	return r.Text == ""
}

// Text joins the text of a slice of runs.
func Text(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// CloneRuns returns a copy of the slice. Run values are copied
// shallowly; runs are treated as immutable once handed to a box, so a
// slice copy is enough to keep later renders from observing caller
// mutations of the slice itself.
func CloneRuns(runs []Run) []Run {
	if runs == nil {
		return nil
	}
	out := make([]Run, len(runs))
	copy(out, runs)
	return out
}
