package font

import "fmt"

// Style is a bit set of typographic variants. Combined with a family
// name it resolves to a concrete face, e.g. Helvetica + Bold|Italic
// resolves to "Helvetica-BoldOblique".
type Style uint8

const (
	Bold Style = 1 << iota
	Italic
)

// Regular is the empty style set.
const Regular Style = 0

// Has reports whether all bits of other are set.
func (s Style) Has(other Style) bool {
	return s&other == other
}

// String returns a string representation of the style.
func (s Style) String() string {
	switch {
	case s.Has(Bold | Italic):
		return "bold_italic"
	case s.Has(Bold):
		return "bold"
	case s.Has(Italic):
		return "italic"
	default:
		return "normal"
	}
}

// ParseStyle parses a style name as used by inline markup and box
// options.
func ParseStyle(name string) (Style, error) {
	switch name {
	case "", "normal", "regular":
		return Regular, nil
	case "bold":
		return Bold, nil
	case "italic", "oblique":
		return Italic, nil
	case "bold_italic", "bold-italic", "bolditalic":
		return Bold | Italic, nil
	default:
		return Regular, fmt.Errorf("unknown font style %q", name)
	}
}

// Face provides the metrics and coverage queries the layout engine
// needs from a font. All linear measurements are in thousandths of an
// em, so scaling to a font size is measurement * size / 1000.
type Face interface {
	// Name returns the concrete face name, e.g. "Helvetica-Bold".
	Name() string

	// HasGlyph reports whether the face can render the code point.
	HasGlyph(r rune) bool

	// GlyphWidth returns the advance width of the code point.
	GlyphWidth(r rune) float64

	// Kern returns the kerning adjustment between two code points.
	// Negative values pull the pair closer. Faces without kerning
	// data return 0.
	Kern(prev, next rune) float64

	// Ascent, Descent and LineGap are the face's vertical metrics.
	// Descent is a positive magnitude.
	Ascent() float64
	Descent() float64
	LineGap() float64

	// Normalize transcodes text into the form the face is measured
	// and drawn with.
	Normalize(s string) string
}

// VMetrics holds a face's vertical metrics scaled to a font size.
type VMetrics struct {
	Ascent  float64
	Descent float64
	LineGap float64

	// Height is the recommended baseline-to-baseline distance:
	// Ascent + Descent + LineGap.
	Height float64
}

// Metrics scales a face's vertical metrics to the given size.
func Metrics(f Face, size float64) VMetrics {
	scale := size / 1000.0
	m := VMetrics{
		Ascent:  f.Ascent() * scale,
		Descent: f.Descent() * scale,
		LineGap: f.LineGap() * scale,
	}
	m.Height = m.Ascent + m.Descent + m.LineGap
	return m
}

// StringWidth measures a string at the given size, including character
// spacing between and after glyphs and, when kerning is enabled, the
// face's pair adjustments.
func StringWidth(f Face, s string, size, charSpacing float64, kerning bool) float64 {
	var units float64
	var prev rune
	var n int

	for _, r := range s {
		units += f.GlyphWidth(r)
		if kerning && n > 0 {
			units += f.Kern(prev, r)
		}
		prev = r
		n++
	}

	return units*size/1000.0 + float64(n)*charSpacing
}
