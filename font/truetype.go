package font

import (
	"fmt"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Metrics are queried at 1000 pixels per em so the fixed-point values
// sfnt returns are already in thousandths of an em.
const metricsPPEM = fixed.Int26_6(1000 << 6)

// TrueTypeFont wraps a parsed TrueType or OpenType font for layout
// queries. Glyph coverage, advances and kerning come from the font
// program itself, so fallback decisions are exact rather than
// repertoire-based.
//
// A TrueTypeFont keeps an internal sfnt work buffer and is not safe
// for concurrent use, matching the single-threaded render model.
type TrueTypeFont struct {
	name string
	data []byte
	fnt  *sfnt.Font
	buf  sfnt.Buffer

	ascent  float64
	descent float64
	lineGap float64
}

// ParseTrueType parses font program data (TTF or OTF) into a face
// registered under the given name.
func ParseTrueType(name string, data []byte) (*TrueTypeFont, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %q: %w", name, err)
	}

	t := &TrueTypeFont{
		name: name,
		data: data,
		fnt:  f,
	}

	m, err := f.Metrics(&t.buf, metricsPPEM, xfont.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("reading metrics for %q: %w", name, err)
	}

	t.ascent = fromFixed(m.Ascent)
	t.descent = fromFixed(m.Descent)
	t.lineGap = fromFixed(m.Height) - t.ascent - t.descent
	if t.lineGap < 0 {
		t.lineGap = 0
	}

	return t, nil
}

// Name returns the name the face was registered under.
func (t *TrueTypeFont) Name() string { return t.name }

// Data returns the raw font program, as needed for embedding by
// drawing backends.
func (t *TrueTypeFont) Data() []byte { return t.data }

// HasGlyph reports whether the font maps the code point to a real
// glyph. Glyph index 0 is .notdef.
func (t *TrueTypeFont) HasGlyph(r rune) bool {
	gi, err := t.fnt.GlyphIndex(&t.buf, r)
	return err == nil && gi != 0
}

// GlyphWidth returns the advance width of the code point in 1000ths of
// em. Unmapped code points report the .notdef advance.
func (t *TrueTypeFont) GlyphWidth(r rune) float64 {
	gi, err := t.fnt.GlyphIndex(&t.buf, r)
	if err != nil {
		return 500.0
	}

	adv, err := t.fnt.GlyphAdvance(&t.buf, gi, metricsPPEM, xfont.HintingNone)
	if err != nil {
		return 500.0
	}
	return fromFixed(adv)
}

// Kern returns the kerning adjustment between two code points in
// 1000ths of em, negative when the pair closes up.
func (t *TrueTypeFont) Kern(prev, next rune) float64 {
	g0, err := t.fnt.GlyphIndex(&t.buf, prev)
	if err != nil || g0 == 0 {
		return 0
	}
	g1, err := t.fnt.GlyphIndex(&t.buf, next)
	if err != nil || g1 == 0 {
		return 0
	}

	k, err := t.fnt.Kern(&t.buf, g0, g1, metricsPPEM, xfont.HintingNone)
	if err != nil {
		// Fonts without a kern table land here.
		return 0
	}
	return fromFixed(k)
}

func (t *TrueTypeFont) Ascent() float64  { return t.ascent }
func (t *TrueTypeFont) Descent() float64 { return t.descent }
func (t *TrueTypeFont) LineGap() float64 { return t.lineGap }

// Normalize puts text into NFC form; TrueType cmaps are indexed by
// composed code points.
func (t *TrueTypeFont) Normalize(s string) string {
	return NormalizeText(s)
}

// fromFixed converts a 26.6 fixed-point value to float64.
func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
