// Package fpdfcanvas draws stylus layout output on a PDF document
// produced with codeberg.org/go-pdf/fpdf. The adapter converts between
// the PDF coordinate space stylus works in, with the origin at the
// lower left and y growing upward, and fpdf's upper-left origin.
//
// The fpdf document must use point units, since stylus measures
// everything in points. Faces beyond the Standard 14 need a mapping
// registered with [Canvas.RegisterFace] after loading the font into
// fpdf, typically with AddUTF8Font.
package fpdfcanvas

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"codeberg.org/go-pdf/fpdf"

	"github.com/tsawler/stylus/contentstream"
	"github.com/tsawler/stylus/graphicsstate"
	"github.com/tsawler/stylus/model"
)

// faceRef is the fpdf family and style string a face name maps to.
type faceRef struct {
	family string
	style  string
}

// standardFaces maps the Standard 14 face names to fpdf's built-in
// core fonts.
var standardFaces = map[string]faceRef{
	"Helvetica":             {"Helvetica", ""},
	"Helvetica-Bold":        {"Helvetica", "B"},
	"Helvetica-Oblique":     {"Helvetica", "I"},
	"Helvetica-BoldOblique": {"Helvetica", "BI"},
	"Courier":               {"Courier", ""},
	"Courier-Bold":          {"Courier", "B"},
	"Courier-Oblique":       {"Courier", "I"},
	"Courier-BoldOblique":   {"Courier", "BI"},
	"Times-Roman":           {"Times", ""},
	"Times-Bold":            {"Times", "B"},
	"Times-Italic":          {"Times", "I"},
	"Times-BoldItalic":      {"Times", "BI"},
	"Symbol":                {"Symbol", ""},
	"ZapfDingbats":          {"ZapfDingbats", ""},
}

// Canvas adapts an fpdf document to the stylus canvas contract. Pages
// and final output stay under the caller's control; the canvas only
// draws on whatever page is current.
//
// Subscript and superscript rises are folded into the baseline
// position, and character or word spacing is applied by placing text
// piecewise with fpdf's own metrics. Render modes other than plain
// fill are drawn as fill, which fpdf does not distinguish.
type Canvas struct {
	pdf     *fpdf.Fpdf
	faces   map[string]faceRef
	anchors map[string]int
}

// New creates a canvas over an fpdf document. The Standard 14 face
// names come pre-mapped to fpdf's core fonts.
func New(pdf *fpdf.Fpdf) *Canvas {
	c := &Canvas{
		pdf:     pdf,
		faces:   make(map[string]faceRef, len(standardFaces)),
		anchors: make(map[string]int),
	}
	for name, ref := range standardFaces {
		c.faces[name] = ref
	}
	return c
}

// RegisterFace maps a stylus face name to an fpdf family and style
// string, as passed to SetFont. The font itself must already be known
// to fpdf. Registering an existing name replaces its mapping.
func (c *Canvas) RegisterFace(name, family, style string) {
	c.faces[name] = faceRef{family: family, style: style}
}

// DrawText places one styled span of glyphs. Invisible-mode spans are
// skipped; the remaining render modes paint as fill, which is the only
// mode fpdf's text API exposes.
func (c *Canvas) DrawText(span contentstream.TextSpan) error {
	ref, ok := c.faces[span.Font]
	if !ok {
		return fmt.Errorf("fpdfcanvas: no fpdf font mapped for face %q", span.Font)
	}
	if span.Mode == graphicsstate.ModeInvisible {
		return nil
	}
	c.pdf.SetFont(ref.family, ref.style, span.Size)
	c.pdf.SetTextColor(span.Color.RGB255())

	y := c.flip(span.At.Y + span.Rise)
	if span.CharSpacing == 0 && span.WordSpacing == 0 {
		c.pdf.Text(span.At.X, y, span.Text)
		return c.pdf.Error()
	}
	c.drawSpaced(span, y)
	return c.pdf.Error()
}

// drawSpaced places a span piecewise so extra character or word
// spacing lands between fpdf's glyphs the same way it was measured.
// Character spacing forces glyph-at-a-time placement; word spacing
// alone splits at spaces only.
func (c *Canvas) drawSpaced(span contentstream.TextSpan, y float64) {
	perGlyph := span.CharSpacing != 0
	x := span.At.X

	var piece strings.Builder
	flush := func() {
		if piece.Len() == 0 {
			return
		}
		s := piece.String()
		c.pdf.Text(x, y, s)
		x += c.pdf.GetStringWidth(s) + span.CharSpacing*float64(utf8.RuneCountInString(s))
		piece.Reset()
	}

	for _, r := range span.Text {
		switch {
		case r == ' ':
			flush()
			x += c.pdf.GetStringWidth(" ") + span.CharSpacing + span.WordSpacing
		case perGlyph:
			flush()
			piece.WriteRune(r)
		default:
			piece.WriteRune(r)
		}
	}
	flush()
}

// StrokeLine strokes a straight line. The stylus document resolves
// width and color before the line reaches the canvas.
func (c *Canvas) StrokeLine(line contentstream.Line) error {
	c.pdf.SetLineWidth(line.Width)
	c.pdf.SetDrawColor(line.Color.RGB255())
	c.pdf.Line(line.From.X, c.flip(line.From.Y), line.To.X, c.flip(line.To.Y))
	return c.pdf.Error()
}

// SaveState opens an fpdf transformation context. Stylus brackets
// every rotated box in a save, one matrix, and a restore, which is
// exactly fpdf's TransformBegin/TransformEnd protocol.
func (c *Canvas) SaveState() error {
	c.pdf.TransformBegin()
	return c.pdf.Error()
}

// RestoreState closes the transformation context opened by the
// matching SaveState.
func (c *Canvas) RestoreState() error {
	c.pdf.TransformEnd()
	return c.pdf.Error()
}

// ConcatMatrix applies a transformation inside the open context. fpdf
// exposes named transforms rather than raw matrices, so the matrix is
// recognized as a rotation about a pivot or a pure translation; any
// other shape is an error. Rotated text boxes only ever emit the
// former.
func (c *Canvas) ConcatMatrix(m model.Matrix) error {
	if m.IsIdentity() {
		return c.pdf.Error()
	}
	if angle, pivot, ok := rotationAbout(m); ok {
		c.pdf.TransformRotate(angle, pivot.X, c.flip(pivot.Y))
		return c.pdf.Error()
	}
	if dx, dy, ok := translation(m); ok {
		c.pdf.TransformTranslate(dx, -dy)
		return c.pdf.Error()
	}
	return fmt.Errorf("fpdfcanvas: matrix %v is neither a rotation nor a translation", m)
}

// LinkAnnotation registers a clickable region. A URI of the form
// "#name" becomes an internal jump to the destination registered under
// that name, in either order; anything else is an external URI link.
func (c *Canvas) LinkAnnotation(rect model.BBox, uri string) error {
	x, y := rect.Left(), c.flip(rect.Top())
	if name, ok := strings.CutPrefix(uri, "#"); ok {
		c.pdf.Link(x, y, rect.Width, rect.Height, c.anchor(name))
	} else {
		c.pdf.LinkString(x, y, rect.Width, rect.Height, uri)
	}
	return c.pdf.Error()
}

// AddDestination registers a named position on the current page.
func (c *Canvas) AddDestination(name string, at model.Point) error {
	c.pdf.SetLink(c.anchor(name), c.flip(at.Y), c.pdf.PageNo())
	return c.pdf.Error()
}

// anchor returns the fpdf link id for a destination name, minting one
// on first use so links and destinations can arrive in any order.
func (c *Canvas) anchor(name string) int {
	id, ok := c.anchors[name]
	if !ok {
		id = c.pdf.AddLink()
		c.anchors[name] = id
	}
	return id
}

// flip converts a y coordinate between the lower-left origin stylus
// uses and fpdf's upper-left origin on the current page size.
func (c *Canvas) flip(y float64) float64 {
	_, h := c.pdf.GetPageSize()
	return h - y
}

const matrixTolerance = 1e-9

// rotationAbout recognizes a rotation matrix and recovers its angle in
// degrees and the fixed pivot point. Angles too close to zero report
// false, since the pivot is then numerically meaningless; such
// matrices are translations.
func rotationAbout(m model.Matrix) (angle float64, pivot model.Point, ok bool) {
	cos, sin := m[0], m[1]
	if math.Abs(m[2]+sin) > matrixTolerance || math.Abs(m[3]-cos) > matrixTolerance {
		return 0, model.Point{}, false
	}
	if math.Abs(cos*cos+sin*sin-1) > matrixTolerance {
		return 0, model.Point{}, false
	}

	// For a rotation about p, the offset column is
	//   e = (1-cos)*p.x + sin*p.y
	//   f = -sin*p.x + (1-cos)*p.y
	// which inverts with determinant 2*(1-cos).
	u := 1 - cos
	det := 2 * u
	if det < matrixTolerance {
		return 0, model.Point{}, false
	}
	pivot = model.Point{
		X: (u*m[4] - sin*m[5]) / det,
		Y: (sin*m[4] + u*m[5]) / det,
	}
	return math.Atan2(sin, cos) * 180 / math.Pi, pivot, true
}

// translation recognizes a pure translation matrix.
func translation(m model.Matrix) (dx, dy float64, ok bool) {
	if math.Abs(m[0]-1) > matrixTolerance || math.Abs(m[3]-1) > matrixTolerance {
		return 0, 0, false
	}
	if math.Abs(m[1]) > matrixTolerance || math.Abs(m[2]) > matrixTolerance {
		return 0, 0, false
	}
	return m[4], m[5], true
}
