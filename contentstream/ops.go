package contentstream

import (
	"fmt"
	"strings"

	"github.com/tsawler/stylus/graphicsstate"
	"github.com/tsawler/stylus/model"
)

// Op represents a single recorded drawing operation.
type Op interface {
	Kind() OpKind
	String() string
}

// OpKind represents the type of drawing operation.
type OpKind int

const (
	OpText OpKind = iota
	OpLine
	OpSave
	OpRestore
	OpTransform
	OpLink
	OpDestination
)

// String returns the string representation of the operation kind.
func (k OpKind) String() string {
	switch k {
	case OpText:
		return "Text"
	case OpLine:
		return "Line"
	case OpSave:
		return "Save"
	case OpRestore:
		return "Restore"
	case OpTransform:
		return "Transform"
	case OpLink:
		return "Link"
	case OpDestination:
		return "Destination"
	default:
		return "Unknown"
	}
}

// TextSpan is one run of glyphs placed at a baseline position with a
// single font, size, and set of text state parameters. Spans are the
// unit a canvas draws; a wrapped line becomes one span per fragment.
type TextSpan struct {
	// At is the baseline origin of the first glyph.
	At model.Point

	// Text is the span's content, already normalized for the face.
	Text string

	// Font is the concrete face name, e.g. "Helvetica-Bold".
	Font string

	// Size is the font size in points.
	Size float64

	// CharSpacing and WordSpacing are the Tc and Tw parameters.
	CharSpacing float64
	WordSpacing float64

	// Rise shifts the baseline for subscript and superscript (Ts).
	Rise float64

	// Mode is the glyph painting mode (Tr).
	Mode graphicsstate.RenderMode

	// Color is the fill color the glyphs are painted with.
	Color model.Color

	// Kerning records whether pair adjustments were applied when the
	// span was measured.
	Kerning bool
}

// Kind returns OpText.
func (s TextSpan) Kind() OpKind { return OpText }

// String returns the span serialized as a content stream text object.
func (s TextSpan) String() string {
	w := NewWriter()
	w.Text(s)
	return strings.TrimSuffix(w.String(), "\n")
}

// Line is a stroked line segment. Underlines and strikethroughs are
// drawn as Lines.
type Line struct {
	From  model.Point
	To    model.Point
	Width float64
	Color model.Color
}

// Kind returns OpLine.
func (l Line) Kind() OpKind { return OpLine }

// String returns the line serialized as content stream operators.
func (l Line) String() string {
	w := NewWriter()
	w.Line(l)
	return strings.TrimSuffix(w.String(), "\n")
}

// Save pushes the graphics state (q).
type Save struct{}

// Kind returns OpSave.
func (Save) Kind() OpKind { return OpSave }

// String returns the q operator.
func (Save) String() string { return "q" }

// Restore pops the graphics state (Q).
type Restore struct{}

// Kind returns OpRestore.
func (Restore) Kind() OpKind { return OpRestore }

// String returns the Q operator.
func (Restore) String() string { return "Q" }

// Transform concatenates a matrix onto the CTM (cm).
type Transform struct {
	Matrix model.Matrix
}

// Kind returns OpTransform.
func (t Transform) Kind() OpKind { return OpTransform }

// String returns the cm operator with its six operands.
func (t Transform) String() string {
	w := NewWriter()
	w.Transform(t.Matrix)
	return strings.TrimSuffix(w.String(), "\n")
}

// Link is a URI link annotation covering a rectangle. Annotations live
// outside the content stream, so Link has no operator form.
type Link struct {
	Rect model.BBox
	URI  string
}

// Kind returns OpLink.
func (l Link) Kind() OpKind { return OpLink }

// String returns a readable description of the annotation.
func (l Link) String() string {
	return fmt.Sprintf("link %s [%s %s %s %s]", l.URI,
		formatNumber(l.Rect.Left()), formatNumber(l.Rect.Bottom()),
		formatNumber(l.Rect.Right()), formatNumber(l.Rect.Top()))
}

// Destination is a named position in the document that links can jump
// to. Like Link, it has no content stream operator form.
type Destination struct {
	Name string
	At   model.Point
}

// Kind returns OpDestination.
func (d Destination) Kind() OpKind { return OpDestination }

// String returns a readable description of the destination.
func (d Destination) String() string {
	return fmt.Sprintf("dest %s (%s,%s)", d.Name,
		formatNumber(d.At.X), formatNumber(d.At.Y))
}
