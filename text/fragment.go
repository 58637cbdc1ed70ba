package text

import (
	"github.com/tsawler/stylus/model"
)

// BehindPainter is implemented by run callbacks that paint underneath
// a fragment's glyphs, such as highlight rectangles.
type BehindPainter interface {
	PaintBehind(f *Fragment) error
}

// FrontPainter is implemented by run callbacks that paint on top of a
// fragment's glyphs.
type FrontPainter interface {
	PaintInFront(f *Fragment) error
}

// Fragment is a positioned, single-font slice of a run produced by the
// wrap engine, ready to draw. Fragments live for one render pass and
// are recomputed on the next.
type Fragment struct {
	// Text is the fragment's content after font normalization.
	Text string

	// FontName is the concrete face the fragment is drawn with, e.g.
	// "Helvetica-Bold".
	FontName string

	// Styles are the styling flags inherited from the source run.
	Styles Styles

	// Size is the effective font size. Subscript and superscript
	// fragments carry the already-reduced size.
	Size float64

	// CharSpacing is the effective character spacing.
	CharSpacing float64

	// Color is the fill color, nil to use the document's current one.
	Color *model.Color

	// Link and Anchor carry annotation targets from the source run.
	Link   string
	Anchor string

	// Callbacks are the source run's callback values.
	Callbacks []any

	// Width is the measured advance width at the effective size.
	Width float64

	// Ascent and Descent are the face's vertical metrics scaled to
	// the effective size. Descent is a positive magnitude.
	Ascent  float64
	Descent float64

	// YOffset is the baseline shift for subscript and superscript
	// fragments.
	YOffset float64

	// Left and Baseline are the fragment's final draw position,
	// assigned during the draw pass.
	Left     float64
	Baseline float64
}

// Top is the y coordinate of the fragment's ascent line.
func (f *Fragment) Top() float64 {
	return f.Baseline + f.Ascent
}

// Bottom is the y coordinate of the fragment's descent line.
func (f *Fragment) Bottom() float64 {
	return f.Baseline - f.Descent
}

// Right is the x coordinate of the fragment's right edge.
func (f *Fragment) Right() float64 {
	return f.Left + f.Width
}

// UnderlinePoints returns the endpoints of the fragment's underline,
// drawn 1.25 units below the baseline.
func (f *Fragment) UnderlinePoints() (model.Point, model.Point) {
	y := f.Baseline - 1.25
	return model.Point{X: f.Left, Y: y}, model.Point{X: f.Right(), Y: y}
}

// StrikethroughPoints returns the endpoints of the fragment's
// strikethrough, drawn a third of the ascent above the baseline.
func (f *Fragment) StrikethroughPoints() (model.Point, model.Point) {
	y := f.Baseline + f.Ascent/3
	return model.Point{X: f.Left, Y: y}, model.Point{X: f.Right(), Y: y}
}

// BoundingBox returns the fragment's extent from descent line to
// ascent line. Link annotations use this rectangle.
func (f *Fragment) BoundingBox() model.BBox {
	return model.BBox{
		X:      f.Left,
		Y:      f.Bottom(),
		Width:  f.Width,
		Height: f.Ascent + f.Descent,
	}
}

// SpaceCount returns the number of space characters in the fragment.
// Justified alignment distributes extra width across them.
func (f *Fragment) SpaceCount() int {
	n := 0
	for _, r := range f.Text {
		if r == ' ' {
			n++
		}
	}
	return n
}
