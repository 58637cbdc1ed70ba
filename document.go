package stylus

import (
	"math"

	"github.com/tsawler/stylus/contentstream"
	"github.com/tsawler/stylus/font"
	"github.com/tsawler/stylus/graphicsstate"
	"github.com/tsawler/stylus/model"
	"github.com/tsawler/stylus/text"
	"github.com/tsawler/stylus/wrap"
)

// DocumentConfig holds the ambient defaults a document hands to every
// box that does not override them. Start from [DefaultDocumentConfig]
// and adjust; a zero-valued config disables kerning and carries no
// usable bounds.
type DocumentConfig struct {
	// Bounds is the writable region of the page, in points with the
	// origin at the lower left.
	Bounds model.BBox

	// FontFamily and FontSize are the initial font selection.
	FontFamily string
	FontSize   float64

	// Direction is the document's dominant text direction.
	Direction text.Direction

	// Kerning applies the faces' pair adjustments when measuring and
	// drawing.
	Kerning bool

	// Leading is extra vertical space between lines, in points.
	Leading float64

	// FallbackFonts are family names tried, in order, for code
	// points the selected font cannot render.
	FallbackFonts []string
}

// DefaultDocumentConfig returns the configuration of a US Letter page
// with 36 point margins, Helvetica at 12 points, left-to-right text
// and kerning enabled.
func DefaultDocumentConfig() DocumentConfig {
	return DocumentConfig{
		Bounds:     model.NewBBox(36, 36, 540, 720),
		FontFamily: "Helvetica",
		FontSize:   12,
		Direction:  text.LTR,
		Kerning:    true,
	}
}

// Document is the ambient context boxes render against: the font
// registry, the graphics state, the page bounds with a vertical
// cursor, and the canvas that receives draw operations.
//
// A document is not safe for concurrent use.
type Document struct {
	canvas Canvas
	fonts  *font.Collection
	state  *graphicsstate.GraphicsState

	bounds model.BBox
	cursor float64

	fontFamily    string
	fontStyle     font.Style
	direction     text.Direction
	kerning       bool
	fallbackFonts []string
}

var _ wrap.Measurer = (*Document)(nil)
var _ Canvas = (*contentstream.Recorder)(nil)

// NewDocument creates a document with [DefaultDocumentConfig]. A nil
// canvas records operations into a [contentstream.Recorder], available
// through [Document.Canvas].
func NewDocument(canvas Canvas) *Document {
	return NewDocumentWithConfig(canvas, DefaultDocumentConfig())
}

// NewDocumentWithConfig creates a document with the given
// configuration. A nil canvas records operations into a
// [contentstream.Recorder]. An empty font family, zero font size or
// empty bounds fall back to the defaults; the configured font must be
// registered or known as a builtin, otherwise the document starts on
// Helvetica.
func NewDocumentWithConfig(canvas Canvas, config DocumentConfig) *Document {
	if canvas == nil {
		canvas = contentstream.NewRecorder()
	}
	if config.Bounds.IsEmpty() {
		config.Bounds = DefaultDocumentConfig().Bounds
	}
	if config.FontFamily == "" {
		config.FontFamily = "Helvetica"
	}
	if config.FontSize <= 0 {
		config.FontSize = 12
	}
	if config.Direction == text.Neutral {
		config.Direction = text.LTR
	}

	d := &Document{
		canvas:        canvas,
		fonts:         font.NewCollection(),
		state:         graphicsstate.New(),
		bounds:        config.Bounds,
		cursor:        config.Bounds.Top(),
		direction:     config.Direction,
		kerning:       config.Kerning,
		fallbackFonts: append([]string(nil), config.FallbackFonts...),
	}
	d.state.SetLeading(config.Leading)

	if err := d.SetFont(config.FontFamily); err != nil {
		d.SetFont("Helvetica")
	}
	d.SetFontSize(config.FontSize)

	return d
}

// Canvas returns the canvas draw operations go to.
func (d *Document) Canvas() Canvas {
	return d.canvas
}

// Fonts returns the document's font registry for registering
// additional faces.
func (d *Document) Fonts() *font.Collection {
	return d.fonts
}

// State returns the document's graphics state.
func (d *Document) State() *graphicsstate.GraphicsState {
	return d.state
}

// Bounds returns the writable region of the page.
func (d *Document) Bounds() model.BBox {
	return d.bounds
}

// SetBounds replaces the writable region. The cursor is clamped into
// the new region.
func (d *Document) SetBounds(bounds model.BBox) {
	d.bounds = bounds
	if d.cursor > bounds.Top() || d.cursor < bounds.Bottom() {
		d.cursor = bounds.Top()
	}
}

// Cursor returns the y coordinate new content flows from.
func (d *Document) Cursor() float64 {
	return d.cursor
}

// SetCursor moves the cursor to an absolute y coordinate.
func (d *Document) SetCursor(y float64) {
	d.cursor = y
}

// MoveCursor moves the cursor down by dy points.
func (d *Document) MoveCursor(dy float64) {
	d.cursor -= dy
}

// Direction returns the document's dominant text direction.
func (d *Document) Direction() text.Direction {
	return d.direction
}

// SetDirection changes the document's dominant text direction.
// [text.Neutral] is ignored.
func (d *Document) SetDirection(dir text.Direction) {
	if dir == text.Neutral {
		return
	}
	d.direction = dir
}

// Kerning reports whether measurement and drawing apply pair
// adjustments.
func (d *Document) Kerning() bool {
	return d.kerning
}

// SetKerning toggles pair adjustments.
func (d *Document) SetKerning(enabled bool) {
	d.kerning = enabled
}

// FallbackFonts returns the families tried for uncovered code points.
func (d *Document) FallbackFonts() []string {
	return append([]string(nil), d.fallbackFonts...)
}

// SetFallbackFonts replaces the fallback families. Families are
// validated when a box resolves its content, not here.
func (d *Document) SetFallbackFonts(families ...string) {
	d.fallbackFonts = append([]string(nil), families...)
}

// Leading returns the document's default extra line spacing.
func (d *Document) Leading() float64 {
	return d.state.Text.Leading
}

// SetLeading changes the document's default extra line spacing.
func (d *Document) SetLeading(leading float64) {
	d.state.SetLeading(leading)
}

// Font returns the current font family.
func (d *Document) Font() string {
	return d.fontFamily
}

// FontStyle returns the current style bits.
func (d *Document) FontStyle() font.Style {
	return d.fontStyle
}

// SetFont selects the current font family and style. Multiple style
// arguments combine, so SetFont("Helvetica", font.Bold, font.Italic)
// selects Helvetica-BoldOblique. Returns ErrBadFontFamily when the
// family or its requested variant is not registered.
func (d *Document) SetFont(family string, styles ...font.Style) error {
	style := font.Regular
	for _, s := range styles {
		style |= s
	}

	face, err := d.fonts.Resolve(family, style)
	if err != nil {
		return err
	}

	d.fontFamily = family
	d.fontStyle = style
	d.state.SetFont(face.Name(), d.state.Text.FontSize)
	return nil
}

// FontSize returns the current font size in points.
func (d *Document) FontSize() float64 {
	return d.state.Text.FontSize
}

// SetFontSize changes the current font size.
func (d *Document) SetFontSize(size float64) {
	d.state.SetFontSize(size)
}

// Face resolves a family and style against the document's registry.
// An empty family resolves the document's current family. Face makes
// the document a [wrap.Measurer].
func (d *Document) Face(family string, style font.Style) (font.Face, error) {
	if family == "" {
		family = d.fontFamily
	}
	return d.fonts.Resolve(family, style)
}

// GlyphPresent reports whether the family's regular face covers the
// code point. Concrete face names such as "Helvetica-Bold" also
// resolve.
func (d *Document) GlyphPresent(family string, r rune) (bool, error) {
	face, err := d.Face(family, font.Regular)
	if err != nil {
		return false, err
	}
	return face.HasGlyph(r), nil
}

// Normalize transcodes text into the form the family's regular face
// is measured and drawn with.
func (d *Document) Normalize(family, s string) (string, error) {
	face, err := d.Face(family, font.Regular)
	if err != nil {
		return "", err
	}
	return face.Normalize(s), nil
}

// TextWidth measures a string in the family's regular face at the
// given size and character spacing.
func (d *Document) TextWidth(s, family string, size, charSpacing float64, kerning bool) (float64, error) {
	face, err := d.Face(family, font.Regular)
	if err != nil {
		return 0, err
	}
	return font.StringWidth(face, face.Normalize(s), size, charSpacing, kerning), nil
}

// FaceMetrics returns the family's regular face vertical metrics
// scaled to the given size.
func (d *Document) FaceMetrics(family string, size float64) (font.VMetrics, error) {
	face, err := d.Face(family, font.Regular)
	if err != nil {
		return font.VMetrics{}, err
	}
	return font.Metrics(face, size), nil
}

// DrawGlyphs places one styled span on the canvas. Zero-valued span
// fields inherit the corresponding graphics state parameters, so a
// span produced inside [Document.WithWordSpacing] picks up the scoped
// word spacing without carrying it explicitly.
func (d *Document) DrawGlyphs(span contentstream.TextSpan) error {
	ts := d.state.Text
	if span.Font == "" {
		span.Font = ts.FontName
	}
	if span.Size == 0 {
		span.Size = ts.FontSize
	}
	if span.CharSpacing == 0 {
		span.CharSpacing = ts.CharSpacing
	}
	if span.WordSpacing == 0 {
		span.WordSpacing = ts.WordSpacing
	}
	if span.Mode == graphicsstate.ModeFill {
		span.Mode = ts.Mode
	}
	if span.Rise == 0 {
		span.Rise = ts.Rise
	}
	if (span.Color == model.Color{}) {
		span.Color = d.state.FillColor
	}
	return d.canvas.DrawText(span)
}

// StrokeLine strokes a straight line on the canvas. A zero width or
// color inherits the graphics state's line width and stroke color.
func (d *Document) StrokeLine(from, to model.Point, width float64, color model.Color) error {
	if width == 0 {
		width = d.state.LineWidth
	}
	if (color == model.Color{}) {
		color = d.state.StrokeColor
	}
	return d.canvas.StrokeLine(contentstream.Line{
		From:  from,
		To:    to,
		Width: width,
		Color: color,
	})
}

// LinkAnnotation registers a clickable region pointing at a URI.
func (d *Document) LinkAnnotation(rect model.BBox, uri string) error {
	return d.canvas.LinkAnnotation(rect, uri)
}

// AddDestination registers a named position inside the document.
func (d *Document) AddDestination(name string, at model.Point) error {
	return d.canvas.AddDestination(name, at)
}

// WithFontSize runs fn with the font size changed, restoring the
// previous size on every exit path.
func (d *Document) WithFontSize(size float64, fn func() error) error {
	prev := d.state.Text.FontSize
	d.state.SetFontSize(size)
	defer d.state.SetFontSize(prev)
	return fn()
}

// WithCharSpacing runs fn with the character spacing changed,
// restoring the previous spacing on every exit path.
func (d *Document) WithCharSpacing(spacing float64, fn func() error) error {
	prev := d.state.Text.CharSpacing
	d.state.SetCharSpacing(spacing)
	defer d.state.SetCharSpacing(prev)
	return fn()
}

// WithWordSpacing runs fn with the word spacing changed, restoring the
// previous spacing on every exit path.
func (d *Document) WithWordSpacing(spacing float64, fn func() error) error {
	prev := d.state.Text.WordSpacing
	d.state.SetWordSpacing(spacing)
	defer d.state.SetWordSpacing(prev)
	return fn()
}

// WithRenderMode runs fn with the text render mode changed, restoring
// the previous mode on every exit path.
func (d *Document) WithRenderMode(mode graphicsstate.RenderMode, fn func() error) error {
	prev := d.state.Text.Mode
	d.state.SetRenderMode(mode)
	defer d.state.SetRenderMode(prev)
	return fn()
}

// WithRotation runs fn inside a canvas transform rotated by degrees
// counterclockwise about the pivot. The transform is scoped by a
// save/restore pair on both the canvas and the graphics state and is
// unwound on every exit path. A zero angle runs fn directly.
func (d *Document) WithRotation(degrees float64, pivot model.Point, fn func() error) error {
	if degrees == 0 {
		return fn()
	}

	if err := d.canvas.SaveState(); err != nil {
		return err
	}
	d.state.Save()
	defer func() {
		d.state.Restore()
		d.canvas.RestoreState()
	}()

	m := model.RotateAround(degrees*math.Pi/180, pivot)
	d.state.Transform(m)
	if err := d.canvas.ConcatMatrix(m); err != nil {
		return err
	}
	return fn()
}
