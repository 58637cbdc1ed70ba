package graphicsstate

import (
	"fmt"

	"github.com/tsawler/stylus/model"
)

// RenderMode selects how glyph outlines are painted (Tr operator).
type RenderMode int

const (
	ModeFill RenderMode = iota
	ModeStroke
	ModeFillStroke
	ModeInvisible
	ModeFillClip
	ModeStrokeClip
	ModeFillStrokeClip
	ModeClip
)

// String returns a string representation of the render mode.
func (m RenderMode) String() string {
	switch m {
	case ModeFill:
		return "fill"
	case ModeStroke:
		return "stroke"
	case ModeFillStroke:
		return "fill_stroke"
	case ModeInvisible:
		return "invisible"
	case ModeFillClip:
		return "fill_clip"
	case ModeStrokeClip:
		return "stroke_clip"
	case ModeFillStrokeClip:
		return "fill_stroke_clip"
	case ModeClip:
		return "clip"
	default:
		return "unknown"
	}
}

// Valid reports whether the mode is one of the eight PDF text
// rendering modes.
func (m RenderMode) Valid() bool {
	return m >= ModeFill && m <= ModeClip
}

// ParseRenderMode parses a render mode name as used by box options.
func ParseRenderMode(name string) (RenderMode, bool) {
	switch name {
	case "fill":
		return ModeFill, true
	case "stroke":
		return ModeStroke, true
	case "fill_stroke":
		return ModeFillStroke, true
	case "invisible":
		return ModeInvisible, true
	case "fill_clip":
		return ModeFillClip, true
	case "stroke_clip":
		return ModeStrokeClip, true
	case "fill_stroke_clip":
		return ModeFillStrokeClip, true
	case "clip":
		return ModeClip, true
	default:
		return ModeFill, false
	}
}

// TextState holds the text-specific parameters a render pass mutates.
type TextState struct {
	// Font and size (Tf operator)
	FontName string
	FontSize float64

	// Character and word spacing (Tc, Tw operators)
	CharSpacing float64
	WordSpacing float64

	// Leading (TL operator)
	Leading float64

	// Rendering mode (Tr operator)
	Mode RenderMode

	// Text rise (Ts operator), used for subscript and superscript
	Rise float64
}

// GraphicsState tracks the drawing parameters a document applies while
// placing text, together with the save/restore stack that scopes every
// mutation a render pass makes.
type GraphicsState struct {
	// Current Transformation Matrix
	CTM model.Matrix

	// Text state
	Text TextState

	// Line attributes for decoration strokes
	LineWidth float64

	// Colors
	StrokeColor model.Color
	FillColor   model.Color

	// Save/restore stack (q/Q operators)
	stack []*GraphicsState
}

// New creates a graphics state with default values.
func New() *GraphicsState {
	return &GraphicsState{
		CTM:         model.Identity(),
		LineWidth:   1.0,
		StrokeColor: model.Black,
		FillColor:   model.Black,
		Text: TextState{
			FontSize: 12.0,
		},
	}
}

// Clone creates a deep copy of the graphics state. The stack itself is
// not copied; clones start with an empty stack.
func (gs *GraphicsState) Clone() *GraphicsState {
	return &GraphicsState{
		CTM:         gs.CTM,
		LineWidth:   gs.LineWidth,
		StrokeColor: gs.StrokeColor,
		FillColor:   gs.FillColor,
		Text:        gs.Text,
	}
}

// Save pushes the current graphics state onto the stack (q operator).
func (gs *GraphicsState) Save() {
	gs.stack = append(gs.stack, gs.Clone())
}

// Restore pops a graphics state from the stack (Q operator).
func (gs *GraphicsState) Restore() error {
	if len(gs.stack) == 0 {
		return fmt.Errorf("graphics state stack underflow")
	}

	saved := gs.stack[len(gs.stack)-1]
	gs.stack = gs.stack[:len(gs.stack)-1]

	gs.CTM = saved.CTM
	gs.LineWidth = saved.LineWidth
	gs.StrokeColor = saved.StrokeColor
	gs.FillColor = saved.FillColor
	gs.Text = saved.Text

	return nil
}

// Depth returns the number of saved states on the stack.
func (gs *GraphicsState) Depth() int {
	return len(gs.stack)
}

// Scoped runs fn between a Save and a Restore, so any state mutation
// fn performs is rolled back on every exit path, including errors.
func (gs *GraphicsState) Scoped(fn func() error) error {
	gs.Save()
	err := fn()
	if rerr := gs.Restore(); rerr != nil && err == nil {
		err = rerr
	}
	return err
}

// Transform applies a transformation matrix to the CTM (cm operator).
func (gs *GraphicsState) Transform(m model.Matrix) {
	gs.CTM = gs.CTM.Multiply(m)
}

// RotateAbout rotates the CTM by angle radians about the pivot point.
func (gs *GraphicsState) RotateAbout(angle float64, pivot model.Point) {
	gs.Transform(model.RotateAround(angle, pivot))
}

// SetLineWidth sets the line width (w operator).
func (gs *GraphicsState) SetLineWidth(width float64) {
	gs.LineWidth = width
}

// SetStrokeColor sets the stroke color (RG operator).
func (gs *GraphicsState) SetStrokeColor(c model.Color) {
	gs.StrokeColor = c
}

// SetFillColor sets the fill color (rg operator).
func (gs *GraphicsState) SetFillColor(c model.Color) {
	gs.FillColor = c
}

// SetFont sets the current font and size (Tf operator).
func (gs *GraphicsState) SetFont(name string, size float64) {
	gs.Text.FontName = name
	gs.Text.FontSize = size
}

// SetFontSize changes the size while keeping the current font.
func (gs *GraphicsState) SetFontSize(size float64) {
	gs.Text.FontSize = size
}

// SetCharSpacing sets character spacing (Tc operator).
func (gs *GraphicsState) SetCharSpacing(spacing float64) {
	gs.Text.CharSpacing = spacing
}

// SetWordSpacing sets word spacing (Tw operator).
func (gs *GraphicsState) SetWordSpacing(spacing float64) {
	gs.Text.WordSpacing = spacing
}

// SetLeading sets text leading (TL operator).
func (gs *GraphicsState) SetLeading(leading float64) {
	gs.Text.Leading = leading
}

// SetRenderMode sets the text rendering mode (Tr operator).
func (gs *GraphicsState) SetRenderMode(mode RenderMode) {
	gs.Text.Mode = mode
}

// SetRise sets the text rise (Ts operator).
func (gs *GraphicsState) SetRise(rise float64) {
	gs.Text.Rise = rise
}
