package contentstream

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tsawler/stylus/graphicsstate"
	"github.com/tsawler/stylus/model"
)

// Writer serializes drawing operations into content stream operator
// text, one operator per line. The output is the raw operator form
// (`BT /Helvetica 12 Tf 72 700 Td (Hi) Tj ET`), useful for golden
// comparisons and for inspecting exactly what a render pass emitted.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// op writes one operator line.
func (w *Writer) op(parts ...string) {
	w.buf.WriteString(strings.Join(parts, " "))
	w.buf.WriteByte('\n')
}

// BeginText starts a text object (BT).
func (w *Writer) BeginText() {
	w.op("BT")
}

// EndText ends a text object (ET).
func (w *Writer) EndText() {
	w.op("ET")
}

// SetFont selects a face and size (Tf).
func (w *Writer) SetFont(name string, size float64) {
	w.op("/"+escapeName(name), formatNumber(size), "Tf")
}

// MoveTo positions the text cursor (Td). Inside a fresh text object
// the offset is absolute.
func (w *Writer) MoveTo(p model.Point) {
	w.op(formatNumber(p.X), formatNumber(p.Y), "Td")
}

// ShowText paints a string at the text cursor (Tj).
func (w *Writer) ShowText(s string) {
	w.op("("+escapeString(s)+")", "Tj")
}

// SetCharSpacing sets character spacing (Tc).
func (w *Writer) SetCharSpacing(v float64) {
	w.op(formatNumber(v), "Tc")
}

// SetWordSpacing sets word spacing (Tw).
func (w *Writer) SetWordSpacing(v float64) {
	w.op(formatNumber(v), "Tw")
}

// SetRenderMode sets the glyph painting mode (Tr).
func (w *Writer) SetRenderMode(m graphicsstate.RenderMode) {
	w.op(strconv.Itoa(int(m)), "Tr")
}

// SetRise sets the baseline shift (Ts).
func (w *Writer) SetRise(v float64) {
	w.op(formatNumber(v), "Ts")
}

// SetFillColor sets the nonstroking color (rg).
func (w *Writer) SetFillColor(c model.Color) {
	w.op(formatNumber(c.R), formatNumber(c.G), formatNumber(c.B), "rg")
}

// SetStrokeColor sets the stroking color (RG).
func (w *Writer) SetStrokeColor(c model.Color) {
	w.op(formatNumber(c.R), formatNumber(c.G), formatNumber(c.B), "RG")
}

// SetLineWidth sets the stroke width (w).
func (w *Writer) SetLineWidth(v float64) {
	w.op(formatNumber(v), "w")
}

// Save pushes the graphics state (q).
func (w *Writer) Save() {
	w.op("q")
}

// Restore pops the graphics state (Q).
func (w *Writer) Restore() {
	w.op("Q")
}

// Transform concatenates a matrix onto the CTM (cm).
func (w *Writer) Transform(m model.Matrix) {
	w.op(formatNumber(m[0]), formatNumber(m[1]), formatNumber(m[2]),
		formatNumber(m[3]), formatNumber(m[4]), formatNumber(m[5]), "cm")
}

// PathMove starts a path (m).
func (w *Writer) PathMove(p model.Point) {
	w.op(formatNumber(p.X), formatNumber(p.Y), "m")
}

// PathLine appends a straight segment (l).
func (w *Writer) PathLine(p model.Point) {
	w.op(formatNumber(p.X), formatNumber(p.Y), "l")
}

// Stroke strokes the current path (S).
func (w *Writer) Stroke() {
	w.op("S")
}

// Text serializes a span as a complete text object. Parameters that
// differ from their defaults are set before the glyphs and restored
// after them, so consecutive text objects never leak state into each
// other.
func (w *Writer) Text(s TextSpan) {
	w.BeginText()
	w.SetFont(s.Font, s.Size)
	if s.CharSpacing != 0 {
		w.SetCharSpacing(s.CharSpacing)
	}
	if s.WordSpacing != 0 {
		w.SetWordSpacing(s.WordSpacing)
	}
	if s.Mode != graphicsstate.ModeFill {
		w.SetRenderMode(s.Mode)
	}
	if s.Rise != 0 {
		w.SetRise(s.Rise)
	}
	if !s.Color.IsZero() {
		w.SetFillColor(s.Color)
	}
	w.MoveTo(s.At)
	w.ShowText(s.Text)
	if s.CharSpacing != 0 {
		w.SetCharSpacing(0)
	}
	if s.WordSpacing != 0 {
		w.SetWordSpacing(0)
	}
	if s.Mode != graphicsstate.ModeFill {
		w.SetRenderMode(graphicsstate.ModeFill)
	}
	if s.Rise != 0 {
		w.SetRise(0)
	}
	if !s.Color.IsZero() {
		w.SetFillColor(model.Black)
	}
	w.EndText()
}

// Line serializes a stroked segment wrapped in a save/restore pair so
// the width and color stay scoped to it.
func (w *Writer) Line(l Line) {
	w.Save()
	w.SetLineWidth(l.Width)
	w.SetStrokeColor(l.Color)
	w.PathMove(l.From)
	w.PathLine(l.To)
	w.Stroke()
	w.Restore()
}

// String returns the serialized operators.
func (w *Writer) String() string {
	return w.buf.String()
}

// Bytes returns the serialized operators as bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of serialized bytes.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Reset discards everything written so far.
func (w *Writer) Reset() {
	w.buf.Reset()
}

// formatNumber renders an operand compactly: rounded to four decimals
// with trailing zeros dropped.
func formatNumber(v float64) string {
	r := math.Round(v*10000) / 10000
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// escapeString escapes a literal string's delimiters and control
// characters. Everything else, including UTF-8 bytes, passes through.
func escapeString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '(', ')', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// escapeName hex-escapes the bytes a name cannot carry directly.
func escapeName(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= ' ' || c > '~' || c == '#' || isDelimiter(c) {
			fmt.Fprintf(&b, "#%02X", c)
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// isDelimiter reports whether c is a delimiter character.
func isDelimiter(c byte) bool {
	return c == '(' || c == ')' || c == '<' || c == '>' ||
		c == '[' || c == ']' || c == '{' || c == '}' ||
		c == '/' || c == '%'
}
