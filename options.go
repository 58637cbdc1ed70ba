package stylus

import (
	"fmt"

	"github.com/tsawler/stylus/graphicsstate"
	"github.com/tsawler/stylus/model"
	"github.com/tsawler/stylus/text"
)

// Alignment positions each line horizontally inside the box.
type Alignment int

const (
	// AlignDefault resolves from the box's direction: left for
	// left-to-right text, right for right-to-left.
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
	// AlignJustify stretches word spacing so every line except
	// paragraph-final and hard-broken ones fills the box width.
	AlignJustify
)

// String returns a string representation of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignDefault:
		return "default"
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "unknown"
	}
}

// Valid reports whether the alignment is a known value.
func (a Alignment) Valid() bool {
	return a >= AlignDefault && a <= AlignJustify
}

// ParseAlignment parses an alignment name as used by box options.
func ParseAlignment(name string) (Alignment, error) {
	switch name {
	case "left":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	case "justify":
		return AlignJustify, nil
	default:
		return AlignDefault, fmt.Errorf("%w: unknown alignment %q", ErrConfiguration, name)
	}
}

// VerticalAlignment positions the block of wrapped lines vertically
// inside the box.
type VerticalAlignment int

const (
	VAlignTop VerticalAlignment = iota
	VAlignCenter
	VAlignBottom
)

// String returns a string representation of the vertical alignment.
func (v VerticalAlignment) String() string {
	switch v {
	case VAlignTop:
		return "top"
	case VAlignCenter:
		return "center"
	case VAlignBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Valid reports whether the vertical alignment is a known value.
func (v VerticalAlignment) Valid() bool {
	return v >= VAlignTop && v <= VAlignBottom
}

// ParseVerticalAlignment parses a vertical alignment name as used by
// box options.
func ParseVerticalAlignment(name string) (VerticalAlignment, error) {
	switch name {
	case "top":
		return VAlignTop, nil
	case "center":
		return VAlignCenter, nil
	case "bottom":
		return VAlignBottom, nil
	default:
		return VAlignTop, fmt.Errorf("%w: unknown vertical alignment %q", ErrConfiguration, name)
	}
}

// Overflow decides what happens to content that does not fit the box.
type Overflow int

const (
	// OverflowTruncate wraps once and reports the content that did
	// not fit as the remainder.
	OverflowTruncate Overflow = iota

	// OverflowShrinkToFit lowers the font size in half-unit steps
	// until the content fits or MinFontSize is reached.
	OverflowShrinkToFit

	// OverflowExpand grows the box height to the bottom of the
	// document bounds, then truncates.
	OverflowExpand
)

// String returns a string representation of the overflow strategy.
func (o Overflow) String() string {
	switch o {
	case OverflowTruncate:
		return "truncate"
	case OverflowShrinkToFit:
		return "shrink_to_fit"
	case OverflowExpand:
		return "expand"
	default:
		return "unknown"
	}
}

// Valid reports whether the overflow strategy is a known value.
func (o Overflow) Valid() bool {
	return o >= OverflowTruncate && o <= OverflowExpand
}

// ParseOverflow parses an overflow strategy name as used by box
// options.
func ParseOverflow(name string) (Overflow, error) {
	switch name {
	case "truncate":
		return OverflowTruncate, nil
	case "shrink_to_fit":
		return OverflowShrinkToFit, nil
	case "expand":
		return OverflowExpand, nil
	default:
		return OverflowTruncate, fmt.Errorf("%w: unknown overflow strategy %q", ErrConfiguration, name)
	}
}

// Pivot names the corner or center a rotated box turns about.
type Pivot int

const (
	PivotUpperLeft Pivot = iota
	PivotUpperRight
	PivotLowerLeft
	PivotLowerRight
	PivotCenter
)

// String returns a string representation of the pivot.
func (p Pivot) String() string {
	switch p {
	case PivotUpperLeft:
		return "upper_left"
	case PivotUpperRight:
		return "upper_right"
	case PivotLowerLeft:
		return "lower_left"
	case PivotLowerRight:
		return "lower_right"
	case PivotCenter:
		return "center"
	default:
		return "unknown"
	}
}

// Valid reports whether the pivot is a known value.
func (p Pivot) Valid() bool {
	return p >= PivotUpperLeft && p <= PivotCenter
}

// ParsePivot parses a pivot name as used by box options.
func ParsePivot(name string) (Pivot, error) {
	switch name {
	case "upper_left":
		return PivotUpperLeft, nil
	case "upper_right":
		return PivotUpperRight, nil
	case "lower_left":
		return PivotLowerLeft, nil
	case "lower_right":
		return PivotLowerRight, nil
	case "center":
		return PivotCenter, nil
	default:
		return PivotUpperLeft, fmt.Errorf("%w: unknown rotation pivot %q", ErrConfiguration, name)
	}
}

// BoxConfig holds the geometry and typography of one text box. Zero
// values resolve against the ambient document when the box is
// created; see each field.
type BoxConfig struct {
	// At is the box's upper-left corner. The zero point places the
	// box at the left bound, at the document cursor.
	At model.Point

	// Width and Height are the box extent in points. Zero resolves
	// to the space between At and the right or bottom bound.
	Width  float64
	Height float64

	// Align and VAlign position lines inside the box. AlignDefault
	// follows the box direction.
	Align  Alignment
	VAlign VerticalAlignment

	// Direction overrides the document's text direction for this
	// box. Neutral inherits.
	Direction text.Direction

	// Overflow decides what happens to content that does not fit.
	Overflow Overflow

	// MinFontSize is the smallest size shrink_to_fit will try. Zero
	// resolves to 5.
	MinFontSize float64

	// Leading is extra vertical space between lines. Zero inherits
	// the document leading.
	Leading float64

	// CharSpacing is extra space after each glyph. Zero inherits the
	// document character spacing.
	CharSpacing float64

	// Size is the font size runs without their own size start at.
	// Zero inherits the document font size.
	Size float64

	// Mode is the text render mode glyphs are drawn with. The zero
	// mode inherits the document render mode.
	Mode graphicsstate.RenderMode

	// Rotate is a counterclockwise angle in degrees applied while
	// inking; RotateAround picks the pivot.
	Rotate       float64
	RotateAround Pivot

	// SingleLine stops wrapping after the first line.
	SingleLine bool

	// Kerning applies pair adjustments. Nil inherits the document
	// setting.
	Kerning *bool

	// FallbackFonts are families tried for uncovered code points.
	// Nil inherits the document's list; an empty non-nil slice
	// disables fallback for this box.
	FallbackFonts []string

	// Style is a font style name ("bold", "italic", "bold_italic")
	// applied to every run on top of the runs' own flags.
	Style string
}

// permitted is the whitelist of option keys ParseBoxOptions accepts.
var permitted = map[string]bool{
	"at":             true,
	"width":          true,
	"height":         true,
	"align":          true,
	"valign":         true,
	"direction":      true,
	"overflow":       true,
	"min_font_size":  true,
	"leading":        true,
	"char_spacing":   true,
	"size":           true,
	"mode":           true,
	"rotate":         true,
	"rotate_around":  true,
	"single_line":    true,
	"kerning":        true,
	"fallback_fonts": true,
	"style":          true,
}

// ParseBoxOptions builds a BoxConfig from a data-driven option map, as
// used by template and markup callers. Every key is checked against
// the permitted set; an unknown key fails with ErrUnknownOption, and a
// value of the wrong shape fails with ErrConfiguration. Numeric values
// may be int or float64.
func ParseBoxOptions(opts map[string]any) (BoxConfig, error) {
	var cfg BoxConfig

	for key := range opts {
		if !permitted[key] {
			return BoxConfig{}, fmt.Errorf("%w: %q", ErrUnknownOption, key)
		}
	}

	var err error
	for key, value := range opts {
		switch key {
		case "at":
			cfg.At, err = pointValue(key, value)
		case "width":
			cfg.Width, err = floatOption(key, value)
		case "height":
			cfg.Height, err = floatOption(key, value)
		case "align":
			cfg.Align, err = enumOption(key, value, ParseAlignment)
		case "valign":
			cfg.VAlign, err = enumOption(key, value, ParseVerticalAlignment)
		case "direction":
			cfg.Direction, err = lookupOption(key, value, text.ParseDirection)
		case "overflow":
			cfg.Overflow, err = enumOption(key, value, ParseOverflow)
		case "min_font_size":
			cfg.MinFontSize, err = floatOption(key, value)
		case "leading":
			cfg.Leading, err = floatOption(key, value)
		case "char_spacing":
			cfg.CharSpacing, err = floatOption(key, value)
		case "size":
			cfg.Size, err = floatOption(key, value)
		case "mode":
			cfg.Mode, err = lookupOption(key, value, graphicsstate.ParseRenderMode)
		case "rotate":
			cfg.Rotate, err = floatOption(key, value)
		case "rotate_around":
			cfg.RotateAround, err = enumOption(key, value, ParsePivot)
		case "single_line":
			cfg.SingleLine, err = boolOption(key, value)
		case "kerning":
			var kerning bool
			if kerning, err = boolOption(key, value); err == nil {
				cfg.Kerning = &kerning
			}
		case "fallback_fonts":
			cfg.FallbackFonts, err = stringsOption(key, value)
		case "style":
			cfg.Style, err = stringOption(key, value)
		}
		if err != nil {
			return BoxConfig{}, err
		}
	}

	return cfg, nil
}

// floatValue coerces the numeric types an option map may carry.
func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

func floatOption(key string, v any) (float64, error) {
	if n, ok := floatValue(v); ok {
		return n, nil
	}
	return 0, fmt.Errorf("%w: option %q wants a number, got %T", ErrConfiguration, key, v)
}

func boolOption(key string, v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("%w: option %q wants a bool, got %T", ErrConfiguration, key, v)
}

func stringOption(key string, v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: option %q wants a string, got %T", ErrConfiguration, key, v)
}

// stringsOption accepts []string or []any of strings.
func stringsOption(key string, v any) ([]string, error) {
	switch list := v.(type) {
	case []string:
		return append([]string{}, list...), nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: option %q wants strings, got %T", ErrConfiguration, key, item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: option %q wants a string list, got %T", ErrConfiguration, key, v)
}

// pointValue accepts a model.Point or a two-element numeric list.
func pointValue(key string, v any) (model.Point, error) {
	switch p := v.(type) {
	case model.Point:
		return p, nil
	case [2]float64:
		return model.Point{X: p[0], Y: p[1]}, nil
	case []float64:
		if len(p) == 2 {
			return model.Point{X: p[0], Y: p[1]}, nil
		}
	case []any:
		if len(p) == 2 {
			x, okX := floatValue(p[0])
			y, okY := floatValue(p[1])
			if okX && okY {
				return model.Point{X: x, Y: y}, nil
			}
		}
	}
	return model.Point{}, fmt.Errorf("%w: option %q wants a point or [x, y] pair", ErrConfiguration, key)
}

// enumOption parses string-valued options whose parser reports its own
// configuration error.
func enumOption[T any](key string, v any, parse func(string) (T, error)) (T, error) {
	var zero T
	s, ok := v.(string)
	if !ok {
		return zero, fmt.Errorf("%w: option %q wants a string, got %T", ErrConfiguration, key, v)
	}
	return parse(s)
}

// lookupOption parses string-valued options whose parser reports a
// found flag instead of an error.
func lookupOption[T any](key string, v any, parse func(string) (T, bool)) (T, error) {
	var zero T
	s, ok := v.(string)
	if !ok {
		return zero, fmt.Errorf("%w: option %q wants a string, got %T", ErrConfiguration, key, v)
	}
	val, found := parse(s)
	if !found {
		return zero, fmt.Errorf("%w: option %q has unknown value %q", ErrConfiguration, key, s)
	}
	return val, nil
}
