package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGB color with components in [0, 1], matching the
// operand range of the PDF rg/RG operators.
type Color struct {
	R, G, B float64
}

// Black is the default text color.
var Black = Color{0, 0, 0}

// ParseColor parses a hex color string of the form "RRGGBB", with an
// optional leading '#'. Inline markup carries colors in this form.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want 6 hex digits", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	return Color{
		R: float64(v>>16&0xFF) / 255,
		G: float64(v>>8&0xFF) / 255,
		B: float64(v&0xFF) / 255,
	}, nil
}

// RGB255 returns the color scaled to 8-bit components, the form most
// drawing backends take.
func (c Color) RGB255() (r, g, b int) {
	return int(c.R*255 + 0.5), int(c.G*255 + 0.5), int(c.B*255 + 0.5)
}

// IsZero reports whether the color is the zero value (black).
func (c Color) IsZero() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}
