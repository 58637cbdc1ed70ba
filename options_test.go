package stylus

import (
	"errors"
	"strings"
	"testing"

	"github.com/tsawler/stylus/graphicsstate"
	"github.com/tsawler/stylus/model"
	"github.com/tsawler/stylus/text"
)

// TestParseBoxOptions tests that a full option map lands on the right
// config fields.
func TestParseBoxOptions(t *testing.T) {
	cfg, err := ParseBoxOptions(map[string]any{
		"at":             []any{100, 700},
		"width":          200,
		"height":         100.5,
		"align":          "center",
		"valign":         "bottom",
		"direction":      "rtl",
		"overflow":       "shrink_to_fit",
		"min_font_size":  6,
		"leading":        2,
		"char_spacing":   0.5,
		"size":           14,
		"mode":           "stroke",
		"rotate":         45,
		"rotate_around":  "lower_right",
		"single_line":    true,
		"kerning":        false,
		"fallback_fonts": []string{"Symbol"},
		"style":          "bold",
	})
	if err != nil {
		t.Fatalf("ParseBoxOptions returned error: %v", err)
	}

	if cfg.At != (model.Point{X: 100, Y: 700}) {
		t.Errorf("At = %v, want (100, 700)", cfg.At)
	}
	if cfg.Width != 200 || cfg.Height != 100.5 {
		t.Errorf("Width, Height = %v, %v, want 200, 100.5", cfg.Width, cfg.Height)
	}
	if cfg.Align != AlignCenter {
		t.Errorf("Align = %v, want center", cfg.Align)
	}
	if cfg.VAlign != VAlignBottom {
		t.Errorf("VAlign = %v, want bottom", cfg.VAlign)
	}
	if cfg.Direction != text.RTL {
		t.Errorf("Direction = %v, want RTL", cfg.Direction)
	}
	if cfg.Overflow != OverflowShrinkToFit {
		t.Errorf("Overflow = %v, want shrink_to_fit", cfg.Overflow)
	}
	if cfg.MinFontSize != 6 || cfg.Leading != 2 || cfg.CharSpacing != 0.5 || cfg.Size != 14 {
		t.Errorf("numeric fields = %v %v %v %v, want 6 2 0.5 14",
			cfg.MinFontSize, cfg.Leading, cfg.CharSpacing, cfg.Size)
	}
	if cfg.Mode != graphicsstate.ModeStroke {
		t.Errorf("Mode = %v, want stroke", cfg.Mode)
	}
	if cfg.Rotate != 45 || cfg.RotateAround != PivotLowerRight {
		t.Errorf("Rotate, RotateAround = %v, %v, want 45, lower_right", cfg.Rotate, cfg.RotateAround)
	}
	if !cfg.SingleLine {
		t.Error("SingleLine = false, want true")
	}
	if cfg.Kerning == nil || *cfg.Kerning {
		t.Errorf("Kerning = %v, want explicit false", cfg.Kerning)
	}
	if len(cfg.FallbackFonts) != 1 || cfg.FallbackFonts[0] != "Symbol" {
		t.Errorf("FallbackFonts = %v, want [Symbol]", cfg.FallbackFonts)
	}
	if cfg.Style != "bold" {
		t.Errorf("Style = %q, want %q", cfg.Style, "bold")
	}
}

// TestParseBoxOptionsEmpty tests that an empty map yields the zero
// config.
func TestParseBoxOptionsEmpty(t *testing.T) {
	cfg, err := ParseBoxOptions(map[string]any{})
	if err != nil {
		t.Fatalf("ParseBoxOptions returned error: %v", err)
	}
	if cfg.At != (model.Point{}) || cfg.Width != 0 || cfg.Height != 0 {
		t.Errorf("geometry = %v %v %v, want zero values", cfg.At, cfg.Width, cfg.Height)
	}
	if cfg.Align != AlignDefault || cfg.Overflow != OverflowTruncate {
		t.Errorf("Align, Overflow = %v, %v, want defaults", cfg.Align, cfg.Overflow)
	}
	if cfg.Kerning != nil {
		t.Errorf("Kerning = %v, want nil", cfg.Kerning)
	}
	if cfg.FallbackFonts != nil {
		t.Errorf("FallbackFonts = %v, want nil", cfg.FallbackFonts)
	}
}

// TestParseBoxOptionsUnknownKey tests the construct-time whitelist.
func TestParseBoxOptionsUnknownKey(t *testing.T) {
	_, err := ParseBoxOptions(map[string]any{"colour": "red"})
	if !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("ParseBoxOptions error = %v, want ErrUnknownOption", err)
	}
	if !strings.Contains(err.Error(), "colour") {
		t.Errorf("error %q does not name the offending key", err)
	}
}

// TestParseBoxOptionsBadValues tests that recognized keys with wrong
// shapes fail with ErrConfiguration.
func TestParseBoxOptionsBadValues(t *testing.T) {
	tests := []struct {
		name string
		opts map[string]any
	}{
		{"width string", map[string]any{"width": "wide"}},
		{"align unknown", map[string]any{"align": "diagonal"}},
		{"align number", map[string]any{"align": 2}},
		{"valign unknown", map[string]any{"valign": "middle"}},
		{"overflow unknown", map[string]any{"overflow": "wrap"}},
		{"direction unknown", map[string]any{"direction": "boustrophedon"}},
		{"mode unknown", map[string]any{"mode": "glow"}},
		{"pivot unknown", map[string]any{"rotate_around": "middle"}},
		{"single_line number", map[string]any{"single_line": 1}},
		{"kerning string", map[string]any{"kerning": "yes"}},
		{"at one element", map[string]any{"at": []any{100}}},
		{"at strings", map[string]any{"at": []any{"x", "y"}}},
		{"fallback_fonts mixed", map[string]any{"fallback_fonts": []any{"Symbol", 7}}},
		{"style number", map[string]any{"style": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBoxOptions(tt.opts)
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("ParseBoxOptions(%v) error = %v, want ErrConfiguration", tt.opts, err)
			}
		})
	}
}

// TestParseBoxOptionsPointForms tests the accepted point shapes.
func TestParseBoxOptionsPointForms(t *testing.T) {
	want := model.Point{X: 10, Y: 20}
	tests := []struct {
		name string
		at   any
	}{
		{"point", model.Point{X: 10, Y: 20}},
		{"array", [2]float64{10, 20}},
		{"float slice", []float64{10, 20}},
		{"any slice ints", []any{10, 20}},
		{"any slice floats", []any{10.0, 20.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseBoxOptions(map[string]any{"at": tt.at})
			if err != nil {
				t.Fatalf("ParseBoxOptions returned error: %v", err)
			}
			if cfg.At != want {
				t.Errorf("At = %v, want %v", cfg.At, want)
			}
		})
	}
}

// TestEnumStrings tests the name round trip for every option enum.
func TestEnumStrings(t *testing.T) {
	for _, name := range []string{"left", "center", "right", "justify"} {
		a, err := ParseAlignment(name)
		if err != nil {
			t.Fatalf("ParseAlignment(%q) returned error: %v", name, err)
		}
		if a.String() != name {
			t.Errorf("ParseAlignment(%q).String() = %q", name, a.String())
		}
	}
	for _, name := range []string{"top", "center", "bottom"} {
		v, err := ParseVerticalAlignment(name)
		if err != nil {
			t.Fatalf("ParseVerticalAlignment(%q) returned error: %v", name, err)
		}
		if v.String() != name {
			t.Errorf("ParseVerticalAlignment(%q).String() = %q", name, v.String())
		}
	}
	for _, name := range []string{"truncate", "shrink_to_fit", "expand"} {
		o, err := ParseOverflow(name)
		if err != nil {
			t.Fatalf("ParseOverflow(%q) returned error: %v", name, err)
		}
		if o.String() != name {
			t.Errorf("ParseOverflow(%q).String() = %q", name, o.String())
		}
	}
	for _, name := range []string{"upper_left", "upper_right", "lower_left", "lower_right", "center"} {
		p, err := ParsePivot(name)
		if err != nil {
			t.Fatalf("ParsePivot(%q) returned error: %v", name, err)
		}
		if p.String() != name {
			t.Errorf("ParsePivot(%q).String() = %q", name, p.String())
		}
	}
}

// TestEnumValid tests that out-of-range enum values are rejected.
func TestEnumValid(t *testing.T) {
	if Alignment(99).Valid() {
		t.Error("Alignment(99).Valid() = true")
	}
	if VerticalAlignment(-1).Valid() {
		t.Error("VerticalAlignment(-1).Valid() = true")
	}
	if Overflow(99).Valid() {
		t.Error("Overflow(99).Valid() = true")
	}
	if Pivot(99).Valid() {
		t.Error("Pivot(99).Valid() = true")
	}
}
