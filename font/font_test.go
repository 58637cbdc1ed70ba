package font

import (
	"math"
	"testing"
)

// ============================================================================
// Style Tests
// ============================================================================

// TestStyleString tests style name formatting
func TestStyleString(t *testing.T) {
	tests := []struct {
		name     string
		style    Style
		expected string
	}{
		{"regular", Regular, "normal"},
		{"bold", Bold, "bold"},
		{"italic", Italic, "italic"},
		{"bold italic", Bold | Italic, "bold_italic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.style.String(); got != tt.expected {
				t.Errorf("Style.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestParseStyle tests parsing style names
func TestParseStyle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Style
		wantErr  bool
	}{
		{"empty is regular", "", Regular, false},
		{"normal", "normal", Regular, false},
		{"regular", "regular", Regular, false},
		{"bold", "bold", Bold, false},
		{"italic", "italic", Italic, false},
		{"oblique is italic", "oblique", Italic, false},
		{"bold_italic", "bold_italic", Bold | Italic, false},
		{"bold-italic", "bold-italic", Bold | Italic, false},
		{"unknown", "strong", Regular, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStyle(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStyle(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("ParseStyle(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

// TestStyleHas tests bit set membership
func TestStyleHas(t *testing.T) {
	s := Bold | Italic
	if !s.Has(Bold) {
		t.Error("(Bold|Italic).Has(Bold) = false, want true")
	}
	if !s.Has(Italic) {
		t.Error("(Bold|Italic).Has(Italic) = false, want true")
	}
	if Bold.Has(Italic) {
		t.Error("Bold.Has(Italic) = true, want false")
	}
	if !Regular.Has(Regular) {
		t.Error("Regular.Has(Regular) = false, want true")
	}
}

// ============================================================================
// Measurement Tests
// ============================================================================

// TestStringWidth tests string measurement against known Helvetica widths
func TestStringWidth(t *testing.T) {
	c := NewCollection()
	helvetica, err := c.Resolve("Helvetica", Regular)
	if err != nil {
		t.Fatalf("Resolve(Helvetica) error = %v", err)
	}

	tests := []struct {
		name        string
		text        string
		size        float64
		charSpacing float64
		expected    float64
	}{
		// H=722 e=556 l=222 l=222 o=556 -> 2278 units
		{"Hello at 12pt", "Hello", 12, 0, 27.336},
		{"Hello at 24pt", "Hello", 24, 0, 54.672},
		{"Hello with spacing", "Hello", 12, 0.5, 29.836},
		{"empty string", "", 12, 0, 0},
		{"single space", " ", 12, 0, 3.336}, // space = 278 units
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StringWidth(helvetica, tt.text, tt.size, tt.charSpacing, true)
			if math.Abs(got-tt.expected) > 0.0001 {
				t.Errorf("StringWidth(%q, %.0f, %.1f) = %f, want %f",
					tt.text, tt.size, tt.charSpacing, got, tt.expected)
			}
		})
	}
}

// TestStringWidthScalesLinearly tests that width is proportional to size
func TestStringWidthScalesLinearly(t *testing.T) {
	c := NewCollection()
	f, _ := c.Resolve("Times-Roman", Regular)

	w12 := StringWidth(f, "sample text", 12, 0, true)
	w24 := StringWidth(f, "sample text", 24, 0, true)

	if math.Abs(w24-2*w12) > 0.0001 {
		t.Errorf("width at 24pt = %f, want twice width at 12pt (%f)", w24, 2*w12)
	}
}

// TestMetrics tests vertical metric scaling
func TestMetrics(t *testing.T) {
	c := NewCollection()
	helvetica, _ := c.Resolve("Helvetica", Regular)

	m := Metrics(helvetica, 12)

	// Helvetica: ascent 718, descent 207, line gap 231
	if math.Abs(m.Ascent-8.616) > 0.0001 {
		t.Errorf("Ascent = %f, want 8.616", m.Ascent)
	}
	if math.Abs(m.Descent-2.484) > 0.0001 {
		t.Errorf("Descent = %f, want 2.484", m.Descent)
	}
	if math.Abs(m.LineGap-2.772) > 0.0001 {
		t.Errorf("LineGap = %f, want 2.772", m.LineGap)
	}
	if math.Abs(m.Height-(m.Ascent+m.Descent+m.LineGap)) > 1e-9 {
		t.Errorf("Height = %f, want Ascent+Descent+LineGap = %f",
			m.Height, m.Ascent+m.Descent+m.LineGap)
	}
}

// TestBuiltinFaceCoverage tests glyph coverage of the built-in faces
func TestBuiltinFaceCoverage(t *testing.T) {
	c := NewCollection()
	helvetica, _ := c.Resolve("Helvetica", Regular)

	tests := []struct {
		name     string
		r        rune
		expected bool
	}{
		{"ASCII letter", 'A', true},
		{"space", ' ', true},
		{"euro sign", '€', true},
		{"e-acute", 'é', true},
		{"bullet", '•', true},
		{"em dash", '—', true},
		{"CJK ideograph", '漢', false},
		{"emoji", '👋', false},
		{"snowman", '☃', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := helvetica.HasGlyph(tt.r); got != tt.expected {
				t.Errorf("HasGlyph(%q) = %v, want %v", tt.r, got, tt.expected)
			}
		})
	}
}

// TestBuiltinFaceWidths tests advance width lookup
func TestBuiltinFaceWidths(t *testing.T) {
	c := NewCollection()

	tests := []struct {
		face     string
		r        rune
		expected float64
	}{
		{"Helvetica", 'W', 944},
		{"Helvetica", 'i', 222},
		{"Helvetica-Bold", 'i', 278},
		{"Times-Roman", ' ', 250},
		{"Courier", 'W', 600}, // monospace
		{"Courier", 'i', 600},
	}

	for _, tt := range tests {
		t.Run(tt.face+"/"+string(tt.r), func(t *testing.T) {
			f, err := c.Face(tt.face)
			if err != nil {
				t.Fatalf("Face(%q) error = %v", tt.face, err)
			}
			if got := f.GlyphWidth(tt.r); got != tt.expected {
				t.Errorf("%s.GlyphWidth(%q) = %f, want %f", tt.face, tt.r, got, tt.expected)
			}
		})
	}
}

// TestBuiltinFaceKerning tests that built-in faces report no kerning
func TestBuiltinFaceKerning(t *testing.T) {
	c := NewCollection()
	f, _ := c.Resolve("Times-Roman", Regular)

	if got := f.Kern('A', 'V'); got != 0 {
		t.Errorf("Kern('A', 'V') = %f, want 0", got)
	}
}
