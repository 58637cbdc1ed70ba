package text

import (
	"testing"
)

// TestCharDirection tests per-character direction classification
func TestCharDirection(t *testing.T) {
	tests := []struct {
		name string
		char rune
		want Direction
	}{
		// Arabic
		{"Arabic alif", 'ا', RTL}, // U+0627
		{"Arabic seen", 'س', RTL}, // U+0633
		{"Arabic lam", 'ل', RTL},  // U+0644

		// Hebrew
		{"Hebrew alef", 'א', RTL}, // U+05D0
		{"Hebrew shin", 'ש', RTL}, // U+05E9

		// Latin (LTR)
		{"Latin A", 'A', LTR},
		{"Latin a", 'a', LTR},
		{"Latin é", 'é', LTR}, // U+00E9

		// Cyrillic and Greek (LTR)
		{"Cyrillic А", 'А', LTR},  // U+0410
		{"Greek Omega", 'Ω', LTR}, // U+03A9

		// CJK (LTR in modern usage)
		{"CJK 中", '中', LTR},      // U+4E2D
		{"Hiragana あ", 'あ', LTR}, // U+3042

		// Neutral characters
		{"Space", ' ', Neutral},
		{"Digit 5", '5', Neutral},
		{"Period", '.', Neutral},
		{"Plus sign", '+', Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CharDirection(tt.char)
			if got != tt.want {
				t.Errorf("CharDirection(%q U+%04X) = %v, want %v",
					tt.char, tt.char, got, tt.want)
			}
		})
	}
}

// TestDetectDirection tests dominant direction detection
func TestDetectDirection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Direction
	}{
		// Pure LTR
		{"English", "Hello World", LTR},
		{"Russian", "Привет мир", LTR},
		{"Chinese", "你好世界", LTR},

		// Pure RTL
		{"Arabic", "مرحبا", RTL},
		{"Hebrew", "שלום", RTL},

		// Mixed, dominant wins
		{"mostly Arabic", "مرحبا بكم Hi", RTL},
		{"mostly English", "Hello عالم and more words", LTR},

		// Neutral
		{"empty", "", Neutral},
		{"digits only", "123 456", Neutral},
		{"punctuation only", "... !!!", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectDirection(tt.text)
			if got != tt.want {
				t.Errorf("DetectDirection(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// TestDirectionString tests direction formatting
func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{LTR, "LTR"},
		{RTL, "RTL"},
		{Neutral, "Neutral"},
		{Direction(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.dir.String(); got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

// TestParseDirection tests direction option parsing
func TestParseDirection(t *testing.T) {
	tests := []struct {
		input string
		want  Direction
		ok    bool
	}{
		{"ltr", LTR, true},
		{"rtl", RTL, true},
		{"", Neutral, false},
		{"down", Neutral, false},
	}

	for _, tt := range tests {
		got, ok := ParseDirection(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseDirection(%q) = (%v, %v), want (%v, %v)",
				tt.input, got, ok, tt.want, tt.ok)
		}
	}
}
