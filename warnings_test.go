package stylus

import "testing"

// TestWarningString tests warning formatting with and without context.
func TestWarningString(t *testing.T) {
	tests := []struct {
		name    string
		warning Warning
		want    string
	}{
		{
			name:    "with context",
			warning: Warning{Code: WarnMissingGlyph, Message: "no font covers U+2603", Context: "Helvetica"},
			want:    "missing_glyph: no font covers U+2603 (Helvetica)",
		},
		{
			name:    "without context",
			warning: Warning{Code: WarnShrunkToMinimum, Message: "text truncated at minimum font size"},
			want:    "shrunk_to_minimum: text truncated at minimum font size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.warning.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestFormatWarnings tests newline joining and the empty case.
func TestFormatWarnings(t *testing.T) {
	warnings := []Warning{
		{Code: WarnMissingGlyph, Message: "no font covers U+2603"},
		{Code: WarnIgnoredAttribute, Message: "font attribute \"foo\" ignored", Context: "span"},
	}
	want := "missing_glyph: no font covers U+2603\n" +
		"ignored_attribute: font attribute \"foo\" ignored (span)"
	if got := FormatWarnings(warnings); got != want {
		t.Errorf("FormatWarnings() = %q, want %q", got, want)
	}

	if got := FormatWarnings(nil); got != "" {
		t.Errorf("FormatWarnings(nil) = %q, want empty", got)
	}
}
