package stylus

import "strings"

// Warning codes reported by rendering operations.
const (
	// WarnMissingGlyph is reported when no registered font covers a
	// character and it is drawn with the requested font anyway.
	WarnMissingGlyph = "missing_glyph"

	// WarnShrunkToMinimum is reported when shrink_to_fit reached the
	// minimum font size and accepted a truncated result.
	WarnShrunkToMinimum = "shrunk_to_minimum"

	// WarnIgnoredAttribute is reported when inline markup carries an
	// attribute the renderer does not understand.
	WarnIgnoredAttribute = "ignored_attribute"
)

// Warning records a non-fatal condition encountered while laying out
// or rendering text. Rendering continues past warnings; callers decide
// whether to surface them.
type Warning struct {
	// Code identifies the condition, e.g. "missing_glyph".
	Code string

	// Message is a human-readable description.
	Message string

	// Context narrows the warning to the content that triggered it,
	// such as the affected text or font name. May be empty.
	Context string
}

/// String formats the warning as "code: message (context)".
func (w Warning) String() string {
	var sb strings.Builder
	sb.WriteString(w.Code)
	sb.WriteString(": ")
	sb.WriteString(w.Message)
	if w.Context != "" {
		sb.WriteString(" (")
		sb.WriteString(w.Context)
		sb.WriteString(")")
	}
	return sb.String()
}

// FormatWarnings joins warnings into a newline-separated string for
// display or logging. Returns "" for an empty slice.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}
