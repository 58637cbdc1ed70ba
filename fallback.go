package stylus

import (
	"fmt"
	"strings"

	"github.com/tsawler/stylus/font"
	"github.com/tsawler/stylus/text"
)

// FallbackResolver splits runs into sub-runs so every code point is
// rendered by a font that covers it. Candidates for each code point
// are the run's own font, then each fallback family in order; a code
// point no candidate covers stays with the run's font and reports a
// missing_glyph warning.
type FallbackResolver struct {
	doc      *Document
	families []string
}

// NewFallbackResolver creates a resolver trying the given families,
// in order, for code points the run's font cannot render.
func NewFallbackResolver(doc *Document, families []string) *FallbackResolver {
	return &FallbackResolver{
		doc:      doc,
		families: append([]string(nil), families...),
	}
}

// Resolve rewrites runs so each carries a single covering font.
// Consecutive code points selecting the same font merge into one
// sub-run that inherits every other attribute of its parent verbatim.
// An empty fallback list returns the input unchanged. Returns
// ErrBadFontFamily when the run's font or a fallback family cannot be
// resolved at the run's style.
func (r *FallbackResolver) Resolve(runs []text.Run) ([]text.Run, []Warning, error) {
	if len(r.families) == 0 {
		return runs, nil, nil
	}

	out := make([]text.Run, 0, len(runs))
	var warnings []Warning
	warned := make(map[rune]bool)

	for i := range runs {
		run := &runs[i]
		if run.Text == "" {
			// Zero-width runs can still carry anchors and callbacks.
			out = append(out, *run)
			continue
		}

		subs, w, err := r.splitRun(run, warned)
		if err != nil {
			return nil, warnings, err
		}
		warnings = append(warnings, w...)
		out = append(out, subs...)
	}

	return out, warnings, nil
}

// splitRun walks one run by code point and groups consecutive code
// points that selected the same candidate.
func (r *FallbackResolver) splitRun(run *text.Run, warned map[rune]bool) ([]text.Run, []Warning, error) {
	style := run.Styles.FontStyle()

	faces := make([]font.Face, 0, len(r.families)+1)
	families := make([]string, 0, len(r.families)+1)

	primary, err := r.doc.Face(run.Font, style)
	if err != nil {
		return nil, nil, err
	}
	faces = append(faces, primary)
	families = append(families, run.Font)

	for _, family := range r.families {
		face, err := r.doc.Face(family, style)
		if err != nil {
			return nil, nil, err
		}
		faces = append(faces, face)
		families = append(families, family)
	}

	var subs []text.Run
	var warnings []Warning
	var sb strings.Builder
	current := 0

	flush := func() {
		if sb.Len() == 0 {
			return
		}
		sub := *run
		sub.Text = sb.String()
		sub.Font = families[current]
		subs = append(subs, sub)
		sb.Reset()
	}

	for _, ch := range run.Text {
		selected := pickFace(faces, ch)
		if selected < 0 {
			selected = 0
			if ch != '\n' && !warned[ch] {
				warned[ch] = true
				warnings = append(warnings, Warning{
					Code:    WarnMissingGlyph,
					Message: fmt.Sprintf("no registered font covers %q", ch),
					Context: primary.Name(),
				})
			}
		}

		if selected != current {
			flush()
			current = selected
		}
		sb.WriteRune(ch)
	}
	flush()

	return subs, warnings, nil
}

// pickFace returns the index of the first face covering the code
// point, or -1 when none does.
func pickFace(faces []font.Face, ch rune) int {
	for i, face := range faces {
		if face.HasGlyph(ch) {
			return i
		}
	}
	return -1
}
