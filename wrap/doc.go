// Package wrap provides the default line-breaking engine for text
// boxes.
//
// [Wrapper.WrapParagraph] turns styled runs into measured lines of
// fragments under a width and height limit. Breaking is greedy: each
// line takes as many code points as fit, preferring the last space or
// soft hyphen, falling back to a mid-word break for words wider than
// the whole box, and failing with [ErrCannotFit] only when not even
// one glyph fits. Newlines always break; trailing spaces at a break
// are consumed.
//
// The wrapper measures through a [Measurer], which resolves family
// names and styles to faces:
//
//	w := wrap.NewWrapper(doc)
//	res, err := w.WrapParagraph(runs, wrap.Params{
//	    Width:       200,
//	    Height:      400,
//	    Kerning:     true,
//	    DefaultFont: "Helvetica",
//	    DefaultSize: 12,
//	})
//
// A pass has no side effects and is re-derivable, so callers probe
// heights by wrapping repeatedly with different parameters.
//
// # Vertical layout
//
// The first line's baseline sits one ascent below the top; each
// following baseline drops by that line's height plus the leading. A
// line fits when its descent stays inside the height. [Result] reports
// the lines, the consumed height, and the remainder that a second box
// can continue with.
package wrap
