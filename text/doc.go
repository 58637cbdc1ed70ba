// Package text defines the styled text types that flow through layout:
// runs before wrapping, fragments after.
//
// A [Run] is a maximal span of text sharing one style set. Runs come
// from the caller directly or from [ParseMarkup], which converts
// inline markup into a run list:
//
//	runs, notes, err := text.ParseMarkup(`Plain <b>bold <i>both</i></b> <color rgb="FF0000">red</color>`)
//
// A [Fragment] is a positioned, single-font slice of a run produced by
// wrapping, carrying its measured width, vertical metrics, and final
// draw position. Fragments expose the derived geometry drawing needs:
// [Fragment.UnderlinePoints], [Fragment.StrikethroughPoints], and
// [Fragment.BoundingBox].
//
// # Direction
//
// [DetectDirection] classifies text as left-to-right or right-to-left
// by counting strong directional characters. Layout uses direction to
// pick default alignment and the edge justified lines grow from; it
// does not reorder glyphs.
package text
