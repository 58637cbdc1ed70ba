// Package stylus positions styled text runs inside rectangular boxes
// for document generation: it decides where every fragment lands,
// which font renders each glyph, and what happens when content does
// not fit.
//
// Basic usage:
//
//	doc := stylus.NewDocument(nil)
//	box, err := stylus.NewBox(doc, []text.Run{{Text: "Hello, box"}}, stylus.BoxConfig{
//	    At:     model.Point{X: 72, Y: 720},
//	    Width:  200,
//	    Height: 100,
//	})
//	if err != nil {
//	    // handle error
//	}
//	remainder, warnings, err := box.Render()
//
// Content that does not fit is returned, not lost, so a follow-up box
// can continue where this one stopped:
//
//	if len(remainder) > 0 {
//	    next, err := stylus.NewBox(doc, remainder, secondColumn)
//	    ...
//	}
//
// Styling can also come from inline markup:
//
//	box, err := stylus.NewMarkupBox(doc, "press <b>any</b> key", stylus.BoxConfig{})
//
// A document created with a nil canvas records draw operations in
// memory for inspection; the fpdfcanvas package provides a canvas
// that writes real PDF pages.
package stylus

// Must is a helper that wraps a call to a function returning
// (T, error) and panics if the error is non-nil. It is intended for
// use in scripts or tests where error handling would be cumbersome.
//
// Example:
//
//	box := stylus.Must(stylus.NewBox(doc, runs, cfg))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRender is a helper that wraps a call to Render() or DryRun()
// and panics if the error is non-nil. It discards warnings and
// returns just the remainder. It is intended for use in scripts or
// tests where error handling would be cumbersome.
//
// Example:
//
//	remainder := stylus.MustRender(box.Render())
func MustRender[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
