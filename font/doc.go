// Package font provides font metrics and face resolution for text
// layout.
//
// A [Face] answers the questions layout needs: does a glyph exist,
// how wide is it, and how tall is a line. Widths and vertical metrics
// are expressed in thousandths of an em, so scaling to a point size
// is a single multiply. [Metrics] and [StringWidth] perform that
// scaling.
//
// # Collections
//
// A [Collection] maps family names and styles to faces. A new
// collection already knows the fourteen standard faces:
//
//	c := font.NewCollection()
//	f, err := c.Resolve("Helvetica", font.Bold)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	w := font.StringWidth(f, "Hello", 12, 0, true)
//
// TrueType font programs register alongside the built-ins:
//
//	data, _ := os.ReadFile("DejaVuSans.ttf")
//	err := c.RegisterTrueType("DejaVu Sans", font.Regular, data)
//
// Resolution of an unknown family returns [ErrUnknownFamily].
//
// # Built-in faces
//
// The built-in faces carry real width tables for the Latin range and
// report glyph coverage against the WinAnsi character set. They have
// no kerning data. [ParseTrueType] wraps a real font program and
// exposes its glyph coverage, advance widths, and kerning pairs.
package font
