// Package contentstream serializes drawing operations as PDF content
// stream operator text and records them for inspection.
//
// The layout engine hands a canvas typed operations: [TextSpan] for a
// run of glyphs, [Line] for a stroked segment, plus state saves,
// restores, and matrix transformations. A real backend turns those
// into page output; the [Recorder] in this package captures them
// instead:
//
//	rec := contentstream.NewRecorder()
//	rec.DrawText(contentstream.TextSpan{
//	    At:   model.Point{X: 72, Y: 700},
//	    Text: "Hello",
//	    Font: "Helvetica",
//	    Size: 12,
//	})
//	fmt.Print(rec.Content())
//	// BT
//	// /Helvetica 12 Tf
//	// 72 700 Td
//	// (Hello) Tj
//	// ET
//
// # Operator form
//
// [Writer] emits one operator per line in the raw content stream
// syntax. Text objects set only the parameters that differ from their
// defaults and restore them after the glyphs, so two serialized spans
// never leak spacing, rise, mode, or color into each other.
//
// Common operators:
//   - BT, ET - Begin/end text object
//   - Tf - Set font and size
//   - Td - Move text position
//   - Tj - Show text
//   - Tc, Tw - Character and word spacing
//   - Tr, Ts - Render mode and rise
//   - q, Q, cm - Save/restore state, transform CTM
//   - m, l, S - Path construction and stroking
//
// Link annotations and named destinations are recorded as ops but have
// no operator form; they live outside the content stream in a PDF.
package contentstream
