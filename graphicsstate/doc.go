// Package graphicsstate tracks the drawing parameters a document
// mutates while placing text.
//
// Rendering a text box changes process-wide state on the host document:
// the current font, font size, character and word spacing, rendering
// mode, and the coordinate transform. Every such mutation must be
// scoped, so the state a render pass finds is the state it leaves
// behind, including when the pass aborts with an error.
//
// # Graphics State
//
// The main type is [GraphicsState], which tracks:
//   - CTM (Current Transformation Matrix) for coordinate transforms
//   - Text state (font, size, spacing, rendering mode, rise)
//   - Line width and colors for decoration strokes
//
// Example usage:
//
//	gs := graphicsstate.New()
//	err := gs.Scoped(func() error {
//	    gs.SetFont("Helvetica-Bold", 14)
//	    gs.SetCharSpacing(0.5)
//	    return draw(gs)
//	})
//	// font and spacing are back to their prior values here
//
// [GraphicsState.Save] and [GraphicsState.Restore] expose the raw
// q/Q-style stack for callers that need explicit control; restoring
// past the bottom of the stack is an error.
//
// # Render Modes
//
// [RenderMode] mirrors the eight PDF text rendering modes (Tr):
// fill, stroke, fill+stroke, invisible, and their clipping variants.
// Invisible mode places text that occupies space without painting,
// as in a searchable text layer over scanned artwork.
package graphicsstate
