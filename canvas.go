package stylus

import (
	"github.com/tsawler/stylus/contentstream"
	"github.com/tsawler/stylus/model"
)

// Canvas receives the draw operations a render pass produces. The
// contentstream package provides [contentstream.Recorder], an
// in-memory implementation that captures operations for inspection or
// serialization; backends wrap a real page surface.
//
// Implementations must tolerate nested save/restore pairs and keep
// coordinate conventions consistent with the document: origin at the
// lower left, y increasing upward, units in points.
type Canvas interface {
	// DrawText places one styled span of glyphs.
	DrawText(span contentstream.TextSpan) error

	// StrokeLine strokes a straight line, used for underlines and
	// strikethroughs.
	StrokeLine(line contentstream.Line) error

	// SaveState pushes the graphics state.
	SaveState() error

	// RestoreState pops the graphics state pushed by the matching
	// SaveState.
	RestoreState() error

	// ConcatMatrix concatenates a transformation matrix onto the
	// current one. Rotated boxes emit a single rotation matrix
	// between SaveState and RestoreState.
	ConcatMatrix(m model.Matrix) error

	// LinkAnnotation registers a clickable region pointing at a URI.
	LinkAnnotation(rect model.BBox, uri string) error

	// AddDestination registers a named position that links inside
	// the same document can jump to.
	AddDestination(name string, at model.Point) error
}
