package contentstream

import (
	"fmt"

	"github.com/tsawler/stylus/model"
)

// Recorder is a canvas that captures drawing operations instead of
// rendering them. Dry-run inspection and tests read the recorded ops
// back; Content returns the equivalent operator text.
type Recorder struct {
	ops   []Op
	depth int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// DrawText records a glyph span.
func (r *Recorder) DrawText(span TextSpan) error {
	r.ops = append(r.ops, span)
	return nil
}

// StrokeLine records a stroked segment.
func (r *Recorder) StrokeLine(line Line) error {
	r.ops = append(r.ops, line)
	return nil
}

// SaveState records a graphics state push.
func (r *Recorder) SaveState() error {
	r.ops = append(r.ops, Save{})
	r.depth++
	return nil
}

// RestoreState records a graphics state pop. Popping more than was
// pushed is an error: it means a render pass unbalanced its scoping.
func (r *Recorder) RestoreState() error {
	if r.depth == 0 {
		return fmt.Errorf("restore without matching save")
	}
	r.ops = append(r.ops, Restore{})
	r.depth--
	return nil
}

// ConcatMatrix records a CTM transformation.
func (r *Recorder) ConcatMatrix(m model.Matrix) error {
	r.ops = append(r.ops, Transform{Matrix: m})
	return nil
}

// LinkAnnotation records a URI link annotation.
func (r *Recorder) LinkAnnotation(rect model.BBox, uri string) error {
	r.ops = append(r.ops, Link{Rect: rect, URI: uri})
	return nil
}

// AddDestination records a named destination.
func (r *Recorder) AddDestination(name string, at model.Point) error {
	r.ops = append(r.ops, Destination{Name: name, At: at})
	return nil
}

// Ops returns the recorded operations in order.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// TextSpans returns the recorded glyph spans in order.
func (r *Recorder) TextSpans() []TextSpan {
	var spans []TextSpan
	for _, op := range r.ops {
		if s, ok := op.(TextSpan); ok {
			spans = append(spans, s)
		}
	}
	return spans
}

// Lines returns the recorded stroked segments in order.
func (r *Recorder) Lines() []Line {
	var lines []Line
	for _, op := range r.ops {
		if l, ok := op.(Line); ok {
			lines = append(lines, l)
		}
	}
	return lines
}

// Links returns the recorded link annotations in order.
func (r *Recorder) Links() []Link {
	var links []Link
	for _, op := range r.ops {
		if l, ok := op.(Link); ok {
			links = append(links, l)
		}
	}
	return links
}

// Destinations returns the recorded named destinations in order.
func (r *Recorder) Destinations() []Destination {
	var dests []Destination
	for _, op := range r.ops {
		if d, ok := op.(Destination); ok {
			dests = append(dests, d)
		}
	}
	return dests
}

// Text returns the concatenated text of every recorded span.
func (r *Recorder) Text() string {
	var out []byte
	for _, op := range r.ops {
		if s, ok := op.(TextSpan); ok {
			out = append(out, s.Text...)
		}
	}
	return string(out)
}

// Content serializes the content stream operations in recorded order.
// Annotations are skipped; they are not content stream operators.
func (r *Recorder) Content() string {
	w := NewWriter()
	for _, op := range r.ops {
		switch o := op.(type) {
		case TextSpan:
			w.Text(o)
		case Line:
			w.Line(o)
		case Save:
			w.Save()
		case Restore:
			w.Restore()
		case Transform:
			w.Transform(o.Matrix)
		}
	}
	return w.String()
}

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.ops = nil
	r.depth = 0
}
