package stylus

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/tsawler/stylus/contentstream"
	"github.com/tsawler/stylus/font"
	"github.com/tsawler/stylus/graphicsstate"
	"github.com/tsawler/stylus/model"
	"github.com/tsawler/stylus/text"
)

// TestNewDocumentDefaults tests the ambient defaults of a fresh
// document.
func TestNewDocumentDefaults(t *testing.T) {
	doc := NewDocument(nil)

	wantBounds := model.NewBBox(36, 36, 540, 720)
	if doc.Bounds() != wantBounds {
		t.Errorf("Bounds() = %v, want %v", doc.Bounds(), wantBounds)
	}
	if doc.Cursor() != 756 {
		t.Errorf("Cursor() = %v, want 756", doc.Cursor())
	}
	if doc.Font() != "Helvetica" || doc.FontStyle() != font.Regular {
		t.Errorf("font = %q %v, want Helvetica regular", doc.Font(), doc.FontStyle())
	}
	if doc.FontSize() != 12 {
		t.Errorf("FontSize() = %v, want 12", doc.FontSize())
	}
	if doc.Direction() != text.LTR {
		t.Errorf("Direction() = %v, want LTR", doc.Direction())
	}
	if !doc.Kerning() {
		t.Error("Kerning() = false, want true")
	}
	if doc.Leading() != 0 {
		t.Errorf("Leading() = %v, want 0", doc.Leading())
	}
	if _, ok := doc.Canvas().(*contentstream.Recorder); !ok {
		t.Errorf("Canvas() = %T, want a recorder for a nil canvas", doc.Canvas())
	}
}

// TestNewDocumentWithConfigFixups tests that unusable config values
// fall back to defaults.
func TestNewDocumentWithConfigFixups(t *testing.T) {
	doc := NewDocumentWithConfig(nil, DocumentConfig{
		FontFamily: "NoSuchFamily",
		FontSize:   -4,
	})

	if doc.Font() != "Helvetica" {
		t.Errorf("Font() = %q, want fallback to Helvetica", doc.Font())
	}
	if doc.FontSize() != 12 {
		t.Errorf("FontSize() = %v, want 12", doc.FontSize())
	}
	if doc.Bounds().IsEmpty() {
		t.Error("Bounds() is empty, want default bounds")
	}
	if doc.Direction() != text.LTR {
		t.Errorf("Direction() = %v, want LTR", doc.Direction())
	}
}

// TestDocumentSetFont tests style combination, error reporting and
// size preservation.
func TestDocumentSetFont(t *testing.T) {
	doc := NewDocument(nil)

	if err := doc.SetFont("Helvetica", font.Bold, font.Italic); err != nil {
		t.Fatalf("SetFont returned error: %v", err)
	}
	if got := doc.State().Text.FontName; got != "Helvetica-BoldOblique" {
		t.Errorf("state font = %q, want Helvetica-BoldOblique", got)
	}
	if doc.FontStyle() != font.Bold|font.Italic {
		t.Errorf("FontStyle() = %v, want bold_italic", doc.FontStyle())
	}

	doc.SetFontSize(14)
	if err := doc.SetFont("Courier"); err != nil {
		t.Fatalf("SetFont returned error: %v", err)
	}
	if doc.FontSize() != 14 {
		t.Errorf("FontSize() = %v after font change, want 14", doc.FontSize())
	}

	err := doc.SetFont("NoSuchFamily")
	if !errors.Is(err, ErrBadFontFamily) {
		t.Fatalf("SetFont(NoSuchFamily) error = %v, want ErrBadFontFamily", err)
	}
	if doc.Font() != "Courier" {
		t.Errorf("Font() = %q after failed SetFont, want Courier", doc.Font())
	}
}

// TestDocumentFace tests resolution against the current family and
// missing-variant errors.
func TestDocumentFace(t *testing.T) {
	doc, _ := createTestDocument(t)

	face, err := doc.Face("", font.Bold)
	if err != nil {
		t.Fatalf("Face(\"\", Bold) returned error: %v", err)
	}
	if face.Name() != "Test-Bold" {
		t.Errorf("Face(\"\", Bold).Name() = %q, want Test-Bold", face.Name())
	}

	if _, err := doc.Face("Symbol", font.Bold); !errors.Is(err, ErrBadFontFamily) {
		t.Errorf("Face(Symbol, Bold) error = %v, want ErrBadFontFamily", err)
	}
}

// TestDocumentCursor tests cursor movement and bound clamping.
func TestDocumentCursor(t *testing.T) {
	doc := NewDocument(nil)

	doc.SetCursor(400)
	doc.MoveCursor(50)
	if doc.Cursor() != 350 {
		t.Errorf("Cursor() = %v, want 350", doc.Cursor())
	}

	doc.SetCursor(900)
	doc.SetBounds(model.NewBBox(36, 36, 540, 720))
	if doc.Cursor() != 756 {
		t.Errorf("Cursor() = %v after SetBounds, want clamp to 756", doc.Cursor())
	}
}

// TestDocumentDirection tests that Neutral does not change the
// dominant direction.
func TestDocumentDirection(t *testing.T) {
	doc := NewDocument(nil)

	doc.SetDirection(text.RTL)
	doc.SetDirection(text.Neutral)
	if doc.Direction() != text.RTL {
		t.Errorf("Direction() = %v, want RTL", doc.Direction())
	}
}

// TestDocumentFallbackFonts tests that the fallback list is copied in
// and out.
func TestDocumentFallbackFonts(t *testing.T) {
	doc := NewDocument(nil)

	doc.SetFallbackFonts("Symbol", "ZapfDingbats")
	got := doc.FallbackFonts()
	if len(got) != 2 || got[0] != "Symbol" || got[1] != "ZapfDingbats" {
		t.Fatalf("FallbackFonts() = %v, want [Symbol ZapfDingbats]", got)
	}

	got[0] = "Courier"
	if doc.FallbackFonts()[0] != "Symbol" {
		t.Error("mutating the returned slice changed the document's list")
	}
}

// TestDocumentMeasurement tests width and metric queries against the
// fixed-metric test face.
func TestDocumentMeasurement(t *testing.T) {
	doc, _ := createTestDocument(t)

	width, err := doc.TextWidth("abc", "Test", 10, 0, true)
	if err != nil {
		t.Fatalf("TextWidth returned error: %v", err)
	}
	if width != 30 {
		t.Errorf("TextWidth(abc, 10) = %v, want 30", width)
	}

	width, err = doc.TextWidth("abc", "Test", 10, 0.5, true)
	if err != nil {
		t.Fatalf("TextWidth returned error: %v", err)
	}
	if math.Abs(width-31.5) > 0.0001 {
		t.Errorf("TextWidth(abc, 10, spacing 0.5) = %v, want 31.5", width)
	}

	if _, err := doc.TextWidth("abc", "NoSuchFamily", 10, 0, true); !errors.Is(err, ErrBadFontFamily) {
		t.Errorf("TextWidth(NoSuchFamily) error = %v, want ErrBadFontFamily", err)
	}

	m, err := doc.FaceMetrics("Test", 10)
	if err != nil {
		t.Fatalf("FaceMetrics returned error: %v", err)
	}
	if m.Ascent != 7 || m.Descent != 3 || m.LineGap != 2 || m.Height != 12 {
		t.Errorf("FaceMetrics(Test, 10) = %+v, want 7/3/2/12", m)
	}

	present, err := doc.GlyphPresent("Gappy", 'a')
	if err != nil {
		t.Fatalf("GlyphPresent returned error: %v", err)
	}
	if !present {
		t.Error("GlyphPresent(Gappy, 'a') = false, want true")
	}
	present, err = doc.GlyphPresent("Gappy", '★')
	if err != nil {
		t.Fatalf("GlyphPresent returned error: %v", err)
	}
	if present {
		t.Error("GlyphPresent(Gappy, '★') = true, want false")
	}

	s, err := doc.Normalize("Test", "abc")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if s != "abc" {
		t.Errorf("Normalize = %q, want passthrough", s)
	}
}

// TestDocumentDrawGlyphsInheritsState tests that zero-valued span
// fields pick up the graphics state parameters.
func TestDocumentDrawGlyphsInheritsState(t *testing.T) {
	doc, rec := createTestDocument(t)

	doc.State().SetCharSpacing(1.5)
	doc.State().SetRise(2)
	doc.State().SetRenderMode(graphicsstate.ModeStroke)
	doc.State().SetFillColor(model.Color{R: 1})

	err := doc.WithWordSpacing(2.5, func() error {
		return doc.DrawGlyphs(contentstream.TextSpan{
			At:   model.Point{X: 10, Y: 20},
			Text: "hi",
		})
	})
	if err != nil {
		t.Fatalf("DrawGlyphs returned error: %v", err)
	}

	spans := rec.TextSpans()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	got := spans[0]
	if got.Font != "Test" || got.Size != 10 {
		t.Errorf("span font = %q %v, want Test 10", got.Font, got.Size)
	}
	if got.CharSpacing != 1.5 || got.WordSpacing != 2.5 || got.Rise != 2 {
		t.Errorf("span spacing = %v %v rise %v, want 1.5 2.5 2",
			got.CharSpacing, got.WordSpacing, got.Rise)
	}
	if got.Mode != graphicsstate.ModeStroke {
		t.Errorf("span mode = %v, want stroke", got.Mode)
	}
	if got.Color != (model.Color{R: 1}) {
		t.Errorf("span color = %v, want red", got.Color)
	}
}

// TestDocumentDrawGlyphsExplicitFieldsWin tests that non-zero span
// fields are kept as given.
func TestDocumentDrawGlyphsExplicitFieldsWin(t *testing.T) {
	doc, rec := createTestDocument(t)
	doc.State().SetCharSpacing(1.5)

	err := doc.DrawGlyphs(contentstream.TextSpan{
		Text:        "hi",
		Font:        "Test-Bold",
		Size:        24,
		CharSpacing: 0.25,
		Color:       model.Color{G: 1},
	})
	if err != nil {
		t.Fatalf("DrawGlyphs returned error: %v", err)
	}

	got := rec.TextSpans()[0]
	if got.Font != "Test-Bold" || got.Size != 24 || got.CharSpacing != 0.25 {
		t.Errorf("span = %q %v %v, want Test-Bold 24 0.25", got.Font, got.Size, got.CharSpacing)
	}
	if got.Color != (model.Color{G: 1}) {
		t.Errorf("span color = %v, want green", got.Color)
	}
}

// TestDocumentStrokeLine tests line recording and state inheritance.
func TestDocumentStrokeLine(t *testing.T) {
	doc, rec := createTestDocument(t)
	doc.State().SetLineWidth(0.75)
	doc.State().SetStrokeColor(model.Color{B: 1})

	err := doc.StrokeLine(model.Point{X: 0, Y: 5}, model.Point{X: 40, Y: 5}, 0, model.Color{})
	if err != nil {
		t.Fatalf("StrokeLine returned error: %v", err)
	}

	lines := rec.Lines()
	if len(lines) != 1 {
		t.Fatalf("recorded %d lines, want 1", len(lines))
	}
	if lines[0].Width != 0.75 || lines[0].Color != (model.Color{B: 1}) {
		t.Errorf("line = width %v color %v, want 0.75 blue", lines[0].Width, lines[0].Color)
	}
}

// TestDocumentScopedSetters tests that With* helpers restore the state
// on both exit paths.
func TestDocumentScopedSetters(t *testing.T) {
	doc, _ := createTestDocument(t)

	err := doc.WithFontSize(20, func() error {
		if doc.FontSize() != 20 {
			t.Errorf("FontSize() inside scope = %v, want 20", doc.FontSize())
		}
		return doc.WithCharSpacing(1, func() error {
			if doc.State().Text.CharSpacing != 1 {
				t.Errorf("CharSpacing inside scope = %v, want 1", doc.State().Text.CharSpacing)
			}
			return doc.WithRenderMode(graphicsstate.ModeInvisible, func() error {
				if doc.State().Text.Mode != graphicsstate.ModeInvisible {
					t.Errorf("Mode inside scope = %v, want invisible", doc.State().Text.Mode)
				}
				return nil
			})
		})
	})
	if err != nil {
		t.Fatalf("scoped setters returned error: %v", err)
	}

	if doc.FontSize() != 10 {
		t.Errorf("FontSize() after scope = %v, want 10", doc.FontSize())
	}
	if doc.State().Text.CharSpacing != 0 {
		t.Errorf("CharSpacing after scope = %v, want 0", doc.State().Text.CharSpacing)
	}
	if doc.State().Text.Mode != graphicsstate.ModeFill {
		t.Errorf("Mode after scope = %v, want fill", doc.State().Text.Mode)
	}

	wantErr := fmt.Errorf("boom")
	err = doc.WithFontSize(30, func() error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("WithFontSize error = %v, want boom", err)
	}
	if doc.FontSize() != 10 {
		t.Errorf("FontSize() after failed scope = %v, want 10", doc.FontSize())
	}
}

// TestDocumentWithRotation tests the save/transform/restore bracketing
// around a rotated scope.
func TestDocumentWithRotation(t *testing.T) {
	doc, rec := createTestDocument(t)
	pivot := model.Point{X: 50, Y: 60}

	err := doc.WithRotation(90, pivot, func() error {
		return doc.DrawGlyphs(contentstream.TextSpan{Text: "hi"})
	})
	if err != nil {
		t.Fatalf("WithRotation returned error: %v", err)
	}

	ops := rec.Ops()
	if len(ops) != 4 {
		t.Fatalf("recorded %d ops, want save/transform/text/restore", len(ops))
	}
	if _, ok := ops[0].(contentstream.Save); !ok {
		t.Errorf("ops[0] = %T, want Save", ops[0])
	}
	tf, ok := ops[1].(contentstream.Transform)
	if !ok {
		t.Fatalf("ops[1] = %T, want Transform", ops[1])
	}
	if _, ok := ops[3].(contentstream.Restore); !ok {
		t.Errorf("ops[3] = %T, want Restore", ops[3])
	}

	// The pivot is the transform's fixed point.
	moved := tf.Matrix.Transform(pivot)
	if math.Abs(moved.X-pivot.X) > 0.0001 || math.Abs(moved.Y-pivot.Y) > 0.0001 {
		t.Errorf("Transform(pivot) = %v, want %v", moved, pivot)
	}
	corner := tf.Matrix.Transform(model.Point{X: 60, Y: 60})
	if math.Abs(corner.X-50) > 0.0001 || math.Abs(corner.Y-70) > 0.0001 {
		t.Errorf("Transform((60, 60)) = %v, want (50, 70)", corner)
	}

	if doc.State().Depth() != 0 {
		t.Errorf("state depth after rotation = %d, want 0", doc.State().Depth())
	}
	if !doc.State().CTM.IsIdentity() {
		t.Errorf("CTM after rotation = %v, want identity", doc.State().CTM)
	}
}

// TestDocumentWithRotationZeroAngle tests that a zero angle adds no
// bracketing ops.
func TestDocumentWithRotationZeroAngle(t *testing.T) {
	doc, rec := createTestDocument(t)

	err := doc.WithRotation(0, model.Point{X: 50, Y: 60}, func() error {
		return doc.DrawGlyphs(contentstream.TextSpan{Text: "hi"})
	})
	if err != nil {
		t.Fatalf("WithRotation returned error: %v", err)
	}
	if len(rec.Ops()) != 1 {
		t.Errorf("recorded %d ops, want only the span", len(rec.Ops()))
	}
}

// TestDocumentWithRotationRestoresOnError tests scope unwinding when
// the inner function fails.
func TestDocumentWithRotationRestoresOnError(t *testing.T) {
	doc, rec := createTestDocument(t)

	wantErr := fmt.Errorf("boom")
	err := doc.WithRotation(45, model.Point{}, func() error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("WithRotation error = %v, want boom", err)
	}

	ops := rec.Ops()
	if len(ops) == 0 {
		t.Fatal("no ops recorded")
	}
	if _, ok := ops[len(ops)-1].(contentstream.Restore); !ok {
		t.Errorf("last op = %T, want Restore", ops[len(ops)-1])
	}
	if doc.State().Depth() != 0 {
		t.Errorf("state depth = %d, want 0", doc.State().Depth())
	}
}

// Test helpers

// testFace is a fixed-metric face. Every glyph advances 1000 units, so
// a glyph is exactly the font size wide, and the line height at size
// ten is twelve points.
type testFace struct {
	name    string
	missing map[rune]bool
}

func (f *testFace) Name() string                 { return f.name }
func (f *testFace) HasGlyph(r rune) bool         { return !f.missing[r] }
func (f *testFace) GlyphWidth(r rune) float64    { return 1000 }
func (f *testFace) Kern(prev, next rune) float64 { return 0 }
func (f *testFace) Ascent() float64              { return 700 }
func (f *testFace) Descent() float64             { return 300 }
func (f *testFace) LineGap() float64             { return 200 }
func (f *testFace) Normalize(s string) string    { return s }

// createTestDocument builds a recording document on the "Test" family
// at size ten. "Gappy" lacks '★' and "Star" covers only stars, for
// fallback scenarios.
func createTestDocument(t *testing.T) (*Document, *contentstream.Recorder) {
	t.Helper()

	rec := contentstream.NewRecorder()
	doc := NewDocument(rec)

	fonts := doc.Fonts()
	fonts.Register("Test", font.Regular, &testFace{name: "Test"})
	fonts.Register("Test", font.Bold, &testFace{name: "Test-Bold"})
	fonts.Register("Gappy", font.Regular, &testFace{name: "Gappy", missing: map[rune]bool{'★': true, '☆': true}})
	fonts.Register("Star", font.Regular, &testFace{name: "Star", missing: starless()})

	if err := doc.SetFont("Test"); err != nil {
		t.Fatalf("SetFont(Test) returned error: %v", err)
	}
	doc.SetFontSize(10)
	return doc, rec
}

// starless marks every printable ASCII rune missing, leaving only the
// star code points covered.
func starless() map[rune]bool {
	missing := make(map[rune]bool)
	for r := rune(' '); r <= '~'; r++ {
		missing[r] = true
	}
	return missing
}
