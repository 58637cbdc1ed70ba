package stylus

import (
	"fmt"
	"math"
	"strings"

	"github.com/tsawler/stylus/contentstream"
	"github.com/tsawler/stylus/font"
	"github.com/tsawler/stylus/graphicsstate"
	"github.com/tsawler/stylus/model"
	"github.com/tsawler/stylus/text"
	"github.com/tsawler/stylus/wrap"
)

// Wrapper turns runs into measured lines under a box's width and
// height. The default implementation is [wrap.Wrapper]; substitute
// one with [Box.SetWrapper] to change line breaking without touching
// the render pipeline. Implementations must be re-derivable: wrapping
// the same input twice yields the same result, since dry runs and
// vertical alignment wrap more than once.
type Wrapper interface {
	WrapParagraph(runs []text.Run, p wrap.Params) (*wrap.Result, error)
}

// phase names the pipeline stage a render pass is in. Errors surface
// prefixed with the phase that raised them.
type phase int

const (
	phaseConfiguring phase = iota
	phaseEncoding
	phaseSizing
	phaseVerticalAligning
	phaseInking
	phaseSettled
)

// String returns a string representation of the phase.
func (p phase) String() string {
	switch p {
	case phaseConfiguring:
		return "configuring"
	case phaseEncoding:
		return "encoding"
	case phaseSizing:
		return "sizing"
	case phaseVerticalAligning:
		return "vertical-aligning"
	case phaseInking:
		return "inking"
	case phaseSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// renderState is the mutable state of one render pass. Every call to
// Render or DryRun builds a fresh value, so a configured box can be
// rendered repeatedly; the post-render accessors report the most
// recent pass.
type renderState struct {
	dry   bool
	phase phase
	inked bool

	// Working placement. Vertical alignment translates at and
	// shrinks height before inking.
	at     model.Point
	width  float64
	height float64

	fontSize float64
	kerning  bool

	// Line bookkeeping for the post-render accessors.
	placed     bool
	baselineY  float64
	lineHeight float64
	ascender   float64
	descender  float64

	printedLines []string
	remainder    []text.Run
	warnings     []Warning
}

// Box positions styled runs inside a rectangular region of a
// document, applying fallback fonts, an overflow policy, alignment
// and rotation. Configuration is resolved against the document once,
// at construction; after that the box renders with [Box.Render] or
// measures with [Box.DryRun] as often as needed.
type Box struct {
	doc  *Document
	runs []text.Run

	at            model.Point
	width         float64
	height        float64
	align         Alignment
	valign        VerticalAlignment
	direction     text.Direction
	overflow      Overflow
	minFontSize   float64
	leading       float64
	charSpacing   float64
	size          float64
	mode          graphicsstate.RenderMode
	rotate        float64
	rotateAround  Pivot
	singleLine    bool
	kerning       bool
	fallbackFonts []string
	style         font.Style

	wrapper Wrapper

	// pendingWarnings accumulate at construction (markup notes) and
	// ride every render's warning list.
	pendingWarnings []Warning

	last *renderState
}

// NewBox creates a box for the given runs, resolving omitted
// configuration fields against the document: placement defaults to
// the left bound at the cursor, width and height to the space
// remaining toward the right and bottom bounds, and typography to the
// document's font, size, leading and kerning. Invalid values fail
// with ErrConfiguration. OverflowExpand pins the height to all
// remaining vertical space and then truncates against it.
func NewBox(doc *Document, runs []text.Run, cfg BoxConfig) (*Box, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrConfiguration)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	style, err := font.ParseStyle(cfg.Style)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	b := &Box{
		doc:          doc,
		align:        cfg.Align,
		valign:       cfg.VAlign,
		direction:    cfg.Direction,
		overflow:     cfg.Overflow,
		minFontSize:  cfg.MinFontSize,
		leading:      cfg.Leading,
		charSpacing:  cfg.CharSpacing,
		size:         cfg.Size,
		mode:         cfg.Mode,
		rotate:       cfg.Rotate,
		rotateAround: cfg.RotateAround,
		singleLine:   cfg.SingleLine,
		style:        style,
	}

	bounds := doc.Bounds()

	b.at = cfg.At
	if b.at == (model.Point{}) {
		b.at = model.Point{X: bounds.Left(), Y: doc.Cursor()}
	}
	b.width = cfg.Width
	if b.width == 0 {
		b.width = bounds.Right() - b.at.X
	}
	b.height = cfg.Height
	if b.height == 0 {
		b.height = b.at.Y - bounds.Bottom()
	}
	if b.overflow == OverflowExpand {
		b.height = b.at.Y - bounds.Bottom()
		b.overflow = OverflowTruncate
	}
	if b.width < 0 || b.height < 0 {
		return nil, fmt.Errorf("%w: box extends outside the document bounds", ErrConfiguration)
	}

	if b.direction == text.Neutral {
		b.direction = doc.Direction()
	}
	if b.align == AlignDefault {
		if b.direction == text.RTL {
			b.align = AlignRight
		} else {
			b.align = AlignLeft
		}
	}
	if b.size == 0 {
		b.size = doc.FontSize()
	}
	if b.minFontSize == 0 {
		b.minFontSize = 5
	}
	if b.leading == 0 {
		b.leading = doc.Leading()
	}
	if b.charSpacing == 0 {
		b.charSpacing = doc.State().Text.CharSpacing
	}
	if b.mode == graphicsstate.ModeFill {
		b.mode = doc.State().Text.Mode
	}
	if cfg.Kerning != nil {
		b.kerning = *cfg.Kerning
	} else {
		b.kerning = doc.Kerning()
	}
	if cfg.FallbackFonts != nil {
		b.fallbackFonts = append([]string(nil), cfg.FallbackFonts...)
	} else {
		b.fallbackFonts = doc.FallbackFonts()
	}

	b.runs = make([]text.Run, len(runs))
	copy(b.runs, runs)
	if style != font.Regular {
		for i := range b.runs {
			if style.Has(font.Bold) {
				b.runs[i].Styles |= text.StyleBold
			}
			if style.Has(font.Italic) {
				b.runs[i].Styles |= text.StyleItalic
			}
		}
	}

	b.wrapper = wrap.NewWrapper(doc)
	return b, nil
}

// NewBoxFromOptions creates a box from a data-driven option map, as
// used by template callers. Keys are checked against the permitted
// set; an unknown key fails with ErrUnknownOption.
func NewBoxFromOptions(doc *Document, runs []text.Run, opts map[string]any) (*Box, error) {
	cfg, err := ParseBoxOptions(opts)
	if err != nil {
		return nil, err
	}
	return NewBox(doc, runs, cfg)
}

// NewMarkupBox creates a box from inline markup, parsed with
// [text.ParseMarkup]. Attributes the markup parser does not
// understand become warnings reported by every render.
func NewMarkupBox(doc *Document, markup string, cfg BoxConfig) (*Box, error) {
	runs, notes, err := text.ParseMarkup(markup)
	if err != nil {
		return nil, err
	}

	b, err := NewBox(doc, runs, cfg)
	if err != nil {
		return nil, err
	}
	for _, note := range notes {
		b.pendingWarnings = append(b.pendingWarnings, Warning{
			Code:    WarnIgnoredAttribute,
			Message: note,
		})
	}
	return b, nil
}

// validateConfig rejects values no resolution step can repair.
func validateConfig(cfg *BoxConfig) error {
	if !cfg.Align.Valid() {
		return fmt.Errorf("%w: alignment %d", ErrConfiguration, cfg.Align)
	}
	if !cfg.VAlign.Valid() {
		return fmt.Errorf("%w: vertical alignment %d", ErrConfiguration, cfg.VAlign)
	}
	if !cfg.Overflow.Valid() {
		return fmt.Errorf("%w: overflow strategy %d", ErrConfiguration, cfg.Overflow)
	}
	if !cfg.RotateAround.Valid() {
		return fmt.Errorf("%w: rotation pivot %d", ErrConfiguration, cfg.RotateAround)
	}
	if !cfg.Mode.Valid() {
		return fmt.Errorf("%w: render mode %d", ErrConfiguration, cfg.Mode)
	}
	nonNegative := [...]struct {
		name  string
		value float64
	}{
		{"width", cfg.Width},
		{"height", cfg.Height},
		{"size", cfg.Size},
		{"min_font_size", cfg.MinFontSize},
	}
	for _, f := range nonNegative {
		if f.value < 0 || !finite(f.value) {
			return fmt.Errorf("%w: %s %v", ErrConfiguration, f.name, f.value)
		}
	}

	finiteOnly := [...]struct {
		name  string
		value float64
	}{
		{"at.x", cfg.At.X},
		{"at.y", cfg.At.Y},
		{"leading", cfg.Leading},
		{"char_spacing", cfg.CharSpacing},
		{"rotate", cfg.Rotate},
	}
	for _, f := range finiteOnly {
		if !finite(f.value) {
			return fmt.Errorf("%w: %s %v", ErrConfiguration, f.name, f.value)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SetWrapper substitutes the line-breaking implementation. A nil
// wrapper restores the default.
func (b *Box) SetWrapper(w Wrapper) {
	if w == nil {
		w = wrap.NewWrapper(b.doc)
	}
	b.wrapper = w
}

// Render lays the runs out and draws them on the document's canvas.
// It returns the runs that did not fit, sliced so a follow-up box can
// continue exactly where this one stopped, along with any warnings.
func (b *Box) Render() ([]text.Run, []Warning, error) {
	return b.render(false)
}

// DryRun executes a full layout pass without drawing, so height,
// remainder and overflow behavior can be inspected before committing
// anything to the page. Repeated dry runs yield identical results.
func (b *Box) DryRun() ([]text.Run, []Warning, error) {
	return b.render(true)
}

func (b *Box) render(dry bool) ([]text.Run, []Warning, error) {
	st := &renderState{
		dry:      dry,
		at:       b.at,
		width:    b.width,
		height:   b.height,
		fontSize: b.size,
		kerning:  b.kerning,
	}
	st.warnings = append(st.warnings, b.pendingWarnings...)

	err := b.run(st)
	b.last = st
	if err != nil {
		return nil, st.warnings, fmt.Errorf("%s: %w", st.phase, err)
	}
	return st.remainder, st.warnings, nil
}

// run executes the render pipeline inside scoped document state, so
// the box's size, spacing and render mode are visible to callbacks
// and unconditionally restored on every exit path.
func (b *Box) run(st *renderState) error {
	return b.doc.WithFontSize(st.fontSize, func() error {
		return b.doc.WithCharSpacing(b.charSpacing, func() error {
			return b.doc.WithRenderMode(b.mode, func() error {
				return b.pipeline(st)
			})
		})
	})
}

// pipeline drives the render phases in their fixed order.
func (b *Box) pipeline(st *renderState) error {
	// Step 1: Configuring. The document's family must resolve at the
	// box's style before anything is measured.
	st.phase = phaseConfiguring
	if _, err := b.doc.Face("", b.style); err != nil {
		return err
	}

	// Step 2: Encoding. Split runs across fallback fonts so every
	// code point has a covering face.
	st.phase = phaseEncoding
	runs := b.runs
	if len(b.fallbackFonts) > 0 {
		split, warnings, err := NewFallbackResolver(b.doc, b.fallbackFonts).Resolve(runs)
		if err != nil {
			return err
		}
		st.warnings = append(st.warnings, warnings...)
		runs = split
	}

	// Step 3: Sizing. Shrink the working size until the content
	// fits or the floor is reached.
	if b.overflow == OverflowShrinkToFit {
		st.phase = phaseSizing
		size, fits, err := shrinkToFit(func(size float64) (bool, error) {
			result, err := b.wrap(runs, st, size)
			if err != nil {
				return false, err
			}
			return result.EverythingFit, nil
		}, st.fontSize, b.minFontSize)
		if err != nil {
			return err
		}
		if !fits {
			st.warnings = append(st.warnings, Warning{
				Code:    WarnShrunkToMinimum,
				Message: fmt.Sprintf("content still overflows at the minimum font size %g", size),
			})
		}
		st.fontSize = size
		b.doc.SetFontSize(size)
	}

	// Step 4: Vertical-Aligning. Measure with a throwaway wrap at
	// the nominal height, then translate the origin down and keep
	// only the consumed height. Never re-wraps at a different width.
	if b.valign != VAlignTop {
		st.phase = phaseVerticalAligning
		result, err := b.wrap(runs, st, st.fontSize)
		if err != nil {
			return err
		}
		switch b.valign {
		case VAlignCenter:
			st.at.Y -= (st.height - result.ConsumedHeight) / 2
		case VAlignBottom:
			st.at.Y -= st.height - result.ConsumedHeight
		}
		st.height = result.ConsumedHeight
	}

	// Step 5: Inking. The real pass runs inside the rotation
	// transform when drawing; dry runs skip both.
	st.phase = phaseInking
	st.inked = !st.dry
	err := b.ink(runs, st)
	st.inked = false
	if err != nil {
		return err
	}

	st.phase = phaseSettled
	return nil
}

func (b *Box) ink(runs []text.Run, st *renderState) error {
	if st.inked && b.rotate != 0 {
		g := b.geometryFor(st)
		return b.doc.WithRotation(b.rotate, g.pivot(b.rotateAround), func() error {
			return b.draw(runs, st)
		})
	}
	return b.draw(runs, st)
}

// draw wraps the runs one final time and places every fragment.
func (b *Box) draw(runs []text.Run, st *renderState) error {
	result, err := b.wrap(runs, st, st.fontSize)
	if err != nil {
		return err
	}

	g := b.geometryFor(st)

	for i := range result.Lines {
		line := &result.Lines[i]

		if st.placed {
			st.baselineY -= line.Height + b.leading
		} else {
			st.baselineY = -line.Ascent
		}
		st.placed = true
		st.lineHeight = line.Height
		st.ascender = line.Ascent
		st.descender = line.Descent

		paragraphFinal := result.EverythingFit && i == len(result.Lines)-1
		ws := g.wordSpacingFor(line, paragraphFinal)

		var lineText strings.Builder
		var acc float64
		for j := range line.Fragments {
			frag := &line.Fragments[j]
			if err := b.drawFragment(st, g, frag, acc, line.Width, ws); err != nil {
				return err
			}
			acc += frag.Width + ws*float64(frag.SpaceCount())
			lineText.WriteString(frag.Text)
		}
		st.printedLines = append(st.printedLines, lineText.String())
	}

	st.remainder = result.Remainder
	return nil
}

// drawFragment computes a fragment's final position and, only when
// inking, emits its side effects in the contract order: underlay
// callbacks, the glyph draw under any scoped word spacing, decoration
// strokes, link annotation, anchor destination, overlay callbacks.
func (b *Box) drawFragment(st *renderState, g *geometry, frag *text.Fragment, acc, lineWidth, wordSpacing float64) error {
	frag.Left = g.fragmentX(lineWidth, acc)
	frag.Baseline = g.fragmentY(st.baselineY, frag.YOffset)

	if !st.inked {
		return nil
	}

	for _, cb := range frag.Callbacks {
		if p, ok := cb.(text.BehindPainter); ok {
			if err := p.PaintBehind(frag); err != nil {
				return err
			}
		}
	}

	draw := func() error {
		span := contentstream.TextSpan{
			// The span's origin is the line baseline; subscript and
			// superscript shifts travel as text rise.
			At:          model.Point{X: frag.Left, Y: g.fragmentY(st.baselineY, 0)},
			Text:        frag.Text,
			Font:        frag.FontName,
			Size:        frag.Size,
			CharSpacing: frag.CharSpacing,
			Rise:        frag.YOffset,
			Mode:        b.mode,
			Kerning:     st.kerning,
		}
		if frag.Color != nil {
			span.Color = *frag.Color
		}
		return b.doc.DrawGlyphs(span)
	}
	var err error
	if wordSpacing != 0 {
		err = b.doc.WithWordSpacing(wordSpacing, draw)
	} else {
		err = draw()
	}
	if err != nil {
		return err
	}

	var decorationColor model.Color
	if frag.Color != nil {
		decorationColor = *frag.Color
	}
	if frag.Styles.Has(text.StyleUnderline) {
		from, to := frag.UnderlinePoints()
		if err := b.doc.StrokeLine(from, to, 0, decorationColor); err != nil {
			return err
		}
	}
	if frag.Styles.Has(text.StyleStrikethrough) {
		from, to := frag.StrikethroughPoints()
		if err := b.doc.StrokeLine(from, to, 0, decorationColor); err != nil {
			return err
		}
	}

	if frag.Link != "" {
		if err := b.doc.LinkAnnotation(frag.BoundingBox(), frag.Link); err != nil {
			return err
		}
	}
	if frag.Anchor != "" {
		at := model.Point{X: frag.Left, Y: frag.Top()}
		if err := b.doc.AddDestination(frag.Anchor, at); err != nil {
			return err
		}
	}

	for _, cb := range frag.Callbacks {
		if p, ok := cb.(text.FrontPainter); ok {
			if err := p.PaintInFront(frag); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Box) wrap(runs []text.Run, st *renderState, size float64) (*wrap.Result, error) {
	return b.wrapper.WrapParagraph(runs, wrap.Params{
		Width:              st.width,
		Height:             st.height,
		Leading:            b.leading,
		Direction:          b.direction,
		SingleLine:         b.singleLine,
		Kerning:            st.kerning,
		DefaultFont:        b.doc.Font(),
		DefaultSize:        size,
		DefaultCharSpacing: b.charSpacing,
	})
}

func (b *Box) geometryFor(st *renderState) *geometry {
	return &geometry{
		at:        st.at,
		width:     st.width,
		height:    st.height,
		align:     b.align,
		direction: b.direction,
	}
}

// AvailableWidth returns the box's resolved width.
func (b *Box) AvailableWidth() float64 {
	return b.width
}

// Height returns the vertical extent the most recent render consumed,
// from the top of the first line to the bottom of the last, or 0 when
// no line has been placed. Dry runs count as placing.
func (b *Box) Height() float64 {
	if b.last == nil || !b.last.placed {
		return 0
	}
	return math.Abs(b.last.baselineY - b.last.descender)
}

// LineHeight returns the last placed line's full advance height.
func (b *Box) LineHeight() float64 {
	if b.last == nil {
		return 0
	}
	return b.last.lineHeight
}

// Ascender returns the last placed line's ascent.
func (b *Box) Ascender() float64 {
	if b.last == nil {
		return 0
	}
	return b.last.ascender
}

// Descender returns the last placed line's descent, as a positive
// magnitude.
func (b *Box) Descender() float64 {
	if b.last == nil {
		return 0
	}
	return b.last.descender
}

// LineGap returns the last placed line's spacing beyond its ascent
// and descent.
func (b *Box) LineGap() float64 {
	if b.last == nil {
		return 0
	}
	return b.last.lineHeight - (b.last.ascender + b.last.descender)
}

// EverythingPrinted reports whether the most recent render placed all
// content.
func (b *Box) EverythingPrinted() bool {
	return b.last != nil && len(b.last.remainder) == 0 && b.last.phase == phaseSettled
}

// NothingPrinted reports whether no content has been placed yet; a
// dry run that would place content counts as printing.
func (b *Box) NothingPrinted() bool {
	return b.last == nil || !b.last.placed
}

// PrintedText returns the text the most recent render placed, lines
// joined with newlines, in the form it was drawn: soft hyphens
// resolved and spaces consumed at line breaks dropped.
func (b *Box) PrintedText() string {
	if b.last == nil {
		return ""
	}
	return strings.Join(b.last.printedLines, "\n")
}
