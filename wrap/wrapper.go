package wrap

import (
	"errors"
	"strings"

	"github.com/tsawler/stylus/font"
	"github.com/tsawler/stylus/text"
)

// ErrCannotFit is returned when the available width cannot hold even
// one glyph of the content. Callers retry with a wider box or a
// different overflow policy; the wrapper never loops trying.
var ErrCannotFit = errors.New("cannot fit a single glyph in the available width")

const (
	// softHyphen marks an invisible break opportunity. It renders as
	// a hyphen only when a line actually breaks there.
	softHyphen = '\u00ad'

	// scriptScale is the size reduction applied to subscript and
	// superscript text.
	scriptScale = 0.583

	// superscriptRise is the fraction of the ascent a superscript is
	// raised by. Subscripts drop by the full descent instead.
	superscriptRise = 0.85

	// fitTolerance absorbs float drift in fit comparisons so a line
	// measuring exactly the box width still fits.
	fitTolerance = 1e-9
)

// Measurer resolves font faces for measurement. A stylus Document
// satisfies it; tests substitute fixed-metric fakes.
type Measurer interface {
	// Face resolves a family name and style to a concrete face.
	Face(family string, style font.Style) (font.Face, error)
}

// Params carries one wrap invocation's geometry and defaults.
type Params struct {
	// Width and Height bound the region being filled, in points.
	Width  float64
	Height float64

	// Leading is extra vertical space inserted between lines.
	Leading float64

	// Direction is the dominant direction of the content. The
	// wrapper itself is direction-agnostic (alignment happens during
	// drawing); the value rides along for substitute implementations.
	Direction text.Direction

	// SingleLine stops wrapping after the first line.
	SingleLine bool

	// Kerning enables pair adjustments during measurement.
	Kerning bool

	// DefaultFont, DefaultSize and DefaultCharSpacing resolve run
	// fields left at their zero values.
	DefaultFont        string
	DefaultSize        float64
	DefaultCharSpacing float64
}

// Line is one wrapped line of positioned-to-be fragments.
type Line struct {
	// Fragments are the line's styled slices in draw order. Empty
	// for blank lines.
	Fragments []text.Fragment

	// Width is the measured width of the line's content.
	Width float64

	// Ascent and Descent are the tallest fragment metrics on the line.
	Ascent  float64
	Descent float64

	// Height is the line's full advance height including the font's
	// line gap.
	Height float64

	// SpaceCount is the number of spaces available for justification.
	SpaceCount int

	// HardBreak reports whether the line ended at a newline rather
	// than by running out of width.
	HardBreak bool
}

// IsEmpty reports whether the line carries no fragments.
func (l *Line) IsEmpty() bool {
	return len(l.Fragments) == 0
}

// Result is the outcome of one wrap pass.
type Result struct {
	// Lines are the lines that fit, top to bottom.
	Lines []Line

	// Remainder is the content that did not fit, sliced so a second
	// pass can continue exactly where this one stopped.
	Remainder []text.Run

	// EverythingFit reports whether Remainder is empty.
	EverythingFit bool

	// ConsumedHeight is the vertical extent of the emitted lines,
	// from the first ascent to the last descent.
	ConsumedHeight float64
}

// LineCount returns the number of emitted lines.
func (r *Result) LineCount() int {
	if r == nil {
		return 0
	}
	return len(r.Lines)
}

// LastLine returns the final emitted line, or nil if none fit.
func (r *Result) LastLine() *Line {
	if r == nil || len(r.Lines) == 0 {
		return nil
	}
	return &r.Lines[len(r.Lines)-1]
}

// Config holds configuration for the wrapper.
type Config struct {
	// HyphenateAtSoftHyphens enables breaking at U+00AD with a
	// visible hyphen (default: true).
	HyphenateAtSoftHyphens bool
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		HyphenateAtSoftHyphens: true,
	}
}

// Wrapper is the default greedy line breaker. It scans runs code
// point by code point, breaks at spaces, soft hyphens, and newlines,
// and falls back to mid-word breaks when a single word exceeds the
// full width.
type Wrapper struct {
	measurer Measurer
	config   Config
}

// NewWrapper creates a wrapper with default configuration.
func NewWrapper(m Measurer) *Wrapper {
	return &Wrapper{
		measurer: m,
		config:   DefaultConfig(),
	}
}

// NewWrapperWithConfig creates a wrapper with custom configuration.
func NewWrapperWithConfig(m Measurer, config Config) *Wrapper {
	return &Wrapper{
		measurer: m,
		config:   config,
	}
}

// styledRun is a run resolved against the wrap parameters: concrete
// face, effective size and spacing, normalized text as code points.
type styledRun struct {
	src         text.Run
	face        font.Face
	faceName    string
	size        float64
	charSpacing float64
	yOffset     float64
	ascent      float64
	descent     float64
	height      float64
	runes       []rune
}

// pos addresses one code point in a resolved run list.
type pos struct {
	run int
	idx int
}

// breakPoint describes where a scanned line ends and where the next
// one starts.
type breakPoint struct {
	// end is the first code point excluded from the line.
	end pos

	// resume is where the next line starts. It differs from end when
	// the break consumed separator characters.
	resume pos

	// width is the line's measured width up to end.
	width float64

	// hyphen appends a visible hyphen to the line's last fragment.
	hyphen bool

	// hard marks a newline break, atEnd the end of the content.
	hard  bool
	atEnd bool
}

// WrapParagraph lays the runs out under the given parameters. Lines
// that fit vertically are returned with measured fragments; whatever
// does not fit comes back as the remainder. The pass is pure
// measurement with no side effects, so it can be repeated for
// look-ahead sizing.
func (w *Wrapper) WrapParagraph(runs []text.Run, p Params) (*Result, error) {
	// Step 1: Resolve faces, effective sizes, and normalized text.
	sruns, err := w.resolve(runs, p)
	if err != nil {
		return nil, err
	}

	if contentLength(sruns) == 0 {
		return &Result{EverythingFit: true}, nil
	}

	// Step 2: Scan and cut lines until the content or the height
	// runs out.
	var (
		lines     []Line
		baselineY float64
		remainder pos
		truncated bool
	)

	cur := normalize(sruns, pos{})
	for {
		bp, err := w.scanLine(sruns, cur, p)
		if err != nil {
			return nil, err
		}

		line := w.buildLine(sruns, cur, bp, p)

		// Vertical fit: the candidate baseline must keep the line's
		// descent inside the box.
		var candidate float64
		if len(lines) == 0 {
			candidate = -line.Ascent
		} else {
			candidate = baselineY - (line.Height + p.Leading)
		}
		if -candidate+line.Descent > p.Height+fitTolerance {
			remainder = cur
			truncated = true
			break
		}

		baselineY = candidate
		lines = append(lines, line)

		if bp.atEnd {
			break
		}
		cur = normalize(sruns, bp.resume)
		if cur.run >= len(sruns) && !bp.hard {
			// A soft break consumed the trailing separators and
			// nothing follows.
			break
		}
		if p.SingleLine {
			remainder = cur
			truncated = cur.run < len(sruns)
			break
		}
	}

	// Step 3: Assemble the result.
	res := &Result{Lines: lines}
	if truncated {
		res.Remainder = sliceRuns(sruns, remainder)
	}
	res.EverythingFit = len(res.Remainder) == 0
	if n := len(lines); n > 0 {
		res.ConsumedHeight = -baselineY + lines[n-1].Descent
	}
	return res, nil
}

// resolve maps each run to its concrete face, effective size, spacing,
// baseline shift, and normalized code points.
func (w *Wrapper) resolve(runs []text.Run, p Params) ([]styledRun, error) {
	sruns := make([]styledRun, 0, len(runs))

	for _, r := range runs {
		family := r.Font
		if family == "" {
			family = p.DefaultFont
		}
		face, err := w.measurer.Face(family, r.Styles.FontStyle())
		if err != nil {
			return nil, err
		}

		size := r.Size
		if size == 0 {
			size = p.DefaultSize
		}
		sub := r.Styles.Has(text.StyleSubscript)
		sup := r.Styles.Has(text.StyleSuperscript)
		if sub || sup {
			size *= scriptScale
		}

		m := font.Metrics(face, size)
		yOffset := 0.0
		if sub {
			yOffset = -m.Descent
		} else if sup {
			yOffset = superscriptRise * m.Ascent
		}

		charSpacing := p.DefaultCharSpacing
		if r.CharSpacing != nil {
			charSpacing = *r.CharSpacing
		}

		sruns = append(sruns, styledRun{
			src:         r,
			face:        face,
			faceName:    face.Name(),
			size:        size,
			charSpacing: charSpacing,
			yOffset:     yOffset,
			ascent:      m.Ascent,
			descent:     m.Descent,
			height:      m.Height,
			runes:       []rune(face.Normalize(r.Text)),
		})
	}

	return sruns, nil
}

// scanLine walks code points from start until the line must end,
// tracking the last usable break opportunity.
func (w *Wrapper) scanLine(sruns []styledRun, start pos, p Params) (breakPoint, error) {
	var (
		width      float64
		hasVisible bool

		hasBreak bool
		brk      breakPoint

		// An open group of spaces that may turn out to be trailing
		// (stripped) or internal (a break opportunity).
		inSpaces           bool
		spacesStart        pos
		widthBeforeSpaces  float64
		spacesAfterContent bool

		prev     rune
		prevRun  = -1
		havePrev bool
	)

	cur := normalize(sruns, start)
	for {
		if cur.run >= len(sruns) {
			end, w := cur, width
			if inSpaces {
				end, w = spacesStart, widthBeforeSpaces
			}
			return breakPoint{end: end, resume: cur, width: w, atEnd: true}, nil
		}

		sr := &sruns[cur.run]
		r := sr.runes[cur.idx]
		if cur.run != prevRun {
			havePrev = false
			prevRun = cur.run
		}

		// Hard line break. Trailing spaces are stripped from the
		// line, the newline itself is consumed.
		if r == '\n' {
			end, w := cur, width
			if inSpaces {
				end, w = spacesStart, widthBeforeSpaces
			}
			resume := normalize(sruns, pos{cur.run, cur.idx + 1})
			return breakPoint{end: end, resume: resume, width: w, hard: true}, nil
		}

		// A soft hyphen is invisible unless the line breaks exactly
		// here, so it contributes no width of its own.
		if r == softHyphen {
			if inSpaces {
				if spacesAfterContent {
					hasBreak = true
					brk = breakPoint{end: spacesStart, resume: cur, width: widthBeforeSpaces}
				}
				inSpaces = false
			}
			if w.config.HyphenateAtSoftHyphens && hasVisible {
				hw := advance(sr, '-', prev, havePrev, p.Kerning)
				if width+hw <= p.Width+fitTolerance {
					hasBreak = true
					brk = breakPoint{
						end:    cur,
						resume: pos{cur.run, cur.idx + 1},
						width:  width + hw,
						hyphen: true,
					}
				}
			}
			cur = normalize(sruns, pos{cur.run, cur.idx + 1})
			continue
		}

		adv := advance(sr, r, prev, havePrev, p.Kerning)

		if width+adv > p.Width+fitTolerance {
			// The line is full at r. Pick the best break available.
			switch {
			case r == ' ':
				// Break at the space group; the spaces are consumed.
				if !inSpaces {
					spacesStart, widthBeforeSpaces = cur, width
				}
				return breakPoint{
					end:    spacesStart,
					resume: skipSpaces(sruns, cur),
					width:  widthBeforeSpaces,
				}, nil
			case inSpaces && spacesAfterContent:
				// r is the first glyph after an internal space group,
				// so the group is the latest break opportunity.
				return breakPoint{end: spacesStart, resume: cur, width: widthBeforeSpaces}, nil
			case hasBreak:
				return brk, nil
			case hasVisible:
				// Mid-word break before r. An open space group is
				// trailing and gets stripped.
				end, lw := cur, width
				if inSpaces {
					end, lw = spacesStart, widthBeforeSpaces
				}
				return breakPoint{end: end, resume: cur, width: lw}, nil
			default:
				return breakPoint{}, ErrCannotFit
			}
		}

		if r == ' ' {
			if !inSpaces {
				inSpaces = true
				spacesStart = cur
				widthBeforeSpaces = width
				spacesAfterContent = hasVisible
			}
		} else if inSpaces {
			// The space group turned out to be internal: it is the
			// latest soft break opportunity. Leading whitespace with
			// no content before it stays part of the line instead.
			if spacesAfterContent {
				hasBreak = true
				brk = breakPoint{end: spacesStart, resume: cur, width: widthBeforeSpaces}
			}
			inSpaces = false
		}

		width += adv
		hasVisible = true
		prev = r
		havePrev = true
		cur = normalize(sruns, pos{cur.run, cur.idx + 1})
	}
}

// buildLine cuts fragments for the span [start, bp.end) and computes
// the line's metrics.
func (w *Wrapper) buildLine(sruns []styledRun, start pos, bp breakPoint, p Params) Line {
	var line Line
	line.HardBreak = bp.hard

	for ri := start.run; ri < len(sruns) && ri <= bp.end.run; ri++ {
		sr := &sruns[ri]

		from := 0
		if ri == start.run {
			from = start.idx
		}
		to := len(sr.runes)
		if ri == bp.end.run {
			to = bp.end.idx
		}
		if from >= to && !(bp.hyphen && ri == bp.end.run) {
			continue
		}

		content := strings.Map(dropSoftHyphens, string(sr.runes[from:to]))
		if bp.hyphen && ri == bp.end.run {
			content += "-"
		}
		if content == "" {
			continue
		}

		frag := text.Fragment{
			Text:        content,
			FontName:    sr.faceName,
			Styles:      sr.src.Styles,
			Size:        sr.size,
			CharSpacing: sr.charSpacing,
			Color:       sr.src.Color,
			Link:        sr.src.Link,
			Anchor:      sr.src.Anchor,
			Callbacks:   sr.src.Callbacks,
			Width:       font.StringWidth(sr.face, content, sr.size, sr.charSpacing, p.Kerning),
			Ascent:      sr.ascent,
			Descent:     sr.descent,
			YOffset:     sr.yOffset,
		}

		line.Fragments = append(line.Fragments, frag)
		line.Width += frag.Width
		line.SpaceCount += frag.SpaceCount()
		if sr.ascent > line.Ascent {
			line.Ascent = sr.ascent
		}
		if sr.descent > line.Descent {
			line.Descent = sr.descent
		}
		if sr.height > line.Height {
			line.Height = sr.height
		}
	}

	// A blank line still advances the baseline, using the metrics of
	// the style in effect where it occurred.
	if len(line.Fragments) == 0 {
		sr := metricsSourceAt(sruns, start)
		line.Ascent = sr.ascent
		line.Descent = sr.descent
		line.Height = sr.height
	}

	return line
}

// advance is the width one code point adds to a line.
func advance(sr *styledRun, r, prev rune, havePrev, kerning bool) float64 {
	u := sr.face.GlyphWidth(r)
	if kerning && havePrev {
		u += sr.face.Kern(prev, r)
	}
	return u*sr.size/1000.0 + sr.charSpacing
}

// dropSoftHyphens removes invisible break markers from cut text.
func dropSoftHyphens(r rune) rune {
	if r == softHyphen {
		return -1
	}
	return r
}

// normalize skips exhausted runs so the position either addresses a
// code point or sits one past the final run.
func normalize(sruns []styledRun, p pos) pos {
	for p.run < len(sruns) && p.idx >= len(sruns[p.run].runes) {
		p.run++
		p.idx = 0
	}
	return p
}

// skipSpaces advances past a group of consumed break spaces. Newlines
// stop the skip so hard breaks stay visible.
func skipSpaces(sruns []styledRun, p pos) pos {
	p = normalize(sruns, p)
	for p.run < len(sruns) && sruns[p.run].runes[p.idx] == ' ' {
		p = normalize(sruns, pos{p.run, p.idx + 1})
	}
	return p
}

// contentLength counts the code points across a resolved run list.
func contentLength(sruns []styledRun) int {
	n := 0
	for i := range sruns {
		n += len(sruns[i].runes)
	}
	return n
}

// metricsSourceAt picks the styled run governing a blank line's
// metrics: the run at the position, or the last run when the position
// is past the end.
func metricsSourceAt(sruns []styledRun, p pos) *styledRun {
	p = normalize(sruns, p)
	if p.run < len(sruns) {
		return &sruns[p.run]
	}
	return &sruns[len(sruns)-1]
}

// sliceRuns rebuilds caller-facing runs from a resume position. The
// first run may be a partial slice; it keeps every attribute of its
// source.
func sliceRuns(sruns []styledRun, p pos) []text.Run {
	p = normalize(sruns, p)
	if p.run >= len(sruns) {
		return nil
	}

	var out []text.Run
	first := sruns[p.run]
	partial := first.src
	partial.Text = string(first.runes[p.idx:])
	out = append(out, partial)

	for ri := p.run + 1; ri < len(sruns); ri++ {
		if len(sruns[ri].runes) == 0 {
			continue
		}
		out = append(out, sruns[ri].src)
	}
	return out
}
