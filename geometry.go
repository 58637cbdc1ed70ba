package stylus

import (
	"github.com/tsawler/stylus/model"
	"github.com/tsawler/stylus/text"
	"github.com/tsawler/stylus/wrap"
)

// geometry computes where fragments land on the page from a box's
// resolved placement, alignment and direction. Vertical alignment
// translates the placement before inking, so a geometry value is
// built fresh wherever positions are needed.
type geometry struct {
	at        model.Point
	width     float64
	height    float64
	align     Alignment
	direction text.Direction
}

// fragmentX returns the x coordinate of a fragment positioned acc
// points into a line of the given measured width.
func (g *geometry) fragmentX(lineWidth, acc float64) float64 {
	switch {
	case g.align == AlignCenter:
		return g.at.X + g.width/2 - lineWidth/2 + acc
	case g.align == AlignRight,
		g.align == AlignJustify && g.direction == text.RTL:
		return g.at.X + g.width - lineWidth + acc
	default:
		return g.at.X + acc
	}
}

// fragmentY returns the y coordinate of a fragment's baseline given
// the line's baseline offset below the box top and the fragment's
// subscript or superscript shift.
func (g *geometry) fragmentY(baselineY, yOffset float64) float64 {
	return g.at.Y + baselineY + yOffset
}

// pivot returns the rotation pivot for the box rectangle.
func (g *geometry) pivot(p Pivot) model.Point {
	switch p {
	case PivotUpperRight:
		return model.Point{X: g.at.X + g.width, Y: g.at.Y}
	case PivotLowerLeft:
		return model.Point{X: g.at.X, Y: g.at.Y - g.height}
	case PivotLowerRight:
		return model.Point{X: g.at.X + g.width, Y: g.at.Y - g.height}
	case PivotCenter:
		return model.Point{X: g.at.X + g.width/2, Y: g.at.Y - g.height/2}
	default:
		return g.at
	}
}

// wordSpacingFor returns the extra width distributed across a line's
// spaces under justified alignment. Hard-broken lines and the final
// line of fully printed content keep their natural spacing.
func (g *geometry) wordSpacingFor(line *wrap.Line, paragraphFinal bool) float64 {
	if g.align != AlignJustify || line.HardBreak || paragraphFinal {
		return 0
	}
	if line.SpaceCount == 0 || line.Width >= g.width {
		return 0
	}
	return (g.width - line.Width) / float64(line.SpaceCount)
}
