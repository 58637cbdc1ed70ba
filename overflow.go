package stylus

import "errors"

// shrinkStep is the amount shrink_to_fit lowers the font size per
// attempt.
const shrinkStep = 0.5

// shrinkToFit lowers size in half-unit steps until measure reports a
// fit or minSize is reached, and returns the last size tried along
// with whether the content fit at it. measure runs a throwaway wrap
// at the candidate size. A width too narrow for a glyph at one size
// keeps shrinking, since a smaller glyph may still fit; at the floor
// the failure surfaces.
func shrinkToFit(measure func(size float64) (bool, error), size, minSize float64) (float64, bool, error) {
	for {
		fits, err := measure(size)
		if err != nil {
			if !errors.Is(err, ErrCannotFit) || size <= minSize {
				return size, false, err
			}
		} else if fits || size <= minSize {
			return size, fits, nil
		}

		size -= shrinkStep
		if size < minSize {
			size = minSize
		}
	}
}
