package observation

import (
	"fmt"
	"math"
)

// Apply filters raw samples through the mask criteria and returns a new
// immutable Set.
//
// The filter keeps a sample when, in order:
//  1. x, y, and the weight (when supplied) are finite,
//  2. x lies within the criteria's [xmin, xmax] bounds,
//  3. x is not inside any exclusion window,
//  4. with LogY set, log10(y) is itself finite (y > 0).
//
// The weight column may be nil, in which case every kept sample receives
// weight 1.0. Raw slices are never modified; the returned Set owns fresh
// copies of the surviving samples.
//
// Returns ErrShapeMismatch when the raw columns differ in length. The
// shape check runs before any numeric work.
func Apply(rawX, rawY, rawW []float64, criteria Criteria) (Set, error) {
	if len(rawX) != len(rawY) {
		return Set{}, fmt.Errorf("%w: %d x values vs %d y values", ErrShapeMismatch, len(rawX), len(rawY))
	}
	if rawW != nil && len(rawW) != len(rawX) {
		return Set{}, fmt.Errorf("%w: %d x values vs %d weights", ErrShapeMismatch, len(rawX), len(rawW))
	}

	s := Set{
		x: make([]float64, 0, len(rawX)),
		y: make([]float64, 0, len(rawX)),
		w: make([]float64, 0, len(rawX)),
	}

	for i := range rawX {
		x := rawX[i]
		y := rawY[i]
		if !finite(x) || !finite(y) {
			continue
		}
		if rawW != nil && !finite(rawW[i]) {
			continue
		}
		if !criteria.inBounds(x) {
			continue
		}
		if criteria.excludedAt(x) {
			continue
		}
		if criteria.logY {
			y = math.Log10(y)
			if !finite(y) {
				continue
			}
		}

		s.x = append(s.x, x)
		s.y = append(s.y, y)
		if rawW == nil {
			s.w = append(s.w, 1.0)
		} else {
			s.w = append(s.w, rawW[i])
		}
	}

	return s, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
