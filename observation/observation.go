package observation

import "fmt"

// Set is an immutable collection of filtered samples.
//
// The three columns always have equal length and contain only finite
// values. A zero Set is valid and empty.
type Set struct {
	x []float64
	y []float64
	w []float64
}

// NewSet builds a Set directly from pre-cleaned columns.
//
// Most callers should use Apply instead; NewSet exists for derived
// datasets (e.g. the trend pipeline fitting recovered parameters) where
// the columns are constructed programmatically. The slices are copied so
// the Set cannot alias caller memory. Weights may be nil, defaulting to
// 1.0 per sample.
//
// Returns ErrShapeMismatch when the column lengths differ.
func NewSet(x, y, w []float64) (Set, error) {
	if len(x) != len(y) {
		return Set{}, fmt.Errorf("%w: %d x values vs %d y values", ErrShapeMismatch, len(x), len(y))
	}
	if w != nil && len(w) != len(x) {
		return Set{}, fmt.Errorf("%w: %d x values vs %d weights", ErrShapeMismatch, len(x), len(w))
	}

	s := Set{
		x: append([]float64(nil), x...),
		y: append([]float64(nil), y...),
	}
	if w == nil {
		s.w = uniformWeights(len(x))
	} else {
		s.w = append([]float64(nil), w...)
	}

	return s, nil
}

// Len returns the number of samples.
func (s Set) Len() int {
	return len(s.x)
}

// X returns the independent-variable column.
// The returned slice is shared with the Set and must not be modified.
func (s Set) X() []float64 {
	return s.x
}

// Y returns the dependent-variable column.
// The returned slice is shared with the Set and must not be modified.
func (s Set) Y() []float64 {
	return s.y
}

// Weights returns the weight column.
// The returned slice is shared with the Set and must not be modified.
func (s Set) Weights() []float64 {
	return s.w
}

func uniformWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0
	}

	return w
}
