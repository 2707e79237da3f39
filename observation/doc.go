// Package observation holds the cleaned (x, y, weight) samples that feed
// one curve fit, and the declarative mask criteria used to produce them.
//
// A Set is created once per fit attempt by Apply and is never mutated;
// changing the mask means producing a new Set from the raw samples. After
// filtering every value in a Set is finite and the three columns have
// equal length, so downstream code never re-validates shapes.
//
// # Basic Usage
//
//	crit, err := observation.NewCriteria(
//	    observation.WithXRange(0, 100),
//	    observation.WithExclusion(40, 60),
//	)
//	if err != nil {
//	    return err
//	}
//	obs, err := observation.Apply(x, y, nil, crit)
//
// Weights default to 1.0 when the raw weight slice is nil. With
// WithLogY the dependent variable is replaced by log10(y) before the
// finiteness filter runs, so non-positive y values are dropped rather
// than producing NaN/-Inf samples.
package observation
