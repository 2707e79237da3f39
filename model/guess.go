package model

import (
	"fmt"
	"math"
)

// linearLSQ solves the closed-form least squares line y = slope·x +
// intercept. It is the workhorse behind every guess heuristic: nonlinear
// families transform their samples into a line first (log-linear,
// log-log, 1/x) and seed the solver from the recovered line.
func linearLSQ(x, y []float64) (slope, intercept float64, err error) {
	n := len(x)
	if n < 2 {
		return 0, 0, fmt.Errorf("%w: need at least 2 samples for a line, got %d", ErrInsufficientData, n)
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)
	denom := sumX2 - float64(n)*meanX*meanX
	if denom == 0 || !isFinite(denom) {
		return 0, 0, fmt.Errorf("%w: x values do not constrain a slope", ErrDegenerateGuess)
	}

	slope = (sumXY - float64(n)*meanX*meanY) / denom
	intercept = meanY - slope*meanX
	if !isFinite(slope) || !isFinite(intercept) {
		return 0, 0, fmt.Errorf("%w: non-finite line coefficients", ErrDegenerateGuess)
	}

	return slope, intercept, nil
}

// transformed filters (x, y) pairs through fx/fy, dropping pairs whose
// transform is non-finite. Either transform may be nil for identity.
func transformed(x, y []float64, fx, fy func(float64) float64) (tx, ty []float64) {
	tx = make([]float64, 0, len(x))
	ty = make([]float64, 0, len(y))
	for i := range x {
		xi := x[i]
		yi := y[i]
		if fx != nil {
			xi = fx(xi)
		}
		if fy != nil {
			yi = fy(yi)
		}
		if !isFinite(xi) || !isFinite(yi) {
			continue
		}
		tx = append(tx, xi)
		ty = append(ty, yi)
	}

	return tx, ty
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
