package model

import (
	"fmt"
	"math"

	"github.com/arloliu/curvefit/observation"
)

// Linear implements y = m·x + b with parameters [m, b].
type Linear struct{}

var _ Function = Linear{}

func (Linear) Name() string     { return "linear" }
func (Linear) Arity() int       { return 2 }
func (Linear) Notation() string { return "y = {0}·x + {1}" }

func (Linear) Eval(x float64, params []float64) float64 {
	return params[0]*x + params[1]
}

func (Linear) Guess(obs observation.Set) ([]float64, error) {
	m, b, err := linearLSQ(obs.X(), obs.Y())
	if err != nil {
		return nil, err
	}

	return []float64{m, b}, nil
}

// Quadratic implements y = a·x² + b·x + c with parameters [a, b, c].
type Quadratic struct{}

var _ Function = Quadratic{}

func (Quadratic) Name() string     { return "quadratic" }
func (Quadratic) Arity() int       { return 3 }
func (Quadratic) Notation() string { return "y = {0}·x² + {1}·x + {2}" }

func (Quadratic) Eval(x float64, params []float64) float64 {
	return params[0]*x*x + params[1]*x + params[2]
}

// Guess seeds the curvature at zero and lets the solver bend the line.
func (Quadratic) Guess(obs observation.Set) ([]float64, error) {
	if obs.Len() < 3 {
		return nil, fmt.Errorf("%w: need at least 3 samples for a quadratic, got %d", ErrInsufficientData, obs.Len())
	}
	m, b, err := linearLSQ(obs.X(), obs.Y())
	if err != nil {
		return nil, err
	}

	return []float64{0, m, b}, nil
}

// Exponential implements y = a·e^(b·x) with parameters [a, b].
type Exponential struct{}

var _ Function = Exponential{}

func (Exponential) Name() string     { return "exponential" }
func (Exponential) Arity() int       { return 2 }
func (Exponential) Notation() string { return "y = {0}·e^({1}·x)" }

func (Exponential) Eval(x float64, params []float64) float64 {
	return params[0] * math.Exp(params[1]*x)
}

// Guess fits ln(y) = ln(a) + b·x over the positive-y samples.
func (Exponential) Guess(obs observation.Set) ([]float64, error) {
	if obs.Len() < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInsufficientData, obs.Len())
	}
	tx, ty := transformed(obs.X(), obs.Y(), nil, math.Log)
	if len(ty) < 2 {
		return nil, fmt.Errorf("%w: fewer than 2 positive y values for a log-linear seed", ErrDegenerateGuess)
	}
	b, logA, err := linearLSQ(tx, ty)
	if err != nil {
		return nil, err
	}

	return []float64{math.Exp(logA), b}, nil
}

// Power implements y = a·x^b with parameters [a, b].
type Power struct{}

var _ Function = Power{}

func (Power) Name() string     { return "power" }
func (Power) Arity() int       { return 2 }
func (Power) Notation() string { return "y = {0}·x^{1}" }

func (Power) Eval(x float64, params []float64) float64 {
	return params[0] * math.Pow(x, params[1])
}

// Guess fits ln(y) = ln(a) + b·ln(x) over samples with x > 0 and y > 0.
func (Power) Guess(obs observation.Set) ([]float64, error) {
	if obs.Len() < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInsufficientData, obs.Len())
	}
	tx, ty := transformed(obs.X(), obs.Y(), math.Log, math.Log)
	if len(ty) < 2 {
		return nil, fmt.Errorf("%w: fewer than 2 positive (x, y) pairs for a log-log seed", ErrDegenerateGuess)
	}
	b, logA, err := linearLSQ(tx, ty)
	if err != nil {
		return nil, err
	}

	return []float64{math.Exp(logA), b}, nil
}

// Logarithmic implements y = a + b·ln(x) with parameters [a, b].
type Logarithmic struct{}

var _ Function = Logarithmic{}

func (Logarithmic) Name() string     { return "logarithmic" }
func (Logarithmic) Arity() int       { return 2 }
func (Logarithmic) Notation() string { return "y = {0} + {1}·ln(x)" }

func (Logarithmic) Eval(x float64, params []float64) float64 {
	return params[0] + params[1]*math.Log(x)
}

// Guess fits y = a + b·ln(x) over samples with x > 0.
func (Logarithmic) Guess(obs observation.Set) ([]float64, error) {
	if obs.Len() < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInsufficientData, obs.Len())
	}
	tx, ty := transformed(obs.X(), obs.Y(), math.Log, nil)
	if len(ty) < 2 {
		return nil, fmt.Errorf("%w: fewer than 2 positive x values for a log seed", ErrDegenerateGuess)
	}
	b, a, err := linearLSQ(tx, ty)
	if err != nil {
		return nil, err
	}

	return []float64{a, b}, nil
}

// Hyperbolic implements y = a + b/x with parameters [a, b].
type Hyperbolic struct{}

var _ Function = Hyperbolic{}

func (Hyperbolic) Name() string     { return "hyperbolic" }
func (Hyperbolic) Arity() int       { return 2 }
func (Hyperbolic) Notation() string { return "y = {0} + {1}/x" }

func (Hyperbolic) Eval(x float64, params []float64) float64 {
	return params[0] + params[1]/x
}

// Guess fits y = a + b·(1/x) over samples with x != 0.
func (Hyperbolic) Guess(obs observation.Set) ([]float64, error) {
	if obs.Len() < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInsufficientData, obs.Len())
	}
	tx, ty := transformed(obs.X(), obs.Y(), func(x float64) float64 { return 1 / x }, nil)
	if len(ty) < 2 {
		return nil, fmt.Errorf("%w: fewer than 2 nonzero x values for a 1/x seed", ErrDegenerateGuess)
	}
	b, a, err := linearLSQ(tx, ty)
	if err != nil {
		return nil, err
	}

	return []float64{a, b}, nil
}

// Gaussian implements y = a·exp(-(x-mu)²/(2·sigma²)) with parameters
// [a, mu, sigma].
type Gaussian struct{}

var _ Function = Gaussian{}

func (Gaussian) Name() string     { return "gaussian" }
func (Gaussian) Arity() int       { return 3 }
func (Gaussian) Notation() string { return "y = {0}·exp(-(x - {1})² / (2·{2}²))" }

func (Gaussian) Eval(x float64, params []float64) float64 {
	d := x - params[1]

	return params[0] * math.Exp(-d*d/(2*params[2]*params[2]))
}

// Guess places the peak at the sample with the largest |y| and seeds the
// width from a quarter of the x spread.
func (Gaussian) Guess(obs observation.Set) ([]float64, error) {
	n := obs.Len()
	if n < 3 {
		return nil, fmt.Errorf("%w: need at least 3 samples for a gaussian, got %d", ErrInsufficientData, n)
	}

	x := obs.X()
	y := obs.Y()
	peak := 0
	xmin, xmax := x[0], x[0]
	for i := 1; i < n; i++ {
		if math.Abs(y[i]) > math.Abs(y[peak]) {
			peak = i
		}
		if x[i] < xmin {
			xmin = x[i]
		}
		if x[i] > xmax {
			xmax = x[i]
		}
	}

	spread := xmax - xmin
	if spread == 0 {
		return nil, fmt.Errorf("%w: zero x spread cannot seed a gaussian width", ErrDegenerateGuess)
	}
	if y[peak] == 0 {
		return nil, fmt.Errorf("%w: all-zero y cannot seed a gaussian amplitude", ErrDegenerateGuess)
	}

	return []float64{y[peak], x[peak], spread / 4}, nil
}
