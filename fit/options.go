package fit

import (
	"fmt"

	"github.com/arloliu/curvefit/internal/options"
)

// Method selects the nonlinear solver.
type Method string

// MethodLM is damped least squares (Levenberg-Marquardt), the default
// and currently the only recognized method.
const MethodLM Method = "levenberg-marquardt"

// Loss selects the per-residual loss transform.
type Loss string

const (
	// LossLinear is plain sum-of-squares, the default.
	LossLinear Loss = "linear"
	// LossSoftL1 is the smooth approximation of L1: rho(z) = 2(sqrt(1+z)-1).
	LossSoftL1 Loss = "soft_l1"
	// LossHuber is the Huber loss: rho(z) = z for z <= 1, 2*sqrt(z)-1 above.
	LossHuber Loss = "huber"
)

// Bounds restricts parameters to [Lower[i], Upper[i]]. Both slices must
// have length equal to the model arity.
type Bounds struct {
	Lower []float64
	Upper []float64
}

const (
	defaultMaxIterations = 200
	defaultTolerance     = 1e-10
)

// config collects fit arguments. Defaults: unbounded LM with plain
// sum-of-squares loss and the model's own guess heuristic for p0.
type config struct {
	p0            []float64
	bounds        *Bounds
	method        Method
	loss          Loss
	maxIterations int
	tolerance     float64
}

func defaultConfig() config {
	return config{
		method:        MethodLM,
		loss:          LossLinear,
		maxIterations: defaultMaxIterations,
		tolerance:     defaultTolerance,
	}
}

// Option is a functional option for one Fit call.
type Option = options.Option[*config]

// WithInitialGuess supplies starting parameters, bypassing the model's
// guess heuristic. Length must equal the model arity (checked at fit
// time, once the model is known).
func WithInitialGuess(p0 []float64) Option {
	return options.NoError(func(c *config) {
		c.p0 = append([]float64(nil), p0...)
	})
}

// WithBounds restricts parameters to [lower[i], upper[i]].
func WithBounds(lower, upper []float64) Option {
	return func(c *config) error {
		if len(lower) != len(upper) {
			return fmt.Errorf("%w: %d lower bounds vs %d upper bounds", ErrInvalidFitArgument, len(lower), len(upper))
		}
		for i := range lower {
			if lower[i] > upper[i] {
				return fmt.Errorf("%w: bounds[%d] inverted (%g > %g)", ErrInvalidFitArgument, i, lower[i], upper[i])
			}
		}
		c.bounds = &Bounds{
			Lower: append([]float64(nil), lower...),
			Upper: append([]float64(nil), upper...),
		}

		return nil
	}
}

// WithMethod overrides the solver method.
func WithMethod(m Method) Option {
	return func(c *config) error {
		if m != MethodLM {
			return fmt.Errorf("%w: unknown method %q", ErrInvalidFitArgument, m)
		}
		c.method = m

		return nil
	}
}

// WithLoss overrides the residual loss transform.
func WithLoss(l Loss) Option {
	return func(c *config) error {
		switch l {
		case LossLinear, LossSoftL1, LossHuber:
			c.loss = l
		default:
			return fmt.Errorf("%w: unknown loss %q", ErrInvalidFitArgument, l)
		}

		return nil
	}
}

// WithMaxIterations bounds the solver iteration count.
func WithMaxIterations(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidFitArgument, n)
		}
		c.maxIterations = n

		return nil
	}
}

// WithTolerance sets the solver's gradient and step convergence
// tolerance.
func WithTolerance(tol float64) Option {
	return func(c *config) error {
		if tol <= 0 {
			return fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidFitArgument, tol)
		}
		c.tolerance = tol

		return nil
	}
}
