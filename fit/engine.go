package fit

import (
	"fmt"

	"github.com/arloliu/curvefit/internal/options"
	"github.com/arloliu/curvefit/model"
	"github.com/arloliu/curvefit/observation"
)

// State is the engine lifecycle state.
type State int

const (
	// StateUnfit means Fit has never been called.
	StateUnfit State = iota
	// StateSucceeded means the last Fit produced a Result.
	StateSucceeded
	// StateFailed means the last Fit failed; Err holds the reason.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnfit:
		return "unfit"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Engine fits one model function against one observation set.
//
// Engines are not safe for concurrent use; each fit in a batch should own
// its own Engine. There is no shared state between engine instances.
type Engine struct {
	state  State
	obs    observation.Set
	fn     model.Function
	result *Result
	err    error
}

// New returns an engine in the unfit state.
func New() *Engine {
	return &Engine{state: StateUnfit}
}

// Fit runs the single-fit protocol against obs with fn.
//
// Preconditions are checked in order: the observation count must exceed
// the model arity by at least one (ErrInsufficientData), then an absent
// initial guess is derived from the model's own heuristic, whose
// failures propagate. Option validation failures surface as
// ErrInvalidFitArgument; solver failures as ErrOptimizationFailure.
//
// Fit is idempotent-overwrite: each call fully replaces the prior state,
// succeed or fail. The returned error is also retained and queryable via
// Err while the engine stays in the failed state.
func (e *Engine) Fit(obs observation.Set, fn model.Function, opts ...Option) error {
	result, err := runFit(obs, fn, opts...)
	e.obs = obs
	e.fn = fn
	if err != nil {
		e.state = StateFailed
		e.result = nil
		e.err = err

		return err
	}

	e.state = StateSucceeded
	e.result = result
	e.err = nil

	return nil
}

func runFit(obs observation.Set, fn model.Function, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	nobs := obs.Len()
	arity := fn.Arity()
	if nobs < arity+1 {
		return nil, fmt.Errorf("%w: %d samples cannot fit %d parameters (need at least %d)",
			ErrInsufficientData, nobs, arity, arity+1)
	}

	p0 := cfg.p0
	if p0 == nil {
		guess, err := fn.Guess(obs)
		if err != nil {
			return nil, err
		}
		p0 = guess
	}
	if len(p0) != arity {
		return nil, fmt.Errorf("%w: initial guess has %d parameters, model %s needs %d",
			ErrInvalidFitArgument, len(p0), fn.Name(), arity)
	}
	if cfg.bounds != nil && len(cfg.bounds.Lower) != arity {
		return nil, fmt.Errorf("%w: bounds cover %d parameters, model %s needs %d",
			ErrInvalidFitArgument, len(cfg.bounds.Lower), fn.Name(), arity)
	}

	out, err := solve(obs, fn, p0, &cfg)
	if err != nil {
		return nil, err
	}

	dof := nobs - arity
	ssr := 0.0
	for _, r := range out.residuals {
		ssr += r * r
	}
	chisqDOF := ssr / float64(dof)
	pcov, psigma := covariance(out.jacobian, chisqDOF, arity)

	return &Result{
		Popt:     out.popt,
		Psigma:   psigma,
		Pcov:     pcov,
		ChisqDOF: chisqDOF,
		DOF:      dof,
		NObs:     nobs,
		Report: Report{
			Residuals:   out.residuals,
			Jacobian:    out.jacobian,
			Evaluations: out.evaluations,
			Converged:   out.converged,
		},
		fn: fn,
	}, nil
}

// State returns the engine lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Err returns the retained error in the failed state, nil otherwise.
func (e *Engine) Err() error {
	return e.err
}

// Observations returns the observation set of the last Fit call, in any
// state. Rendering collaborators use it to draw residuals.
func (e *Engine) Observations() observation.Set {
	return e.obs
}

// Result returns the fit outcome, or ErrNotFit outside the succeeded
// state.
func (e *Engine) Result() (*Result, error) {
	if e.state != StateSucceeded {
		return nil, ErrNotFit
	}

	return e.result, nil
}

// Popt returns the optimized parameter vector.
func (e *Engine) Popt() ([]float64, error) {
	if e.state != StateSucceeded {
		return nil, ErrNotFit
	}

	return e.result.Popt, nil
}

// Psigma returns the parameter standard errors.
func (e *Engine) Psigma() ([]float64, error) {
	if e.state != StateSucceeded {
		return nil, ErrNotFit
	}

	return e.result.Psigma, nil
}

// Pcov returns the covariance matrix.
func (e *Engine) Pcov() ([][]float64, error) {
	if e.state != StateSucceeded {
		return nil, ErrNotFit
	}

	return e.result.Pcov, nil
}

// ChisqDOF returns the reduced chi-square.
func (e *Engine) ChisqDOF() (float64, error) {
	if e.state != StateSucceeded {
		return 0, ErrNotFit
	}

	return e.result.ChisqDOF, nil
}

// DOF returns the degrees of freedom.
func (e *Engine) DOF() (int, error) {
	if e.state != StateSucceeded {
		return 0, ErrNotFit
	}

	return e.result.DOF, nil
}

// NObs returns the fitted sample count.
func (e *Engine) NObs() (int, error) {
	if e.state != StateSucceeded {
		return 0, ErrNotFit
	}

	return e.result.NObs, nil
}

// Curve returns the fitted model bound to the optimized parameters.
func (e *Engine) Curve() (func(x float64) float64, error) {
	if e.state != StateSucceeded {
		return nil, ErrNotFit
	}

	return e.result.Curve(), nil
}

// RelativeUncertainty returns psigma/|popt| per parameter; entries with
// popt == 0 report +Inf.
func (e *Engine) RelativeUncertainty() ([]float64, error) {
	if e.state != StateSucceeded {
		return nil, ErrNotFit
	}

	return e.result.RelativeUncertainty(), nil
}
