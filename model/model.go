package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arloliu/curvefit/observation"
)

// ErrInsufficientData reports that a guess heuristic (or a fit
// precondition built on it) had too few usable samples.
var ErrInsufficientData = errors.New("model: insufficient data")

// ErrDegenerateGuess reports that the filtered samples cannot constrain
// one of the family's parameters, e.g. all-equal x for a slope.
var ErrDegenerateGuess = errors.New("model: degenerate initial guess")

// ErrUnknownKind reports an unrecognized model kind or name.
var ErrUnknownKind = errors.New("model: unknown model kind")

// Function is a named, fixed-arity parametric model.
//
// Implementations must be stateless values: Eval must depend only on its
// arguments so that one Function can serve many concurrent fits.
type Function interface {
	// Name returns the canonical lower-case family name.
	Name() string
	// Arity returns the number of free parameters.
	Arity() int
	// Eval evaluates the model at x with the given parameters.
	// len(params) must equal Arity.
	Eval(x float64, params []float64) float64
	// Guess derives starting parameters from filtered observations.
	// Fails with ErrInsufficientData or ErrDegenerateGuess.
	Guess(obs observation.Set) ([]float64, error)
	// Notation returns the family's formula template with {i}
	// placeholders for parameter i, e.g. "y = {0}·x + {1}".
	Notation() string
}

// Kind identifies a built-in model family.
type Kind int

const (
	// KindLinear is y = m·x + b.
	KindLinear Kind = iota
	// KindQuadratic is y = a·x² + b·x + c.
	KindQuadratic
	// KindExponential is y = a·e^(b·x).
	KindExponential
	// KindPower is y = a·x^b.
	KindPower
	// KindLogarithmic is y = a + b·ln(x).
	KindLogarithmic
	// KindHyperbolic is y = a + b/x.
	KindHyperbolic
	// KindGaussian is y = a·exp(-(x-mu)²/(2·sigma²)).
	KindGaussian
)

// kindNames maps Kind to canonical family names.
var kindNames = map[Kind]string{
	KindLinear:      "linear",
	KindQuadratic:   "quadratic",
	KindExponential: "exponential",
	KindPower:       "power",
	KindLogarithmic: "logarithmic",
	KindHyperbolic:  "hyperbolic",
	KindGaussian:    "gaussian",
}

// String returns the canonical family name for the kind.
func (k Kind) String() string {
	if name, exists := kindNames[k]; exists {
		return name
	}

	return "unknown"
}

// kindFromString maps family names back to Kind.
var kindFromString = map[string]Kind{
	"linear":      KindLinear,
	"quadratic":   KindQuadratic,
	"exponential": KindExponential,
	"power":       KindPower,
	"logarithmic": KindLogarithmic,
	"hyperbolic":  KindHyperbolic,
	"gaussian":    KindGaussian,
}

// KindFromString returns the Kind for a family name (case-insensitive).
// Returns Kind(-1) for unknown names.
func KindFromString(name string) Kind {
	if kind, exists := kindFromString[strings.ToLower(name)]; exists {
		return kind
	}

	return Kind(-1)
}

// New returns the Function for a built-in Kind.
func New(kind Kind) (Function, error) {
	switch kind {
	case KindLinear:
		return Linear{}, nil
	case KindQuadratic:
		return Quadratic{}, nil
	case KindExponential:
		return Exponential{}, nil
	case KindPower:
		return Power{}, nil
	case KindLogarithmic:
		return Logarithmic{}, nil
	case KindHyperbolic:
		return Hyperbolic{}, nil
	case KindGaussian:
		return Gaussian{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
}

// NewByName returns the Function for a family name (case-insensitive).
func NewByName(name string) (Function, error) {
	kind := KindFromString(name)
	if kind == Kind(-1) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}

	return New(kind)
}
