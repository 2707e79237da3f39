package fit

import (
	"errors"

	"github.com/arloliu/curvefit/model"
)

// ErrInsufficientData reports fewer usable samples than the model needs;
// it is the same sentinel the model guess heuristics fail with, so one
// errors.Is check covers both the engine precondition and a guess that
// degenerated on the filtered data.
var ErrInsufficientData = model.ErrInsufficientData

// ErrInvalidFitArgument reports an unrecognized or inconsistent solver
// option (unknown method or loss, non-positive iteration budget,
// malformed bounds). It is always surfaced, never silently ignored.
var ErrInvalidFitArgument = errors.New("fit: invalid fit argument")

// ErrOptimizationFailure reports that the solver did not converge or
// raised internally; the underlying solver message is wrapped.
var ErrOptimizationFailure = errors.New("fit: optimization failure")

// ErrNotFit reports a read accessor invoked on an engine with no
// successful fit. This is a programmer error, not a data problem.
var ErrNotFit = errors.New("fit: engine has no successful fit")
