// Package fit runs a nonlinear weighted least-squares fit of one model
// function against one observation set and exposes the outcome through a
// read-only contract.
//
// An Engine is an explicit state machine: it starts unfit, and a single
// Fit call moves it to either the succeeded state (holding a Result) or
// the failed state (holding the error). Re-fitting fully replaces the
// prior state; no partial state survives a failed attempt. Accessors are
// only valid in the succeeded state and fail with ErrNotFit otherwise,
// so there is never an "is this field populated yet" ambiguity.
//
//	eng := fit.New()
//	if err := eng.Fit(obs, model.Linear{}); err != nil {
//	    return err
//	}
//	popt, _ := eng.Popt()
//	curve, _ := eng.Curve()
//
// The solver is Levenberg-Marquardt with a numeric Jacobian, minimizing
// w·(f(x;p) − y) with a bounded iteration count. Parameter uncertainties
// come from the final Jacobian: pcov = inv(JᵗJ)·chisq_dof. A singular
// JᵗJ (near-degenerate model, saturated bounds) degrades to +Inf
// covariance on an otherwise successful fit; it is not an error.
package fit
