// Package model defines the parametric function families that the fit
// engine optimizes.
//
// Each family implements the Function interface: the callable itself, a
// fixed parameter arity, an initial-guess heuristic tuned to the family's
// shape, and a notation template consumed by the notation package.
// Families are selected either directly (model.Linear{}) or dynamically
// through the Kind enum and the New factory:
//
//	fn, err := model.New(model.KindGaussian)
//
// Guess heuristics reuse the classic transform-then-linear-least-squares
// trick: an exponential is seeded from a log-linear fit, a power law from
// a log-log fit, a hyperbola from a fit against 1/x. A heuristic fails
// with ErrInsufficientData when too few usable samples remain, or with
// ErrDegenerateGuess when the filtered data cannot constrain a shape
// parameter (all-equal x, no positive y for a log transform, zero spread
// for a Gaussian width).
package model
