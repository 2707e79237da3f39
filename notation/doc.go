// Package notation renders human-readable formulas from a model's
// notation template and a fit result. It reads popt, psigma and
// chisq_dof through the fit package's read-only surface and writes
// nothing back.
package notation
