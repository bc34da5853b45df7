// Package optim drives the periodic-orbit search: it flattens a
// (trajectory, frequency) pair into a real parameter vector, hands the
// residual objective and its gradient to a gonum optimizer, and records a
// per-iteration trace of the descent.
package optim
