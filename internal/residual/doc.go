// Package residual turns a (trajectory, frequency) pair into the scalar
// objective of the periodic-orbit search and its exact gradients. The
// conventions (Nyquist handling, Parseval weights, sign of the defect) are
// fixed here and locked in by the finite-difference tests; see DESIGN.md.
package residual
