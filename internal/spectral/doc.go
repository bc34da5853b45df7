// Package spectral implements the half-spectrum trajectory representation
// and its algebra: real FFT transforms, spectral differentiation, the
// convolution inner product, pointwise nonlinear response, and the
// Jacobian-along-the-orbit accessor.
//
// Conventions, fixed once and relied on everywhere:
//
//   - M stored modes discretize to N = 2(M-1) time samples.
//   - The forward transform is unnormalized; the inverse carries 1/N.
//   - Mode k multiplies the basis e^{ikθ}; [Derivative] is therefore d/dθ,
//     and a fundamental frequency ω maps the domain to physical time with
//     period 2π/ω.
//   - Mode 0 and the Nyquist mode are purely real.
package spectral
