package spectral

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// ToTimeDomain evaluates the trajectory on its natural sample grid. For M
// stored modes the grid has N = 2(M-1) points; the full spectrum is rebuilt
// by conjugate reflection and inverted with an unnormalized-forward, 1/N
// inverse convention. The output is one real sample row per state dimension.
func ToTimeDomain(t Trajectory) [][]float64 {
	m := t.ModeCount()
	n := t.Samples()
	curve := make([][]float64, t.Dim())
	for i := range curve {
		full := make([]complex128, n)
		for k := 0; k < m; k++ {
			full[k] = t.modes[i][k]
		}
		for k := 1; k < m-1; k++ {
			full[n-k] = cmplx.Conj(t.modes[i][k])
		}
		x := fft.IFFT(full)
		curve[i] = make([]float64, n)
		for j := range x {
			curve[i][j] = real(x[j])
		}
	}
	return curve
}

// ToFrequencyDomain transforms a sampled curve back to a trajectory,
// keeping the first N/2+1 modes. It is the exact inverse of ToTimeDomain
// when the sampling resolves every stored mode; for undersampled or
// nonlinear data the truncation aliases and the round trip is only
// approximate. That is a design boundary of the half-spectrum
// representation, not a defect.
func ToFrequencyDomain(curve [][]float64) (Trajectory, error) {
	if len(curve) == 0 {
		return Trajectory{}, ErrInvalidInput
	}
	n := len(curve[0])
	if n < 2 || n%2 != 0 {
		return Trajectory{}, ErrInvalidInput
	}
	for _, row := range curve {
		if len(row) != n {
			return Trajectory{}, ErrInvalidInput
		}
	}

	m := n/2 + 1
	modes := make([][]complex128, len(curve))
	for i, row := range curve {
		c := fft.FFTReal(row)
		modes[i] = make([]complex128, m)
		copy(modes[i], c[:m])
	}
	return New(modes)
}
