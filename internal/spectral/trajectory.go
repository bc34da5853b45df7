package spectral

import (
	"math"
	"math/cmplx"
)

// Trajectory is a closed curve in state space stored as a truncated set of
// complex Fourier coefficients, one row per state dimension, one column per
// non-negative wavenumber. Only the half spectrum is kept; the time-domain
// signal is real by conjugate symmetry, which requires the mode-0 and
// Nyquist coefficients to be purely real. Trajectories are immutable: every
// operation returns a fresh value.
type Trajectory struct {
	modes [][]complex128
}

// New builds a trajectory from a coefficient array. The array must be
// rectangular with at least one dimension and at least two modes. The
// imaginary parts of the mode-0 and Nyquist columns are dropped to keep the
// half-spectrum invariant.
func New(modes [][]complex128) (Trajectory, error) {
	if len(modes) == 0 || len(modes[0]) < 2 {
		return Trajectory{}, ErrInvalidInput
	}
	m := len(modes[0])
	out := make([][]complex128, len(modes))
	for i, row := range modes {
		if len(row) != m {
			return Trajectory{}, ErrInvalidInput
		}
		out[i] = make([]complex128, m)
		copy(out[i], row)
		out[i][0] = complex(real(row[0]), 0)
		out[i][m-1] = complex(real(row[m-1]), 0)
	}
	return Trajectory{modes: out}, nil
}

// fromModes wraps a coefficient array without copying or canonicalizing.
// Callers own the array and must not alias it afterwards.
func fromModes(modes [][]complex128) Trajectory {
	return Trajectory{modes: modes}
}

// Zero returns the zero trajectory of the given shape.
func Zero(dim, modes int) Trajectory {
	out := make([][]complex128, dim)
	for i := range out {
		out[i] = make([]complex128, modes)
	}
	return fromModes(out)
}

func (t Trajectory) Dim() int       { return len(t.modes) }
func (t Trajectory) ModeCount() int { return len(t.modes[0]) }

// Samples reports the number of time-domain points the trajectory
// discretizes to: twice the truncated spectrum length.
func (t Trajectory) Samples() int { return 2 * (t.ModeCount() - 1) }

// At returns the coefficient of wavenumber k in state dimension d.
func (t Trajectory) At(d, k int) complex128 { return t.modes[d][k] }

// reflected returns the coefficient at a possibly negative wavenumber using
// conjugate symmetry, coeff[-k] = conj(coeff[k]).
func (t Trajectory) reflected(d, k int) complex128 {
	if k < 0 {
		return cmplx.Conj(t.modes[d][-k])
	}
	return t.modes[d][k]
}

func (t Trajectory) clone() [][]complex128 {
	out := make([][]complex128, len(t.modes))
	for i, row := range t.modes {
		out[i] = make([]complex128, len(row))
		copy(out[i], row)
	}
	return out
}

func (t Trajectory) sameShape(o Trajectory) bool {
	return t.Dim() == o.Dim() && t.ModeCount() == o.ModeCount()
}

func (t Trajectory) Add(o Trajectory) (Trajectory, error) {
	if !t.sameShape(o) {
		return Trajectory{}, ErrShapeMismatch
	}
	out := t.clone()
	for i := range out {
		for k := range out[i] {
			out[i][k] += o.modes[i][k]
		}
	}
	return fromModes(out), nil
}

func (t Trajectory) Sub(o Trajectory) (Trajectory, error) {
	if !t.sameShape(o) {
		return Trajectory{}, ErrShapeMismatch
	}
	out := t.clone()
	for i := range out {
		for k := range out[i] {
			out[i][k] -= o.modes[i][k]
		}
	}
	return fromModes(out), nil
}

func (t Trajectory) Scale(a float64) Trajectory {
	out := t.clone()
	c := complex(a, 0)
	for i := range out {
		for k := range out[i] {
			out[i][k] *= c
		}
	}
	return fromModes(out)
}

// Shift offsets the curve by a constant state vector. A time-domain offset
// of v appears in the unnormalized half spectrum as N·v on mode 0.
func (t Trajectory) Shift(offset []float64) (Trajectory, error) {
	if len(offset) != t.Dim() {
		return Trajectory{}, ErrShapeMismatch
	}
	out := t.clone()
	n := float64(t.Samples())
	for i := range out {
		out[i][0] += complex(n*offset[i], 0)
	}
	return fromModes(out), nil
}

// ZeroNyquist clears the folded mode. The Nyquist coefficient of a real
// half-spectrum signal cannot carry phase, so operations that would write
// one (differentiation, residual assembly) drop it instead.
func (t Trajectory) ZeroNyquist() Trajectory {
	out := t.clone()
	m := t.ModeCount()
	for i := range out {
		out[i][m-1] = 0
	}
	return fromModes(out)
}

// MaxAbs returns the largest coefficient magnitude, mainly for tests and
// convergence reporting.
func (t Trajectory) MaxAbs() float64 {
	max := 0.0
	for _, row := range t.modes {
		for _, c := range row {
			if a := cmplx.Abs(c); a > max {
				max = a
			}
		}
	}
	return max
}

// IsValid reports whether every coefficient is finite.
func (t Trajectory) IsValid() bool {
	for _, row := range t.modes {
		for _, c := range row {
			if math.IsNaN(real(c)) || math.IsNaN(imag(c)) ||
				math.IsInf(real(c), 0) || math.IsInf(imag(c), 0) {
				return false
			}
		}
	}
	return true
}
