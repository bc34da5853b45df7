package optim

import (
	"orbitsearch/internal/spectral"
)

// Pack flattens a (trajectory, frequency) pair into one real parameter
// vector: per state dimension, per mode, real part then imaginary part, with
// the frequency as the final entry. Unpack is its exact inverse.
func Pack(traj spectral.Trajectory, freq float64) []float64 {
	d := traj.Dim()
	m := traj.ModeCount()
	vec := make([]float64, 2*d*m+1)

	i := 0
	for dim := 0; dim < d; dim++ {
		for k := 0; k < m; k++ {
			c := traj.At(dim, k)
			vec[i] = real(c)
			vec[i+1] = imag(c)
			i += 2
		}
	}
	vec[i] = freq
	return vec
}

// Unpack rebuilds the (trajectory, frequency) pair from a parameter vector
// produced by Pack. The mode count must be supplied because the flat layout
// does not distinguish dimensions from modes on its own.
func Unpack(vec []float64, modes int) (spectral.Trajectory, float64, error) {
	if modes < 2 || len(vec) < 2*modes+1 || (len(vec)-1)%(2*modes) != 0 {
		return spectral.Trajectory{}, 0, spectral.ErrInvalidInput
	}

	d := (len(vec) - 1) / (2 * modes)
	raw := make([][]complex128, d)
	i := 0
	for dim := 0; dim < d; dim++ {
		raw[dim] = make([]complex128, modes)
		for k := 0; k < modes; k++ {
			raw[dim][k] = complex(vec[i], vec[i+1])
			i += 2
		}
	}

	traj, err := spectral.New(raw)
	if err != nil {
		return spectral.Trajectory{}, 0, err
	}
	return traj, vec[i], nil
}
