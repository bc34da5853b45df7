package spectral

import "orbitsearch/internal/dynamo"

// Response evaluates a pointwise state map along the whole trajectory: the
// curve is taken to the time domain, f is applied independently at every
// sample, and the result is transformed back. f must map a state vector to
// one of the same dimension; this is how a nonlinear vector field is
// evaluated along an entire candidate orbit in one call.
func Response(t Trajectory, f func(dynamo.State) dynamo.State) (Trajectory, error) {
	curve := ToTimeDomain(t)
	d := t.Dim()
	n := t.Samples()

	out := make([][]float64, d)
	for i := range out {
		out[i] = make([]float64, n)
	}

	state := make(dynamo.State, d)
	for j := 0; j < n; j++ {
		for i := 0; i < d; i++ {
			state[i] = curve[i][j]
		}
		v := f(state)
		if len(v) != d {
			return Trajectory{}, ErrShapeMismatch
		}
		for i := 0; i < d; i++ {
			out[i][j] = v[i]
		}
	}

	return ToFrequencyDomain(out)
}
