package spectral

import (
	"gonum.org/v1/gonum/mat"

	"orbitsearch/internal/dynamo"
)

// JacobianAt returns an accessor for the system Jacobian along the
// trajectory, addressed by sample index. The time-domain conversion happens
// once and is cached in the closure, so sweeping every sample costs one
// transform plus one Jacobian evaluation per index. With transpose set the
// accessor returns the transposed matrix, which is what the adjoint gradient
// needs.
func JacobianAt(t Trajectory, sys dynamo.System, transpose bool) func(int) (*mat.Dense, error) {
	curve := ToTimeDomain(t)
	d := t.Dim()
	n := t.Samples()

	return func(i int) (*mat.Dense, error) {
		if i < 0 {
			return nil, ErrInvalidIndex
		}
		if i >= n {
			return nil, ErrIndexOutOfRange
		}

		state := make(dynamo.State, d)
		for k := 0; k < d; k++ {
			state[k] = curve[k][i]
		}

		jac := sys.Jacobian(state)
		if transpose {
			jac = mat.DenseCopyOf(jac.T())
		}
		return jac, nil
	}
}
