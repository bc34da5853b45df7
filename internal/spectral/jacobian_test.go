package spectral

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"orbitsearch/internal/dynamo"
)

// shear is a minimal system with a state-dependent, asymmetric Jacobian.
type shear struct{}

func (shear) Dim() int { return 2 }
func (shear) Field(x dynamo.State) dynamo.State {
	return dynamo.State{x[0] * x[1], -x[0]}
}
func (shear) Jacobian(x dynamo.State) *mat.Dense {
	return mat.NewDense(2, 2, []float64{x[1], x[0], -1, 0})
}

func TestJacobianAt(t *testing.T) {
	rng := rand.New(rand.NewSource(53))
	traj := randomTrajectory(2, 6, rng)
	curve := ToTimeDomain(traj)

	jac := JacobianAt(traj, shear{}, false)
	for i := 0; i < traj.Samples(); i++ {
		j, err := jac(i)
		if err != nil {
			t.Fatalf("index %d: %v", i, err)
		}
		if math.Abs(j.At(0, 0)-curve[1][i]) > 1e-12 || math.Abs(j.At(0, 1)-curve[0][i]) > 1e-12 {
			t.Errorf("index %d: jacobian evaluated at wrong state", i)
		}
	}
}

func TestJacobianAtTranspose(t *testing.T) {
	rng := rand.New(rand.NewSource(59))
	traj := randomTrajectory(2, 6, rng)

	plain := JacobianAt(traj, shear{}, false)
	transposed := JacobianAt(traj, shear{}, true)

	a, err := plain(3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := transposed(3)
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if a.At(r, c) != b.At(c, r) {
				t.Errorf("entry (%d,%d): transpose mismatch", r, c)
			}
		}
	}
}

func TestJacobianAtBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(61))
	traj := randomTrajectory(2, 5, rng)
	jac := JacobianAt(traj, shear{}, false)

	if _, err := jac(traj.Samples()); err != ErrIndexOutOfRange {
		t.Errorf("index == samples: got %v, want ErrIndexOutOfRange", err)
	}
	if _, err := jac(-1); err != ErrInvalidIndex {
		t.Errorf("negative index: got %v, want ErrInvalidIndex", err)
	}
}
