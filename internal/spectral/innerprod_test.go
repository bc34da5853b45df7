package spectral

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"
)

func TestInnerProductCommutes(t *testing.T) {
	rng := rand.New(rand.NewSource(19))
	t1 := randomTrajectory(3, 6, rng)
	t2 := randomTrajectory(3, 6, rng)

	p12, err := InnerProduct(t1, t2)
	if err != nil {
		t.Fatal(err)
	}
	p21, err := InnerProduct(t2, t1)
	if err != nil {
		t.Fatal(err)
	}
	if d := maxModeDiff(p12, p21); d > 1e-12 {
		t.Errorf("inner product not symmetric: max diff %.3e", d)
	}
}

func TestInnerProductSelfNonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	traj := randomTrajectory(2, 8, rng)

	p, err := InnerProduct(traj, traj)
	if err != nil {
		t.Fatal(err)
	}
	mean := p.At(0, 0)
	if math.Abs(imag(mean)) > 1e-12 {
		t.Errorf("self inner product mode 0 not real: %v", mean)
	}
	if real(mean) < 0 {
		t.Errorf("self inner product mode 0 negative: %v", mean)
	}
}

// The zero mode of the spectral product, rescaled by the grid size, must
// equal the grid average of the pointwise dot product. Inputs carry no
// Nyquist content so the folded mode cannot alias into the average.
func TestInnerProductMatchesTimeDomain(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	t1 := randomTrajectory(2, 9, rng).ZeroNyquist()
	t2 := randomTrajectory(2, 9, rng).ZeroNyquist()

	p, err := InnerProduct(t1, t2)
	if err != nil {
		t.Fatal(err)
	}

	c1 := ToTimeDomain(t1)
	c2 := ToTimeDomain(t2)
	n := t1.Samples()
	want := 0.0
	for j := 0; j < n; j++ {
		for i := 0; i < t1.Dim(); i++ {
			want += c1[i][j] * c2[i][j]
		}
	}
	want /= float64(n)

	if got := real(p.At(0, 0)) / float64(n); math.Abs(got-want) > 1e-9 {
		t.Errorf("mode 0: spectral %.12f, time domain %.12f", got, want)
	}
}

// Hand-checked two-mode case: x1 = a1 + b1 cos(θ), x2 = a2 + b2 cos(θ).
func TestInnerProductBruteForce(t *testing.T) {
	n := 4.0 // samples for 3 modes
	a1, b1 := 1.5, 0.5
	a2, b2 := -2.0, 3.0

	mk := func(a, b float64) Trajectory {
		traj, err := New([][]complex128{{complex(n*a, 0), complex(n*b/2, 0), 0}})
		if err != nil {
			t.Fatal(err)
		}
		return traj
	}

	p, err := InnerProduct(mk(a1, b1), mk(a2, b2))
	if err != nil {
		t.Fatal(err)
	}

	// x1·x2 = a1a2 + b1b2/2 + (a1b2 + a2b1)cos(θ) + (b1b2/2)cos(2θ)
	want0 := a1*a2 + b1*b2/2
	want1 := (a1*b2 + a2*b1) / 2 // coefficient N/2 scaling, N = 4
	want2 := b1 * b2 / 4

	if got := real(p.At(0, 0)) / n; math.Abs(got-want0) > 1e-12 {
		t.Errorf("mode 0: got %.12f, want %.12f", got, want0)
	}
	if got := p.At(0, 1) / complex(n, 0); cmplx.Abs(got-complex(want1, 0)) > 1e-12 {
		t.Errorf("mode 1: got %v, want %v", got, want1)
	}
	if got := p.At(0, 2) / complex(n, 0); cmplx.Abs(got-complex(want2, 0)) > 1e-12 {
		t.Errorf("mode 2: got %v, want %v", got, want2)
	}
}

func TestInnerProductShapeMismatch(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	t1 := randomTrajectory(2, 6, rng)
	t2 := randomTrajectory(2, 7, rng)
	t3 := randomTrajectory(3, 6, rng)

	if _, err := InnerProduct(t1, t2); err != ErrShapeMismatch {
		t.Errorf("mode mismatch: got %v", err)
	}
	if _, err := InnerProduct(t1, t3); err != ErrShapeMismatch {
		t.Errorf("dimension mismatch: got %v", err)
	}
}
