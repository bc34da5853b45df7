package spectral

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"
)

func randomTrajectory(dim, modes int, rng *rand.Rand) Trajectory {
	raw := make([][]complex128, dim)
	for i := range raw {
		raw[i] = make([]complex128, modes)
		for k := range raw[i] {
			raw[i][k] = complex(rng.NormFloat64(), rng.NormFloat64())
		}
	}
	t, err := New(raw)
	if err != nil {
		panic(err)
	}
	return t
}

func maxModeDiff(a, b Trajectory) float64 {
	max := 0.0
	for i := 0; i < a.Dim(); i++ {
		for k := 0; k < a.ModeCount(); k++ {
			if d := cmplx.Abs(a.At(i, k) - b.At(i, k)); d > max {
				max = d
			}
		}
	}
	return max
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, shape := range []struct{ dim, modes int }{{1, 5}, {2, 9}, {3, 17}} {
		traj := randomTrajectory(shape.dim, shape.modes, rng)
		back, err := ToFrequencyDomain(ToTimeDomain(traj))
		if err != nil {
			t.Fatalf("round trip (%d,%d): %v", shape.dim, shape.modes, err)
		}
		if d := maxModeDiff(traj, back); d > 1e-9 {
			t.Errorf("round trip (%d,%d): max coefficient drift %.3e", shape.dim, shape.modes, d)
		}
	}
}

func TestToTimeDomainKnownSignal(t *testing.T) {
	// X_1 = N/2 is cos(θ); X_1 = -iN/2 is sin(θ).
	modes := 5
	n := 2 * (modes - 1)
	raw := make([][]complex128, 2)
	for i := range raw {
		raw[i] = make([]complex128, modes)
	}
	raw[0][1] = complex(float64(n)/2, 0)
	raw[1][1] = complex(0, -float64(n)/2)

	traj, err := New(raw)
	if err != nil {
		t.Fatal(err)
	}
	curve := ToTimeDomain(traj)

	for j := 0; j < n; j++ {
		theta := 2 * math.Pi * float64(j) / float64(n)
		if math.Abs(curve[0][j]-math.Cos(theta)) > 1e-12 {
			t.Errorf("sample %d: got %.12f, want cos %.12f", j, curve[0][j], math.Cos(theta))
		}
		if math.Abs(curve[1][j]-math.Sin(theta)) > 1e-12 {
			t.Errorf("sample %d: got %.12f, want sin %.12f", j, curve[1][j], math.Sin(theta))
		}
	}
}

func TestToFrequencyDomainRejectsBadShapes(t *testing.T) {
	cases := [][][]float64{
		{},                     // empty
		{{1, 2, 3}},            // odd sample count
		{{1, 2, 3, 4}, {1, 2}}, // ragged
	}
	for i, c := range cases {
		if _, err := ToFrequencyDomain(c); err == nil {
			t.Errorf("case %d: expected ErrInvalidInput", i)
		}
	}
}

func TestNewCanonicalizesSymmetry(t *testing.T) {
	raw := [][]complex128{{complex(1, 5), complex(2, 3), complex(4, 7)}}
	traj, err := New(raw)
	if err != nil {
		t.Fatal(err)
	}
	if imag(traj.At(0, 0)) != 0 {
		t.Error("mode 0 kept an imaginary part")
	}
	if imag(traj.At(0, 2)) != 0 {
		t.Error("Nyquist mode kept an imaginary part")
	}
	if traj.At(0, 1) != complex(2, 3) {
		t.Error("interior mode was altered")
	}
}
