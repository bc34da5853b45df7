package optim

import (
	"math/rand"
	"testing"

	"orbitsearch/internal/spectral"
)

func randomTrajectory(dim, modes int, rng *rand.Rand) spectral.Trajectory {
	raw := make([][]complex128, dim)
	for i := range raw {
		raw[i] = make([]complex128, modes)
		for k := range raw[i] {
			raw[i][k] = complex(rng.NormFloat64(), rng.NormFloat64())
		}
	}
	traj, err := spectral.New(raw)
	if err != nil {
		panic(err)
	}
	return traj
}

func TestPackUnpackRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	traj := randomTrajectory(3, 6, rng)
	freq := 1.37

	vec := Pack(traj, freq)
	if len(vec) != 2*3*6+1 {
		t.Fatalf("packed length %d, want %d", len(vec), 2*3*6+1)
	}

	back, f, err := Unpack(vec, 6)
	if err != nil {
		t.Fatal(err)
	}
	if f != freq {
		t.Errorf("frequency changed in round trip: %v != %v", f, freq)
	}
	if back.Dim() != 3 || back.ModeCount() != 6 {
		t.Fatalf("shape %dx%d after round trip", back.Dim(), back.ModeCount())
	}
	for d := 0; d < 3; d++ {
		for k := 0; k < 6; k++ {
			if back.At(d, k) != traj.At(d, k) {
				t.Errorf("coefficient (%d,%d) changed: %v != %v", d, k, back.At(d, k), traj.At(d, k))
			}
		}
	}
}

func TestUnpackRejectsBadLength(t *testing.T) {
	if _, _, err := Unpack(make([]float64, 12), 3); err != spectral.ErrInvalidInput {
		t.Errorf("even length: got %v, want ErrInvalidInput", err)
	}
	// 14 floats minus the frequency leaves 13, not divisible by 2*3.
	if _, _, err := Unpack(make([]float64, 14), 3); err != spectral.ErrInvalidInput {
		t.Errorf("non-divisible length: got %v, want ErrInvalidInput", err)
	}
	if _, _, err := Unpack(make([]float64, 3), 2); err != spectral.ErrInvalidInput {
		t.Errorf("too short: got %v, want ErrInvalidInput", err)
	}
}

func TestPackLayout(t *testing.T) {
	raw := [][]complex128{
		{complex(1, 0), complex(2, 3), complex(4, 0)},
		{complex(5, 0), complex(6, 7), complex(8, 0)},
	}
	traj, err := spectral.New(raw)
	if err != nil {
		t.Fatal(err)
	}

	vec := Pack(traj, 0.5)
	want := []float64{1, 0, 2, 3, 4, 0, 5, 0, 6, 7, 8, 0, 0.5}
	if len(vec) != len(want) {
		t.Fatalf("length %d, want %d", len(vec), len(want))
	}
	for i := range want {
		if vec[i] != want[i] {
			t.Errorf("entry %d: %v, want %v", i, vec[i], want[i])
		}
	}
}
