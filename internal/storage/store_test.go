package storage

import (
	"math"
	"testing"

	"orbitsearch/internal/optim"
	"orbitsearch/internal/spectral"
)

func testResult(t *testing.T) optim.Result {
	t.Helper()
	raw := [][]complex128{
		{complex(2, 0), complex(4, -1), complex(0.5, 0)},
		{complex(0, 0), complex(1, 2), complex(0.1, 0)},
	}
	traj, err := spectral.New(raw)
	if err != nil {
		t.Fatal(err)
	}
	return optim.Result{
		Trajectory: traj,
		Freq:       0.94,
		Residual:   3.2e-11,
		Status:     optim.Converged,
		Iterations: 42,
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	trace := &optim.Trace{}
	trace.Append(optim.Snapshot{Iteration: 1, GlobalResidual: 1e-2, Gradient: []float64{0.3, 0}, Freq: 1.0})
	trace.Append(optim.Snapshot{Iteration: 2, GlobalResidual: 1e-5, Gradient: []float64{0.01, 0}, Freq: 0.95})

	result := testResult(t)
	runID, err := store.Save("vanderpol", "lbfgs", result, trace)
	if err != nil {
		t.Fatal(err)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.System != "vanderpol" || meta.Method != "lbfgs" {
		t.Errorf("metadata: %+v", meta)
	}
	if meta.Modes != 3 || meta.Iterations != 42 || meta.Status != "converged" {
		t.Errorf("metadata: %+v", meta)
	}
	if math.Abs(meta.Freq-0.94) > 1e-12 {
		t.Errorf("freq: %v", meta.Freq)
	}
}

func TestLoadOrbitRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	result := testResult(t)
	runID, err := store.Save("vanderpol", "lbfgs", result, nil)
	if err != nil {
		t.Fatal(err)
	}

	curve, thetas, err := store.LoadOrbit(runID)
	if err != nil {
		t.Fatal(err)
	}
	want := spectral.ToTimeDomain(result.Trajectory)
	if len(curve) != 2 || len(thetas) != result.Trajectory.Samples() {
		t.Fatalf("shape: %d dims, %d samples", len(curve), len(thetas))
	}
	for i := range want {
		for j := range want[i] {
			// Written with six decimal places.
			if math.Abs(curve[i][j]-want[i][j]) > 1e-5 {
				t.Errorf("sample (%d,%d): %v != %v", i, j, curve[i][j], want[i][j])
			}
		}
	}
}

func TestLoadTrace(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	trace := &optim.Trace{}
	trace.Append(optim.Snapshot{Iteration: 1, GlobalResidual: 0.5})
	trace.Append(optim.Snapshot{Iteration: 2, GlobalResidual: 0.01})
	trace.Append(optim.Snapshot{Iteration: 3, GlobalResidual: 2e-7})

	runID, err := store.Save("duffing", "cg", testResult(t), trace)
	if err != nil {
		t.Fatal(err)
	}

	residuals, err := store.LoadTrace(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(residuals) != 3 {
		t.Fatalf("got %d residuals", len(residuals))
	}
	if math.Abs(residuals[2]-2e-7) > 1e-15 {
		t.Errorf("last residual %v", residuals[2])
	}
}

func TestListEmptyAndPopulated(t *testing.T) {
	store := New(t.TempDir())

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save("rotation", "lbfgs", testResult(t), nil); err != nil {
		t.Fatal(err)
	}

	runs, err = store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].System != "rotation" {
		t.Errorf("runs: %+v", runs)
	}
}
