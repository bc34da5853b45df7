package optim

import (
	"math"
	"sync"

	"orbitsearch/internal/spectral"
)

// Snapshot captures the search state after one major optimizer iteration:
// the candidate pair, the pointwise defect it leaves, the objective value and
// the packed objective gradient. Diagnostics only; the optimizer never reads
// it back.
type Snapshot struct {
	Iteration      int
	Trajectory     spectral.Trajectory
	Freq           float64
	LocalResidual  spectral.Trajectory
	GlobalResidual float64
	Gradient       []float64
}

// GradientNorm is the Euclidean norm of the packed gradient.
func (s Snapshot) GradientNorm() float64 {
	acc := 0.0
	for _, g := range s.Gradient {
		acc += g * g
	}
	return math.Sqrt(acc)
}

// Trace accumulates one Snapshot per major iteration, in order. Safe for
// concurrent use: the search appends from its own goroutine while a UI
// reads.
type Trace struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (t *Trace) Append(s Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snaps = append(t.snaps, s)
}

func (t *Trace) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.snaps)
}

func (t *Trace) At(i int) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snaps[i]
}

func (t *Trace) Last() (Snapshot, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.snaps) == 0 {
		return Snapshot{}, false
	}
	return t.snaps[len(t.snaps)-1], true
}

// Residuals returns the objective history, one value per iteration.
func (t *Trace) Residuals() []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]float64, len(t.snaps))
	for i, s := range t.snaps {
		out[i] = s.GlobalResidual
	}
	return out
}
