package physics

import (
	"gonum.org/v1/gonum/mat"

	"orbitsearch/internal/dynamo"
)

// Duffing implements the unforced Duffing oscillator.
// State: [x, y] where y = dx/dt
// Equations:
//
//	dx/dt = y
//	dy/dt = -δy - αx - βx³
//
// With δ = 0 and α < 0 the double well supports continuous families of
// periodic orbits around each well, which makes it a good search target.
type Duffing struct {
	delta, alpha, beta float64
}

func NewDuffing() *Duffing {
	return &Duffing{delta: 0.0, alpha: -1.0, beta: 1.0}
}

func (d *Duffing) Dim() int { return 2 }

func (d *Duffing) Field(s dynamo.State) dynamo.State {
	x, y := s[0], s[1]
	return dynamo.State{y, -d.delta*y - d.alpha*x - d.beta*x*x*x}
}

func (d *Duffing) Jacobian(s dynamo.State) *mat.Dense {
	x := s[0]
	return mat.NewDense(2, 2, []float64{
		0, 1,
		-d.alpha - 3*d.beta*x*x, -d.delta,
	})
}

func (d *Duffing) DefaultState() dynamo.State { return dynamo.State{1.0, 0.0} }

func (d *Duffing) GetParams() map[string]float64 {
	return map[string]float64{"delta": d.delta, "alpha": d.alpha, "beta": d.beta}
}

func (d *Duffing) SetParam(n string, v float64) {
	switch n {
	case "delta":
		d.delta = v
	case "alpha":
		d.alpha = v
	case "beta":
		d.beta = v
	}
}
