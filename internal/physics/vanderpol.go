package physics

import (
	"gonum.org/v1/gonum/mat"

	"orbitsearch/internal/dynamo"
)

// VanDerPol implements the Van der Pol oscillator.
// State: [x, y] where y = dx/dt
// Equations:
//
//	dx/dt = y
//	dy/dt = μ(1 - x²)y - x
type VanDerPol struct {
	mu float64 // Nonlinearity parameter
}

func NewVanDerPol() *VanDerPol {
	return &VanDerPol{
		mu: 1.0, // Classic value for limit cycle
	}
}

func (v *VanDerPol) Dim() int { return 2 }

func (v *VanDerPol) Field(s dynamo.State) dynamo.State {
	x, y := s[0], s[1]
	return dynamo.State{y, v.mu*(1-x*x)*y - x}
}

func (v *VanDerPol) Jacobian(s dynamo.State) *mat.Dense {
	x, y := s[0], s[1]
	return mat.NewDense(2, 2, []float64{
		0, 1,
		-2*v.mu*x*y - 1, v.mu * (1 - x*x),
	})
}

func (v *VanDerPol) DefaultState() dynamo.State { return dynamo.State{2.0, 0.0} }

// GetParams implements dynamo.Configurable
func (v *VanDerPol) GetParams() map[string]float64 {
	return map[string]float64{"mu": v.mu}
}

// SetParam implements dynamo.Configurable
func (v *VanDerPol) SetParam(name string, value float64) {
	if name == "mu" {
		v.mu = value
	}
}
