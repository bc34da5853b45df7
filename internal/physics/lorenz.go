package physics

import (
	"gonum.org/v1/gonum/mat"

	"orbitsearch/internal/dynamo"
)

type Lorenz struct{ sigma, rho, beta float64 }

func NewLorenz() *Lorenz   { return &Lorenz{10.0, 28.0, 8.0 / 3.0} }
func (l *Lorenz) Dim() int { return 3 }

// Field evaluates the Lorenz vector field.
func (l *Lorenz) Field(s dynamo.State) dynamo.State {
	return dynamo.State{l.sigma * (s[1] - s[0]), s[0]*(l.rho-s[2]) - s[1], s[0]*s[1] - l.beta*s[2]}
}

func (l *Lorenz) Jacobian(s dynamo.State) *mat.Dense {
	x, y, z := s[0], s[1], s[2]
	return mat.NewDense(3, 3, []float64{
		-l.sigma, l.sigma, 0,
		l.rho - z, -1, -x,
		y, x, -l.beta,
	})
}

func (l *Lorenz) DefaultState() dynamo.State { return dynamo.State{1.0, 1.0, 1.0} }
func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.sigma, "rho": l.rho, "beta": l.beta}
}
func (l *Lorenz) SetParam(n string, v float64) {
	switch n {
	case "sigma":
		l.sigma = v
	case "rho":
		l.rho = v
	case "beta":
		l.beta = v
	}
}
