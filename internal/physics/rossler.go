package physics

import (
	"gonum.org/v1/gonum/mat"

	"orbitsearch/internal/dynamo"
)

type Rossler struct{ a, b, c float64 }

func NewRossler() *Rossler  { return &Rossler{0.2, 0.2, 5.7} }
func (r *Rossler) Dim() int { return 3 }

func (r *Rossler) Field(s dynamo.State) dynamo.State {
	x, y, z := s[0], s[1], s[2]
	return dynamo.State{-y - z, x + r.a*y, r.b + z*(x-r.c)}
}

func (r *Rossler) Jacobian(s dynamo.State) *mat.Dense {
	x, z := s[0], s[2]
	return mat.NewDense(3, 3, []float64{
		0, -1, -1,
		1, r.a, 0,
		z, 0, x - r.c,
	})
}

func (r *Rossler) DefaultState() dynamo.State { return dynamo.State{1.0, 1.0, 0.0} }
func (r *Rossler) GetParams() map[string]float64 {
	return map[string]float64{"a": r.a, "b": r.b, "c": r.c}
}
func (r *Rossler) SetParam(n string, v float64) {
	switch n {
	case "a":
		r.a = v
	case "b":
		r.b = v
	case "c":
		r.c = v
	}
}
