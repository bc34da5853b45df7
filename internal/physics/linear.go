package physics

import (
	"gonum.org/v1/gonum/mat"

	"orbitsearch/internal/dynamo"
)

// Linear is the system dx/dt = Ax. Its Jacobian is constant, which makes it
// the reference case for residual and gradient verification.
type Linear struct {
	a *mat.Dense
}

func NewLinear(a *mat.Dense) *Linear {
	r, c := a.Dims()
	if r != c {
		panic("physics: linear system matrix must be square")
	}
	return &Linear{a: mat.DenseCopyOf(a)}
}

// NewDecay builds the n-dimensional contraction dx/dt = -x.
func NewDecay(n int) *Linear {
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		a.Set(i, i, -1)
	}
	return &Linear{a: a}
}

// NewRotation builds the planar rotation dx/dt = (-y, x), whose every circle
// about the origin is a periodic orbit.
func NewRotation() *Linear {
	return &Linear{a: mat.NewDense(2, 2, []float64{0, -1, 1, 0})}
}

func (l *Linear) Dim() int {
	n, _ := l.a.Dims()
	return n
}

func (l *Linear) Field(s dynamo.State) dynamo.State {
	n := l.Dim()
	out := make(dynamo.State, n)
	v := mat.NewVecDense(n, []float64(s))
	res := mat.NewVecDense(n, []float64(out))
	res.MulVec(l.a, v)
	return out
}

func (l *Linear) Jacobian(_ dynamo.State) *mat.Dense {
	return mat.DenseCopyOf(l.a)
}

func (l *Linear) DefaultState() dynamo.State {
	return make(dynamo.State, l.Dim())
}
