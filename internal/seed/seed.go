// Package seed builds initial trajectory guesses for the orbit search,
// either from a parametric ellipse or by integrating the flow and closing
// the resulting arc into a loop.
package seed

import (
	"orbitsearch/internal/dynamo"
	"orbitsearch/internal/integrators"
	"orbitsearch/internal/spectral"
)

// Ellipse returns the closed curve center + a·cos θ + b·sin θ sampled on the
// half-spectrum grid with the given number of stored modes. a and b are the
// semi-axis vectors; they need not be orthogonal.
func Ellipse(center, a, b dynamo.State, modes int) (spectral.Trajectory, error) {
	if len(a) != len(center) || len(b) != len(center) {
		return spectral.Trajectory{}, spectral.ErrShapeMismatch
	}
	if modes < 2 {
		return spectral.Trajectory{}, spectral.ErrInvalidInput
	}

	d := len(center)
	n := float64(2 * (modes - 1))
	raw := make([][]complex128, d)
	for i := 0; i < d; i++ {
		raw[i] = make([]complex128, modes)
		raw[i][0] = complex(n*center[i], 0)
		raw[i][1] = complex(n/2*a[i], -n/2*b[i])
	}
	return spectral.New(raw)
}

// FromFlow integrates the system from x0 over one trial period and converts
// the arc into a spectral trajectory. The arc rarely closes exactly, so the
// linear drift between its endpoints is subtracted before transforming;
// without that correction the mismatch aliases across the whole spectrum.
func FromFlow(sys dynamo.System, x0 dynamo.State, period float64, modes int) (spectral.Trajectory, error) {
	if len(x0) != sys.Dim() {
		return spectral.Trajectory{}, spectral.ErrShapeMismatch
	}
	if modes < 2 || period <= 0 {
		return spectral.Trajectory{}, spectral.ErrInvalidInput
	}

	d := sys.Dim()
	n := 2 * (modes - 1)
	dt := period / float64(n)

	samples := make([]dynamo.State, n+1)
	samples[0] = x0.Clone()
	integ := integrators.NewRK4()
	for j := 0; j < n; j++ {
		samples[j+1] = integ.Step(sys, samples[j], dt)
	}

	curve := make([][]float64, d)
	for i := 0; i < d; i++ {
		curve[i] = make([]float64, n)
		gap := samples[n][i] - samples[0][i]
		for j := 0; j < n; j++ {
			curve[i][j] = samples[j][i] - gap*float64(j)/float64(n)
		}
	}
	return spectral.ToFrequencyDomain(curve)
}
