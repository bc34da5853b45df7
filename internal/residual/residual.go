package residual

import (
	"orbitsearch/internal/dynamo"
	"orbitsearch/internal/spectral"
)

// Local computes the pointwise defect of the governing equation along the
// candidate orbit:
//
//	r = freq·D(x) - f(x + mean)
//
// where D is the spectral derivative and f the system vector field evaluated
// about the mean state. The Nyquist row of r is dropped: it is unresolvable
// on the half-spectrum grid, and keeping it would make the objective and its
// adjoint gradient disagree. r vanishes identically iff (traj, freq) is an
// exact periodic solution.
func Local(traj spectral.Trajectory, sys dynamo.System, freq float64, mean dynamo.State) (spectral.Trajectory, error) {
	if err := checkShapes(traj, sys, mean); err != nil {
		return spectral.Trajectory{}, err
	}

	shifted, err := traj.Shift(mean)
	if err != nil {
		return spectral.Trajectory{}, err
	}
	resp, err := spectral.Response(shifted, sys.Field)
	if err != nil {
		return spectral.Trajectory{}, err
	}

	lr, err := spectral.Derivative(traj).Scale(freq).Sub(resp)
	if err != nil {
		return spectral.Trajectory{}, err
	}
	return lr.ZeroNyquist(), nil
}

// Global is the optimization objective: half the domain-averaged squared
// magnitude of the local residual, read off mode 0 of the spectral inner
// product. It is zero only for exact solutions and strictly positive
// otherwise.
func Global(traj spectral.Trajectory, sys dynamo.System, freq float64, mean dynamo.State) (float64, error) {
	lr, err := Local(traj, sys, freq, mean)
	if err != nil {
		return 0, err
	}
	ip, err := spectral.InnerProduct(lr, lr)
	if err != nil {
		return 0, err
	}
	return 0.5 * real(ip.At(0, 0)), nil
}

// GradTrajectory is the gradient of Global with respect to every stored
// Fourier coefficient, computed by the adjoint relation
//
//	dJ/dX_k = w_k · (-freq·D(r)_k - G_k)
//
// with G the spectrum of Jᵀ(x+mean)·r swept along the orbit and w_k the
// Parseval weight of mode k (1/N at the ends of the half spectrum, 2/N in
// the interior, N the sample count). The result packs directly against the
// real/imaginary coefficient layout used by the optimizer; finite-difference
// perturbation of any single coefficient reproduces it.
func GradTrajectory(traj spectral.Trajectory, sys dynamo.System, freq float64, mean dynamo.State) (spectral.Trajectory, error) {
	lr, err := Local(traj, sys, freq, mean)
	if err != nil {
		return spectral.Trajectory{}, err
	}

	adj, err := adjointResponse(traj, lr, sys, mean)
	if err != nil {
		return spectral.Trajectory{}, err
	}

	h, err := spectral.Derivative(lr).Scale(-freq).Sub(adj)
	if err != nil {
		return spectral.Trajectory{}, err
	}

	d := traj.Dim()
	m := traj.ModeCount()
	n := float64(traj.Samples())
	modes := make([][]complex128, d)
	for i := 0; i < d; i++ {
		modes[i] = make([]complex128, m)
		for k := 0; k < m; k++ {
			w := 2 / n
			if k == 0 || k == m-1 {
				w = 1 / n
			}
			modes[i][k] = complex(w, 0) * h.At(i, k)
		}
	}
	return spectral.New(modes)
}

// GradFrequency is the derivative of Global with respect to the fundamental
// frequency: the residual's sensitivity to the factor scaling the
// derivative term, mode 0 of <r, D(x)>.
func GradFrequency(traj spectral.Trajectory, sys dynamo.System, freq float64, mean dynamo.State) (float64, error) {
	lr, err := Local(traj, sys, freq, mean)
	if err != nil {
		return 0, err
	}
	ip, err := spectral.InnerProduct(lr, spectral.Derivative(traj))
	if err != nil {
		return 0, err
	}
	return real(ip.At(0, 0)), nil
}

// adjointResponse propagates the local residual backwards through the
// linearized field: v(θ_j) = Jᵀ(x(θ_j)+mean)·r(θ_j), returned in spectral
// form.
func adjointResponse(traj, lr spectral.Trajectory, sys dynamo.System, mean dynamo.State) (spectral.Trajectory, error) {
	shifted, err := traj.Shift(mean)
	if err != nil {
		return spectral.Trajectory{}, err
	}
	jac := spectral.JacobianAt(shifted, sys, true)

	curve := spectral.ToTimeDomain(lr)
	d := lr.Dim()
	n := lr.Samples()

	out := make([][]float64, d)
	for i := range out {
		out[i] = make([]float64, n)
	}
	for j := 0; j < n; j++ {
		jt, err := jac(j)
		if err != nil {
			return spectral.Trajectory{}, err
		}
		for i := 0; i < d; i++ {
			acc := 0.0
			for k := 0; k < d; k++ {
				acc += jt.At(i, k) * curve[k][j]
			}
			out[i][j] = acc
		}
	}
	return spectral.ToFrequencyDomain(out)
}

func checkShapes(traj spectral.Trajectory, sys dynamo.System, mean dynamo.State) error {
	if traj.Dim() != sys.Dim() || len(mean) != traj.Dim() {
		return spectral.ErrShapeMismatch
	}
	return nil
}
