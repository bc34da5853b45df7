package spectral

// InnerProduct computes the pointwise Euclidean inner product of two
// trajectories as a single-row Fourier series over the same domain. Each
// combined mode n accumulates the discrete convolution over mode pairs
// (m, n-m), synthesizing negative wavenumbers by conjugate reflection and
// zero-filling pairs that fall outside the stored half spectrum. Dividing
// by the effective full-spectrum length 2(M-1) leaves the result on the
// same unnormalized forward-transform scale as the inputs: mode 0 of
// InnerProduct(t, t) is the sum of |t|^2 over the grid, 2(M-1) times its
// mean.
//
// The cost is quadratic in the mode count per output mode. A transform-based
// evaluation would be cheaper for large M but the direct sum is the
// reference definition the tests pin down, so it stays.
func InnerProduct(t1, t2 Trajectory) (Trajectory, error) {
	if !t1.sameShape(t2) {
		return Trajectory{}, ErrShapeMismatch
	}

	m := t1.ModeCount()
	d := t1.Dim()
	norm := complex(float64(2*(m-1)), 0)

	prod := make([]complex128, m)
	for n := 0; n < m; n++ {
		var acc complex128
		for k := 1 - m; k < m; k++ {
			if n-k >= m {
				continue // zero fill beyond the half spectrum
			}
			for i := 0; i < d; i++ {
				acc += t1.reflected(i, k) * t2.reflected(i, n-k)
			}
		}
		prod[n] = acc / norm
	}

	return fromModes([][]complex128{prod}), nil
}
