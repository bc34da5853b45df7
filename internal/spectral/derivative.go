package spectral

// Derivative differentiates the trajectory with respect to its phase-like
// domain variable: mode k is scaled by ik. The folded (Nyquist) mode is
// zeroed afterwards; on the N = 2(M-1) grid it is self-conjugate and a
// nonzero derivative there would break the real-signal invariant. The
// operation is a pure spectral transform and never consults a system.
func Derivative(t Trajectory) Trajectory {
	m := t.ModeCount()
	out := t.clone()
	for i := range out {
		for k := 0; k < m; k++ {
			out[i][k] *= complex(0, float64(k))
		}
		out[i][m-1] = 0
	}
	return fromModes(out)
}
