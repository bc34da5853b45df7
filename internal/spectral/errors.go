package spectral

import "errors"

// Boundary errors for the spectral operations. Shape and type problems are
// detected before any work happens; no operation returns a partial result.
var (
	// ErrInvalidInput indicates a transform input that is neither a valid
	// trajectory coefficient array nor a correctly shaped sample array.
	ErrInvalidInput = errors.New("spectral: input is not a valid trajectory or sample array")

	// ErrShapeMismatch indicates operands that disagree on mode count or
	// state dimension.
	ErrShapeMismatch = errors.New("spectral: operand shapes do not match")

	// ErrInvalidIndex indicates a negative sample index.
	ErrInvalidIndex = errors.New("spectral: sample index is negative")

	// ErrIndexOutOfRange indicates a sample index beyond the trajectory's
	// discretization.
	ErrIndexOutOfRange = errors.New("spectral: sample index exceeds trajectory length")
)
