package dynamo

import "errors"

// Domain errors shared by the search pipeline.
var (
	// ErrDimensionMismatch indicates a state vector whose length disagrees
	// with the system dimension.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrInvalidState indicates a state with NaN or Inf entries.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")
)
