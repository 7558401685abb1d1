package collision

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every error returned from Build and Transform.
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrTooFewVertices  = fmt.Errorf("%w: polygon needs at least %d vertices", ErrInvalidInput, MinVertices)
	ErrDegenerateEdge  = fmt.Errorf("%w: zero-length edge", ErrInvalidInput)
	ErrNonFiniteVertex = fmt.Errorf("%w: vertex coordinate is not finite", ErrInvalidInput)
)
