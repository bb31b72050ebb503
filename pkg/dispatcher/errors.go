package dispatcher

import "errors"

var (
	// ErrDimensionMismatch is returned when the source dimensions are not
	// positive or the pixel count differs from width*height.
	ErrDimensionMismatch = errors.New("dispatcher: dimension mismatch")

	// ErrInvalidTargetSize is returned when a scale target is not positive.
	ErrInvalidTargetSize = errors.New("dispatcher: invalid target size")

	// ErrDegenerateKernel is returned when a kernel sums to zero or holds
	// non-finite values.
	ErrDegenerateKernel = errors.New("dispatcher: degenerate kernel")

	// ErrInvalidAngle is returned when a rotation angle is NaN or infinite.
	ErrInvalidAngle = errors.New("dispatcher: invalid angle")

	// ErrUnknownOperation is returned for an operation tag outside 1..6.
	ErrUnknownOperation = errors.New("dispatcher: unknown operation")
)
