package octquant

import "errors"

var (
	// ErrMaxColors is returned when a palette size outside [1,255] is
	// requested.
	ErrMaxColors = errors.New("octquant: max colors out of range")
	// ErrMaxColorBits is returned when the number of significant bits per
	// channel is outside [1,8].
	ErrMaxColorBits = errors.New("octquant: max color bits out of range")
	// ErrBounds is returned when a buffer is too small for its declared
	// geometry.
	ErrBounds = errors.New("octquant: buffer geometry out of bounds")
	// ErrState is returned when a Session is driven out of order.
	ErrState = errors.New("octquant: invalid quantizer state")
)
