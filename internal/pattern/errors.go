package pattern

import (
	"errors"
	"fmt"
)

// ErrMalformedStep reports a step the transforms cannot work with, such as
// an empty label. Constructor clamping should prevent it for steps built
// through NewStep; imported data can still trip it.
var ErrMalformedStep = errors.New("malformed step")

// ErrOutOfRange reports a cursor operation against an empty or structurally
// invalid pattern.
var ErrOutOfRange = errors.New("position out of range")

// LengthMismatchError reports a zip whose two rows differ by more than one
// bead in total count. Both expanded lengths are carried for display.
type LengthMismatchError struct {
	LenA int
	LenB int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("row lengths differ by more than one bead: %d vs %d", e.LenA, e.LenB)
}
