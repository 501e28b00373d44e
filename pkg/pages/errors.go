package pages

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is matched by RangeError.
var ErrOutOfRange = errors.New("pages: index out of range")

// RangeError reports a page index outside [0, Pages).
type RangeError struct {
	Index int
	Pages int
}

func (e *RangeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("pages: index %d out of range [0, %d)", e.Index, e.Pages)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
