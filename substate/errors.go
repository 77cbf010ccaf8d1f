package substate

import (
	"errors"
	"fmt"
)

// ErrMalformedDiff indicates the wallet's diff payload does not have the
// expected shape. Every ParseDiff error matches it.
var ErrMalformedDiff = errors.New("substate: malformed diff")

// DiffError reports where in the diff payload parsing failed.
type DiffError struct {
	Path string
	Err  error
}

func (e *DiffError) Error() string {
	return fmt.Sprintf("substate: parse %s: %v", e.Path, e.Err)
}

func (e *DiffError) Unwrap() error {
	return e.Err
}

// Is makes every DiffError match ErrMalformedDiff.
func (e *DiffError) Is(target error) bool {
	return target == ErrMalformedDiff
}
