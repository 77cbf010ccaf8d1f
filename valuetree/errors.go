package valuetree

import (
	"errors"
	"fmt"
)

// Sentinel errors for decoding failures. Every decoding error matches
// ErrMalformedValue.
var (
	// ErrMalformedValue indicates the input does not follow the tagged-union encoding.
	ErrMalformedValue = errors.New("valuetree: malformed value")

	// ErrUnknownDiscriminant indicates an object key that names no variant.
	ErrUnknownDiscriminant = errors.New("valuetree: unknown discriminant")

	// ErrUnpairedEntry indicates a map entry that is not a [key, value] pair.
	ErrUnpairedEntry = errors.New("valuetree: map entry is not a key/value pair")

	// ErrInvalidTag indicates a tag that is not a [number, value] pair.
	ErrInvalidTag = errors.New("valuetree: invalid tag")

	// ErrByteRange indicates a byte string element outside 0..255.
	ErrByteRange = errors.New("valuetree: byte out of range")

	// ErrMissingValue indicates a nil input value.
	ErrMissingValue = errors.New("valuetree: missing value")
)

// DecodeError reports where in the input decoding failed.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("valuetree: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is makes every DecodeError match ErrMalformedValue.
func (e *DecodeError) Is(target error) bool {
	return target == ErrMalformedValue
}

// EncodeError indicates a node that cannot be encoded, such as a nil Node.
type EncodeError struct {
	Node Node
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("valuetree: cannot encode node of type %T", e.Node)
}
