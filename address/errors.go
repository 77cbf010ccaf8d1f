package address

import (
	"errors"
	"fmt"
)

// Sentinel errors for address parsing.
var (
	// ErrInvalidAddress is the parent of every parse failure.
	ErrInvalidAddress = errors.New("address: invalid entity address")

	// ErrMissingSeparator indicates the string has no '_' between kind and payload.
	ErrMissingSeparator = errors.New("address: missing '_' separator")

	// ErrUnknownKind indicates the kind prefix is not one of the known kinds.
	ErrUnknownKind = errors.New("address: unknown kind prefix")

	// ErrEmptyPayload indicates the address has no payload bytes.
	ErrEmptyPayload = errors.New("address: empty payload")
)

// ParseError reports a string that is not a canonical address.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("address: parse %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes every ParseError match ErrInvalidAddress.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidAddress
}
