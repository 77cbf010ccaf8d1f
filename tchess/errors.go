package tchess

import (
	"errors"
	"fmt"
)

var (
	// ErrNotCreated indicates an accepted transaction whose diff lacks the
	// entity it was expected to create.
	ErrNotCreated = errors.New("tchess: expected entity not created")

	// ErrInvalidBadge indicates a player badge that is not a non-fungible
	// token address with an id.
	ErrInvalidBadge = errors.New("tchess: invalid player badge")

	// ErrBadgeMismatch indicates white and black badges of different resources.
	ErrBadgeMismatch = errors.New("tchess: badges belong to different resources")

	// ErrNotGame indicates a substate that is not a game component.
	ErrNotGame = errors.New("tchess: not a game component")

	// ErrInvalidMove indicates a move that cannot be encoded.
	ErrInvalidMove = errors.New("tchess: invalid move")
)

// NotCreatedError names what an accepted transaction failed to create.
type NotCreatedError struct {
	What string
}

func (e *NotCreatedError) Error() string {
	return fmt.Sprintf("tchess: no %s created", e.What)
}

// Is makes every NotCreatedError match ErrNotCreated.
func (e *NotCreatedError) Is(target error) bool {
	return target == ErrNotCreated
}

// MoveError reports why a move could not be encoded.
type MoveError struct {
	Move   string
	Reason string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("tchess: move %q: %s", e.Move, e.Reason)
}

// Is makes every MoveError match ErrInvalidMove.
func (e *MoveError) Is(target error) bool {
	return target == ErrInvalidMove
}
