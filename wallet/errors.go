package wallet

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmissionRejected indicates the executor finished the transaction
	// with a status other than Accepted.
	ErrSubmissionRejected = errors.New("wallet: submission rejected")

	// ErrUnexpectedOutcomeShape indicates an Accepted status whose result
	// does not carry an accepted diff.
	ErrUnexpectedOutcomeShape = errors.New("wallet: unexpected outcome shape")

	// ErrNotTerminal indicates Classify was given a pending result.
	ErrNotTerminal = errors.New("wallet: transaction status is not terminal")

	// ErrNilSequence indicates Submit was called without a sequence.
	ErrNilSequence = errors.New("wallet: nil sequence")
)

// RejectedError carries the executor's status and reason unchanged.
type RejectedError struct {
	TransactionID TransactionID
	Status        TransactionStatus
	Reason        string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("wallet: transaction %s %s: %s", e.TransactionID, e.Status, e.Reason)
}

// Is makes every RejectedError match ErrSubmissionRejected.
func (e *RejectedError) Is(target error) bool {
	return target == ErrSubmissionRejected
}

// OutcomeShapeError carries the raw result of an accepted transaction that
// could not be read as a diff.
type OutcomeShapeError struct {
	TransactionID TransactionID
	Status        TransactionStatus
	Raw           []byte
	Err           error
}

func (e *OutcomeShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wallet: transaction %s %s: unexpected result %s: %v", e.TransactionID, e.Status, e.Raw, e.Err)
	}
	return fmt.Sprintf("wallet: transaction %s %s: unexpected result %s", e.TransactionID, e.Status, e.Raw)
}

func (e *OutcomeShapeError) Unwrap() error {
	return e.Err
}

// Is makes every OutcomeShapeError match ErrUnexpectedOutcomeShape.
func (e *OutcomeShapeError) Is(target error) bool {
	return target == ErrUnexpectedOutcomeShape
}
