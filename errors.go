package tariplan

import (
	"errors"
	"fmt"
)

// Sentinel errors for sequence construction. They are reported by Build,
// wrapped in a *StepError naming the offending step.
var (
	// ErrDuplicateBinding indicates a workspace name is saved more than once.
	ErrDuplicateBinding = errors.New("tariplan: workspace name already bound")

	// ErrUnboundWorkspaceReference indicates an argument references a workspace
	// name that no earlier step saved.
	ErrUnboundWorkspaceReference = errors.New("tariplan: unbound workspace reference")

	// ErrNothingToSave indicates SaveResult does not directly follow a call step.
	ErrNothingToSave = errors.New("tariplan: no preceding call result to save")

	// ErrEmptyName indicates an empty workspace, function or method name.
	ErrEmptyName = errors.New("tariplan: empty name")

	// ErrInvalidAmount indicates a non-positive fee amount.
	ErrInvalidAmount = errors.New("tariplan: fee amount must be positive")

	// ErrInvalidTarget indicates a call target or fee payer that is not a component.
	ErrInvalidTarget = errors.New("tariplan: target must be a component address")

	// ErrTooManySteps indicates the sequence exceeds the configured step limit.
	ErrTooManySteps = errors.New("tariplan: too many steps")

	// ErrMissingFee indicates WithRequireFee is set and the first step does not reserve fees.
	ErrMissingFee = errors.New("tariplan: sequence does not start with a fee reservation")

	// ErrInvalidEpochRange indicates a minimum epoch above the maximum epoch.
	ErrInvalidEpochRange = errors.New("tariplan: min epoch exceeds max epoch")
)

// StepError wraps a validation failure of one step.
type StepError struct {
	Index int
	Type  StepType
	Name  string
	Err   error
}

func (e *StepError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("tariplan: step %d (%s %s): %v", e.Index, e.Type, e.Name, e.Err)
	}
	return fmt.Sprintf("tariplan: step %d (%s): %v", e.Index, e.Type, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ReferenceError names the workspace reference that could not be resolved.
type ReferenceError struct {
	Name     string
	ArgIndex int
	Err      error
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("tariplan: argument %d references %q: %v", e.ArgIndex, e.Name, e.Err)
}

func (e *ReferenceError) Unwrap() error {
	return e.Err
}
