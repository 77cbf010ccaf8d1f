package tariplan

import (
	"errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrDuplicateBinding", ErrDuplicateBinding, "tariplan: workspace name already bound"},
		{"ErrUnboundWorkspaceReference", ErrUnboundWorkspaceReference, "tariplan: unbound workspace reference"},
		{"ErrNothingToSave", ErrNothingToSave, "tariplan: no preceding call result to save"},
		{"ErrEmptyName", ErrEmptyName, "tariplan: empty name"},
		{"ErrInvalidAmount", ErrInvalidAmount, "tariplan: fee amount must be positive"},
		{"ErrInvalidTarget", ErrInvalidTarget, "tariplan: target must be a component address"},
		{"ErrTooManySteps", ErrTooManySteps, "tariplan: too many steps"},
		{"ErrMissingFee", ErrMissingFee, "tariplan: sequence does not start with a fee reservation"},
		{"ErrInvalidEpochRange", ErrInvalidEpochRange, "tariplan: min epoch exceeds max epoch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.msg {
				t.Errorf("Expected error message %q, got %q", tt.msg, tt.err.Error())
			}
		})
	}
}

func TestStepError(t *testing.T) {
	t.Run("with name", func(t *testing.T) {
		err := &StepError{Index: 2, Type: StepSaveResult, Name: "nft", Err: ErrDuplicateBinding}
		expected := "tariplan: step 2 (SaveResult nft): tariplan: workspace name already bound"
		if err.Error() != expected {
			t.Errorf("Expected error message %q, got %q", expected, err.Error())
		}
		if !errors.Is(err, ErrDuplicateBinding) {
			t.Error("errors.Is should find ErrDuplicateBinding in chain")
		}
	})

	t.Run("without name", func(t *testing.T) {
		err := &StepError{Index: 0, Type: StepReserveFee, Err: ErrInvalidAmount}
		expected := "tariplan: step 0 (ReserveFee): tariplan: fee amount must be positive"
		if err.Error() != expected {
			t.Errorf("Expected error message %q, got %q", expected, err.Error())
		}
	})
}

func TestReferenceError(t *testing.T) {
	inner := &ReferenceError{Name: "nft", ArgIndex: 1, Err: ErrUnboundWorkspaceReference}
	err := &StepError{Index: 3, Type: StepCallMethod, Name: "deposit", Err: inner}

	expected := `tariplan: argument 1 references "nft": tariplan: unbound workspace reference`
	if inner.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, inner.Error())
	}
	if !errors.Is(err, ErrUnboundWorkspaceReference) {
		t.Error("errors.Is should find ErrUnboundWorkspaceReference through both wrappers")
	}
	var ref *ReferenceError
	if !errors.As(err, &ref) || ref != inner {
		t.Error("errors.As should find the ReferenceError")
	}
}
