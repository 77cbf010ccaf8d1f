package tariplan

import (
	"fmt"
	"strings"

	"github.com/branched-services/go-tariplan/address"
)

// StepType specifies the kind of a sequence step.
type StepType uint8

const (
	// StepReserveFee reserves fees from a payer component.
	StepReserveFee StepType = iota

	// StepCallFunction calls a template function.
	StepCallFunction

	// StepCallMethod calls a method on a component.
	StepCallMethod

	// StepSaveResult saves the preceding call's result to the workspace.
	StepSaveResult
)

func (t StepType) String() string {
	switch t {
	case StepReserveFee:
		return "ReserveFee"
	case StepCallFunction:
		return "CallFunction"
	case StepCallMethod:
		return "CallMethod"
	case StepSaveResult:
		return "SaveResult"
	default:
		return fmt.Sprintf("StepType(%d)", uint8(t))
	}
}

// IsCall returns true for function and method calls.
func (t StepType) IsCall() bool {
	return t == StepCallFunction || t == StepCallMethod
}

// Step is one operation of a sequence.
// Step is immutable - accessors return copies.
type Step struct {
	stepType StepType
	target   address.EntityAddress   // payer for fees, component for methods
	template address.TemplateAddress // template for functions
	name     string                  // function, method or workspace name
	amount   int64
	args     []Argument
}

// Type returns the step type.
func (s Step) Type() StepType {
	return s.stepType
}

// Target returns the fee payer or the called component.
func (s Step) Target() address.EntityAddress {
	return s.target
}

// Template returns the called template of a function call.
func (s Step) Template() address.TemplateAddress {
	return s.template
}

// Name returns the function or method name, or the workspace name of a
// SaveResult step.
func (s Step) Name() string {
	return s.name
}

// Amount returns the fee amount of a ReserveFee step.
func (s Step) Amount() int64 {
	return s.amount
}

// Args returns a copy of the call arguments.
func (s Step) Args() []Argument {
	out := make([]Argument, len(s.args))
	copy(out, s.args)
	return out
}

func (s Step) String() string {
	switch s.stepType {
	case StepReserveFee:
		return fmt.Sprintf("ReserveFee(%s, %d)", address.AbbreviateDefault(s.target), s.amount)
	case StepCallFunction:
		return fmt.Sprintf("CallFunction(%s::%s%s)", s.template, s.name, formatArgs(s.args))
	case StepCallMethod:
		return fmt.Sprintf("CallMethod(%s.%s%s)", address.AbbreviateDefault(s.target), s.name, formatArgs(s.args))
	case StepSaveResult:
		return fmt.Sprintf("SaveResult(%s)", s.name)
	default:
		return s.stepType.String()
	}
}

func formatArgs(args []Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case *WorkspaceArg:
			parts[i] = v.String()
		case *LiteralArg:
			parts[i] = fmt.Sprint(v.Value())
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Call is a pending function or method call that can be added to a Sequence.
// Call is immutable - WithArgs returns a new instance.
type Call struct {
	step Step
}

// Step returns the step the call will add.
func (c *Call) Step() Step {
	return c.step
}

// WithArgs returns a new Call with args appended.
func (c *Call) WithArgs(args ...any) *Call {
	clone := c.clone()
	clone.step.args = append(clone.step.args, toArguments(args)...)
	return clone
}

// clone creates a copy of the Call.
func (c *Call) clone() *Call {
	clone := *c
	// Deep copy the args slice
	clone.step.args = make([]Argument, len(c.step.args))
	copy(clone.step.args, c.step.args)
	return &clone
}

// validate checks the call's own fields. Workspace references are checked
// by Build against the whole sequence.
func (s Step) validate() error {
	switch s.stepType {
	case StepReserveFee:
		if s.target.Kind != address.Component {
			return ErrInvalidTarget
		}
		if s.amount <= 0 {
			return ErrInvalidAmount
		}
	case StepCallFunction:
		if s.template == "" || s.name == "" {
			return ErrEmptyName
		}
	case StepCallMethod:
		if s.target.Kind != address.Component {
			return ErrInvalidTarget
		}
		if s.name == "" {
			return ErrEmptyName
		}
	case StepSaveResult:
		if s.name == "" {
			return ErrEmptyName
		}
	}
	return nil
}
