package tariplan

import (
	"github.com/branched-services/go-tariplan/address"
)

// Sequence builds an ordered list of steps executed atomically by the
// ledger. Steps run strictly in order; SaveResult stores the preceding
// call's result in the sequence's workspace under a name that later steps
// reference with WorkspaceRef.
//
// Builder methods never fail. Every structural problem is reported by Build,
// so steps can be added in whatever order is convenient. A Sequence is not
// safe for concurrent use.
type Sequence struct {
	steps    []Step
	minEpoch *uint64
	maxEpoch *uint64
}

// New creates an empty Sequence with the given options.
func New(opts ...SequenceOption) *Sequence {
	s := &Sequence{
		steps: make([]Step, 0, 8),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReserveFee appends a step reserving amount in fees from payer.
//
// Sequences that spend fees must reserve them first. This is a usage
// precondition: Build only checks it when WithRequireFee is given.
func (s *Sequence) ReserveFee(payer address.EntityAddress, amount int64) *Sequence {
	s.steps = append(s.steps, Step{
		stepType: StepReserveFee,
		target:   payer,
		amount:   amount,
	})
	return s
}

// CallFunction appends a call of a template function.
// Arguments can be Go values (wrapped as literals) or Argument values.
func (s *Sequence) CallFunction(template address.TemplateAddress, function string, args ...any) *Sequence {
	return s.Add(NewTemplate(template).Function(function, args...))
}

// CallMethod appends a call of a component method.
// Arguments can be Go values (wrapped as literals) or Argument values.
func (s *Sequence) CallMethod(target address.EntityAddress, method string, args ...any) *Sequence {
	return s.Add(NewComponent(target).Method(method, args...))
}

// Add appends a prepared call.
func (s *Sequence) Add(call *Call) *Sequence {
	s.steps = append(s.steps, call.clone().step)
	return s
}

// SaveResult binds the result of the immediately preceding call step to name.
func (s *Sequence) SaveResult(name string) *Sequence {
	s.steps = append(s.steps, Step{
		stepType: StepSaveResult,
		name:     name,
	})
	return s
}

// Bind appends call, saves its result under name and returns a reference to
// it for use in later steps.
func (s *Sequence) Bind(call *Call, name string) *WorkspaceArg {
	s.Add(call).SaveResult(name)
	return WorkspaceRef(name)
}

// Len returns the number of steps in the sequence.
func (s *Sequence) Len() int {
	return len(s.steps)
}

// StepAt returns the step at the given index.
func (s *Sequence) StepAt(i int) (Step, bool) {
	if i < 0 || i >= len(s.steps) {
		return Step{}, false
	}
	return s.steps[i], true
}

// ForEachStep iterates over all steps in the sequence.
// The callback receives the index and step. Return false to stop iteration.
func (s *Sequence) ForEachStep(fn func(int, Step) bool) {
	for i, step := range s.steps {
		if !fn(i, step) {
			return
		}
	}
}

// Build validates the sequence and freezes it.
//
// Validation is purely structural: every step is well formed, every
// SaveResult directly follows a call and binds a fresh name, and every
// workspace reference names a binding made by a strictly earlier step.
// Failures are returned as *StepError wrapping ErrDuplicateBinding,
// ErrUnboundWorkspaceReference, ErrNothingToSave and friends.
func (s *Sequence) Build(opts ...BuildOption) (*UnsignedSequence, error) {
	cfg := defaultBuildConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.maxSteps > 0 && len(s.steps) > cfg.maxSteps {
		return nil, ErrTooManySteps
	}
	if cfg.requireFee && (len(s.steps) == 0 || s.steps[0].stepType != StepReserveFee) {
		return nil, ErrMissingFee
	}
	if s.minEpoch != nil && s.maxEpoch != nil && *s.minEpoch > *s.maxEpoch {
		return nil, ErrInvalidEpochRange
	}

	ws := newWorkspace()
	for i, step := range s.steps {
		if err := step.validate(); err != nil {
			return nil, stepError(i, step, err)
		}

		switch step.stepType {
		case StepSaveResult:
			if i == 0 || !s.steps[i-1].stepType.IsCall() {
				return nil, stepError(i, step, ErrNothingToSave)
			}
			if err := ws.bind(step.name, i); err != nil {
				return nil, stepError(i, step, err)
			}
		case StepCallFunction, StepCallMethod:
			if err := ws.checkArgs(step.args); err != nil {
				return nil, stepError(i, step, err)
			}
		}
	}

	steps := make([]Step, len(s.steps))
	copy(steps, s.steps)
	return &UnsignedSequence{
		steps:     steps,
		workspace: ws.names(),
		minEpoch:  copyEpoch(s.minEpoch),
		maxEpoch:  copyEpoch(s.maxEpoch),
	}, nil
}

func stepError(i int, step Step, err error) *StepError {
	return &StepError{Index: i, Type: step.stepType, Name: step.name, Err: err}
}

func copyEpoch(e *uint64) *uint64 {
	if e == nil {
		return nil
	}
	v := *e
	return &v
}

// UnsignedSequence is a validated, immutable sequence ready to be signed
// and submitted once. Its workspace bindings and fee reservation are
// consumed on execution, so a failed submission needs a fresh sequence.
type UnsignedSequence struct {
	steps     []Step
	workspace []string
	minEpoch  *uint64
	maxEpoch  *uint64
}

// Len returns the number of steps.
func (u *UnsignedSequence) Len() int {
	return len(u.steps)
}

// Steps returns a copy of the steps.
func (u *UnsignedSequence) Steps() []Step {
	out := make([]Step, len(u.steps))
	copy(out, u.steps)
	return out
}

// Workspace returns the bound workspace names in binding order.
func (u *UnsignedSequence) Workspace() []string {
	out := make([]string, len(u.workspace))
	copy(out, u.workspace)
	return out
}

// FeePayers returns the distinct components fees are reserved from.
func (u *UnsignedSequence) FeePayers() []address.EntityAddress {
	var payers []address.EntityAddress
	for _, step := range u.steps {
		if step.stepType != StepReserveFee {
			continue
		}
		seen := false
		for _, p := range payers {
			if p.Equal(step.target) {
				seen = true
				break
			}
		}
		if !seen {
			payers = append(payers, step.target)
		}
	}
	return payers
}
