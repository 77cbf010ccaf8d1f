package tariplan

import (
	"github.com/branched-services/go-tariplan/address"
)

// Argument is a call argument: either a literal known at build time or a
// reference to a result saved earlier in the same sequence.
// This is a sealed interface - only types within this package can implement it.
type Argument interface {
	// isArgument is unexported to seal the interface.
	isArgument()

	// IsWorkspace returns true if the argument is resolved by the executor
	// from the sequence's workspace.
	IsWorkspace() bool
}

// LiteralArg is a value known when the sequence is built. It is sent to the
// executor in its JSON form.
type LiteralArg struct {
	value any
}

func (a *LiteralArg) isArgument() {}

// IsWorkspace returns false.
func (a *LiteralArg) IsWorkspace() bool {
	return false
}

// Value returns the literal value, nil for a nil literal.
func (a *LiteralArg) Value() any {
	if a == nil {
		return nil
	}
	return a.value
}

// WorkspaceArg forward-references a result saved with SaveResult. The
// executor substitutes the saved value when the step runs.
type WorkspaceArg struct {
	name string
}

func (a *WorkspaceArg) isArgument() {}

// IsWorkspace returns true.
func (a *WorkspaceArg) IsWorkspace() bool {
	return true
}

// Name returns the referenced workspace name. A nil reference names nothing.
func (a *WorkspaceArg) Name() string {
	if a == nil {
		return ""
	}
	return a.name
}

// String renders the reference the way wallets display it.
func (a *WorkspaceArg) String() string {
	return "Workspace(" + a.Name() + ")"
}

// Literal wraps any JSON-serialisable value.
func Literal(v any) *LiteralArg {
	return &LiteralArg{value: v}
}

// WorkspaceRef references the result saved under name. Whether name is bound
// is checked by Build, so references may be created before the step that
// saves them is added.
func WorkspaceRef(name string) *WorkspaceArg {
	return &WorkspaceArg{name: name}
}

// Amount creates an amount literal.
func Amount(v int64) *LiteralArg {
	return Literal(v)
}

// Address creates a literal holding an entity address in canonical form.
func Address(a address.EntityAddress) *LiteralArg {
	return Literal(a.String())
}

// Template creates a literal holding a template address.
func Template(t address.TemplateAddress) *LiteralArg {
	return Literal(string(t))
}

// String creates a string literal.
func String(v string) *LiteralArg {
	return Literal(v)
}

// Bool creates a bool literal.
func Bool(v bool) *LiteralArg {
	return Literal(v)
}

// toArgument passes Arguments through and wraps everything else as a literal.
func toArgument(v any) Argument {
	switch a := v.(type) {
	case Argument:
		return a
	case address.EntityAddress:
		return Address(a)
	case address.TemplateAddress:
		return Template(a)
	default:
		return Literal(v)
	}
}

func toArguments(raw []any) []Argument {
	args := make([]Argument, len(raw))
	for i, v := range raw {
		args[i] = toArgument(v)
	}
	return args
}
