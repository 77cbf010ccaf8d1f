package tariplan

import (
	"github.com/branched-services/go-tariplan/address"
)

// TemplateRef wraps a template for building function calls.
type TemplateRef struct {
	address address.TemplateAddress
	name    string
}

// TemplateOption configures a TemplateRef.
type TemplateOption func(*TemplateRef)

// WithTemplateName sets a human-readable name used in logs and step strings.
func WithTemplateName(name string) TemplateOption {
	return func(t *TemplateRef) {
		t.name = name
	}
}

// NewTemplate creates a TemplateRef for the template at addr.
func NewTemplate(addr address.TemplateAddress, opts ...TemplateOption) *TemplateRef {
	t := &TemplateRef{address: addr}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Address returns the template address.
func (t *TemplateRef) Address() address.TemplateAddress {
	return t.address
}

// Name returns the template's display name, falling back to its address.
func (t *TemplateRef) Name() string {
	if t.name != "" {
		return t.name
	}
	return string(t.address)
}

// Function creates a Call of the named template function.
// Arguments can be Go values (wrapped as literals) or Argument values.
func (t *TemplateRef) Function(name string, args ...any) *Call {
	return &Call{step: Step{
		stepType: StepCallFunction,
		template: t.address,
		name:     name,
		args:     toArguments(args),
	}}
}

// ComponentRef wraps a component for building method calls.
type ComponentRef struct {
	address address.EntityAddress
}

// NewComponent creates a ComponentRef for the component at addr.
func NewComponent(addr address.EntityAddress) *ComponentRef {
	return &ComponentRef{address: addr}
}

// Address returns the component address.
func (c *ComponentRef) Address() address.EntityAddress {
	return c.address
}

// Method creates a Call of the named component method.
// Arguments can be Go values (wrapped as literals) or Argument values.
func (c *ComponentRef) Method(name string, args ...any) *Call {
	return &Call{step: Step{
		stepType: StepCallMethod,
		target:   c.address,
		name:     name,
		args:     toArguments(args),
	}}
}
