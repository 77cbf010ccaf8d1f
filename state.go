package tariplan

// workspace tracks the names bound by SaveResult while a sequence is
// validated. It only records which step bound each name; the values are
// produced by the executor at run time.
type workspace struct {
	bindings map[string]int // name -> index of the SaveResult step
	order    []string       // names in binding order
}

func newWorkspace() *workspace {
	return &workspace{
		bindings: make(map[string]int),
		order:    make([]string, 0, 4),
	}
}

// bind records name as saved by step index.
func (w *workspace) bind(name string, index int) error {
	if _, exists := w.bindings[name]; exists {
		return ErrDuplicateBinding
	}
	w.bindings[name] = index
	w.order = append(w.order, name)
	return nil
}

// resolve reports whether name is bound at this point of the walk.
func (w *workspace) resolve(name string) (int, bool) {
	index, ok := w.bindings[name]
	return index, ok
}

// checkArgs verifies every workspace reference in args is already bound.
func (w *workspace) checkArgs(args []Argument) error {
	for i, arg := range args {
		ref, ok := arg.(*WorkspaceArg)
		if !ok {
			continue
		}
		name := ref.Name()
		if name == "" {
			return &ReferenceError{Name: name, ArgIndex: i, Err: ErrEmptyName}
		}
		if _, bound := w.resolve(name); !bound {
			return &ReferenceError{Name: name, ArgIndex: i, Err: ErrUnboundWorkspaceReference}
		}
	}
	return nil
}

// names returns the bound names in binding order.
func (w *workspace) names() []string {
	out := make([]string, len(w.order))
	copy(out, w.order)
	return out
}
