package substate

import (
	"github.com/branched-services/go-tariplan/address"
)

// FindFirstByKind returns the first up substate whose snapshot is of kind,
// scanning in diff order.
func FindFirstByKind(diff *Diff, kind address.Kind) (UpSubstate, bool) {
	if diff == nil {
		return UpSubstate{}, false
	}
	for _, up := range diff.Up {
		if up.Snapshot != nil && up.Snapshot.Kind() == kind {
			return up, true
		}
	}
	return UpSubstate{}, false
}

// FindComponentByTemplate returns the first component created from
// template. Template addresses are compared verbatim.
func FindComponentByTemplate(diff *Diff, template address.TemplateAddress) (UpSubstate, bool) {
	if diff == nil {
		return UpSubstate{}, false
	}
	for _, up := range diff.Up {
		c, ok := up.Snapshot.(*Component)
		if ok && c.TemplateAddress == template {
			return up, true
		}
	}
	return UpSubstate{}, false
}

// FilterByKind returns every up substate of kind in diff order.
func FilterByKind(diff *Diff, kind address.Kind) []UpSubstate {
	if diff == nil {
		return nil
	}
	var out []UpSubstate
	for _, up := range diff.Up {
		if up.Snapshot != nil && up.Snapshot.Kind() == kind {
			out = append(out, up)
		}
	}
	return out
}
