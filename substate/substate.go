// Package substate models the state diff a wallet reports for an accepted
// transaction and provides order-preserving scans over it.
package substate

import (
	"github.com/branched-services/go-tariplan/address"
	"github.com/branched-services/go-tariplan/valuetree"
)

// Diff is the set of entities created (Up) and consumed (Down) by one
// executed transaction. Up preserves the order reported by the wallet,
// which is the creation order within the transaction.
type Diff struct {
	Up   []UpSubstate
	Down []DownSubstate
}

// UpSubstate is an entity written by the transaction.
type UpSubstate struct {
	Address  address.EntityAddress
	Version  uint32
	Snapshot Snapshot
}

// DownSubstate is an entity version consumed by the transaction.
type DownSubstate struct {
	Address address.EntityAddress
	Version uint32
}

// Snapshot is the entity value carried by an UpSubstate.
// This is a sealed interface - only types within this package can implement it.
type Snapshot interface {
	isSnapshot()

	// Kind returns the entity kind the snapshot describes.
	Kind() address.Kind
}

// Component is the header and state of an instantiated template.
type Component struct {
	TemplateAddress address.TemplateAddress
	ModuleName      string
	EntityID        string

	// State is the component's decoded state value. Nil when the wallet
	// did not include a body.
	State valuetree.Node
}

// Resource is a resource definition.
type Resource struct {
	ResourceType string
	TokenSymbol  string
	TotalSupply  string
}

// NonFungible is a single token. Burnt tokens carry no data.
type NonFungible struct {
	Data        valuetree.Node
	MutableData valuetree.Node
	Burnt       bool
}

// Vault holds a balance of ResourceAddress.
type Vault struct {
	ResourceAddress address.EntityAddress
}

// Opaque is any snapshot kind this package does not model. Raw holds the
// snapshot body as reported by the wallet.
type Opaque struct {
	Name string
	Raw  []byte
}

func (*Component) isSnapshot()   {}
func (*Resource) isSnapshot()    {}
func (*NonFungible) isSnapshot() {}
func (*Vault) isSnapshot()       {}
func (*Opaque) isSnapshot()      {}

// Kind returns address.Component.
func (*Component) Kind() address.Kind { return address.Component }

// Kind returns address.Resource.
func (*Resource) Kind() address.Kind { return address.Resource }

// Kind returns address.NonFungible.
func (*NonFungible) Kind() address.Kind { return address.NonFungible }

// Kind returns address.Vault.
func (*Vault) Kind() address.Kind { return address.Vault }

// Kind maps Name to a known kind, or address.KindUnknown.
func (o *Opaque) Kind() address.Kind {
	k, _ := address.KindFromName(o.Name)
	return k
}
