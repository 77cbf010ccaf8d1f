// Package address models typed ledger entity addresses and renders them in
// their canonical "<kind>_<hex>" form.
//
// Equality is structural: two addresses are equal when their kind, payload
// and non-fungible id match. Rendered strings, and abbreviated strings in
// particular, are display data and must not be used as identity.
package address

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Kind is the closed set of entity kinds an address can denote.
type Kind uint8

const (
	// KindUnknown is the zero Kind and never appears in a valid address.
	KindUnknown Kind = iota

	// Component is an instantiated template.
	Component

	// Vault holds a balance of a single resource.
	Vault

	// Resource is a fungible or non-fungible resource definition.
	Resource

	// NonFungible is a single non-fungible token of a resource.
	NonFungible

	// TransactionReceipt is the receipt entity created for each transaction.
	TransactionReceipt

	// FeeClaim is a validator fee claim.
	FeeClaim

	// Metadata is a metadata entity.
	Metadata
)

var kindPrefixes = [...]string{
	KindUnknown:        "",
	Component:          "component",
	Vault:              "vault",
	Resource:           "resource",
	NonFungible:        "nft",
	TransactionReceipt: "txreceipt",
	FeeClaim:           "feeclaim",
	Metadata:           "metadata",
}

var kindNames = [...]string{
	KindUnknown:        "Unknown",
	Component:          "Component",
	Vault:              "Vault",
	Resource:           "Resource",
	NonFungible:        "NonFungible",
	TransactionReceipt: "TransactionReceipt",
	FeeClaim:           "FeeClaim",
	Metadata:           "Metadata",
}

// Prefix returns the lowercase prefix used in the canonical string form.
func (k Kind) Prefix() string {
	if int(k) >= len(kindPrefixes) {
		return ""
	}
	return kindPrefixes[k]
}

// String returns the kind's name as used by the ledger's wire format
// ("Component", "NonFungible", ...).
func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k > KindUnknown && int(k) < len(kindNames)
}

// KindFromPrefix maps a canonical prefix ("vault", "nft", ...) to its Kind.
func KindFromPrefix(prefix string) (Kind, bool) {
	for k, p := range kindPrefixes {
		if p != "" && p == prefix {
			return Kind(k), true
		}
	}
	return KindUnknown, false
}

// KindFromName maps a wire name ("Component", "NonFungible", ...) to its Kind.
func KindFromName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if Kind(k) != KindUnknown && n == name {
			return Kind(k), true
		}
	}
	return KindUnknown, false
}

// EntityAddress identifies a ledger entity.
type EntityAddress struct {
	Kind    Kind
	Payload []byte

	// NonFungibleID is the "<idtype>_<id>" suffix of a non-fungible token
	// address. Empty for every other kind and for bare resource-scoped nft
	// addresses.
	NonFungibleID string
}

// New returns an address of the given kind over a copy of payload.
func New(kind Kind, payload []byte) EntityAddress {
	return EntityAddress{Kind: kind, Payload: common.CopyBytes(payload)}
}

// NewNonFungible returns the address of token id within the resource whose
// address payload is resource.
func NewNonFungible(resource []byte, id string) EntityAddress {
	return EntityAddress{Kind: NonFungible, Payload: common.CopyBytes(resource), NonFungibleID: id}
}

// IsZero reports whether a is the zero address.
func (a EntityAddress) IsZero() bool {
	return a.Kind == KindUnknown && len(a.Payload) == 0 && a.NonFungibleID == ""
}

// Equal reports structural equality.
func (a EntityAddress) Equal(b EntityAddress) bool {
	return a.Kind == b.Kind && bytes.Equal(a.Payload, b.Payload) && a.NonFungibleID == b.NonFungibleID
}

// String returns the canonical string form.
func (a EntityAddress) String() string {
	return Render(a)
}

// MarshalText implements encoding.TextMarshaler using the canonical form.
func (a EntityAddress) MarshalText() ([]byte, error) {
	if !a.Kind.Valid() {
		return nil, fmt.Errorf("%w: kind %s", ErrInvalidAddress, a.Kind)
	}
	return []byte(Render(a)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *EntityAddress) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Render returns "<kind-prefix>_<lowercase hex(payload)>", followed by
// "_<NonFungibleID>" for non-fungible token addresses.
func Render(a EntityAddress) string {
	var sb strings.Builder
	sb.Grow(len(a.Kind.Prefix()) + 1 + 2*len(a.Payload) + len(a.NonFungibleID) + 1)
	sb.WriteString(a.Kind.Prefix())
	sb.WriteByte('_')
	sb.WriteString(common.Bytes2Hex(a.Payload))
	if a.NonFungibleID != "" {
		sb.WriteByte('_')
		sb.WriteString(a.NonFungibleID)
	}
	return sb.String()
}

// Parse parses a canonical address string.
func Parse(s string) (EntityAddress, error) {
	prefix, rest, ok := strings.Cut(s, "_")
	if !ok {
		return EntityAddress{}, &ParseError{Input: s, Err: ErrMissingSeparator}
	}
	kind, ok := KindFromPrefix(prefix)
	if !ok {
		return EntityAddress{}, &ParseError{Input: s, Err: ErrUnknownKind}
	}

	var id string
	if kind == NonFungible {
		rest, id, _ = strings.Cut(rest, "_")
	}
	payload, err := hex.DecodeString(rest)
	if err != nil {
		return EntityAddress{}, &ParseError{Input: s, Err: err}
	}
	if len(payload) == 0 {
		return EntityAddress{}, &ParseError{Input: s, Err: ErrEmptyPayload}
	}
	return EntityAddress{Kind: kind, Payload: payload, NonFungibleID: id}, nil
}

// MustParse is like Parse but panics on error.
// Use only with compile-time constant values.
func MustParse(s string) EntityAddress {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// ResourceOf returns the resource address a non-fungible token belongs to.
func ResourceOf(nft EntityAddress) (EntityAddress, bool) {
	if nft.Kind != NonFungible || len(nft.Payload) == 0 {
		return EntityAddress{}, false
	}
	return New(Resource, nft.Payload), true
}

// TemplateAddress identifies the executable logic behind a component. It
// is an opaque identifier compared verbatim.
type TemplateAddress string

// String implements fmt.Stringer.
func (t TemplateAddress) String() string {
	return string(t)
}
