package valuetree

import (
	"fmt"

	"github.com/branched-services/go-tariplan/address"
)

// ToNative lowers a node into plain Go data:
//
//	Map            -> map[string]any, keys rendered with KeyString
//	Array          -> []any
//	Tag(t, Bytes)  -> ResolveTaggedAddress(t, bytes)
//	Tag(t, other)  -> the Tag node, unresolved
//	Text           -> string
//	Bytes          -> []byte
//	Number         -> int64 when the integer fits, *big.Int otherwise, float64 for floats
//	Bool           -> bool
//	Null           -> nil
//
// Addresses become their canonical strings, so the result is display and
// query data and cannot be turned back into the original tree.
func ToNative(node Node) any {
	switch n := node.(type) {
	case Map:
		out := make(map[string]any, len(n.Entries))
		for _, e := range n.Entries {
			key, ok := KeyString(e.Key)
			if !ok {
				key = fmt.Sprint(ToNative(e.Key))
			}
			// First entry wins, matching ResolvePath.
			if _, dup := out[key]; dup {
				continue
			}
			out[key] = ToNative(e.Value)
		}
		return out
	case Array:
		out := make([]any, len(n))
		for i, elem := range n {
			out[i] = ToNative(elem)
		}
		return out
	case Tag:
		if b, ok := n.Payload.(Bytes); ok {
			return ResolveTaggedAddress(n.Number, b)
		}
		return n
	case Text:
		return string(n)
	case Bytes:
		return []byte(n)
	case Number:
		if n.isFloat {
			return n.float
		}
		if i, ok := n.Int64(); ok {
			return i
		}
		return n.BigInt()
	case Bool:
		return bool(n)
	default:
		return nil
	}
}

// ResolveTaggedAddress renders a tagged byte string as a canonical address
// string ("vault_00ff...") when the tag denotes a plain address. Other tags
// return the bytes unchanged.
func ResolveTaggedAddress(tag uint64, b []byte) any {
	kind, ok := address.KindForTag(address.BinaryTag(tag))
	if !ok {
		return b
	}
	return address.Render(address.EntityAddress{Kind: kind, Payload: b})
}

// Address returns the entity address held by a tagged byte string.
func Address(node Node) (address.EntityAddress, bool) {
	t, ok := node.(Tag)
	if !ok {
		return address.EntityAddress{}, false
	}
	b, ok := t.Payload.(Bytes)
	if !ok {
		return address.EntityAddress{}, false
	}
	kind, ok := address.KindForTag(address.BinaryTag(t.Number))
	if !ok {
		return address.EntityAddress{}, false
	}
	return address.New(kind, b), true
}
