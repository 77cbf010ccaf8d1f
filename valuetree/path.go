package valuetree

import (
	"strconv"
	"strings"
)

// RootSegment denotes the root of a path and is skipped wherever it appears.
const RootSegment = "$"

// ResolvePath walks a dot-separated path from node.
//
// Map segments match the first entry whose key renders (see KeyString) to
// the segment. Array segments are non-negative decimal indexes. Any other
// node, a missing key or an out-of-range index ends the walk and reports
// false.
func ResolvePath(node Node, path string) (Node, bool) {
	if node == nil {
		return nil, false
	}
	current := node
	for _, seg := range strings.Split(path, ".") {
		if seg == RootSegment {
			continue
		}
		next, ok := step(current, seg)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func step(node Node, seg string) (Node, bool) {
	switch n := node.(type) {
	case Map:
		for _, e := range n.Entries {
			if key, ok := KeyString(e.Key); ok && key == seg {
				return e.Value, true
			}
		}
		return nil, false
	case Array:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(n) {
			return nil, false
		}
		return n[idx], true
	default:
		return nil, false
	}
}

// KeyString returns the human-readable form used to match a map key against
// a path segment. Text keys render as themselves, address tags render in
// canonical address form, numbers in decimal and booleans as "true" or
// "false". Other keys have no rendering and never match.
func KeyString(key Node) (string, bool) {
	switch k := key.(type) {
	case Text:
		return string(k), true
	case Tag:
		b, ok := k.Payload.(Bytes)
		if !ok {
			return "", false
		}
		s, ok := ResolveTaggedAddress(k.Number, b).(string)
		return s, ok
	case Number:
		return k.String(), true
	case Bool:
		return strconv.FormatBool(bool(k)), true
	default:
		return "", false
	}
}

// Lookup resolves path and lowers the result with ToNative.
func Lookup(node Node, path string) (any, bool) {
	n, ok := ResolvePath(node, path)
	if !ok {
		return nil, false
	}
	return ToNative(n), true
}

// DecodeAndLookup decodes raw and looks up path in the result.
func DecodeAndLookup(raw []byte, path string) (any, bool, error) {
	n, err := Decode(raw)
	if err != nil {
		return nil, false, err
	}
	v, ok := Lookup(n, path)
	return v, ok, nil
}
