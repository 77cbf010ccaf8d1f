// Package valuetree decodes the ledger's self-describing tagged values into
// an immutable tree, resolves dotted paths through it and lowers it into
// plain Go data.
//
// A value is exactly one of Map, Array, Tag, Bool, Bytes, Text, Number or
// Null. Trees are created fresh by each Decode call and are never mutated
// afterwards.
package valuetree

import (
	"math/big"
	"strconv"
)

// Kind discriminates the variants of Node.
type Kind uint8

const (
	KindMap Kind = iota + 1
	KindArray
	KindTag
	KindBool
	KindBytes
	KindText
	KindNumber
	KindNull
)

var kindNames = map[Kind]string{
	KindMap:    "Map",
	KindArray:  "Array",
	KindTag:    "Tag",
	KindBool:   "Bool",
	KindBytes:  "Bytes",
	KindText:   "Text",
	KindNumber: "Number",
	KindNull:   "Null",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Node is a decoded value.
// This is a sealed interface - only types within this package can implement it.
type Node interface {
	// isNode is unexported to seal the interface.
	isNode()

	// Kind returns the active variant.
	Kind() Kind
}

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   Node
	Value Node
}

// Map is an ordered sequence of key/value pairs. Keys are arbitrary nodes
// and may repeat; lookups take the first match.
type Map struct {
	Entries []Entry
}

func (Map) isNode()    {}
func (Map) Kind() Kind { return KindMap }

// Len returns the number of entries.
func (m Map) Len() int { return len(m.Entries) }

// Array is an ordered sequence of nodes.
type Array []Node

func (Array) isNode()    {}
func (Array) Kind() Kind { return KindArray }

// Tag attaches a numeric tag to a payload.
type Tag struct {
	Number  uint64
	Payload Node
}

func (Tag) isNode()    {}
func (Tag) Kind() Kind { return KindTag }

// Bool is a boolean.
type Bool bool

func (Bool) isNode()    {}
func (Bool) Kind() Kind { return KindBool }

// Bytes is a byte string.
type Bytes []byte

func (Bytes) isNode()    {}
func (Bytes) Kind() Kind { return KindBytes }

// Text is a UTF-8 string.
type Text string

func (Text) isNode()    {}
func (Text) Kind() Kind { return KindText }

// Number is an integer of arbitrary size or a float.
type Number struct {
	int     *big.Int
	float   float64
	isFloat bool
}

func (Number) isNode()    {}
func (Number) Kind() Kind { return KindNumber }

// Int returns an integer Number.
func Int(v int64) Number {
	return Number{int: big.NewInt(v)}
}

// BigInt returns an integer Number holding a copy of v.
func BigInt(v *big.Int) Number {
	return Number{int: new(big.Int).Set(v)}
}

// Float returns a floating point Number.
func Float(v float64) Number {
	return Number{float: v, isFloat: true}
}

// IsFloat reports whether n holds a float.
func (n Number) IsFloat() bool {
	return n.isFloat
}

// BigInt returns a copy of the integer value, or nil for floats.
func (n Number) BigInt() *big.Int {
	if n.isFloat || n.int == nil {
		return nil
	}
	return new(big.Int).Set(n.int)
}

// Int64 returns the integer value if it is an integer that fits in int64.
func (n Number) Int64() (int64, bool) {
	if n.isFloat || n.int == nil || !n.int.IsInt64() {
		return 0, false
	}
	return n.int.Int64(), true
}

// Float64 returns the value as a float64, converting integers.
func (n Number) Float64() float64 {
	if n.isFloat {
		return n.float
	}
	if n.int == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(n.int).Float64()
	return f
}

// String renders the number in decimal.
func (n Number) String() string {
	if n.isFloat {
		return strconv.FormatFloat(n.float, 'g', -1, 64)
	}
	if n.int == nil {
		return "0"
	}
	return n.int.String()
}

// Null is the absent value.
type Null struct{}

func (Null) isNode()    {}
func (Null) Kind() Kind { return KindNull }
