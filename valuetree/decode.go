package valuetree

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/valyala/fastjson"
)

// Wire discriminants of the tagged-union encoding.
const (
	wireMap     = "Map"
	wireArray   = "Array"
	wireTag     = "Tag"
	wireBool    = "Bool"
	wireBytes   = "Bytes"
	wireText    = "Text"
	wireInteger = "Integer"
	wireInt     = "Int"
	wireFloat   = "Float"
	wireNull    = "Null"
)

// Decode parses the ledger's tagged-union encoding of a value.
//
// Every value is a single-key JSON object naming its variant:
//
//	{"Map": [[key, value], ...]}
//	{"Array": [value, ...]}
//	{"Tag": [128, {"Bytes": [1, 2, 3]}]}
//	{"Bool": true}  {"Text": "x"}  {"Integer": 7}  {"Float": 1.5}
//	{"Null": null}  or the bare string "Null"
//
// Input that does not follow this shape fails with an error matching
// ErrMalformedValue. A JSON null decodes to Null.
func Decode(raw []byte) (Node, error) {
	v, err := fastjson.ParseBytes(raw)
	if err != nil {
		return nil, &DecodeError{Path: "$", Err: err}
	}
	return decodeValue(v, "$")
}

// MustDecode is like Decode but panics on error.
// Use only with compile-time constant values.
func MustDecode(raw string) Node {
	n, err := Decode([]byte(raw))
	if err != nil {
		panic(err)
	}
	return n
}

// DecodeValue converts an already parsed fastjson value. Callers decoding a
// larger document use it to avoid re-parsing embedded values.
func DecodeValue(v *fastjson.Value) (Node, error) {
	if v == nil {
		return nil, &DecodeError{Path: "$", Err: ErrMissingValue}
	}
	return decodeValue(v, "$")
}

func decodeValue(v *fastjson.Value, path string) (Node, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return Null{}, nil
	case fastjson.TypeString:
		if s, _ := v.StringBytes(); string(s) == wireNull {
			return Null{}, nil
		}
		return nil, &DecodeError{Path: path, Err: ErrUnknownDiscriminant}
	case fastjson.TypeObject:
	default:
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("expected object, got %s", v.Type())}
	}

	obj, _ := v.Object()
	if obj.Len() != 1 {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("expected exactly one discriminant, got %d keys", obj.Len())}
	}
	var (
		disc    string
		payload *fastjson.Value
	)
	obj.Visit(func(key []byte, val *fastjson.Value) {
		disc = string(key)
		payload = val
	})

	switch disc {
	case wireMap:
		return decodeMap(payload, path+".Map")
	case wireArray:
		return decodeArray(payload, path+".Array")
	case wireTag:
		return decodeTag(payload, path+".Tag")
	case wireBool:
		b, err := payload.Bool()
		if err != nil {
			return nil, &DecodeError{Path: path + ".Bool", Err: err}
		}
		return Bool(b), nil
	case wireBytes:
		return decodeBytes(payload, path+".Bytes")
	case wireText:
		s, err := payload.StringBytes()
		if err != nil {
			return nil, &DecodeError{Path: path + ".Text", Err: err}
		}
		return Text(s), nil
	case wireInteger, wireInt:
		return decodeInteger(payload, path+"."+disc)
	case wireFloat:
		f, err := payload.Float64()
		if err != nil {
			return nil, &DecodeError{Path: path + ".Float", Err: err}
		}
		return Float(f), nil
	case wireNull:
		return Null{}, nil
	default:
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("%w %q", ErrUnknownDiscriminant, disc)}
	}
}

func decodeMap(v *fastjson.Value, path string) (Node, error) {
	items, err := v.Array()
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		itemPath := path + "[" + strconv.Itoa(i) + "]"
		pair, err := item.Array()
		if err != nil || len(pair) != 2 {
			return nil, &DecodeError{Path: itemPath, Err: ErrUnpairedEntry}
		}
		key, err := decodeValue(pair[0], itemPath+"[0]")
		if err != nil {
			return nil, err
		}
		val, err := decodeValue(pair[1], itemPath+"[1]")
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: key, Value: val})
	}
	return Map{Entries: entries}, nil
}

func decodeArray(v *fastjson.Value, path string) (Node, error) {
	items, err := v.Array()
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	arr := make(Array, 0, len(items))
	for i, item := range items {
		n, err := decodeValue(item, path+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}
		arr = append(arr, n)
	}
	return arr, nil
}

func decodeTag(v *fastjson.Value, path string) (Node, error) {
	parts, err := v.Array()
	if err != nil || len(parts) != 2 {
		return nil, &DecodeError{Path: path, Err: ErrInvalidTag}
	}
	num, err := parts[0].Uint64()
	if err != nil {
		return nil, &DecodeError{Path: path + "[0]", Err: fmt.Errorf("%w: %v", ErrInvalidTag, err)}
	}
	payload, err := decodeValue(parts[1], path+"[1]")
	if err != nil {
		return nil, err
	}
	return Tag{Number: num, Payload: payload}, nil
}

func decodeBytes(v *fastjson.Value, path string) (Node, error) {
	items, err := v.Array()
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	b := make(Bytes, len(items))
	for i, item := range items {
		n, err := item.Int()
		if err != nil || n < 0 || n > 0xff {
			return nil, &DecodeError{Path: path + "[" + strconv.Itoa(i) + "]", Err: ErrByteRange}
		}
		b[i] = byte(n)
	}
	return b, nil
}

// decodeInteger accepts JSON numbers of any size as well as decimal strings,
// which the ledger emits for 128-bit values.
func decodeInteger(v *fastjson.Value, path string) (Node, error) {
	var text string
	switch v.Type() {
	case fastjson.TypeNumber:
		text = v.String()
	case fastjson.TypeString:
		s, _ := v.StringBytes()
		text = string(s)
	default:
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("expected integer, got %s", v.Type())}
	}
	i, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("invalid integer %q", text)}
	}
	return Number{int: i}, nil
}

// Marshal encodes n in the tagged-union encoding accepted by Decode.
func Marshal(n Node) ([]byte, error) {
	var a fastjson.Arena
	v, err := encodeNode(&a, n)
	if err != nil {
		return nil, err
	}
	return v.MarshalTo(nil), nil
}

func encodeNode(a *fastjson.Arena, n Node) (*fastjson.Value, error) {
	var payload *fastjson.Value
	switch node := n.(type) {
	case Map:
		payload = a.NewArray()
		for i, e := range node.Entries {
			k, err := encodeNode(a, e.Key)
			if err != nil {
				return nil, err
			}
			v, err := encodeNode(a, e.Value)
			if err != nil {
				return nil, err
			}
			pair := a.NewArray()
			pair.SetArrayItem(0, k)
			pair.SetArrayItem(1, v)
			payload.SetArrayItem(i, pair)
		}
	case Array:
		payload = a.NewArray()
		for i, elem := range node {
			v, err := encodeNode(a, elem)
			if err != nil {
				return nil, err
			}
			payload.SetArrayItem(i, v)
		}
	case Tag:
		inner, err := encodeNode(a, node.Payload)
		if err != nil {
			return nil, err
		}
		payload = a.NewArray()
		payload.SetArrayItem(0, a.NewNumberString(strconv.FormatUint(node.Number, 10)))
		payload.SetArrayItem(1, inner)
	case Bool:
		if node {
			payload = a.NewTrue()
		} else {
			payload = a.NewFalse()
		}
	case Bytes:
		payload = a.NewArray()
		for i, b := range node {
			payload.SetArrayItem(i, a.NewNumberInt(int(b)))
		}
	case Text:
		payload = a.NewString(string(node))
	case Number:
		if node.isFloat {
			payload = a.NewNumberFloat64(node.float)
		} else {
			payload = a.NewNumberString(node.String())
		}
		obj := a.NewObject()
		obj.Set(discriminant(node), payload)
		return obj, nil
	case Null:
		payload = a.NewNull()
	default:
		return nil, &EncodeError{Node: n}
	}
	obj := a.NewObject()
	obj.Set(n.Kind().String(), payload)
	return obj, nil
}

func discriminant(n Number) string {
	if n.isFloat {
		return wireFloat
	}
	return wireInteger
}
