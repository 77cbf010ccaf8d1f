package substate

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/valyala/fastjson"

	"github.com/branched-services/go-tariplan/address"
	"github.com/branched-services/go-tariplan/valuetree"
)

// Snapshot discriminants as named in the wallet's diff payload.
const (
	wireComponent   = "Component"
	wireResource    = "Resource"
	wireNonFungible = "NonFungible"
	wireVault       = "Vault"
)

// ParseDiff decodes the wallet's diff payload:
//
//	{
//	  "up_substates":   [[id, {"substate": {"Component": {...}}, "version": 0}], ...],
//	  "down_substates": [[id, 3], ...]
//	}
//
// Substate ids are either canonical address strings or single-key objects
// wrapping one ({"Component": "component_..."}). Snapshot kinds other than
// Component, Resource, NonFungible and Vault are kept as *Opaque.
func ParseDiff(raw []byte) (*Diff, error) {
	v, err := fastjson.ParseBytes(raw)
	if err != nil {
		return nil, &DiffError{Path: "$", Err: err}
	}
	return DiffFromValue(v)
}

// DiffFromValue decodes an already parsed diff payload.
func DiffFromValue(v *fastjson.Value) (*Diff, error) {
	if v == nil || v.Type() != fastjson.TypeObject {
		return nil, &DiffError{Path: "$", Err: fmt.Errorf("expected object")}
	}

	diff := &Diff{}
	if ups := v.Get("up_substates"); ups != nil && ups.Type() != fastjson.TypeNull {
		items, err := ups.Array()
		if err != nil {
			return nil, &DiffError{Path: "$.up_substates", Err: err}
		}
		diff.Up = make([]UpSubstate, 0, len(items))
		for i, item := range items {
			up, err := parseUp(item, fmt.Sprintf("$.up_substates[%d]", i))
			if err != nil {
				return nil, err
			}
			diff.Up = append(diff.Up, up)
		}
	}
	if downs := v.Get("down_substates"); downs != nil && downs.Type() != fastjson.TypeNull {
		items, err := downs.Array()
		if err != nil {
			return nil, &DiffError{Path: "$.down_substates", Err: err}
		}
		diff.Down = make([]DownSubstate, 0, len(items))
		for i, item := range items {
			down, err := parseDown(item, fmt.Sprintf("$.down_substates[%d]", i))
			if err != nil {
				return nil, err
			}
			diff.Down = append(diff.Down, down)
		}
	}
	return diff, nil
}

// ParseSubstateID decodes a substate id in either of its wire forms.
func ParseSubstateID(raw []byte) (address.EntityAddress, error) {
	v, err := fastjson.ParseBytes(raw)
	if err != nil {
		return address.EntityAddress{}, &DiffError{Path: "$", Err: err}
	}
	return parseID(v, "$")
}

// ParseSubstate decodes a single versioned substate,
// {"substate": {"Vault": {...}}, "version": 2}, as returned by a wallet's
// substate query.
func ParseSubstate(raw []byte) (Snapshot, uint32, error) {
	v, err := fastjson.ParseBytes(raw)
	if err != nil {
		return nil, 0, &DiffError{Path: "$", Err: err}
	}
	snap := v.Get("substate")
	if snap == nil {
		return nil, 0, &DiffError{Path: "$", Err: fmt.Errorf("missing substate")}
	}
	snapshot, err := parseSnapshot(snap, "$.substate")
	if err != nil {
		return nil, 0, err
	}
	return snapshot, uint32(v.GetUint("version")), nil
}

func pair(v *fastjson.Value, path string) (*fastjson.Value, *fastjson.Value, error) {
	items, err := v.Array()
	if err != nil {
		return nil, nil, &DiffError{Path: path, Err: err}
	}
	if len(items) != 2 {
		return nil, nil, &DiffError{Path: path, Err: fmt.Errorf("expected [id, value] pair, got %d elements", len(items))}
	}
	return items[0], items[1], nil
}

func parseUp(v *fastjson.Value, path string) (UpSubstate, error) {
	idVal, body, err := pair(v, path)
	if err != nil {
		return UpSubstate{}, err
	}
	addr, err := parseID(idVal, path+"[0]")
	if err != nil {
		return UpSubstate{}, err
	}

	version := body.GetUint("version")
	snap := body.Get("substate")
	if snap == nil {
		return UpSubstate{}, &DiffError{Path: path + "[1]", Err: fmt.Errorf("missing substate")}
	}
	snapshot, err := parseSnapshot(snap, path+"[1].substate")
	if err != nil {
		return UpSubstate{}, err
	}
	return UpSubstate{Address: addr, Version: uint32(version), Snapshot: snapshot}, nil
}

func parseDown(v *fastjson.Value, path string) (DownSubstate, error) {
	idVal, versionVal, err := pair(v, path)
	if err != nil {
		return DownSubstate{}, err
	}
	addr, err := parseID(idVal, path+"[0]")
	if err != nil {
		return DownSubstate{}, err
	}
	version, err := versionVal.Uint()
	if err != nil {
		return DownSubstate{}, &DiffError{Path: path + "[1]", Err: err}
	}
	return DownSubstate{Address: addr, Version: uint32(version)}, nil
}

// parseID accepts "component_..." or {"Component": "component_..."}.
func parseID(v *fastjson.Value, path string) (address.EntityAddress, error) {
	if v.Type() == fastjson.TypeObject {
		obj, _ := v.Object()
		if obj.Len() != 1 {
			return address.EntityAddress{}, &DiffError{Path: path, Err: fmt.Errorf("expected single-key id object, got %d keys", obj.Len())}
		}
		var inner *fastjson.Value
		obj.Visit(func(_ []byte, val *fastjson.Value) {
			inner = val
		})
		v = inner
	}
	s, err := v.StringBytes()
	if err != nil {
		return address.EntityAddress{}, &DiffError{Path: path, Err: err}
	}
	addr, err := address.Parse(string(s))
	if err != nil {
		return address.EntityAddress{}, &DiffError{Path: path, Err: err}
	}
	return addr, nil
}

func parseSnapshot(v *fastjson.Value, path string) (Snapshot, error) {
	obj, err := v.Object()
	if err != nil {
		return nil, &DiffError{Path: path, Err: err}
	}
	if obj.Len() != 1 {
		return nil, &DiffError{Path: path, Err: fmt.Errorf("expected exactly one snapshot kind, got %d keys", obj.Len())}
	}

	var (
		name string
		body *fastjson.Value
	)
	obj.Visit(func(key []byte, val *fastjson.Value) {
		name = string(key)
		body = val
	})

	path = path + "." + name
	switch name {
	case wireComponent:
		return parseComponent(body, path)
	case wireResource:
		return &Resource{
			ResourceType: scalarText(body.Get("resource_type")),
			TokenSymbol:  scalarText(body.Get("token_symbol")),
			TotalSupply:  scalarText(body.Get("total_supply")),
		}, nil
	case wireNonFungible:
		return parseNonFungible(body, path)
	case wireVault:
		return &Vault{ResourceAddress: vaultResource(body)}, nil
	default:
		return &Opaque{Name: name, Raw: body.MarshalTo(nil)}, nil
	}
}

func parseComponent(v *fastjson.Value, path string) (*Component, error) {
	if v.Type() != fastjson.TypeObject {
		return nil, &DiffError{Path: path, Err: fmt.Errorf("expected object, got %s", v.Type())}
	}
	c := &Component{
		TemplateAddress: address.TemplateAddress(identifierText(v.Get("template_address"))),
		ModuleName:      scalarText(v.Get("module_name")),
		EntityID:        identifierText(v.Get("entity_id")),
	}
	if c.TemplateAddress == "" {
		return nil, &DiffError{Path: path + ".template_address", Err: fmt.Errorf("missing template address")}
	}

	state := v.Get("body", "state")
	if state == nil {
		state = v.Get("state")
	}
	if state != nil {
		node, err := valuetree.DecodeValue(state)
		if err != nil {
			return nil, &DiffError{Path: path + ".body.state", Err: err}
		}
		c.State = node
	}
	return c, nil
}

func parseNonFungible(v *fastjson.Value, path string) (*NonFungible, error) {
	if v == nil || v.Type() == fastjson.TypeNull {
		return &NonFungible{Burnt: true}, nil
	}
	nft := &NonFungible{}
	if data := v.Get("data"); data != nil {
		node, err := valuetree.DecodeValue(data)
		if err != nil {
			return nil, &DiffError{Path: path + ".data", Err: err}
		}
		nft.Data = node
	}
	if data := v.Get("mutable_data"); data != nil {
		node, err := valuetree.DecodeValue(data)
		if err != nil {
			return nil, &DiffError{Path: path + ".mutable_data", Err: err}
		}
		nft.MutableData = node
	}
	return nft, nil
}

// vaultResource finds the resource address inside a vault body, either
// {"resource_container": {"Fungible": {"address": "resource_..."}}} or a
// flat "resource_address". A vault without one yields the zero address.
func vaultResource(v *fastjson.Value) address.EntityAddress {
	var s []byte
	if container := v.Get("resource_container"); container != nil {
		if obj, err := container.Object(); err == nil {
			obj.Visit(func(_ []byte, val *fastjson.Value) {
				if s == nil {
					s = val.GetStringBytes("address")
				}
			})
		}
	}
	if s == nil {
		s = v.GetStringBytes("resource_address")
	}
	addr, err := address.Parse(string(s))
	if err != nil {
		return address.EntityAddress{}
	}
	return addr
}

// scalarText renders strings without quotes and numbers by their literal text.
func scalarText(v *fastjson.Value) string {
	if v == nil {
		return ""
	}
	switch v.Type() {
	case fastjson.TypeString:
		s, _ := v.StringBytes()
		return string(s)
	case fastjson.TypeNumber:
		return v.String()
	default:
		return ""
	}
}

// identifierText accepts a hex string or a byte array, which is rendered as
// lowercase hex.
func identifierText(v *fastjson.Value) string {
	if v == nil {
		return ""
	}
	if v.Type() != fastjson.TypeArray {
		return scalarText(v)
	}
	items, _ := v.Array()
	b := make([]byte, 0, len(items))
	for _, item := range items {
		n, err := item.Uint()
		if err != nil || n > 255 {
			return ""
		}
		b = append(b, byte(n))
	}
	return common.Bytes2Hex(b)
}
