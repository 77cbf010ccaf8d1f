package substate

import (
	"testing"

	"github.com/branched-services/go-tariplan/address"
)

func component(addr string, template address.TemplateAddress) UpSubstate {
	return UpSubstate{
		Address:  address.MustParse(addr),
		Snapshot: &Component{TemplateAddress: template},
	}
}

func TestFindComponentByTemplate(t *testing.T) {
	t.Run("second component matches", func(t *testing.T) {
		diff := &Diff{Up: []UpSubstate{
			component("component_01", leagueTemplate),
			component("component_02", gameTemplate),
		}}

		up, ok := FindComponentByTemplate(diff, gameTemplate)
		if !ok {
			t.Fatal("expected a match")
		}
		if up.Address.String() != "component_02" {
			t.Errorf("Expected component_02, got %s", up.Address)
		}
	})

	t.Run("first of several matches", func(t *testing.T) {
		diff := &Diff{Up: []UpSubstate{
			component("component_01", gameTemplate),
			component("component_02", gameTemplate),
		}}
		up, _ := FindComponentByTemplate(diff, gameTemplate)
		if up.Address.String() != "component_01" {
			t.Errorf("Expected component_01, got %s", up.Address)
		}
	})

	t.Run("exact comparison", func(t *testing.T) {
		diff := &Diff{Up: []UpSubstate{component("component_01", gameTemplate)}}
		upper := address.TemplateAddress("AD7EEE34E6E373613FB7BD0E51A9D49F425AE6E9B54FA8DA7BC8CD20DCF5A425")
		if _, ok := FindComponentByTemplate(diff, upper); ok {
			t.Error("template addresses must compare verbatim")
		}
	})

	t.Run("absent", func(t *testing.T) {
		diff := &Diff{Up: []UpSubstate{
			{Address: address.MustParse("vault_01"), Snapshot: &Vault{}},
		}}
		if _, ok := FindComponentByTemplate(diff, gameTemplate); ok {
			t.Error("expected no match")
		}
		if _, ok := FindComponentByTemplate(nil, gameTemplate); ok {
			t.Error("nil diff should match nothing")
		}
	})
}

func TestFindFirstByKind(t *testing.T) {
	diff, err := ParseDiff([]byte(testDiff))
	if err != nil {
		t.Fatalf("ParseDiff error: %v", err)
	}
	before := len(diff.Up)

	tests := []struct {
		kind address.Kind
		want string
		ok   bool
	}{
		{address.Component, "component_aa01", true},
		{address.Resource, "resource_bb02", true},
		{address.NonFungible, "nft_bb02_u256_0102", true},
		{address.Vault, "vault_cc03", true},
		{address.TransactionReceipt, "txreceipt_ee05", true},
		{address.FeeClaim, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			up, ok := FindFirstByKind(diff, tt.kind)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && up.Address.String() != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, up.Address)
			}
		})
	}

	if len(diff.Up) != before {
		t.Error("scans must not modify the diff")
	}
}

func TestFilterByKind(t *testing.T) {
	diff, err := ParseDiff([]byte(testDiff))
	if err != nil {
		t.Fatalf("ParseDiff error: %v", err)
	}
	components := FilterByKind(diff, address.Component)
	if len(components) != 2 {
		t.Fatalf("Expected 2 components, got %d", len(components))
	}
	if components[0].Address.String() != "component_aa01" || components[1].Address.String() != "component_dd04" {
		t.Errorf("components out of order: %s, %s", components[0].Address, components[1].Address)
	}
	if got := FilterByKind(diff, address.Metadata); len(got) != 0 {
		t.Errorf("Expected no metadata, got %d", len(got))
	}
}
