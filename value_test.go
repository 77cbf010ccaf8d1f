package tariplan

import (
	"testing"

	"github.com/branched-services/go-tariplan/address"
)

func TestLiteralConstructors(t *testing.T) {
	tests := []struct {
		name string
		arg  *LiteralArg
		want any
	}{
		{"Amount", Amount(2000), int64(2000)},
		{"String", String("e2e4"), "e2e4"},
		{"Bool", Bool(true), true},
		{"Address", Address(address.MustParse("vault_ab")), "vault_ab"},
		{"Template", Template(testGameTemplate), string(testGameTemplate)},
		{"Literal", Literal(uint16(796)), uint16(796)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.arg.IsWorkspace() {
				t.Error("literal should not be a workspace reference")
			}
			if tt.arg.Value() != tt.want {
				t.Errorf("Value() = %#v, want %#v", tt.arg.Value(), tt.want)
			}
		})
	}
}

func TestWorkspaceRef(t *testing.T) {
	ref := WorkspaceRef("player_nft")
	if !ref.IsWorkspace() {
		t.Error("expected workspace reference")
	}
	if ref.Name() != "player_nft" {
		t.Errorf("Name() = %q", ref.Name())
	}
	if ref.String() != "Workspace(player_nft)" {
		t.Errorf("String() = %q", ref.String())
	}
}

func TestToArgument(t *testing.T) {
	ref := WorkspaceRef("a")
	if toArgument(ref) != ref {
		t.Error("Arguments should pass through unchanged")
	}

	lit, ok := toArgument(address.MustParse("component_0f")).(*LiteralArg)
	if !ok || lit.Value() != "component_0f" {
		t.Errorf("entity address should become its canonical string, got %#v", lit)
	}

	lit, ok = toArgument(testGameTemplate).(*LiteralArg)
	if !ok || lit.Value() != string(testGameTemplate) {
		t.Errorf("template address should become a string literal, got %#v", lit)
	}

	lit, ok = toArgument(42).(*LiteralArg)
	if !ok || lit.Value() != 42 {
		t.Errorf("plain values should be wrapped, got %#v", lit)
	}
}
