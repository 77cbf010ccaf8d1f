package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/branched-services/go-tariplan/tchess"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tchess.toml")
	data := `
wallet_url = "http://wallet:9000/json_rpc"
token = "secret"
fee = 3000
poll_interval = "250ms"
league = "component_aa01"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	want := defaultConfig()
	want.WalletURL = "http://wallet:9000/json_rpc"
	want.Token = "secret"
	want.Fee = 3000
	want.PollInterval = "250ms"
	want.League = "component_aa01"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	poll, err := cfg.pollInterval()
	if err != nil || poll != 250*time.Millisecond {
		t.Errorf("pollInterval() = %v, %v", poll, err)
	}
	league, err := cfg.league()
	if err != nil || league.String() != "component_aa01" {
		t.Errorf("league() = %v, %v", league, err)
	}
	if _, err := cfg.badge(); err == nil {
		t.Error("badge() should fail without a badge")
	}
	if seq := cfg.sequences(); seq.Fee != 3000 || seq.GameTemplate != tchess.GameTemplate {
		t.Errorf("sequences() = %+v", seq)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := loadConfig(path, false)
	if err != nil {
		t.Fatalf("optional config should not fail: %v", err)
	}
	if diff := cmp.Diff(defaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if _, err := loadConfig(path, true); err == nil {
		t.Error("required config should fail when missing")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("fee = \"lots\""), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := loadConfig(path, false)
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Errorf("Expected a parse error, got %v", err)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tchess.toml")
	cfg := defaultConfig()
	cfg.Badge = "nft_bb02_u256_01"

	if err := saveConfig(path, cfg); err != nil {
		t.Fatalf("saveConfig error: %v", err)
	}
	got, err := loadConfig(path, true)
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestBadPollInterval(t *testing.T) {
	cfg := defaultConfig()
	cfg.PollInterval = "soon"
	if _, err := cfg.pollInterval(); err == nil {
		t.Error("expected an error for an invalid poll interval")
	}
}
