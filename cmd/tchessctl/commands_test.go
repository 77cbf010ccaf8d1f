package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/branched-services/go-tariplan/address"
	"github.com/branched-services/go-tariplan/tchess"
)

// walletDaemon answers the JSON-RPC methods the commands use. Every
// transaction is accepted with diff.
type walletDaemon struct {
	mu      sync.Mutex
	diff    string
	methods []string
}

func (d *walletDaemon) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     json.RawMessage `json:"id"`
		Method string          `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	d.mu.Lock()
	d.methods = append(d.methods, req.Method)
	d.mu.Unlock()

	var result string
	switch req.Method {
	case "accounts.get_default":
		result = `{"account":{"name":"player","address":{"Component":"component_0101"},"key_index":0}}`
	case "transactions.submit":
		result = `{"transaction_id":"tx-1"}`
	case "transactions.wait_result":
		result = `{"transaction_id":"tx-1","status":"Accepted","result":{"result":{"Accept":` + d.diff + `}},"final_fee":2000,"timed_out":false}`
	default:
		result = "null"
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"result":` + result + `}`))
}

func TestLeagueNewRemembersLeague(t *testing.T) {
	daemon := &walletDaemon{diff: `{"up_substates":[["component_aa01",{"version":0,"substate":{"Component":{` +
		`"template_address":"` + string(tchess.LeagueTemplate) + `","module_name":"TChess"}}}]],"down_substates":[]}`}
	srv := httptest.NewServer(daemon)
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "tchess.toml")
	if err := os.WriteFile(path, []byte("token = \"secret\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	args := []string{"tchessctl", "--config", path, "--wallet-url", srv.URL, "league", "new"}
	if err := newApp().RunContext(context.Background(), args); err != nil {
		t.Fatalf("league new error: %v", err)
	}

	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if cfg.League != "component_aa01" {
		t.Errorf("Expected league component_aa01 in config, got %q", cfg.League)
	}
	if cfg.Token != "secret" {
		t.Errorf("existing settings should be kept, got token %q", cfg.Token)
	}
	if cfg.WalletURL == srv.URL {
		t.Error("flag values should not be written to the config")
	}

	want := []string{"accounts.get_default", "transactions.submit", "transactions.wait_result"}
	daemon.mu.Lock()
	defer daemon.mu.Unlock()
	if len(daemon.methods) != len(want) {
		t.Fatalf("Expected calls %v, got %v", want, daemon.methods)
	}
	for i := range want {
		if daemon.methods[i] != want[i] {
			t.Errorf("call %d: Expected %s, got %s", i, want[i], daemon.methods[i])
		}
	}
}

func TestDescribe(t *testing.T) {
	winner := tchess.Black
	tests := []struct {
		name    string
		outcome *tchess.Outcome
		want    string
	}{
		{"in progress", nil, "turn   White\n"},
		{"won", &tchess.Outcome{Kind: tchess.Resignation, Winner: &winner}, "result Resignation, Black wins\n"},
		{"drawn", &tchess.Outcome{Kind: tchess.Stalemate}, "result Stalemate\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &tchess.Game{
				Address: address.MustParse("component_dd04"),
				White:   "u256_01",
				Black:   "u256_02",
				Board:   tchess.StartPosition,
				Outcome: tt.outcome,
			}
			want := "game   component_dd04\nwhite  u256_01\nblack  u256_02\nboard  " + tchess.StartPosition + "\n" + tt.want
			if got := describe(g); got != want {
				t.Errorf("describe() =\n%s\nwant\n%s", got, want)
			}
		})
	}
}
