package wallet_test

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/branched-services/go-tariplan"
	"github.com/branched-services/go-tariplan/address"
	"github.com/branched-services/go-tariplan/substate"
	"github.com/branched-services/go-tariplan/wallet"
	"github.com/branched-services/go-tariplan/wallet/wallettest"
)

var (
	testPayer  = address.New(address.Component, bytes.Repeat([]byte{0x01}, 32))
	testLeague = address.New(address.Component, bytes.Repeat([]byte{0x02}, 32))
	testBadge  = bytes.Repeat([]byte{0xab}, 32)
)

func testAccount() wallet.Account {
	return wallet.Account{Name: "player", Address: testPayer, KeyIndex: 3}
}

func registerSequence(t *testing.T) *tariplan.UnsignedSequence {
	t.Helper()
	seq, err := tariplan.New().
		ReserveFee(testPayer, 2000).
		CallMethod(testLeague, "create_user").
		SaveResult("nft").
		CallMethod(testPayer, "deposit", tariplan.WorkspaceRef("nft")).
		Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return seq
}

func TestSubmitEndToEnd(t *testing.T) {
	nft := "nft_" + hex.EncodeToString(testBadge)
	diff := `{"up_substates":[["` + nft + `",{"version":0,"substate":{"NonFungible":{"data":{"Map":[]},"mutable_data":{"Map":[]}}}}]],"down_substates":[]}`

	exec := &wallettest.MockExecutor{
		WaitFn: func(_ context.Context, id wallet.TransactionID) (*wallet.WaitResult, error) {
			return wallettest.Accept(id, diff), nil
		},
	}
	p := wallet.NewPipeline(exec)

	got, err := p.Submit(context.Background(), registerSequence(t), testAccount(), nil)
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	up, ok := substate.FindFirstByKind(got, address.NonFungible)
	if !ok {
		t.Fatal("expected a non-fungible in the diff")
	}
	if up.Address.String() != nft {
		t.Errorf("Expected %s, got %s", nft, up.Address)
	}
	if !strings.HasPrefix(up.Address.String(), "nft_") {
		t.Errorf("rendered address should start with nft_, got %s", up.Address)
	}

	reqs := exec.Submitted()
	if len(reqs) != 1 {
		t.Fatalf("Expected 1 submission, got %d", len(reqs))
	}
	req := reqs[0]
	if !req.DetectInputs {
		t.Error("submission should ask the executor to detect inputs")
	}
	if req.SigningKeyIndex == nil || *req.SigningKeyIndex != 3 {
		t.Errorf("SigningKeyIndex = %v", req.SigningKeyIndex)
	}
	if len(req.Transaction.FeeInstructions) != 1 || len(req.Transaction.Instructions) != 3 {
		t.Errorf("unexpected instructions %+v", req.Transaction)
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if !bytes.Contains(data, []byte(`"autofill_inputs":[]`)) {
		t.Errorf("empty required list should encode as [], got %s", data)
	}
}

func TestSubmitRequiredInputs(t *testing.T) {
	exec := &wallettest.MockExecutor{}
	required := []address.EntityAddress{testLeague}

	if _, err := wallet.NewPipeline(exec).Submit(context.Background(), registerSequence(t), testAccount(), required); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	required[0] = testPayer

	inputs := exec.Submitted()[0].Inputs
	if len(inputs) != 1 || !inputs[0].Equal(testLeague) {
		t.Errorf("Inputs = %v", inputs)
	}
}

func TestSubmitRejected(t *testing.T) {
	exec := &wallettest.MockExecutor{
		WaitFn: func(_ context.Context, id wallet.TransactionID) (*wallet.WaitResult, error) {
			return wallettest.Reject(id, wallet.StatusRejected, "Already claimed reward for this game"), nil
		},
	}
	_, err := wallet.NewPipeline(exec).Submit(context.Background(), registerSequence(t), testAccount(), nil)
	if !errors.Is(err, wallet.ErrSubmissionRejected) {
		t.Fatalf("Expected ErrSubmissionRejected, got %v", err)
	}
	var rej *wallet.RejectedError
	if !errors.As(err, &rej) {
		t.Fatalf("Expected *RejectedError, got %T", err)
	}
	if rej.Reason != "Already claimed reward for this game" || rej.TransactionID != "tx-1" {
		t.Errorf("unexpected rejection %+v", rej)
	}
}

func TestSubmitOtherTerminalStatus(t *testing.T) {
	for _, status := range []wallet.TransactionStatus{wallet.StatusInvalidTransaction, wallet.StatusOnlyFeeAccepted, wallet.StatusDryRun} {
		t.Run(string(status), func(t *testing.T) {
			exec := &wallettest.MockExecutor{
				WaitFn: func(_ context.Context, id wallet.TransactionID) (*wallet.WaitResult, error) {
					return wallettest.Reject(id, status, "x"), nil
				},
			}
			_, err := wallet.NewPipeline(exec).Submit(context.Background(), registerSequence(t), testAccount(), nil)
			var rej *wallet.RejectedError
			if !errors.As(err, &rej) || rej.Status != status {
				t.Errorf("Expected rejection with status %s, got %v", status, err)
			}
		})
	}
}

func TestSubmitUnexpectedShape(t *testing.T) {
	exec := &wallettest.MockExecutor{
		WaitFn: func(_ context.Context, id wallet.TransactionID) (*wallet.WaitResult, error) {
			return &wallet.WaitResult{TransactionID: id, Status: wallet.StatusAccepted, Result: []byte(`{"result":{}}`)}, nil
		},
	}
	_, err := wallet.NewPipeline(exec).Submit(context.Background(), registerSequence(t), testAccount(), nil)
	if !errors.Is(err, wallet.ErrUnexpectedOutcomeShape) {
		t.Errorf("Expected ErrUnexpectedOutcomeShape, got %v", err)
	}
	if n := exec.WaitCalls.Load(); n != 1 {
		t.Errorf("shape errors must not be retried, got %d waits", n)
	}
}

func TestSubmitTransportErrorsUnchanged(t *testing.T) {
	transport := errors.New("connection reset")

	t.Run("submit", func(t *testing.T) {
		exec := &wallettest.MockExecutor{
			SubmitFn: func(context.Context, wallet.SubmitRequest) (wallet.TransactionID, error) {
				return "", transport
			},
		}
		_, err := wallet.NewPipeline(exec).Submit(context.Background(), registerSequence(t), testAccount(), nil)
		if err != transport {
			t.Errorf("Expected the executor's error unchanged, got %v", err)
		}
		if exec.WaitCalls.Load() != 0 {
			t.Error("should not wait after a failed submission")
		}
	})

	t.Run("wait", func(t *testing.T) {
		exec := &wallettest.MockExecutor{
			WaitFn: func(context.Context, wallet.TransactionID) (*wallet.WaitResult, error) {
				return nil, transport
			},
		}
		_, err := wallet.NewPipeline(exec).Submit(context.Background(), registerSequence(t), testAccount(), nil)
		if err != transport {
			t.Errorf("Expected the executor's error unchanged, got %v", err)
		}
		if n := exec.WaitCalls.Load(); n != 1 {
			t.Errorf("transport errors must not be retried, got %d waits", n)
		}
	})
}

func TestSubmitPollsUntilTerminal(t *testing.T) {
	exec := &wallettest.MockExecutor{
		WaitFn: wallettest.Sequence(
			wallettest.Pending("tx-1"),
			wallettest.Pending("tx-1"),
			wallettest.Accept("tx-1", wallettest.EmptyDiff),
		),
	}
	reg := prometheus.NewRegistry()
	p := wallet.NewPipeline(exec, wallet.WithPollInterval(time.Millisecond), wallet.WithRegisterer(reg))

	diff, err := p.Submit(context.Background(), registerSequence(t), testAccount(), nil)
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if len(diff.Up) != 0 {
		t.Errorf("Expected empty diff, got %+v", diff)
	}
	if n := exec.WaitCalls.Load(); n != 3 {
		t.Errorf("Expected 3 waits, got %d", n)
	}

	expected := `
# HELP tariplan_wallet_submissions_total Transactions submitted, by terminal outcome.
# TYPE tariplan_wallet_submissions_total counter
tariplan_wallet_submissions_total{outcome="accepted"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "tariplan_wallet_submissions_total"); err != nil {
		t.Error(err)
	}

	polls := `
# HELP tariplan_wallet_wait_polls_total Result polls issued while waiting for terminal status.
# TYPE tariplan_wallet_wait_polls_total counter
tariplan_wallet_wait_polls_total 3
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(polls), "tariplan_wallet_wait_polls_total"); err != nil {
		t.Error(err)
	}
}

func TestSubmitStopsWithContext(t *testing.T) {
	exec := &wallettest.MockExecutor{
		WaitFn: func(_ context.Context, id wallet.TransactionID) (*wallet.WaitResult, error) {
			return wallettest.Pending(id), nil
		},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := wallet.NewPipeline(exec, wallet.WithPollInterval(time.Millisecond)).
		Submit(ctx, registerSequence(t), testAccount(), nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded, got %v", err)
	}
}

func TestSubmitNilSequence(t *testing.T) {
	exec := &wallettest.MockExecutor{}
	_, err := wallet.NewPipeline(exec).Submit(context.Background(), nil, testAccount(), nil)
	if !errors.Is(err, wallet.ErrNilSequence) {
		t.Errorf("Expected ErrNilSequence, got %v", err)
	}
	if exec.SubmitCalls.Load() != 0 {
		t.Error("nothing should be submitted")
	}
}

func TestPipelinesShareRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := wallet.NewPipeline(&wallettest.MockExecutor{}, wallet.WithRegisterer(reg))
	second := wallet.NewPipeline(&wallettest.MockExecutor{}, wallet.WithRegisterer(reg))

	for _, p := range []*wallet.Pipeline{first, second} {
		if _, err := p.Submit(context.Background(), registerSequence(t), testAccount(), nil); err != nil {
			t.Fatalf("Submit error: %v", err)
		}
	}

	expected := `
# HELP tariplan_wallet_submissions_total Transactions submitted, by terminal outcome.
# TYPE tariplan_wallet_submissions_total counter
tariplan_wallet_submissions_total{outcome="accepted"} 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "tariplan_wallet_submissions_total"); err != nil {
		t.Error(err)
	}
}
