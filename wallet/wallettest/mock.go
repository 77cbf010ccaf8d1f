// Package wallettest provides a configurable in-memory executor for
// testing code that submits sequences.
package wallettest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/branched-services/go-tariplan/wallet"
)

// Compile-time check that MockExecutor satisfies the interface.
var _ wallet.Executor = (*MockExecutor)(nil)

// MockExecutor is a configurable mock executor. All methods are
// configurable via function fields. Unconfigured methods assign sequential
// transaction ids and report every transaction Accepted with an empty diff.
type MockExecutor struct {
	mu        sync.Mutex
	submitted []wallet.SubmitRequest

	SubmitFn func(context.Context, wallet.SubmitRequest) (wallet.TransactionID, error)
	WaitFn   func(context.Context, wallet.TransactionID) (*wallet.WaitResult, error)

	// Call counters (atomic for concurrent access).
	SubmitCalls atomic.Int64
	WaitCalls   atomic.Int64
}

// SubmitTransaction records req and delegates to SubmitFn.
func (m *MockExecutor) SubmitTransaction(ctx context.Context, req wallet.SubmitRequest) (wallet.TransactionID, error) {
	n := m.SubmitCalls.Add(1)
	m.mu.Lock()
	m.submitted = append(m.submitted, req)
	m.mu.Unlock()
	if m.SubmitFn != nil {
		return m.SubmitFn(ctx, req)
	}
	return wallet.TransactionID(fmt.Sprintf("tx-%d", n)), nil
}

// WaitResult delegates to WaitFn.
func (m *MockExecutor) WaitResult(ctx context.Context, id wallet.TransactionID) (*wallet.WaitResult, error) {
	m.WaitCalls.Add(1)
	if m.WaitFn != nil {
		return m.WaitFn(ctx, id)
	}
	return Accept(id, EmptyDiff), nil
}

// Submitted returns the requests received so far.
func (m *MockExecutor) Submitted() []wallet.SubmitRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]wallet.SubmitRequest, len(m.submitted))
	copy(out, m.submitted)
	return out
}

// EmptyDiff is a diff payload without any substates.
const EmptyDiff = `{"up_substates":[],"down_substates":[]}`

// Accept returns an Accepted result carrying diff, a raw diff payload.
func Accept(id wallet.TransactionID, diff string) *wallet.WaitResult {
	return &wallet.WaitResult{
		TransactionID: id,
		Status:        wallet.StatusAccepted,
		Result:        []byte(`{"result":{"Accept":` + diff + `}}`),
	}
}

// Reject returns a terminal result with status and a Reject reason.
func Reject(id wallet.TransactionID, status wallet.TransactionStatus, reason string) *wallet.WaitResult {
	quoted, err := json.Marshal(reason)
	if err != nil {
		panic(err)
	}
	return &wallet.WaitResult{
		TransactionID: id,
		Status:        status,
		Result:        []byte(`{"result":{"Reject":` + string(quoted) + `}}`),
	}
}

// ErrNoResults is returned by a Sequence built without results.
var ErrNoResults = errors.New("wallettest: sequence has no results")

// Pending returns a non-terminal result.
func Pending(id wallet.TransactionID) *wallet.WaitResult {
	return &wallet.WaitResult{TransactionID: id, Status: wallet.StatusPending, TimedOut: true}
}

// Sequence returns a WaitFn answering with results in order and repeating
// the last one once exhausted. Without results every call fails with
// ErrNoResults.
func Sequence(results ...*wallet.WaitResult) func(context.Context, wallet.TransactionID) (*wallet.WaitResult, error) {
	var (
		mu sync.Mutex
		i  int
	)
	return func(context.Context, wallet.TransactionID) (*wallet.WaitResult, error) {
		if len(results) == 0 {
			return nil, ErrNoResults
		}
		mu.Lock()
		defer mu.Unlock()
		res := results[i]
		if i < len(results)-1 {
			i++
		}
		return res, nil
	}
}
