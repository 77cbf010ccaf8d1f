package wallet

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/branched-services/go-tariplan/address"
	"github.com/branched-services/go-tariplan/substate"
)

// JSON-RPC methods of the wallet daemon.
const (
	MethodSubmit         = "transactions.submit"
	MethodWaitResult     = "transactions.wait_result"
	MethodDefaultAccount = "accounts.get_default"
	MethodGetSubstate    = "substates.get"
	MethodListSubstates  = "substates.list"
)

// Executor runs transactions on behalf of a Pipeline.
type Executor interface {
	// SubmitTransaction hands a transaction to the executor and returns
	// its id without waiting for execution.
	SubmitTransaction(ctx context.Context, req SubmitRequest) (TransactionID, error)

	// WaitResult reports the transaction's current status. It may return a
	// non-terminal status, in which case the caller polls again.
	WaitResult(ctx context.Context, id TransactionID) (*WaitResult, error)
}

var _ Executor = (*Client)(nil)

// Client talks to a wallet daemon's JSON-RPC endpoint.
// It is safe for concurrent use.
type Client struct {
	rpc         *rpc.Client
	logger      *zap.Logger
	waitTimeout uint64
}

// Dial connects to the wallet daemon at endpoint.
func Dial(ctx context.Context, endpoint string, opts ...DialOption) (*Client, error) {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var rpcOpts []rpc.ClientOption
	if cfg.httpClient != nil {
		rpcOpts = append(rpcOpts, rpc.WithHTTPClient(cfg.httpClient))
	}
	if cfg.token != "" {
		rpcOpts = append(rpcOpts, rpc.WithHeader("Authorization", "Bearer "+cfg.token))
	}
	c, err := rpc.DialOptions(ctx, endpoint, rpcOpts...)
	if err != nil {
		return nil, fmt.Errorf("wallet: dial %s: %w", endpoint, err)
	}
	return newClient(c, cfg), nil
}

// NewClient wraps an existing RPC client.
func NewClient(c *rpc.Client, opts ...DialOption) *Client {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return newClient(c, cfg)
}

func newClient(c *rpc.Client, cfg *clientConfig) *Client {
	secs := uint64(cfg.waitTimeout.Seconds())
	if secs == 0 {
		secs = 1
	}
	return &Client{rpc: c, logger: cfg.logger, waitTimeout: secs}
}

// Close closes the underlying connection.
func (c *Client) Close() {
	c.rpc.Close()
}

type submitResponse struct {
	TransactionID TransactionID `json:"transaction_id"`
}

// SubmitTransaction implements Executor.
func (c *Client) SubmitTransaction(ctx context.Context, req SubmitRequest) (TransactionID, error) {
	var resp submitResponse
	if err := c.rpc.CallContext(ctx, &resp, MethodSubmit, req); err != nil {
		return "", err
	}
	c.logger.Debug("transaction submitted", zap.String("tx", string(resp.TransactionID)))
	return resp.TransactionID, nil
}

type waitRequest struct {
	TransactionID TransactionID `json:"transaction_id"`
	TimeoutSecs   uint64        `json:"timeout_secs"`
}

// WaitResult implements Executor. The daemon holds the request open for up
// to the configured wait timeout.
func (c *Client) WaitResult(ctx context.Context, id TransactionID) (*WaitResult, error) {
	var res WaitResult
	err := c.rpc.CallContext(ctx, &res, MethodWaitResult, waitRequest{TransactionID: id, TimeoutSecs: c.waitTimeout})
	if err != nil {
		return nil, err
	}
	if res.TransactionID == "" {
		res.TransactionID = id
	}
	if res.TimedOut && !res.Status.IsTerminal() {
		c.logger.Debug("wait timed out", zap.String("tx", string(id)), zap.String("status", string(res.Status)))
	}
	return &res, nil
}

type defaultAccountResponse struct {
	Account Account `json:"account"`
}

// DefaultAccount returns the wallet's default account.
func (c *Client) DefaultAccount(ctx context.Context) (*Account, error) {
	var resp defaultAccountResponse
	if err := c.rpc.CallContext(ctx, &resp, MethodDefaultAccount, struct{}{}); err != nil {
		return nil, err
	}
	return &resp.Account, nil
}

type getSubstateRequest struct {
	SubstateID address.EntityAddress `json:"substate_id"`
}

type getSubstateResponse struct {
	Value json.RawMessage `json:"value"`
}

// GetSubstate fetches the current version of the entity at addr.
func (c *Client) GetSubstate(ctx context.Context, addr address.EntityAddress) (*substate.UpSubstate, error) {
	var resp getSubstateResponse
	if err := c.rpc.CallContext(ctx, &resp, MethodGetSubstate, getSubstateRequest{SubstateID: addr}); err != nil {
		return nil, err
	}
	snap, version, err := substate.ParseSubstate(resp.Value)
	if err != nil {
		return nil, fmt.Errorf("wallet: substate %s: %w", addr, err)
	}
	return &substate.UpSubstate{Address: addr, Version: version, Snapshot: snap}, nil
}

type listSubstatesResponse struct {
	Substates []SubstateRecord `json:"substates"`
}

// ListSubstates lists the substates the wallet knows about.
func (c *Client) ListSubstates(ctx context.Context, filter ListFilter) ([]SubstateRecord, error) {
	var resp listSubstatesResponse
	if err := c.rpc.CallContext(ctx, &resp, MethodListSubstates, filter); err != nil {
		return nil, err
	}
	return resp.Substates, nil
}
