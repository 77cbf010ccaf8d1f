package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/branched-services/go-tariplan"
	"github.com/branched-services/go-tariplan/address"
	"github.com/branched-services/go-tariplan/substate"
)

// errPending marks a poll that returned a non-terminal status.
var errPending = errors.New("wallet: transaction pending")

// Pipeline submits built sequences and waits for their outcome.
// It performs no retries: a failed submission is returned to the caller,
// which decides whether to build and submit a fresh sequence.
type Pipeline struct {
	executor     Executor
	logger       *zap.Logger
	metrics      *metrics
	pollInterval time.Duration
}

// NewPipeline creates a Pipeline submitting through executor.
func NewPipeline(executor Executor, opts ...Option) *Pipeline {
	cfg := defaultPipelineConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Pipeline{
		executor:     executor,
		logger:       cfg.logger,
		metrics:      newMetrics(cfg.registerer),
		pollInterval: cfg.pollInterval,
	}
}

// Submit hands seq to the executor, signed by account, and blocks until the
// executor reports a terminal status. required lists entities the caller
// knows the transaction reads; the executor also detects inputs itself.
//
// An accepted transaction returns its diff. Any other terminal status fails
// with a *RejectedError; an accepted result without a diff fails with an
// *OutcomeShapeError. Executor errors are returned unchanged. Submit has no
// timeout of its own; it stops waiting when ctx is done.
func (p *Pipeline) Submit(ctx context.Context, seq *tariplan.UnsignedSequence, account Account, required []address.EntityAddress) (*substate.Diff, error) {
	if seq == nil {
		return nil, ErrNilSequence
	}

	inputs := make([]address.EntityAddress, len(required))
	copy(inputs, required)
	keyIndex := account.KeyIndex
	req := SubmitRequest{
		Transaction:     seq.Instructions(),
		SigningKeyIndex: &keyIndex,
		Inputs:          inputs,
		DetectInputs:    true,
	}

	start := time.Now()
	id, err := p.executor.SubmitTransaction(ctx, req)
	if err != nil {
		p.metrics.submissions.WithLabelValues(outcomeSubmitFailed).Inc()
		p.logger.Warn("submit failed", zap.Stringer("account", account.Address), zap.Error(err))
		return nil, err
	}
	log := p.logger.With(zap.String("tx", string(id)))
	log.Info("transaction submitted",
		zap.Stringer("account", account.Address),
		zap.Int("steps", seq.Len()),
		zap.Int("inputs", len(inputs)))

	res, err := p.wait(ctx, id)
	if err != nil {
		p.metrics.submissions.WithLabelValues(outcomeWaitFailed).Inc()
		log.Warn("wait failed", zap.Error(err))
		return nil, err
	}
	p.metrics.waitSeconds.Observe(time.Since(start).Seconds())

	outcome, err := Classify(res)
	if err != nil {
		p.metrics.submissions.WithLabelValues(outcomeShape).Inc()
		log.Error("unexpected outcome", zap.String("status", string(res.Status)), zap.Error(err))
		return nil, err
	}

	switch o := outcome.(type) {
	case Accepted:
		p.metrics.submissions.WithLabelValues(outcomeAccepted).Inc()
		log.Info("transaction accepted",
			zap.Int("up", len(o.Diff.Up)),
			zap.Int("down", len(o.Diff.Down)),
			zap.Int64("fee", res.FinalFee))
		return o.Diff, nil
	case Rejected:
		p.metrics.submissions.WithLabelValues(outcomeRejected).Inc()
		log.Info("transaction rejected", zap.String("status", string(o.Status)), zap.String("reason", o.Reason))
		return nil, &RejectedError{TransactionID: id, Status: o.Status, Reason: o.Reason}
	default:
		return nil, &OutcomeShapeError{TransactionID: id, Status: res.Status, Raw: res.Result}
	}
}

// wait polls the executor until it reports a terminal status or ctx is done.
func (p *Pipeline) wait(ctx context.Context, id TransactionID) (*WaitResult, error) {
	b := backoff.WithContext(backoff.NewConstantBackOff(p.pollInterval), ctx)
	return backoff.RetryWithData(func() (*WaitResult, error) {
		p.metrics.polls.Inc()
		res, err := p.executor.WaitResult(ctx, id)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if res == nil || !res.Status.IsTerminal() {
			return nil, errPending
		}
		return res, nil
	}, b)
}
