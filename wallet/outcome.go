package wallet

import (
	"github.com/valyala/fastjson"

	"github.com/branched-services/go-tariplan/substate"
)

// Outcome is the classified terminal result of a transaction.
// This is a sealed interface - only types within this package can implement it.
type Outcome interface {
	isOutcome()
}

// Accepted means the transaction executed. Diff lists the entities it
// created and consumed.
type Accepted struct {
	Diff *substate.Diff
}

// Rejected means the transaction reached a terminal status other than
// Accepted. Reason is the executor's own reason, verbatim.
type Rejected struct {
	Status TransactionStatus
	Reason string
}

func (Accepted) isOutcome() {}
func (Rejected) isOutcome() {}

// Classify decodes a terminal WaitResult once into an Outcome.
//
// The result payload is the executor's finalize result. Its transaction
// result is read from "result" and is one of
//
//	{"Accept": diff}
//	{"AcceptFeeRejectRest": [diff, reason]}
//	{"Reject": reason}
//
// Statuses other than Accepted classify as Rejected. An Accepted status
// without an "Accept" diff fails with an *OutcomeShapeError.
func Classify(res *WaitResult) (Outcome, error) {
	if res == nil || !res.Status.IsTerminal() {
		return nil, ErrNotTerminal
	}

	var txResult *fastjson.Value
	if len(res.Result) > 0 {
		v, err := fastjson.ParseBytes(res.Result)
		if err != nil && res.Status == StatusAccepted {
			return nil, shapeError(res, err)
		}
		if err == nil {
			txResult = v.Get("result")
			if txResult == nil {
				txResult = v
			}
		}
	}

	if res.Status != StatusAccepted {
		return Rejected{Status: res.Status, Reason: rejectReason(txResult, res.Result)}, nil
	}

	accept := txResult.Get("Accept")
	if accept == nil || accept.Type() != fastjson.TypeObject {
		return nil, shapeError(res, nil)
	}
	diff, err := substate.DiffFromValue(accept)
	if err != nil {
		return nil, shapeError(res, err)
	}
	return Accepted{Diff: diff}, nil
}

func shapeError(res *WaitResult, err error) *OutcomeShapeError {
	raw := make([]byte, len(res.Result))
	copy(raw, res.Result)
	return &OutcomeShapeError{TransactionID: res.TransactionID, Status: res.Status, Raw: raw, Err: err}
}

// rejectReason extracts the executor's reason as text. Without a
// recognizable reject the raw payload is returned.
func rejectReason(txResult *fastjson.Value, raw []byte) string {
	if txResult != nil {
		if r := txResult.Get("Reject"); r != nil {
			return valueText(r)
		}
		if r := txResult.Get("AcceptFeeRejectRest", "1"); r != nil {
			return valueText(r)
		}
	}
	return string(raw)
}

func valueText(v *fastjson.Value) string {
	if v.Type() == fastjson.TypeString {
		s, _ := v.StringBytes()
		return string(s)
	}
	return string(v.MarshalTo(nil))
}
