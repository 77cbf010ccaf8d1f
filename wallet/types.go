// Package wallet submits operation sequences to a wallet daemon and waits
// for their terminal outcome.
//
// The Pipeline is the entry point: it hands a built sequence to an
// Executor, blocks until the executor reports a terminal status and turns
// an accepted result into a substate.Diff. Client is the JSON-RPC Executor
// for a running wallet daemon.
package wallet

import (
	"encoding/json"

	"github.com/branched-services/go-tariplan"
	"github.com/branched-services/go-tariplan/address"
	"github.com/branched-services/go-tariplan/substate"
)

// TransactionID identifies a submitted transaction.
type TransactionID string

// TransactionStatus is the status a wallet reports for a transaction.
type TransactionStatus string

const (
	StatusNew                TransactionStatus = "New"
	StatusDryRun             TransactionStatus = "DryRun"
	StatusPending            TransactionStatus = "Pending"
	StatusAccepted           TransactionStatus = "Accepted"
	StatusRejected           TransactionStatus = "Rejected"
	StatusInvalidTransaction TransactionStatus = "InvalidTransaction"
	StatusOnlyFeeAccepted    TransactionStatus = "OnlyFeeAccepted"
)

// IsTerminal reports whether the status is final. New and Pending are the
// only non-terminal statuses; unknown statuses are treated as terminal
// failures.
func (s TransactionStatus) IsTerminal() bool {
	return s != StatusNew && s != StatusPending && s != ""
}

// Account is the wallet account that signs a transaction and pays its fees.
type Account struct {
	Name     string
	Address  address.EntityAddress
	KeyIndex uint64
}

type accountJSON struct {
	Name     string          `json:"name"`
	Address  json.RawMessage `json:"address"`
	KeyIndex uint64          `json:"key_index"`
}

// UnmarshalJSON accepts the account address as a plain string or as a
// wrapped substate id.
func (a *Account) UnmarshalJSON(data []byte) error {
	var raw accountJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	addr, err := substate.ParseSubstateID(raw.Address)
	if err != nil {
		return err
	}
	*a = Account{Name: raw.Name, Address: addr, KeyIndex: raw.KeyIndex}
	return nil
}

// SubmitRequest is the payload of a transaction submission.
type SubmitRequest struct {
	Transaction     tariplan.Instructions   `json:"transaction"`
	SigningKeyIndex *uint64                 `json:"signing_key_index,omitempty"`
	Inputs          []address.EntityAddress `json:"autofill_inputs"`
	DetectInputs    bool                    `json:"detect_inputs"`
}

// WaitResult is the executor's report on a transaction. Result holds the
// finalize result exactly as received and is interpreted by Classify.
type WaitResult struct {
	TransactionID TransactionID     `json:"transaction_id"`
	Status        TransactionStatus `json:"status"`
	Result        json.RawMessage   `json:"result,omitempty"`
	FinalFee      int64             `json:"final_fee"`
	TimedOut      bool              `json:"timed_out"`
}

// SubstateRecord is one entry of a substate listing.
type SubstateRecord struct {
	Address         address.EntityAddress
	ModuleName      string
	Version         uint32
	TemplateAddress address.TemplateAddress
}

type substateRecordJSON struct {
	SubstateID      json.RawMessage `json:"substate_id"`
	ModuleName      *string         `json:"module_name"`
	Version         uint32          `json:"version"`
	TemplateAddress *string         `json:"template_address"`
}

// UnmarshalJSON decodes a listing entry.
func (r *SubstateRecord) UnmarshalJSON(data []byte) error {
	var raw substateRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	addr, err := substate.ParseSubstateID(raw.SubstateID)
	if err != nil {
		return err
	}
	*r = SubstateRecord{Address: addr, Version: raw.Version}
	if raw.ModuleName != nil {
		r.ModuleName = *raw.ModuleName
	}
	if raw.TemplateAddress != nil {
		r.TemplateAddress = address.TemplateAddress(*raw.TemplateAddress)
	}
	return nil
}

// ListFilter narrows a substate listing. Zero fields do not filter.
type ListFilter struct {
	Template *address.TemplateAddress `json:"filter_by_template"`
	Kind     string                   `json:"filter_by_type,omitempty"`
	Limit    uint64                   `json:"limit,omitempty"`
	Offset   uint64                   `json:"offset,omitempty"`
}
