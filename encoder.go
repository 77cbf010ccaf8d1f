package tariplan

import (
	"encoding/json"
	"fmt"
)

// PayFeeMethod is the account method a ReserveFee step calls.
const PayFeeMethod = "pay_fee"

// Instructions is the wire form of an UnsignedSequence as accepted by the
// wallet's transaction submission endpoint. Fee reservations are split out
// into FeeInstructions; all other steps keep their relative order.
type Instructions struct {
	FeeInstructions []Instruction `json:"fee_instructions"`
	Instructions    []Instruction `json:"instructions"`
	MinEpoch        *uint64       `json:"min_epoch,omitempty"`
	MaxEpoch        *uint64       `json:"max_epoch,omitempty"`
}

// Instruction is a single-key object naming the instruction variant.
type Instruction struct {
	CallFunction                        *CallFunctionInstruction `json:"CallFunction,omitempty"`
	CallMethod                          *CallMethodInstruction   `json:"CallMethod,omitempty"`
	PutLastInstructionOutputOnWorkspace *WorkspaceInstruction    `json:"PutLastInstructionOutputOnWorkspace,omitempty"`
}

// CallFunctionInstruction calls a template function.
type CallFunctionInstruction struct {
	TemplateAddress string    `json:"template_address"`
	Function        string    `json:"function"`
	Args            []WireArg `json:"args"`
}

// CallMethodInstruction calls a component method.
type CallMethodInstruction struct {
	ComponentAddress string    `json:"component_address"`
	Method           string    `json:"method"`
	Args             []WireArg `json:"args"`
}

// WorkspaceInstruction stores the previous instruction's output under Key.
type WorkspaceInstruction struct {
	Key string `json:"key"`
}

// WireArg is an encoded argument: {"Literal": value} or {"Workspace": name}.
type WireArg struct {
	Literal   any
	Workspace *string
}

// MarshalJSON encodes the argument as a single-key object. Literal zero
// values such as 0, "" and false are kept.
func (a WireArg) MarshalJSON() ([]byte, error) {
	if a.Workspace != nil {
		return json.Marshal(map[string]string{"Workspace": *a.Workspace})
	}
	return json.Marshal(map[string]any{"Literal": a.Literal})
}

// Instructions encodes the sequence into its wire form.
func (u *UnsignedSequence) Instructions() Instructions {
	out := Instructions{
		FeeInstructions: make([]Instruction, 0, 1),
		Instructions:    make([]Instruction, 0, len(u.steps)),
		MinEpoch:        copyEpoch(u.minEpoch),
		MaxEpoch:        copyEpoch(u.maxEpoch),
	}
	for _, step := range u.steps {
		switch step.stepType {
		case StepReserveFee:
			out.FeeInstructions = append(out.FeeInstructions, Instruction{
				CallMethod: &CallMethodInstruction{
					ComponentAddress: step.target.String(),
					Method:           PayFeeMethod,
					Args:             []WireArg{{Literal: step.amount}},
				},
			})
		case StepCallFunction:
			out.Instructions = append(out.Instructions, Instruction{
				CallFunction: &CallFunctionInstruction{
					TemplateAddress: string(step.template),
					Function:        step.name,
					Args:            encodeArgs(step.args),
				},
			})
		case StepCallMethod:
			out.Instructions = append(out.Instructions, Instruction{
				CallMethod: &CallMethodInstruction{
					ComponentAddress: step.target.String(),
					Method:           step.name,
					Args:             encodeArgs(step.args),
				},
			})
		case StepSaveResult:
			out.Instructions = append(out.Instructions, Instruction{
				PutLastInstructionOutputOnWorkspace: &WorkspaceInstruction{Key: step.name},
			})
		}
	}
	return out
}

// MarshalJSON encodes the sequence as its Instructions.
func (u *UnsignedSequence) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(u.Instructions())
	if err != nil {
		return nil, fmt.Errorf("tariplan: encode sequence: %w", err)
	}
	return data, nil
}

func encodeArgs(args []Argument) []WireArg {
	out := make([]WireArg, 0, len(args))
	for _, arg := range args {
		switch a := arg.(type) {
		case *WorkspaceArg:
			name := a.Name()
			out = append(out, WireArg{Workspace: &name})
		case *LiteralArg:
			out = append(out, WireArg{Literal: a.Value()})
		}
	}
	return out
}
