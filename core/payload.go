package core

import (
	"encoding/base64"

	"aptos-etl/domainerr"
	"aptos-etl/rawtx"
)

// Code is a compiled script: its bytecode, base64-encoded, plus an optional
// decoded ABI (the function signature the script implements).
type Code struct {
	Bytecode string
	Abi      *EncodedFunction
}

// Payload is the fully encoded form of a transaction's payload, per spec
// §4.5. Every pointer field is optional and absent unless the payload kind
// populates it.
type Payload struct {
	Function           *string
	TypeArguments       []string
	Arguments           []string
	EntryFunctionIdStr *string
	Code               *Code
	MultisigAddress    *string
	ExecuteAs          *string
	PayloadType        string
}

const (
	PayloadTypeEntryFunction   = "EntryFunction"
	PayloadTypeMultisig        = "Multisig"
	PayloadTypeScript          = "Script"
	PayloadTypeWriteset        = "Writeset"
	PayloadTypeGenesisWriteset = "GenesisWriteset"
)

func strPtr(s string) *string { return &s }

func codeFromScriptBytecode(raw *rawtx.MoveScriptBytecode) (*Code, error) {
	if raw == nil {
		return nil, &domainerr.TxPayloadError{Detail: "script payload missing code"}
	}
	c := &Code{Bytecode: base64.StdEncoding.EncodeToString(raw.Bytecode)}
	if raw.Abi != nil {
		fn, err := FunctionFromRaw(raw.Abi)
		if err != nil {
			return nil, &domainerr.TxPayloadError{Detail: err.Error()}
		}
		encFn, err := fn.Encode()
		if err != nil {
			return nil, &domainerr.TxPayloadError{Detail: err.Error()}
		}
		c.Abi = &encFn
	}
	return c, nil
}

func encodeTypeArgs(args []*rawtx.MoveType) ([]string, error) {
	out := make([]string, len(args))
	for i, a := range args {
		mt, err := MoveTypeFromRaw(a)
		if err != nil {
			return nil, &domainerr.TxPayloadError{Detail: err.Error()}
		}
		enc, err := mt.Encode()
		if err != nil {
			return nil, &domainerr.TxPayloadError{Detail: err.Error()}
		}
		out[i] = enc
	}
	return out, nil
}

// PayloadFromRaw encodes a user transaction's payload per spec §4.5.
func PayloadFromRaw(raw *rawtx.TransactionPayload) (Payload, error) {
	if raw == nil {
		return Payload{}, &domainerr.TxPayloadError{Detail: "missing payload"}
	}
	switch raw.Type {
	case rawtx.PayloadEntryFunction:
		return payloadFromEntryFunction(raw.EntryFunctionPayload)
	case rawtx.PayloadScript:
		return payloadFromScript(raw.ScriptPayload)
	case rawtx.PayloadMultisig:
		return payloadFromMultisig(raw.MultisigPayload)
	case rawtx.PayloadWriteSet:
		return payloadFromWriteSet(raw.WriteSetPayload)
	default:
		return Payload{}, &domainerr.TxPayloadError{Detail: "unspecified payload type"}
	}
}

func payloadFromEntryFunction(raw *rawtx.EntryFunctionPayload) (Payload, error) {
	if raw == nil || raw.Function == nil || raw.Function.Module == nil {
		return Payload{}, &domainerr.TxPayloadError{Detail: "entry function payload missing module id"}
	}
	mid, err := ModuleIdFromRaw(raw.Function.Module.Address, raw.Function.Module.Name)
	if err != nil {
		return Payload{}, err
	}
	typeArgs, err := encodeTypeArgs(raw.TypeArgs)
	if err != nil {
		return Payload{}, err
	}
	fn := mid.Encode() + "::" + raw.Function.Name
	p := Payload{
		Function:      strPtr(fn),
		TypeArguments: typeArgs,
		Arguments:     append([]string(nil), raw.Arguments...),
		PayloadType:   PayloadTypeEntryFunction,
	}
	if raw.EntryFunctionIdStr != "" {
		p.EntryFunctionIdStr = strPtr(raw.EntryFunctionIdStr)
	}
	return p, nil
}

func payloadFromScript(raw *rawtx.ScriptPayload) (Payload, error) {
	if raw == nil {
		return Payload{}, &domainerr.TxPayloadError{Detail: "missing script payload"}
	}
	typeArgs, err := encodeTypeArgs(raw.TypeArgs)
	if err != nil {
		return Payload{}, err
	}
	code, err := codeFromScriptBytecode(raw.Code)
	if err != nil {
		return Payload{}, err
	}
	return Payload{
		TypeArguments: typeArgs,
		Arguments:     append([]string(nil), raw.Arguments...),
		Code:          code,
		PayloadType:   PayloadTypeScript,
	}, nil
}

func payloadFromMultisig(raw *rawtx.MultisigPayload) (Payload, error) {
	if raw == nil {
		return Payload{}, &domainerr.TxPayloadError{Detail: "missing multisig payload"}
	}
	addr, err := AddressFromBytes(raw.MultisigAddress)
	if err != nil {
		return Payload{}, err
	}
	p := Payload{
		MultisigAddress: strPtr(addr.Hex()),
		PayloadType:     PayloadTypeMultisig,
	}
	if raw.InnerPayload != nil && raw.InnerPayload.EntryFunctionPayload != nil {
		inner, err := payloadFromEntryFunction(raw.InnerPayload.EntryFunctionPayload)
		if err != nil {
			return Payload{}, err
		}
		p.Function = inner.Function
		p.TypeArguments = inner.TypeArguments
		p.Arguments = inner.Arguments
		p.EntryFunctionIdStr = inner.EntryFunctionIdStr
	}
	return p, nil
}

func payloadFromWriteSet(raw *rawtx.WriteSetPayload) (Payload, error) {
	if raw == nil || raw.WriteSet == nil {
		return Payload{}, &domainerr.TxPayloadError{Detail: "missing write set data"}
	}
	return payloadFromWriteSetVariant(raw.WriteSet, PayloadTypeWriteset)
}

// payloadFromWriteSetVariant also serves genesis script/direct write sets,
// which carry the same shape but a different payload_type label.
func payloadFromWriteSetVariant(raw *rawtx.WriteSet, payloadType string) (Payload, error) {
	switch raw.Type {
	case rawtx.WriteSetScript:
		if raw.ScriptWriteSet == nil || raw.ScriptWriteSet.Script == nil {
			return Payload{}, &domainerr.TxPayloadError{Detail: "script write set missing script payload"}
		}
		sp := raw.ScriptWriteSet.Script
		typeArgs, err := encodeTypeArgs(sp.TypeArgs)
		if err != nil {
			return Payload{}, err
		}
		code, err := codeFromScriptBytecode(sp.Code)
		if err != nil {
			return Payload{}, err
		}
		executeAs, err := AddressFromBytes(raw.ScriptWriteSet.ExecuteAs)
		if err != nil {
			return Payload{}, err
		}
		return Payload{
			TypeArguments: typeArgs,
			Arguments:     append([]string(nil), sp.Arguments...),
			Code:          code,
			ExecuteAs:     strPtr(executeAs.Hex()),
			PayloadType:   payloadType,
		}, nil
	case rawtx.WriteSetDirect:
		return Payload{PayloadType: payloadType}, nil
	default:
		return Payload{}, &domainerr.TxPayloadError{Detail: "unspecified write set type"}
	}
}

// GenesisPayloadFromRaw encodes a genesis transaction's write set payload,
// which arrives unwrapped (no TransactionPayload envelope or type enum).
func GenesisPayloadFromRaw(raw *rawtx.WriteSetPayload) (Payload, error) {
	if raw == nil || raw.WriteSet == nil {
		return Payload{}, &domainerr.TxPayloadError{Detail: "missing genesis write set data"}
	}
	return payloadFromWriteSetVariant(raw.WriteSet, PayloadTypeGenesisWriteset)
}
