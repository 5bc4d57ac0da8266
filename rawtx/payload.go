package rawtx

// EntryFunctionId names a function within a module.
type EntryFunctionId struct {
	Module *MoveModuleId
	Name   string
}

// EntryFunctionPayload invokes a single entry function.
type EntryFunctionPayload struct {
	Function           *EntryFunctionId
	TypeArgs           []*MoveType
	Arguments          []string // BCS-decoded, JSON-encoded argument values
	EntryFunctionIdStr string   // source-provided convenience string, e.g. "0x1::coin::transfer"
}

// MoveScriptBytecode is a compiled script, with an optional decoded ABI
// (the function signature the script implements).
type MoveScriptBytecode struct {
	Bytecode []byte
	Abi      *MoveFunction
}

// ScriptPayload runs an ad hoc compiled script.
type ScriptPayload struct {
	Code      *MoveScriptBytecode
	TypeArgs  []*MoveType
	Arguments []string
}

// MultisigTransactionPayload is the inner payload a multisig account
// executes, when provided.
type MultisigTransactionPayload struct {
	EntryFunctionPayload *EntryFunctionPayload
}

// MultisigPayload invokes a transaction on behalf of a multisig account.
type MultisigPayload struct {
	MultisigAddress []byte
	InnerPayload    *MultisigTransactionPayload // nil if only approving/creating
}

// WriteSetKind discriminates the WriteSet oneof.
type WriteSetKind int32

const (
	WriteSetUnspecified WriteSetKind = iota
	WriteSetScript
	WriteSetDirect
)

// ScriptWriteSet executes a script as a write set (used by genesis).
type ScriptWriteSet struct {
	ExecuteAs []byte
	Script    *ScriptPayload
}

// DirectWriteSet applies a fixed list of changes and events directly.
type DirectWriteSet struct {
	WriteSetChanges []*WriteSetChange
	Events          []*Event
}

// WriteSet is either a script write set or a direct write set.
type WriteSet struct {
	Type           WriteSetKind
	ScriptWriteSet *ScriptWriteSet
	DirectWriteSet *DirectWriteSet
}

// WriteSetPayload is the top-level payload of a WriteSet transaction
// (ordinary or genesis).
type WriteSetPayload struct {
	WriteSet *WriteSet
}

// TransactionPayloadKind discriminates the TransactionPayload oneof.
type TransactionPayloadKind int32

const (
	PayloadUnspecified TransactionPayloadKind = iota
	PayloadEntryFunction
	PayloadScript
	PayloadWriteSet
	PayloadMultisig
)

// TransactionPayload is the raw, discriminated payload of a user
// transaction.
type TransactionPayload struct {
	Type                 TransactionPayloadKind
	EntryFunctionPayload *EntryFunctionPayload
	ScriptPayload        *ScriptPayload
	WriteSetPayload      *WriteSetPayload
	MultisigPayload      *MultisigPayload
}
