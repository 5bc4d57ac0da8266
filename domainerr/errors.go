// Package domainerr names every local, fallible failure mode of the
// domain model and transformation engine. Each concept gets its own
// exported error type so callers can errors.As/errors.Is their way to the
// exact failure instead of matching on formatted strings.
package domainerr

import "fmt"

// AddressError reports an input that could not be canonicalized to the
// "0x" + 64 lowercase hex digit form.
type AddressError struct {
	Input string
	Cause string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("address: %s: %q", e.Cause, e.Input)
}

// MoveTypeError reports a Move type fragment that could not be encoded,
// typically an unspecified/unknown enum discriminant.
type MoveTypeError struct {
	Detail string
}

func (e *MoveTypeError) Error() string { return "move type: " + e.Detail }

// StructTagError reports a struct tag that failed to encode, e.g. a missing
// module id or malformed generic parameter list.
type StructTagError struct {
	Detail string
}

func (e *StructTagError) Error() string { return "struct tag: " + e.Detail }

// AbilityError reports an ability enum value outside the known set
// {COPY, DROP, KEY, STORE}.
type AbilityError struct {
	Raw int32
}

func (e *AbilityError) Error() string { return fmt.Sprintf("ability: unknown value %d", e.Raw) }

// VisibilityError reports an unrecognized function visibility discriminant.
type VisibilityError struct {
	Raw int32
}

func (e *VisibilityError) Error() string { return fmt.Sprintf("visibility: unknown value %d", e.Raw) }

// PublicKeyError reports a public key variant that could not be decoded.
type PublicKeyError struct {
	Detail string
}

func (e *PublicKeyError) Error() string { return "public key: " + e.Detail }

// SigValueError reports a signature value variant that could not be decoded.
type SigValueError struct {
	Detail string
}

func (e *SigValueError) Error() string { return "signature value: " + e.Detail }

// TimestampError is the umbrella for timestamp construction/encoding
// failures; Kind distinguishes the specific sub-case.
type TimestampError struct {
	Kind TimestampErrorKind
}

// TimestampErrorKind enumerates the ways a timestamp can fail to encode.
type TimestampErrorKind int

const (
	// NegativeNano reports nanos < 0 on the input timestamp.
	NegativeNano TimestampErrorKind = iota
	// OutOfRangeBigQuery reports seconds below the destination window's
	// lower bound (0001-01-01 00:00:01 UTC).
	OutOfRangeBigQuery
)

func (e *TimestampError) Error() string {
	switch e.Kind {
	case NegativeNano:
		return "timestamp: negative nanos"
	case OutOfRangeBigQuery:
		return "timestamp: seconds below destination window lower bound"
	default:
		return "timestamp: invalid"
	}
}

// SignatureError is the umbrella for signature decomposition failures not
// covered by a more specific type below.
type SignatureError struct {
	Detail string
}

func (e *SignatureError) Error() string { return "signature: " + e.Detail }

// MultiEd25519LengthMismatch reports |signatures| != |public_key_indices|
// for a MultiEd25519 signature.
type MultiEd25519LengthMismatch struct {
	NumSignatures int
	NumIndices    int
}

func (e *MultiEd25519LengthMismatch) Error() string {
	return fmt.Sprintf("multi_ed25519: length mismatch: %d signatures, %d indices", e.NumSignatures, e.NumIndices)
}

// MultiEd25519MultiplePubkeyIndexMatch reports a duplicate pubkey index
// within a MultiEd25519 signature's index array.
type MultiEd25519MultiplePubkeyIndexMatch struct {
	Index int
}

func (e *MultiEd25519MultiplePubkeyIndexMatch) Error() string {
	return fmt.Sprintf("multi_ed25519: pubkey index %d referenced by more than one signature", e.Index)
}

// MultiKeyMultipleSignatureIndexMatch reports a duplicate pubkey index
// within a MultiKey signature's IndexedSignature list.
type MultiKeyMultipleSignatureIndexMatch struct {
	Index int
}

func (e *MultiKeyMultipleSignatureIndexMatch) Error() string {
	return fmt.Sprintf("multi_key: pubkey index %d referenced by more than one signature", e.Index)
}

// TxPayloadError reports a transaction payload that could not be encoded.
type TxPayloadError struct {
	Detail string
}

func (e *TxPayloadError) Error() string { return "tx payload: " + e.Detail }

// TxInfoExtractionError reports a missing or malformed TransactionInfo.
type TxInfoExtractionError struct {
	Detail string
}

func (e *TxInfoExtractionError) Error() string { return "tx info: " + e.Detail }

// TxDataExtractError reports a type tag / payload kind mismatch on the raw
// transaction's discriminated union.
type TxDataExtractError struct {
	Detail string
}

func (e *TxDataExtractError) Error() string { return "tx data: " + e.Detail }

// ChangeError reports a write-set change that could not be classified or
// encoded.
type ChangeError struct {
	Detail string
}

func (e *ChangeError) Error() string { return "change: " + e.Detail }

// UnaccountedForChanges reports a change kind outside the six known kinds
// encountered while aggregating a transaction's changes.
type UnaccountedForChanges struct {
	Kind string
}

func (e *UnaccountedForChanges) Error() string {
	return fmt.Sprintf("change: unaccounted-for kind %q", e.Kind)
}

// EventExtractionError reports an event that could not be encoded.
type EventExtractionError struct {
	Detail string
}

func (e *EventExtractionError) Error() string { return "event: " + e.Detail }

// ModuleError reports a module write/delete change that could not be
// encoded.
type ModuleError struct {
	Detail string
}

func (e *ModuleError) Error() string { return "module: " + e.Detail }

// FunctionError reports a function (entry function / ABI) that could not be
// encoded.
type FunctionError struct {
	Detail string
}

func (e *FunctionError) Error() string { return "function: " + e.Detail }

// MvStructError reports a Move struct definition that could not be encoded.
type MvStructError struct {
	Detail string
}

func (e *MvStructError) Error() string { return "move struct: " + e.Detail }

// GenericTypeParamError reports a generic type parameter that could not be
// encoded.
type GenericTypeParamError struct {
	Detail string
}

func (e *GenericTypeParamError) Error() string { return "generic type param: " + e.Detail }

// MoveModuleIdError reports a module id that could not be encoded (missing
// address or name).
type MoveModuleIdError struct {
	Detail string
}

func (e *MoveModuleIdError) Error() string { return "move module id: " + e.Detail }

// TxExtractionError reports a raw transaction envelope that failed
// validation: missing timestamp/info, or a type tag that disagrees with its
// populated data variant.
type TxExtractionError struct {
	Detail string
}

func (e *TxExtractionError) Error() string { return "transaction: " + e.Detail }

// JSONStringError reports a string that failed validation as an embedded
// JSON value (Event.Data / Resource.Data).
type JSONStringError struct {
	Input string
}

func (e *JSONStringError) Error() string { return fmt.Sprintf("json string: invalid json: %q", e.Input) }

// InterruptionError reports that ExtractRange could not complete the
// inclusive range [Start,End]: processing stopped at FailedOn, wrapping the
// underlying cause.
type InterruptionError struct {
	Start    uint64
	End      uint64
	FailedOn uint64
	Cause    error
}

func (e *InterruptionError) Error() string {
	return fmt.Sprintf("extract range [%d,%d]: failed on %d: %v", e.Start, e.End, e.FailedOn, e.Cause)
}

func (e *InterruptionError) Unwrap() error { return e.Cause }
