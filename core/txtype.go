package core

import (
	"aptos-etl/domainerr"
	"aptos-etl/rawtx"
)

// TxTypeFromRaw returns the deterministic string form of a transaction
// kind, its enum name with the TRANSACTION_TYPE_ prefix stripped.
func TxTypeFromRaw(kind rawtx.TransactionKind) (string, error) {
	switch kind {
	case rawtx.KindBlockMetadata:
		return "BLOCK_METADATA", nil
	case rawtx.KindGenesis:
		return "GENESIS", nil
	case rawtx.KindStateCheckpoint:
		return "STATE_CHECKPOINT", nil
	case rawtx.KindUser:
		return "USER", nil
	case rawtx.KindValidator:
		return "VALIDATOR", nil
	case rawtx.KindBlockEpilogue:
		return "BLOCK_EPILOGUE", nil
	default:
		return "", &domainerr.TxExtractionError{Detail: "unspecified transaction type"}
	}
}
