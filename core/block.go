package core

import (
	"encoding/base64"

	"aptos-etl/rawtx"
)

// Block is the Block family record, produced only for BlockMetadata
// transactions, per spec §3.1.
type Block struct {
	Envelope
	BlockHash                string
	Round                    uint64
	PreviousBlockVotesBitvec string
	Proposer                 string
	BlockmetadataTxVersion   uint64
}

// BuildBlockRecord returns the Block record for a BlockMetadata
// transaction, or (zero, false) for any other transaction type.
func BuildBlockRecord(tx *TransactionExtraction, layout string) (Block, bool, error) {
	if tx.Kind != rawtx.KindBlockMetadata {
		return Block{}, false, nil
	}
	bmd := tx.Raw.BlockMetadata
	proposer, err := AddressFromBytes(bmd.Proposer)
	if err != nil {
		return Block{}, false, err
	}
	env, err := BuildEnvelope(tx.BlockHeight, tx.Timestamp, layout, tx.Version, HashValue(tx.Info.Hash), nil)
	if err != nil {
		return Block{}, false, err
	}
	return Block{
		Envelope:                 env,
		BlockHash:                bmd.Id,
		Round:                    bmd.Round,
		PreviousBlockVotesBitvec: base64.StdEncoding.EncodeToString(bmd.PreviousBlockVotesBitvec),
		Proposer:                 proposer.Hex(),
		BlockmetadataTxVersion:   tx.Version,
	}, true, nil
}
