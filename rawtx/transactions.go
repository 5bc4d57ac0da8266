package rawtx

// BlockMetadataTransaction marks the start of a new block.
type BlockMetadataTransaction struct {
	Id                       string
	Round                    uint64
	Events                   []*Event
	PreviousBlockVotesBitvec []byte
	Proposer                 []byte
	FailedProposerIndices    []uint32
}

// GenesisTransaction is the chain's single genesis transaction.
type GenesisTransaction struct {
	Payload *WriteSetPayload
	Events  []*Event
}

// StateCheckpointTransaction marks a state checkpoint; it carries no
// payload of its own.
type StateCheckpointTransaction struct{}

// ValidatorTransaction carries validator-internal payloads (DKG,
// observed-jwk-update, and similar). Their inner detail is opaque to this
// pipeline; only the common envelope and any emitted events are modeled.
type ValidatorTransaction struct {
	Events []*Event
}

// BlockEndInfo reports whether a block hit its gas/output limits.
type BlockEndInfo struct {
	BlockGasLimitReached        bool
	BlockOutputLimitReached     bool
	BlockEffectiveBlockGasUnits uint64
	BlockApproxOutputSizeBytes  uint64
}

// BlockEpilogueTransaction marks the end of a block.
type BlockEpilogueTransaction struct {
	BlockEndInfo *BlockEndInfo
}

// UserTransactionRequest is the signed request portion of a user
// transaction.
type UserTransactionRequest struct {
	Sender                  []byte
	SequenceNumber          uint64
	MaxGasAmount            uint64
	GasUnitPrice            uint64
	ExpirationTimestampSecs *Timestamp
	Payload                 *TransactionPayload
	Signature               *TransactionSignature
}

// UserTransaction is a transaction submitted by an end user (or relayed on
// their behalf).
type UserTransaction struct {
	Request *UserTransactionRequest
	Events  []*Event
}
