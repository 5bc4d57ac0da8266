// Package rawtx mirrors the upstream aptos.transaction.v1 protobuf schema
// closely enough to decode a TransactionsResponse batch off the gRPC
// stream. These types stand in for what a real Go port would generate with
// protoc-gen-go; schema code generation is an explicit external build step
// (out of scope for this module, per spec §1), so this package is
// hand-maintained instead.
package rawtx

// Timestamp is a Unix seconds+nanos pair, as delivered on the wire.
type Timestamp struct {
	Seconds int64
	Nanos   int32
}

// TransactionKind discriminates the Transaction.Type oneof.
type TransactionKind int32

const (
	KindUnspecified TransactionKind = iota
	KindGenesis
	KindBlockMetadata
	KindStateCheckpoint
	KindUser
	KindValidator
	KindBlockEpilogue
)

// Transaction is the raw wire form of a single Aptos transaction.
type Transaction struct {
	Timestamp   *Timestamp
	Version     uint64
	Info        *TransactionInfo
	Epoch       uint64
	BlockHeight uint64
	Type        TransactionKind

	BlockMetadata   *BlockMetadataTransaction
	Genesis         *GenesisTransaction
	StateCheckpoint *StateCheckpointTransaction
	User            *UserTransaction
	Validator       *ValidatorTransaction
	BlockEpilogue   *BlockEpilogueTransaction
}

// TransactionInfo carries the hashes and write-set changes common to every
// transaction type.
type TransactionInfo struct {
	Hash                 []byte
	StateChangeHash      []byte
	EventRootHash         []byte
	StateCheckpointHash  []byte
	GasUsed              uint64
	Success              bool
	VmStatus             string
	AccumulatorRootHash  []byte
	Changes              []*WriteSetChange
}

// TransactionsResponse is a single batch delivered by the gRPC stream.
type TransactionsResponse struct {
	Transactions []*Transaction
	ChainId      uint32
}

// GetTransactionsRequest opens a ranged subscription to the stream,
// mirroring aptos.indexer.v1.GetTransactionsRequest's two range fields.
type GetTransactionsRequest struct {
	StartingVersion   uint64
	TransactionsCount uint64
}
