package core

// Envelope is the common prefix carried by every output record family, per
// spec §3.1.
type Envelope struct {
	BlockHeight        uint64
	BlockTimestamp     string
	BlockUnixTimestamp UnixTimestamp
	TxVersion          uint64
	TxHash             string
	TxSequenceNumber   *uint64
}

// DefaultTimestampLayout is the default strftime-style layout, per spec §3.3;
// callers that load an environment override pass it through instead.
const DefaultTimestampLayout = "%Y-%m-%d %T"

// BuildEnvelope stamps the fields shared by every record family for a
// single transaction.
func BuildEnvelope(blockHeight uint64, blockTimestamp UnixTimestamp, layout string, txVersion uint64, txHash HashValue, txSequenceNumber *uint64) (Envelope, error) {
	formatted, err := blockTimestamp.Format(layout)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		BlockHeight:        blockHeight,
		BlockTimestamp:     formatted,
		BlockUnixTimestamp: blockTimestamp,
		TxVersion:          txVersion,
		TxHash:             txHash.Encode(),
		TxSequenceNumber:   txSequenceNumber,
	}, nil
}
