package rawtx

// EventKey identifies an event stream: a creation number scoped to an
// account address.
type EventKey struct {
	CreationNumber uint64
	AccountAddress []byte
}

// Event is a single emitted event, with its Move type and JSON-encoded
// data payload.
type Event struct {
	Key            *EventKey
	SequenceNumber uint64
	Type           *MoveType
	TypeStr        string
	Data           string // JSON-encoded value
}
