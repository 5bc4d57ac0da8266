package core

import (
	"aptos-etl/domainerr"
	"aptos-etl/rawtx"
)

// Event is the Event family record emitted by a transaction, per spec §3.1.
// EventFromRaw fills in EventIndex and the cross-cutting block/transaction
// fields from the index and Envelope its caller passes in.
type Event struct {
	Envelope
	EventIndex     int
	Address        Address
	CreationNum    uint64
	SequenceNumber uint64
	EventType      string
	Data           JSONString
}

// EventFromRaw encodes a single emitted event.
func EventFromRaw(env Envelope, index int, raw *rawtx.Event) (Event, error) {
	if raw == nil {
		return Event{}, &domainerr.EventExtractionError{Detail: "nil event"}
	}
	if raw.Key == nil {
		return Event{}, &domainerr.EventExtractionError{Detail: "missing event key"}
	}
	addr, err := AddressFromBytes(raw.Key.AccountAddress)
	if err != nil {
		return Event{}, err
	}
	if raw.Type == nil {
		return Event{}, &domainerr.EventExtractionError{Detail: "missing move type"}
	}
	mt, err := MoveTypeFromRaw(raw.Type)
	if err != nil {
		return Event{}, err
	}
	eventType, err := mt.Encode()
	if err != nil {
		return Event{}, err
	}
	data, err := NewJSONString(raw.Data)
	if err != nil {
		return Event{}, err
	}
	return Event{
		Envelope:       env,
		EventIndex:     index,
		Address:        addr,
		CreationNum:    raw.Key.CreationNumber,
		SequenceNumber: raw.SequenceNumber,
		EventType:      eventType,
		Data:           data,
	}, nil
}
