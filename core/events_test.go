package core

import (
	"testing"

	"aptos-etl/rawtx"
)

func TestEventFromRaw(t *testing.T) {
	addr := make([]byte, 32)
	addr[31] = 7
	raw := &rawtx.Event{
		Key:            &rawtx.EventKey{CreationNumber: 3, AccountAddress: addr},
		SequenceNumber: 42,
		Type:           &rawtx.MoveType{Type: rawtx.TypeBool},
		TypeStr:        "bool",
		Data:           "true",
	}
	e, err := EventFromRaw(Envelope{}, 5, raw)
	if err != nil {
		t.Fatalf("EventFromRaw failed: %v", err)
	}
	if e.EventIndex != 5 {
		t.Fatalf("EventIndex = %d", e.EventIndex)
	}
	if e.CreationNum != 3 || e.SequenceNumber != 42 {
		t.Fatalf("CreationNum/SequenceNumber = %d/%d", e.CreationNum, e.SequenceNumber)
	}
	if e.EventType != "BOOL" {
		t.Fatalf("EventType = %q, want BOOL", e.EventType)
	}
	if e.Data.String() != "true" {
		t.Fatalf("Data = %q", e.Data)
	}
}

func TestEventFromRawRejectsMissingKey(t *testing.T) {
	raw := &rawtx.Event{Type: &rawtx.MoveType{Type: rawtx.TypeBool}}
	if _, err := EventFromRaw(Envelope{}, 0, raw); err == nil {
		t.Fatalf("expected error for missing event key")
	}
}
