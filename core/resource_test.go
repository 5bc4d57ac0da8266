package core

import (
	"testing"

	"aptos-etl/rawtx"
)

func TestResourceFromRawWrite(t *testing.T) {
	addr := make([]byte, 32)
	addr[31] = 2
	raw := &rawtx.WriteSetChange{
		Type:         rawtx.ChangeWriteResource,
		StateKeyHash: []byte{0xab},
		WriteResource: &rawtx.WriteResource{
			Address: addr,
			Type:    &rawtx.MoveStructTag{Address: addr, Module: "coin", Name: "CoinStore"},
			TypeStr: "0x2::coin::CoinStore",
			Data:    `{"coin":{"value":"100"}}`,
		},
	}
	r, err := ResourceFromRaw(Envelope{}, 0, raw)
	if err != nil {
		t.Fatalf("ResourceFromRaw failed: %v", err)
	}
	if r.StructTag == nil || *r.StructTag == "" {
		t.Fatalf("expected struct tag to be encoded")
	}
	if r.Data == nil || r.Data.String() != `{"coin":{"value":"100"}}` {
		t.Fatalf("Data = %v", r.Data)
	}
	if r.ChangeType != ChangeTypeWriteResource {
		t.Fatalf("ChangeType = %q", r.ChangeType)
	}
}

func TestResourceFromRawDeleteHasNoData(t *testing.T) {
	addr := make([]byte, 32)
	addr[31] = 2
	raw := &rawtx.WriteSetChange{
		Type: rawtx.ChangeDeleteResource,
		DeleteResource: &rawtx.DeleteResource{
			Address: addr,
			Type:    &rawtx.MoveStructTag{Address: addr, Module: "coin", Name: "CoinStore"},
			TypeStr: "0x2::coin::CoinStore",
		},
	}
	r, err := ResourceFromRaw(Envelope{}, 1, raw)
	if err != nil {
		t.Fatalf("ResourceFromRaw failed: %v", err)
	}
	if r.Data != nil {
		t.Fatalf("expected nil Data for delete, got %v", *r.Data)
	}
	if r.StructTag == nil {
		t.Fatalf("expected struct tag to still be encoded on delete")
	}
}

func TestResourceFromRawRejectsNonResourceChange(t *testing.T) {
	raw := &rawtx.WriteSetChange{Type: rawtx.ChangeWriteModule, WriteModule: &rawtx.WriteModule{Address: make([]byte, 32)}}
	if _, err := ResourceFromRaw(Envelope{}, 0, raw); err == nil {
		t.Fatalf("expected error for non-resource change")
	}
}
