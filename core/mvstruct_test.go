package core

import (
	"testing"

	"aptos-etl/rawtx"
)

func TestMvStructFromRawAndEncode(t *testing.T) {
	raw := &rawtx.MoveStruct{
		Name:      "Coin",
		IsNative:  false,
		Abilities: []rawtx.MoveAbility{rawtx.AbilityStore, rawtx.AbilityKey},
		Fields: []*rawtx.MoveStructField{
			{Name: "value", Type: &rawtx.MoveType{Type: rawtx.TypeU64}},
		},
	}
	s, err := MvStructFromRaw(raw)
	if err != nil {
		t.Fatalf("MvStructFromRaw failed: %v", err)
	}
	enc, err := s.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if enc.Name != "Coin" || len(enc.Abilities) != 2 {
		t.Fatalf("encoded struct mismatch: %+v", enc)
	}
	if len(enc.Fields) != 1 || enc.Fields[0].Name != "value" || enc.Fields[0].Type != "U64" {
		t.Fatalf("encoded fields = %+v", enc.Fields)
	}
}

func TestMvStructFromRawRejectsBadAbility(t *testing.T) {
	raw := &rawtx.MoveStruct{Name: "Bad", Abilities: []rawtx.MoveAbility{rawtx.AbilityUnspecified}}
	if _, err := MvStructFromRaw(raw); err == nil {
		t.Fatalf("expected error for unspecified ability")
	}
}
