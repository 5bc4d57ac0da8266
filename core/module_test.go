package core

import (
	"testing"

	"aptos-etl/rawtx"
)

func TestModuleFromRawWriteWithAbi(t *testing.T) {
	addr := make([]byte, 32)
	addr[31] = 1
	friendAddr := make([]byte, 32)
	friendAddr[31] = 2
	raw := &rawtx.WriteSetChange{
		Type: rawtx.ChangeWriteModule,
		WriteModule: &rawtx.WriteModule{
			Address: addr,
			Data: &rawtx.MoveModuleBytecode{
				Bytecode: []byte{0xca, 0xfe},
				Abi: &rawtx.MoveModule{
					Address: addr,
					Name:    "coin",
					Friends: []*rawtx.MoveModuleId{{Address: friendAddr, Name: "events"}},
					ExposedFunctions: []*rawtx.MoveFunction{
						{Name: "transfer", Visibility: rawtx.VisibilityPublic, IsEntry: true},
					},
					Structs: []*rawtx.MoveStruct{
						{Name: "CoinStore", Abilities: []rawtx.MoveAbility{rawtx.AbilityKey}},
					},
				},
			},
		},
	}
	m, err := ModuleFromRaw(Envelope{}, 0, raw)
	if err != nil {
		t.Fatalf("ModuleFromRaw failed: %v", err)
	}
	if m.Bytecode == nil || *m.Bytecode == "" {
		t.Fatalf("expected base64 bytecode")
	}
	if m.Name == nil || *m.Name != "coin" {
		t.Fatalf("Name = %v, want coin", m.Name)
	}
	if len(m.Friends) != 1 || m.Friends[0].Name != "events" {
		t.Fatalf("Friends = %v", m.Friends)
	}
	if len(m.ExposedFunctions) != 1 || m.ExposedFunctions[0].Name != "transfer" {
		t.Fatalf("ExposedFunctions = %v", m.ExposedFunctions)
	}
	if len(m.Structs) != 1 || m.Structs[0].Name != "CoinStore" {
		t.Fatalf("Structs = %v", m.Structs)
	}
}

func TestModuleFromRawDeleteHasNoBytecode(t *testing.T) {
	addr := make([]byte, 32)
	addr[31] = 1
	raw := &rawtx.WriteSetChange{
		Type: rawtx.ChangeDeleteModule,
		DeleteModule: &rawtx.DeleteModule{
			Address: addr,
			Module:  &rawtx.MoveModuleId{Address: addr, Name: "coin"},
		},
	}
	m, err := ModuleFromRaw(Envelope{}, 0, raw)
	if err != nil {
		t.Fatalf("ModuleFromRaw failed: %v", err)
	}
	if m.Bytecode != nil {
		t.Fatalf("expected nil bytecode for delete")
	}
	if m.Name == nil || *m.Name != "coin" {
		t.Fatalf("Name = %v, want coin", m.Name)
	}
}

func TestModuleFromRawRejectsMissingData(t *testing.T) {
	addr := make([]byte, 32)
	raw := &rawtx.WriteSetChange{Type: rawtx.ChangeWriteModule, WriteModule: &rawtx.WriteModule{Address: addr}}
	if _, err := ModuleFromRaw(Envelope{}, 0, raw); err == nil {
		t.Fatalf("expected error for missing write_module data")
	}
}
