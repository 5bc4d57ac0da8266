package core

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNewJSONStringRejectsInvalidJSON(t *testing.T) {
	if _, err := NewJSONString("{not json"); err == nil {
		t.Fatalf("expected error for invalid json")
	}
}

func TestJSONStringMarshalsAsNestedValueNotEscapedString(t *testing.T) {
	js, err := NewJSONString(`{"coin":{"value":"100"}}`)
	if err != nil {
		t.Fatalf("NewJSONString failed: %v", err)
	}
	type wrapper struct {
		Data JSONString
	}
	out, err := json.Marshal(wrapper{Data: js})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"Data":{"coin":{"value":"100"}}}`
	if string(out) != want {
		t.Fatalf("Marshal = %s, want %s", out, want)
	}
}

func TestJSONStringRoundTripsThroughJSON(t *testing.T) {
	original := `{"k":1,"nested":{"a":[1,2,3]}}`
	js, err := NewJSONString(original)
	if err != nil {
		t.Fatalf("NewJSONString failed: %v", err)
	}
	type wrapper struct {
		Data JSONString
	}
	encoded, err := json.Marshal(wrapper{Data: js})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded wrapper
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	var gotValue, wantValue any
	if err := json.Unmarshal(decoded.Data, &gotValue); err != nil {
		t.Fatalf("Unmarshal decoded.Data failed: %v", err)
	}
	if err := json.Unmarshal([]byte(original), &wantValue); err != nil {
		t.Fatalf("Unmarshal original failed: %v", err)
	}
	if !reflect.DeepEqual(gotValue, wantValue) {
		t.Fatalf("round trip mismatch: got %#v, want %#v", gotValue, wantValue)
	}
}

func TestEventDataMarshalsAsNestedJSON(t *testing.T) {
	js, err := NewJSONString(`{"amount":42}`)
	if err != nil {
		t.Fatalf("NewJSONString failed: %v", err)
	}
	e := Event{EventType: "0x1::coin::DepositEvent", Data: js}
	out, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if string(decoded["Data"]) != `{"amount":42}` {
		t.Fatalf("Data = %s, want nested object, not an escaped string", decoded["Data"])
	}
}

func TestResourceDataMarshalsAsNestedJSONAndNilForDeletes(t *testing.T) {
	js, err := NewJSONString(`{"value":"100"}`)
	if err != nil {
		t.Fatalf("NewJSONString failed: %v", err)
	}
	r := Resource{TypeStr: "0x2::coin::CoinStore", Data: &js}
	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if string(decoded["Data"]) != `{"value":"100"}` {
		t.Fatalf("Data = %s, want nested object, not an escaped string", decoded["Data"])
	}

	del := Resource{TypeStr: "0x2::coin::CoinStore"}
	out, err = json.Marshal(del)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if string(decoded["Data"]) != "null" {
		t.Fatalf("Data = %s, want null for delete", decoded["Data"])
	}
}
