package core

import "testing"

func TestRecordsUnixTimestampsCoversEveryFamily(t *testing.T) {
	env := Envelope{BlockUnixTimestamp: UnixTimestamp{Seconds: 42}}
	records := Records{
		Blocks:       []Block{{Envelope: env}},
		Transactions: []Transaction{{Envelope: env}},
		Signatures:   []Signature{{Envelope: env}},
		Events:       []Event{{Envelope: env}},
		Changes:      []Change{{Envelope: env}},
		Resources:    []Resource{{Change: Change{Envelope: env}}},
		Modules:      []Module{{Change: Change{Envelope: env}}},
		TableItems:   []TableItem{{Change: Change{Envelope: env}}},
	}

	for _, family := range []string{
		"blocks", "transactions", "signatures", "events",
		"changes", "resources", "modules", "table_items",
	} {
		ts := records.UnixTimestamps(family)
		if len(ts) != 1 {
			t.Fatalf("family %q: len(UnixTimestamps) = %d, want 1", family, len(ts))
		}
		if ts[0].Seconds != 42 {
			t.Fatalf("family %q: Seconds = %d, want 42", family, ts[0].Seconds)
		}
	}
}

func TestRecordsUnixTimestampsUnknownFamily(t *testing.T) {
	var records Records
	if got := records.UnixTimestamps("nonsense"); got != nil {
		t.Fatalf("UnixTimestamps(unknown) = %v, want nil", got)
	}
}
