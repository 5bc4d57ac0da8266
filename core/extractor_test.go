package core

import (
	"errors"
	"testing"

	"aptos-etl/domainerr"
	"aptos-etl/rawtx"
)

type fakeStreamHandle struct {
	txs    []*rawtx.Transaction
	pos    int
	failAt int // index at which Next returns an error; -1 disables
}

func (h *fakeStreamHandle) Next() (*rawtx.Transaction, bool, error) {
	if h.failAt >= 0 && h.pos == h.failAt {
		return nil, false, errors.New("stream read failed")
	}
	if h.pos >= len(h.txs) {
		return nil, false, nil
	}
	tx := h.txs[h.pos]
	h.pos++
	return tx, true, nil
}

func (h *fakeStreamHandle) Close() error { return nil }

type fakeStreamClient struct {
	handle  *fakeStreamHandle
	openErr error
}

func (c *fakeStreamClient) OpenStream(start, end uint64) (StreamHandle, error) {
	if c.openErr != nil {
		return nil, c.openErr
	}
	return c.handle, nil
}

type fakePublisher struct {
	batches map[string][]any
	failOn  string
}

func (p *fakePublisher) PublishBatch(family string, records []any, timestamps []UnixTimestamp) error {
	if family == p.failOn {
		return errors.New("publish failed")
	}
	if p.batches == nil {
		p.batches = map[string][]any{}
	}
	p.batches[family] = records
	return nil
}

func simpleUserTx(version uint64, sender []byte) *rawtx.Transaction {
	tx := userTxFixture(sender, true, &rawtx.TransactionPayload{
		Type: rawtx.PayloadEntryFunction,
		EntryFunctionPayload: &rawtx.EntryFunctionPayload{
			Function: &rawtx.EntryFunctionId{
				Module: &rawtx.MoveModuleId{Address: sender, Name: "coin"},
				Name:   "transfer",
			},
		},
	})
	tx.Version = version
	return tx
}

func TestExtractRangePublishesAllFamilies(t *testing.T) {
	sender := make([]byte, 32)
	sender[31] = 9
	client := &fakeStreamClient{handle: &fakeStreamHandle{
		txs:    []*rawtx.Transaction{simpleUserTx(100, sender), simpleUserTx(101, sender)},
		failAt: -1,
	}}
	pub := &fakePublisher{}

	err := ExtractRange(client, 100, 101, pub, nil, DefaultTimestampLayout, nil)
	if err != nil {
		t.Fatalf("ExtractRange failed: %v", err)
	}
	if len(pub.batches["transactions"]) != 2 {
		t.Fatalf("transactions batch = %d, want 2", len(pub.batches["transactions"]))
	}
	if len(pub.batches["signatures"]) != 2 {
		t.Fatalf("signatures batch = %d, want 2", len(pub.batches["signatures"]))
	}
	if _, ok := pub.batches["blocks"]; ok {
		t.Fatalf("expected no blocks batch for user-only range")
	}
}

func TestExtractRangeOpenFailureReportsInterruptionAtStart(t *testing.T) {
	client := &fakeStreamClient{openErr: errors.New("dial failed")}
	pub := &fakePublisher{}

	err := ExtractRange(client, 100, 200, pub, nil, DefaultTimestampLayout, nil)
	var interrupted *domainerr.InterruptionError
	if !errors.As(err, &interrupted) {
		t.Fatalf("expected InterruptionError, got %v", err)
	}
	if interrupted.FailedOn != 100 {
		t.Fatalf("FailedOn = %d, want 100", interrupted.FailedOn)
	}
}

func TestExtractRangeMidStreamFailureReportsLastVersion(t *testing.T) {
	sender := make([]byte, 32)
	sender[31] = 9
	client := &fakeStreamClient{handle: &fakeStreamHandle{
		txs:    []*rawtx.Transaction{simpleUserTx(100, sender), simpleUserTx(101, sender)},
		failAt: 1,
	}}
	pub := &fakePublisher{}

	err := ExtractRange(client, 100, 105, pub, nil, DefaultTimestampLayout, nil)
	var interrupted *domainerr.InterruptionError
	if !errors.As(err, &interrupted) {
		t.Fatalf("expected InterruptionError, got %v", err)
	}
	if interrupted.FailedOn != 100 {
		t.Fatalf("FailedOn = %d, want 100 (last successfully read version)", interrupted.FailedOn)
	}
}

func TestExtractRangePublishFailureReportsInterruption(t *testing.T) {
	sender := make([]byte, 32)
	sender[31] = 9
	client := &fakeStreamClient{handle: &fakeStreamHandle{
		txs:    []*rawtx.Transaction{simpleUserTx(100, sender)},
		failAt: -1,
	}}
	pub := &fakePublisher{failOn: "transactions"}

	err := ExtractRange(client, 100, 100, pub, nil, DefaultTimestampLayout, nil)
	var interrupted *domainerr.InterruptionError
	if !errors.As(err, &interrupted) {
		t.Fatalf("expected InterruptionError, got %v", err)
	}
	if interrupted.FailedOn != 100 {
		t.Fatalf("FailedOn = %d, want 100", interrupted.FailedOn)
	}
}

func TestExtractSingleBuildsRecordsForOneTransaction(t *testing.T) {
	sender := make([]byte, 32)
	sender[31] = 9
	tx := simpleUserTx(100, sender)

	records, err := ExtractSingle(tx, DefaultTableOptions(), DefaultTimestampLayout)
	if err != nil {
		t.Fatalf("ExtractSingle failed: %v", err)
	}
	if len(records.Transactions) != 1 {
		t.Fatalf("Transactions = %d, want 1", len(records.Transactions))
	}
	if len(records.Signatures) != 1 {
		t.Fatalf("Signatures = %d, want 1", len(records.Signatures))
	}
	if records.Transactions[0].TxVersion != 100 {
		t.Fatalf("TxVersion = %d, want 100", records.Transactions[0].TxVersion)
	}
}

func TestExtractRangeRespectsTableOptions(t *testing.T) {
	sender := make([]byte, 32)
	sender[31] = 9
	client := &fakeStreamClient{handle: &fakeStreamHandle{
		txs:    []*rawtx.Transaction{simpleUserTx(100, sender)},
		failAt: -1,
	}}
	pub := &fakePublisher{}
	opts := &TableOptions{Transactions: true}

	if err := ExtractRange(client, 100, 100, pub, opts, DefaultTimestampLayout, nil); err != nil {
		t.Fatalf("ExtractRange failed: %v", err)
	}
	if _, ok := pub.batches["signatures"]; ok {
		t.Fatalf("expected signatures to be skipped when not requested")
	}
	if len(pub.batches["transactions"]) != 1 {
		t.Fatalf("transactions batch = %d, want 1", len(pub.batches["transactions"]))
	}
}
