package core

import (
	"aptos-etl/domainerr"
	"aptos-etl/rawtx"
)

// StreamClient is the narrow view of C4 the transformation engine needs: a
// single open stream of raw transactions for a version range. The gRPC
// failover/keepalive machinery lives in package ingest; core only depends on
// this interface so it can be tested without a network.
type StreamClient interface {
	// OpenStream begins streaming transactions starting at start, up to and
	// including end.
	OpenStream(start, end uint64) (StreamHandle, error)
}

// StreamHandle yields successive raw transactions until the range is
// exhausted.
type StreamHandle interface {
	// Next returns the next transaction, or ok=false once the stream is
	// exhausted.
	Next() (tx *rawtx.Transaction, ok bool, err error)
	Close() error
}

// MetricsRecorder is the narrow view of package metrics the extractor
// needs. A nil MetricsRecorder is a valid no-op extractor input.
type MetricsRecorder interface {
	RecordRequest()
	RecordFailedRequest()
}

// Publisher is the C3 fan-out contract: publish one named family's buffered
// records, batched, with the parallel per-record unix timestamps bucketed
// sinks need.
type Publisher interface {
	PublishBatch(family string, records []any, timestamps []UnixTimestamp) error
}

// ExtractRange runs C7: opens a stream for [start,end], buffers every
// enabled family in memory, then publishes each non-empty buffer. Per spec
// §4.7, publishing happens only after the whole range has been pulled, and
// a mid-loop failure is reported as an InterruptionError naming the last
// version attempted.
func ExtractRange(client StreamClient, start, end uint64, publisher Publisher, tables *TableOptions, layout string, metrics MetricsRecorder) error {
	opts := RangeRequest{Start: start, End: end, Tables: tables}.Resolve()

	if metrics != nil {
		metrics.RecordRequest()
	}

	stream, err := client.OpenStream(start, end)
	if err != nil {
		if metrics != nil {
			metrics.RecordFailedRequest()
		}
		return &domainerr.InterruptionError{Start: start, End: end, FailedOn: start, Cause: err}
	}
	defer stream.Close()

	numTx := int(end - start + 1)
	records := Records{
		Blocks:       make([]Block, 0, numTx),
		Transactions: make([]Transaction, 0, numTx),
		Signatures:   make([]Signature, 0, numTx),
		Events:       make([]Event, 0, numTx),
		Changes:      make([]Change, 0, numTx),
		Resources:    make([]Resource, 0, numTx),
		Modules:      make([]Module, 0, numTx),
		TableItems:   make([]TableItem, 0, numTx),
	}

	curVersion := start
	for {
		raw, ok, err := stream.Next()
		if err != nil {
			if metrics != nil {
				metrics.RecordFailedRequest()
			}
			return &domainerr.InterruptionError{Start: start, End: end, FailedOn: curVersion, Cause: err}
		}
		if !ok {
			break
		}

		curVersion = raw.Version

		extraction, err := ExtractTransaction(raw)
		if err != nil {
			if metrics != nil {
				metrics.RecordFailedRequest()
			}
			return &domainerr.InterruptionError{Start: start, End: end, FailedOn: curVersion, Cause: err}
		}

		if err := appendRecords(&records, extraction, opts, layout); err != nil {
			if metrics != nil {
				metrics.RecordFailedRequest()
			}
			return &domainerr.InterruptionError{Start: start, End: end, FailedOn: curVersion, Cause: err}
		}

		if curVersion == end {
			break
		}
	}

	if err := publishAll(&records, publisher, opts); err != nil {
		return &domainerr.InterruptionError{Start: start, End: end, FailedOn: curVersion, Cause: err}
	}
	return nil
}

// ExtractSingle lowers one raw transaction into a fresh Records bundle,
// without streaming or publishing. This is the "extract_records" primitive
// spec §8.2's fixture-replay law and package testharness are built on:
// replay asserts ExtractSingle(T_i) == R_i byte-for-byte for every saved
// fixture pair.
func ExtractSingle(raw *rawtx.Transaction, opts TableOptions, layout string) (Records, error) {
	tx, err := ExtractTransaction(raw)
	if err != nil {
		return Records{}, err
	}
	var records Records
	if err := appendRecords(&records, tx, opts, layout); err != nil {
		return Records{}, err
	}
	return records, nil
}

// appendRecords lowers a single validated transaction into every enabled
// family and appends the results to records.
func appendRecords(records *Records, tx *TransactionExtraction, opts TableOptions, layout string) error {
	if opts.Blocks {
		if block, ok, err := BuildBlockRecord(tx, layout); err != nil {
			return err
		} else if ok {
			records.Blocks = append(records.Blocks, block)
		}
	}

	var txRecord Transaction
	var sigRecords []Signature
	needTxOrSigs := opts.Transactions || opts.Signatures
	if needTxOrSigs {
		rec, sigs, err := BuildTransactionRecord(tx, layout)
		if err != nil {
			return err
		}
		txRecord = rec
		sigRecords = sigs
	}
	if opts.Transactions {
		records.Transactions = append(records.Transactions, txRecord)
	}
	if opts.Signatures {
		records.Signatures = append(records.Signatures, sigRecords...)
	}

	env, err := envelopeFor(tx, layout)
	if err != nil {
		return err
	}

	if opts.Events {
		for i, raw := range tx.Events() {
			ev, err := EventFromRaw(env, i, raw)
			if err != nil {
				return err
			}
			records.Events = append(records.Events, ev)
		}
	}

	if opts.Changes || opts.Resources || opts.Modules || opts.TableItems {
		for i, wsc := range tx.Info.Changes {
			if opts.Changes {
				ch, err := ChangeFromRaw(env, i, wsc)
				if err != nil {
					return err
				}
				records.Changes = append(records.Changes, ch)
			}
			switch wsc.Type {
			case rawtx.ChangeWriteResource, rawtx.ChangeDeleteResource:
				if opts.Resources {
					res, err := ResourceFromRaw(env, i, wsc)
					if err != nil {
						return err
					}
					records.Resources = append(records.Resources, res)
				}
			case rawtx.ChangeWriteModule, rawtx.ChangeDeleteModule:
				if opts.Modules {
					mod, err := ModuleFromRaw(env, i, wsc)
					if err != nil {
						return err
					}
					records.Modules = append(records.Modules, mod)
				}
			case rawtx.ChangeWriteTableItem, rawtx.ChangeDeleteTableItem:
				if opts.TableItems {
					ti, err := TableItemFromRaw(env, i, wsc)
					if err != nil {
						return err
					}
					records.TableItems = append(records.TableItems, ti)
				}
			}
		}
	}

	return nil
}

// envelopeFor builds the shared envelope for a transaction's non-Transaction
// record families (events, changes, resources, modules, table items), which
// carry no sequence number.
func envelopeFor(tx *TransactionExtraction, layout string) (Envelope, error) {
	return BuildEnvelope(tx.BlockHeight, tx.Timestamp, layout, tx.Version, HashValue(tx.Info.Hash), nil)
}

var familyOrder = []string{
	"blocks", "transactions", "signatures", "events",
	"changes", "resources", "modules", "table_items",
}

// publishAll hands each enabled, non-empty family to the publisher, per
// spec §4.7 step 5.
func publishAll(records *Records, publisher Publisher, opts TableOptions) error {
	for _, family := range familyOrder {
		batch, ok := recordBatch(records, family, opts)
		if !ok || len(batch) == 0 {
			continue
		}
		timestamps := records.UnixTimestamps(family)
		if err := publisher.PublishBatch(family, batch, timestamps); err != nil {
			return err
		}
	}
	return nil
}

// recordBatch returns the family's records as []any (for the Publisher
// interface) and whether the family is enabled.
func recordBatch(records *Records, family string, opts TableOptions) ([]any, bool) {
	switch family {
	case "blocks":
		if !opts.Blocks {
			return nil, false
		}
		return toAny(records.Blocks), true
	case "transactions":
		if !opts.Transactions {
			return nil, false
		}
		return toAny(records.Transactions), true
	case "signatures":
		if !opts.Signatures {
			return nil, false
		}
		return toAny(records.Signatures), true
	case "events":
		if !opts.Events {
			return nil, false
		}
		return toAny(records.Events), true
	case "changes":
		if !opts.Changes {
			return nil, false
		}
		return toAny(records.Changes), true
	case "resources":
		if !opts.Resources {
			return nil, false
		}
		return toAny(records.Resources), true
	case "modules":
		if !opts.Modules {
			return nil, false
		}
		return toAny(records.Modules), true
	case "table_items":
		if !opts.TableItems {
			return nil, false
		}
		return toAny(records.TableItems), true
	default:
		return nil, false
	}
}

func toAny[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
