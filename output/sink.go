// Package output implements C2 (sink drivers) and C3 (publisher fan-out),
// per spec §4.9: every record family is JSON-encoded and handed to one of
// several interchangeable backing stores, selected at startup by config.
package output

import (
	"encoding/json"
	"fmt"

	"aptos-etl/core"
)

// Sink is a single backing store a family's records can be published to.
// Publish sends one record; PublishBatch sends many at once, with the
// parallel per-record timestamps a bucketed sink (Azure blob) needs to
// group records by time window.
type Sink interface {
	Publish(family string, record any) error
	PublishBatch(family string, records []any, timestamps []core.UnixTimestamp) error
	Close() error
}

// marshalAll JSON-encodes every record, failing on the first error.
func marshalAll(records []any) ([][]byte, error) {
	out := make([][]byte, len(records))
	for i, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("output: marshal record %d: %w", i, err)
		}
		out[i] = b
	}
	return out, nil
}
