package core

import (
	"time"

	"github.com/ncruces/go-strftime"

	"aptos-etl/domainerr"
	"aptos-etl/rawtx"
)

// destination window bounds: the earliest and latest instants the output
// system's timestamp column can represent.
var (
	destLowerBound = time.Date(1, time.January, 1, 0, 0, 1, 0, time.UTC)
	destUpperBound = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
)

const destUpperBoundLiteral = "9999-12-31 23:59:59"

// UnixTimestamp is the dual-encoded timestamp carried on every record
// envelope: a seconds+nanos pair, always emitted, plus a formatted string
// clamped to the destination system's representable window.
type UnixTimestamp struct {
	Seconds int64
	Nanos   uint32
}

// TimestampFromRaw validates a raw wire timestamp: negative nanos are
// rejected outright (NegativeNano).
func TimestampFromRaw(raw *rawtx.Timestamp) (UnixTimestamp, error) {
	if raw == nil {
		return UnixTimestamp{}, &domainerr.TimestampError{Kind: domainerr.NegativeNano}
	}
	if raw.Nanos < 0 {
		return UnixTimestamp{}, &domainerr.TimestampError{Kind: domainerr.NegativeNano}
	}
	return UnixTimestamp{Seconds: raw.Seconds, Nanos: uint32(raw.Nanos)}, nil
}

// Time returns the UTC time.Time this timestamp denotes, for callers (e.g.
// bucketed sinks) that need calendar fields rather than a formatted string.
func (u UnixTimestamp) Time() time.Time {
	return time.Unix(u.Seconds, int64(u.Nanos)).UTC()
}

// Format renders the timestamp using the given strftime-style layout,
// clamped to the destination window: inputs above the upper bound render as
// the upper-bound literal string; inputs below the lower bound fail with
// OutOfRangeBigQuery.
func (u UnixTimestamp) Format(layout string) (string, error) {
	t := time.Unix(u.Seconds, int64(u.Nanos)).UTC()
	if t.After(destUpperBound) {
		return destUpperBoundLiteral, nil
	}
	if t.Before(destLowerBound) {
		return "", &domainerr.TimestampError{Kind: domainerr.OutOfRangeBigQuery}
	}
	return strftime.Format(layout, t), nil
}
