package core

// Records is the output bundle: eight ordered sequences, one per family,
// per spec §3.1. Every record within belongs to the range that produced
// it.
type Records struct {
	Blocks       []Block
	Transactions []Transaction
	Signatures   []Signature
	Events       []Event
	Changes      []Change
	Resources    []Resource
	Modules      []Module
	TableItems   []TableItem
}

// UnixTimestamps extracts the per-record unix timestamps a bucketed sink
// needs, for the named family, in the same order as the family's records.
func (r *Records) UnixTimestamps(family string) []UnixTimestamp {
	switch family {
	case "blocks":
		out := make([]UnixTimestamp, len(r.Blocks))
		for i, b := range r.Blocks {
			out[i] = b.BlockUnixTimestamp
		}
		return out
	case "transactions":
		out := make([]UnixTimestamp, len(r.Transactions))
		for i, t := range r.Transactions {
			out[i] = t.BlockUnixTimestamp
		}
		return out
	case "signatures":
		out := make([]UnixTimestamp, len(r.Signatures))
		for i, s := range r.Signatures {
			out[i] = s.BlockUnixTimestamp
		}
		return out
	case "events":
		out := make([]UnixTimestamp, len(r.Events))
		for i, e := range r.Events {
			out[i] = e.BlockUnixTimestamp
		}
		return out
	case "changes":
		out := make([]UnixTimestamp, len(r.Changes))
		for i, c := range r.Changes {
			out[i] = c.BlockUnixTimestamp
		}
		return out
	case "resources":
		out := make([]UnixTimestamp, len(r.Resources))
		for i, res := range r.Resources {
			out[i] = res.BlockUnixTimestamp
		}
		return out
	case "modules":
		out := make([]UnixTimestamp, len(r.Modules))
		for i, m := range r.Modules {
			out[i] = m.BlockUnixTimestamp
		}
		return out
	case "table_items":
		out := make([]UnixTimestamp, len(r.TableItems))
		for i, ti := range r.TableItems {
			out[i] = ti.BlockUnixTimestamp
		}
		return out
	default:
		return nil
	}
}
