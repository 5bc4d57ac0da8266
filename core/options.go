package core

// TableOptions selects which record families a range request should
// produce. The zero value enables no family; callers use
// DefaultTableOptions for "all enabled", which is what RangeRequest.Resolve
// returns when no selection is set.
type TableOptions struct {
	Blocks       bool
	Transactions bool
	Signatures   bool
	Events       bool
	Changes      bool
	Resources    bool
	Modules      bool
	TableItems   bool
}

// DefaultTableOptions enables every family.
func DefaultTableOptions() TableOptions {
	return TableOptions{
		Blocks:       true,
		Transactions: true,
		Signatures:   true,
		Events:       true,
		Changes:      true,
		Resources:    true,
		Modules:      true,
		TableItems:   true,
	}
}

// RangeRequest is the orchestrated-mode control message: an inclusive
// version interval [Start,End] plus an optional family selection.
type RangeRequest struct {
	Start  uint64
	End    uint64
	Tables *TableOptions
}

// Resolve returns the request's table selection, defaulting to "all
// enabled" when unset.
func (r RangeRequest) Resolve() TableOptions {
	if r.Tables == nil {
		return DefaultTableOptions()
	}
	return *r.Tables
}
