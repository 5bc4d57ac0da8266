package core

import (
	"aptos-etl/domainerr"
	"aptos-etl/rawtx"
)

// ChangeTypeString is the deterministic string form of a write-set change
// kind: its enum name with the WRITE_SET_CHANGE_TYPE_ prefix stripped.
type ChangeTypeString string

const (
	ChangeTypeWriteModule     ChangeTypeString = "WRITE_MODULE"
	ChangeTypeDeleteModule    ChangeTypeString = "DELETE_MODULE"
	ChangeTypeWriteResource   ChangeTypeString = "WRITE_RESOURCE"
	ChangeTypeDeleteResource  ChangeTypeString = "DELETE_RESOURCE"
	ChangeTypeWriteTableItem  ChangeTypeString = "WRITE_TABLE_ITEM"
	ChangeTypeDeleteTableItem ChangeTypeString = "DELETE_TABLE_ITEM"
)

func changeTypeFromRaw(kind rawtx.WriteSetChangeKind) (ChangeTypeString, error) {
	switch kind {
	case rawtx.ChangeWriteModule:
		return ChangeTypeWriteModule, nil
	case rawtx.ChangeDeleteModule:
		return ChangeTypeDeleteModule, nil
	case rawtx.ChangeWriteResource:
		return ChangeTypeWriteResource, nil
	case rawtx.ChangeDeleteResource:
		return ChangeTypeDeleteResource, nil
	case rawtx.ChangeWriteTableItem:
		return ChangeTypeWriteTableItem, nil
	case rawtx.ChangeDeleteTableItem:
		return ChangeTypeDeleteTableItem, nil
	default:
		return "", &domainerr.UnaccountedForChanges{Kind: "unspecified"}
	}
}

// Change is the common record produced for every write-set change,
// independent of its family-specific Resource/Module/TableItem record.
type Change struct {
	Envelope
	ChangeIndex  int
	ChangeType   ChangeTypeString
	Address      *Address
	StateKeyHash HashValue
}

// changeAddress returns the address a change is keyed on, where applicable.
// TableItem changes have no account address (they key on a table handle).
func changeAddress(raw *rawtx.WriteSetChange) (*Address, error) {
	var rawAddr []byte
	switch raw.Type {
	case rawtx.ChangeWriteModule:
		rawAddr = raw.WriteModule.Address
	case rawtx.ChangeDeleteModule:
		rawAddr = raw.DeleteModule.Address
	case rawtx.ChangeWriteResource:
		rawAddr = raw.WriteResource.Address
	case rawtx.ChangeDeleteResource:
		rawAddr = raw.DeleteResource.Address
	default:
		return nil, nil
	}
	a, err := AddressFromBytes(rawAddr)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ChangeFromRaw builds the common Change record for a single write-set
// change at the given zero-based index within its transaction.
func ChangeFromRaw(env Envelope, index int, raw *rawtx.WriteSetChange) (Change, error) {
	if raw == nil {
		return Change{}, &domainerr.ChangeError{Detail: "nil write-set change"}
	}
	ct, err := changeTypeFromRaw(raw.Type)
	if err != nil {
		return Change{}, err
	}
	addr, err := changeAddress(raw)
	if err != nil {
		return Change{}, err
	}
	return Change{
		Envelope:     env,
		ChangeIndex:  index,
		ChangeType:   ct,
		Address:      addr,
		StateKeyHash: HashValue(raw.StateKeyHash),
	}, nil
}

// ChangesAggregate counts a transaction's write-set changes by kind, per
// spec §4.6.
type ChangesAggregate struct {
	Total           int
	WriteModule     int
	DeleteModule    int
	WriteResource   int
	DeleteResource  int
	WriteTableItem  int
	DeleteTableItem int
}

// AggregateChanges counts changes by kind, failing with UnaccountedForChanges
// if any change falls outside the six known kinds.
func AggregateChanges(changes []*rawtx.WriteSetChange) (ChangesAggregate, error) {
	var agg ChangesAggregate
	for _, c := range changes {
		switch c.Type {
		case rawtx.ChangeWriteModule:
			agg.WriteModule++
		case rawtx.ChangeDeleteModule:
			agg.DeleteModule++
		case rawtx.ChangeWriteResource:
			agg.WriteResource++
		case rawtx.ChangeDeleteResource:
			agg.DeleteResource++
		case rawtx.ChangeWriteTableItem:
			agg.WriteTableItem++
		case rawtx.ChangeDeleteTableItem:
			agg.DeleteTableItem++
		default:
			return ChangesAggregate{}, &domainerr.UnaccountedForChanges{Kind: "unspecified"}
		}
		agg.Total++
	}
	return agg, nil
}
