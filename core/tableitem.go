package core

import (
	"strings"

	"aptos-etl/domainerr"
	"aptos-etl/rawtx"
)

// TableKey is a table item's key: its value and Move type, both as strings.
type TableKey struct {
	Name string
	Type string
}

// TableValue is a table item's value, present for writes and absent for
// deletes.
type TableValue struct {
	Content string
	Type    string
}

// TableItem is the TableItem family record: a Change plus the table handle
// and key/value pair.
type TableItem struct {
	Change
	Handle Address
	Key    TableKey
	Value  *TableValue
}

// stripQuotes removes a single layer of leading/trailing double quotes, as
// Aptos table keys/values arrive pre-JSON-quoted.
func stripQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return s
}

// TableItemFromRaw builds a TableItem record from a WriteTableItem or
// DeleteTableItem change.
func TableItemFromRaw(env Envelope, index int, raw *rawtx.WriteSetChange) (TableItem, error) {
	change, err := ChangeFromRaw(env, index, raw)
	if err != nil {
		return TableItem{}, err
	}
	var rawHandle []byte
	var key TableKey
	var value *TableValue
	switch raw.Type {
	case rawtx.ChangeWriteTableItem:
		if raw.WriteTableItem == nil || raw.WriteTableItem.Data == nil {
			return TableItem{}, &domainerr.ChangeError{Detail: "missing write_table_item data"}
		}
		rawHandle = raw.WriteTableItem.Handle
		d := raw.WriteTableItem.Data
		key = TableKey{Name: stripQuotes(d.Key), Type: d.KeyType}
		value = &TableValue{Content: stripQuotes(d.Value), Type: d.ValueType}
	case rawtx.ChangeDeleteTableItem:
		if raw.DeleteTableItem == nil || raw.DeleteTableItem.Data == nil {
			return TableItem{}, &domainerr.ChangeError{Detail: "missing delete_table_item data"}
		}
		rawHandle = raw.DeleteTableItem.Handle
		d := raw.DeleteTableItem.Data
		key = TableKey{Name: stripQuotes(d.Key), Type: d.KeyType}
	default:
		return TableItem{}, &domainerr.ChangeError{Detail: "not a table item change"}
	}
	handle, err := AddressFromBytes(rawHandle)
	if err != nil {
		return TableItem{}, err
	}
	return TableItem{Change: change, Handle: handle, Key: key, Value: value}, nil
}
