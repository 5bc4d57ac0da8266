package core

import (
	"aptos-etl/domainerr"
	"aptos-etl/rawtx"
)

// Resource is the Resource family record: a Change plus the struct tag,
// type string, and (for writes) JSON-encoded value of a resource.
type Resource struct {
	Change
	StructTag *string
	TypeStr   string
	Data      *JSONString // nil for deletes
}

// ResourceFromRaw builds a Resource record from a WriteResource or
// DeleteResource change.
func ResourceFromRaw(env Envelope, index int, raw *rawtx.WriteSetChange) (Resource, error) {
	change, err := ChangeFromRaw(env, index, raw)
	if err != nil {
		return Resource{}, err
	}
	var rawType *rawtx.MoveStructTag
	var typeStr string
	var data *JSONString
	switch raw.Type {
	case rawtx.ChangeWriteResource:
		if raw.WriteResource == nil {
			return Resource{}, &domainerr.ChangeError{Detail: "missing write_resource data"}
		}
		rawType = raw.WriteResource.Type
		typeStr = raw.WriteResource.TypeStr
		d, err := NewJSONString(raw.WriteResource.Data)
		if err != nil {
			return Resource{}, err
		}
		data = &d
	case rawtx.ChangeDeleteResource:
		if raw.DeleteResource == nil {
			return Resource{}, &domainerr.ChangeError{Detail: "missing delete_resource data"}
		}
		rawType = raw.DeleteResource.Type
		typeStr = raw.DeleteResource.TypeStr
	default:
		return Resource{}, &domainerr.ChangeError{Detail: "not a resource change"}
	}
	r := Resource{Change: change, TypeStr: typeStr, Data: data}
	if rawType != nil {
		st, err := StructTagFromRaw(rawType.Address, rawType.Module, rawType.Name, rawType.GenericTypeParams)
		if err != nil {
			return Resource{}, err
		}
		enc, err := st.Encode()
		if err != nil {
			return Resource{}, err
		}
		r.StructTag = &enc
	}
	return r, nil
}
