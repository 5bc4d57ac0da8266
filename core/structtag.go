package core

import (
	"strings"

	"aptos-etl/rawtx"
)

// StructTag identifies a concrete (possibly generic) struct type.
type StructTag struct {
	Address           Address
	Module            string
	Name              string
	GenericTypeParams []*MoveType
}

// Encode returns the deterministic "{address}::{module}::{name}" form,
// followed by "<t1,t2,...>" when generic parameters are present.
func (s StructTag) Encode() (string, error) {
	base := s.Address.Hex() + "::" + s.Module + "::" + s.Name
	if len(s.GenericTypeParams) == 0 {
		return base, nil
	}
	parts := make([]string, len(s.GenericTypeParams))
	for i, p := range s.GenericTypeParams {
		enc, err := p.Encode()
		if err != nil {
			return "", err
		}
		parts[i] = enc
	}
	return base + "<" + strings.Join(parts, ",") + ">", nil
}

// StructTagFromRaw canonicalizes a raw struct tag's address and recursively
// converts its generic parameters.
func StructTagFromRaw(addr []byte, module, name string, rawParams []*rawtx.MoveType) (StructTag, error) {
	a, err := AddressFromBytes(addr)
	if err != nil {
		return StructTag{}, err
	}
	params := make([]*MoveType, len(rawParams))
	for i, rp := range rawParams {
		mt, err := MoveTypeFromRaw(rp)
		if err != nil {
			return StructTag{}, err
		}
		params[i] = mt
	}
	return StructTag{Address: a, Module: module, Name: name, GenericTypeParams: params}, nil
}
