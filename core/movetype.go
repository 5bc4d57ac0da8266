package core

import (
	"fmt"

	"aptos-etl/domainerr"
	"aptos-etl/rawtx"
)

// MoveTypeKind discriminates the MoveType union. It is deliberately not the
// encoded string form; Encode applies the composite formatting rules.
type MoveTypeKind int

const (
	KindBool MoveTypeKind = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindU256
	KindAddress
	KindSigner
	KindVector
	KindStruct
	KindGenericTypeParam
	KindReference
)

var primitiveNames = map[MoveTypeKind]string{
	KindBool:    "BOOL",
	KindU8:      "U8",
	KindU16:     "U16",
	KindU32:     "U32",
	KindU64:     "U64",
	KindU128:    "U128",
	KindU256:    "U256",
	KindAddress: "ADDRESS",
	KindSigner:  "SIGNER",
}

// MoveType is a Move type system fragment. Vector and Reference are
// mutually recursive with MoveType via pointer indirection, never a shared
// mutable cycle.
type MoveType struct {
	Kind MoveTypeKind

	VectorElem   *MoveType
	Struct       *StructTag
	GenericIndex uint32
	RefMutable   bool
	RefTo        *MoveType
}

// Encode returns the deterministic string form described in spec §4.2.
func (t *MoveType) Encode() (string, error) {
	if t == nil {
		return "", &domainerr.MoveTypeError{Detail: "nil move type"}
	}
	if name, ok := primitiveNames[t.Kind]; ok {
		return name, nil
	}
	switch t.Kind {
	case KindVector:
		inner, err := t.VectorElem.Encode()
		if err != nil {
			return "", err
		}
		return "Vector<" + inner + ">", nil
	case KindStruct:
		if t.Struct == nil {
			return "", &domainerr.MoveTypeError{Detail: "struct type missing struct tag"}
		}
		return t.Struct.Encode()
	case KindGenericTypeParam:
		return fmt.Sprintf("T%d", t.GenericIndex), nil
	case KindReference:
		inner, err := t.RefTo.Encode()
		if err != nil {
			return "", err
		}
		if t.RefMutable {
			return "&mut " + inner, nil
		}
		return "&" + inner, nil
	default:
		return "", &domainerr.MoveTypeError{Detail: "unparsable or unspecified type"}
	}
}

// MoveTypeFromRaw converts a raw MoveType, validating that the discriminant
// tag agrees with the populated oneof field.
func MoveTypeFromRaw(raw *rawtx.MoveType) (*MoveType, error) {
	if raw == nil {
		return nil, &domainerr.MoveTypeError{Detail: "nil raw move type"}
	}
	switch raw.Type {
	case rawtx.TypeBool:
		return &MoveType{Kind: KindBool}, nil
	case rawtx.TypeU8:
		return &MoveType{Kind: KindU8}, nil
	case rawtx.TypeU16:
		return &MoveType{Kind: KindU16}, nil
	case rawtx.TypeU32:
		return &MoveType{Kind: KindU32}, nil
	case rawtx.TypeU64:
		return &MoveType{Kind: KindU64}, nil
	case rawtx.TypeU128:
		return &MoveType{Kind: KindU128}, nil
	case rawtx.TypeU256:
		return &MoveType{Kind: KindU256}, nil
	case rawtx.TypeAddress:
		return &MoveType{Kind: KindAddress}, nil
	case rawtx.TypeSigner:
		return &MoveType{Kind: KindSigner}, nil
	case rawtx.TypeVector:
		if raw.Vector == nil {
			return nil, &domainerr.MoveTypeError{Detail: "vector type missing element type"}
		}
		elem, err := MoveTypeFromRaw(raw.Vector)
		if err != nil {
			return nil, err
		}
		return &MoveType{Kind: KindVector, VectorElem: elem}, nil
	case rawtx.TypeStruct:
		if raw.Struct == nil {
			return nil, &domainerr.MoveTypeError{Detail: "struct type missing struct tag"}
		}
		st, err := StructTagFromRaw(raw.Struct.Address, raw.Struct.Module, raw.Struct.Name, raw.Struct.GenericTypeParams)
		if err != nil {
			return nil, err
		}
		return &MoveType{Kind: KindStruct, Struct: &st}, nil
	case rawtx.TypeGenericTypeParam:
		return &MoveType{Kind: KindGenericTypeParam, GenericIndex: raw.GenericTypeParamIndex}, nil
	case rawtx.TypeReference:
		if raw.Reference == nil || raw.Reference.To == nil {
			return nil, &domainerr.MoveTypeError{Detail: "reference type missing target"}
		}
		to, err := MoveTypeFromRaw(raw.Reference.To)
		if err != nil {
			return nil, err
		}
		return &MoveType{Kind: KindReference, RefMutable: raw.Reference.Mutable, RefTo: to}, nil
	default:
		return nil, &domainerr.MoveTypeError{Detail: "unparsable or unspecified move type"}
	}
}
