package core

import (
	"aptos-etl/domainerr"
	"aptos-etl/rawtx"
)

// MvStructField is a single field of a Move struct definition.
type MvStructField struct {
	Name string
	Type *MoveType
}

// MvStruct describes a struct definition exposed by a module.
type MvStruct struct {
	Name              string
	IsNative          bool
	Abilities         []Ability
	GenericTypeParams []GenericTypeParam
	Fields            []MvStructField
}

// MvStructFromRaw converts a raw MoveStruct definition.
func MvStructFromRaw(raw *rawtx.MoveStruct) (MvStruct, error) {
	if raw == nil {
		return MvStruct{}, &domainerr.MvStructError{Detail: "nil move struct"}
	}
	abilities := make([]Ability, len(raw.Abilities))
	for i, a := range raw.Abilities {
		ab, err := AbilityFromRaw(a)
		if err != nil {
			return MvStruct{}, &domainerr.MvStructError{Detail: err.Error()}
		}
		abilities[i] = ab
	}
	genParams := make([]GenericTypeParam, len(raw.GenericTypeParams))
	for i, gp := range raw.GenericTypeParams {
		g, err := GenericTypeParamFromRaw(gp)
		if err != nil {
			return MvStruct{}, &domainerr.MvStructError{Detail: err.Error()}
		}
		genParams[i] = g
	}
	fields := make([]MvStructField, len(raw.Fields))
	for i, f := range raw.Fields {
		mt, err := MoveTypeFromRaw(f.Type)
		if err != nil {
			return MvStruct{}, &domainerr.MvStructError{Detail: err.Error()}
		}
		fields[i] = MvStructField{Name: f.Name, Type: mt}
	}
	return MvStruct{
		Name:              raw.Name,
		IsNative:          raw.IsNative,
		Abilities:         abilities,
		GenericTypeParams: genParams,
		Fields:            fields,
	}, nil
}

// EncodedMvStructField is the string-encoded form of a struct field.
type EncodedMvStructField struct {
	Name string
	Type string
}

// EncodedMvStruct is the fully string-encoded form of MvStruct.
type EncodedMvStruct struct {
	Name              string
	IsNative          bool
	Abilities         []Ability
	GenericTypeParams [][]Ability
	Fields            []EncodedMvStructField
}

// Encode string-encodes every Move-type-bearing field.
func (s MvStruct) Encode() (EncodedMvStruct, error) {
	gtp := make([][]Ability, len(s.GenericTypeParams))
	for i, g := range s.GenericTypeParams {
		gtp[i] = g.Constraints
	}
	fields := make([]EncodedMvStructField, len(s.Fields))
	for i, f := range s.Fields {
		enc, err := f.Type.Encode()
		if err != nil {
			return EncodedMvStruct{}, &domainerr.MvStructError{Detail: err.Error()}
		}
		fields[i] = EncodedMvStructField{Name: f.Name, Type: enc}
	}
	return EncodedMvStruct{
		Name:              s.Name,
		IsNative:          s.IsNative,
		Abilities:         s.Abilities,
		GenericTypeParams: gtp,
		Fields:            fields,
	}, nil
}
