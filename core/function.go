package core

import (
	"aptos-etl/domainerr"
	"aptos-etl/rawtx"
)

// GenericTypeParam is a generic type parameter's ability constraint set,
// shared by function and struct declarations.
type GenericTypeParam struct {
	Constraints []Ability
}

// GenericTypeParamFromRaw converts the raw ability list, failing on the
// first unrecognized ability.
func GenericTypeParamFromRaw(raw *rawtx.MoveFunctionGenericTypeParam) (GenericTypeParam, error) {
	if raw == nil {
		return GenericTypeParam{}, &domainerr.GenericTypeParamError{Detail: "nil generic type param"}
	}
	out := make([]Ability, len(raw.Constraints))
	for i, c := range raw.Constraints {
		a, err := AbilityFromRaw(c)
		if err != nil {
			return GenericTypeParam{}, &domainerr.GenericTypeParamError{Detail: err.Error()}
		}
		out[i] = a
	}
	return GenericTypeParam{Constraints: out}, nil
}

// Function is a module's exposed function, or the ABI attached to a script
// payload.
type Function struct {
	Name              string
	Visibility        Visibility
	IsEntry           bool
	GenericTypeParams []GenericTypeParam
	Params            []*MoveType
	Return            []*MoveType
}

// FunctionFromRaw converts a raw MoveFunction, keeping params and return
// types as MoveType values; Function.Encode renders them as strings.
func FunctionFromRaw(raw *rawtx.MoveFunction) (Function, error) {
	if raw == nil {
		return Function{}, &domainerr.FunctionError{Detail: "nil move function"}
	}
	vis, err := VisibilityFromRaw(raw.Visibility)
	if err != nil {
		return Function{}, &domainerr.FunctionError{Detail: err.Error()}
	}
	genParams := make([]GenericTypeParam, len(raw.GenericTypeParams))
	for i, gp := range raw.GenericTypeParams {
		g, err := GenericTypeParamFromRaw(gp)
		if err != nil {
			return Function{}, &domainerr.FunctionError{Detail: err.Error()}
		}
		genParams[i] = g
	}
	params := make([]*MoveType, len(raw.Params))
	for i, p := range raw.Params {
		mt, err := MoveTypeFromRaw(p)
		if err != nil {
			return Function{}, &domainerr.FunctionError{Detail: err.Error()}
		}
		params[i] = mt
	}
	rets := make([]*MoveType, len(raw.Return))
	for i, r := range raw.Return {
		mt, err := MoveTypeFromRaw(r)
		if err != nil {
			return Function{}, &domainerr.FunctionError{Detail: err.Error()}
		}
		rets[i] = mt
	}
	return Function{
		Name:              raw.Name,
		Visibility:        vis,
		IsEntry:           raw.IsEntry,
		GenericTypeParams: genParams,
		Params:            params,
		Return:            rets,
	}, nil
}

// EncodedFunction is the fully string-encoded form of Function, ready for
// JSON serialization into a Module or script ABI record.
type EncodedFunction struct {
	Name              string
	Visibility        Visibility
	IsEntry           bool
	GenericTypeParams [][]Ability
	Params            []string
	Return            []string
}

// Encode string-encodes every Move-type-bearing field.
func (f Function) Encode() (EncodedFunction, error) {
	gtp := make([][]Ability, len(f.GenericTypeParams))
	for i, g := range f.GenericTypeParams {
		gtp[i] = g.Constraints
	}
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		enc, err := p.Encode()
		if err != nil {
			return EncodedFunction{}, &domainerr.FunctionError{Detail: err.Error()}
		}
		params[i] = enc
	}
	rets := make([]string, len(f.Return))
	for i, r := range f.Return {
		enc, err := r.Encode()
		if err != nil {
			return EncodedFunction{}, &domainerr.FunctionError{Detail: err.Error()}
		}
		rets[i] = enc
	}
	return EncodedFunction{
		Name:              f.Name,
		Visibility:        f.Visibility,
		IsEntry:           f.IsEntry,
		GenericTypeParams: gtp,
		Params:            params,
		Return:            rets,
	}, nil
}
