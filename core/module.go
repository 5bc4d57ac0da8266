package core

import (
	"encoding/base64"

	"aptos-etl/domainerr"
	"aptos-etl/rawtx"
)

// Module is the Module family record: a Change plus the module's bytecode
// and, when an ABI was decoded, its friends/exposed functions/structs.
type Module struct {
	Change
	Bytecode         *string
	Name             *string
	Friends          []ModuleId
	ExposedFunctions []EncodedFunction
	Structs          []EncodedMvStruct
}

// ModuleFromRaw builds a Module record from a WriteModule or DeleteModule
// change. WriteModule always carries bytecode; DeleteModule carries only a
// module id (when present) and no bytecode or ABI.
func ModuleFromRaw(env Envelope, index int, raw *rawtx.WriteSetChange) (Module, error) {
	change, err := ChangeFromRaw(env, index, raw)
	if err != nil {
		return Module{}, err
	}
	m := Module{Change: change}
	switch raw.Type {
	case rawtx.ChangeWriteModule:
		if raw.WriteModule == nil || raw.WriteModule.Data == nil {
			return Module{}, &domainerr.ModuleError{Detail: "missing write_module bytecode data"}
		}
		bc := base64.StdEncoding.EncodeToString(raw.WriteModule.Data.Bytecode)
		m.Bytecode = &bc
		if abi := raw.WriteModule.Data.Abi; abi != nil {
			m.Name = &abi.Name
			friends := make([]ModuleId, len(abi.Friends))
			for i, f := range abi.Friends {
				mid, err := ModuleIdFromRaw(f.Address, f.Name)
				if err != nil {
					return Module{}, err
				}
				friends[i] = mid
			}
			m.Friends = friends
			fns := make([]EncodedFunction, len(abi.ExposedFunctions))
			for i, rf := range abi.ExposedFunctions {
				fn, err := FunctionFromRaw(rf)
				if err != nil {
					return Module{}, &domainerr.ModuleError{Detail: err.Error()}
				}
				encFn, err := fn.Encode()
				if err != nil {
					return Module{}, &domainerr.ModuleError{Detail: err.Error()}
				}
				fns[i] = encFn
			}
			m.ExposedFunctions = fns
			structs := make([]EncodedMvStruct, len(abi.Structs))
			for i, rs := range abi.Structs {
				s, err := MvStructFromRaw(rs)
				if err != nil {
					return Module{}, &domainerr.ModuleError{Detail: err.Error()}
				}
				encS, err := s.Encode()
				if err != nil {
					return Module{}, &domainerr.ModuleError{Detail: err.Error()}
				}
				structs[i] = encS
			}
			m.Structs = structs
		}
	case rawtx.ChangeDeleteModule:
		if raw.DeleteModule != nil && raw.DeleteModule.Module != nil {
			m.Name = &raw.DeleteModule.Module.Name
		}
	default:
		return Module{}, &domainerr.ModuleError{Detail: "not a module change"}
	}
	return m, nil
}
