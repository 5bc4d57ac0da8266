package rawtx

// MoveAbility enumerates the Move ability set.
type MoveAbility int32

const (
	AbilityUnspecified MoveAbility = iota
	AbilityCopy
	AbilityDrop
	AbilityStore
	AbilityKey
)

// MoveModuleId identifies a module by its publishing address and name.
type MoveModuleId struct {
	Address []byte
	Name    string
}

// MoveFunctionVisibility enumerates a Move function's visibility.
type MoveFunctionVisibility int32

const (
	VisibilityUnspecified MoveFunctionVisibility = iota
	VisibilityPrivate
	VisibilityPublic
	VisibilityFriend
)

// MoveFunctionGenericTypeParam is a single generic type parameter
// declaration, carrying its ability constraints.
type MoveFunctionGenericTypeParam struct {
	Constraints []MoveAbility
}

// MoveFunction describes a module's exposed function, or an ABI attached to
// a script payload.
type MoveFunction struct {
	Name              string
	Visibility        MoveFunctionVisibility
	IsEntry           bool
	GenericTypeParams []*MoveFunctionGenericTypeParam
	Params            []*MoveType
	Return            []*MoveType
}

// MoveStructField is a single field of a Move struct definition.
type MoveStructField struct {
	Name string
	Type *MoveType
}

// MoveStruct describes a struct definition exposed by a module.
type MoveStruct struct {
	Name              string
	IsNative          bool
	Abilities         []MoveAbility
	GenericTypeParams []*MoveFunctionGenericTypeParam
	Fields            []*MoveStructField
}

// MoveModule is a module's ABI: its functions and struct definitions.
type MoveModule struct {
	Address          []byte
	Name             string
	Friends          []*MoveModuleId
	ExposedFunctions []*MoveFunction
	Structs          []*MoveStruct
}

// MoveModuleBytecode is a compiled module, with an optional decoded ABI.
type MoveModuleBytecode struct {
	Bytecode []byte
	Abi      *MoveModule
}

// MoveStructTag identifies a concrete (possibly generic) struct type.
type MoveStructTag struct {
	Address           []byte
	Module            string
	Name              string
	GenericTypeParams []*MoveType
}

// MoveTypeTag discriminates the MoveType oneof.
type MoveTypeTag int32

const (
	TypeUnspecified MoveTypeTag = iota
	TypeBool
	TypeU8
	TypeU16
	TypeU32
	TypeU64
	TypeU128
	TypeU256
	TypeAddress
	TypeSigner
	TypeVector
	TypeStruct
	TypeGenericTypeParam
	TypeReference
	TypeUnparsable
)

// MoveTypeReference is the payload of a Reference MoveType.
type MoveTypeReference struct {
	Mutable bool
	To      *MoveType
}

// MoveType is a Move type system fragment. It is mutually recursive
// (Reference and Vector each hold another MoveType) via pointer
// indirection, never a shared mutable cycle.
type MoveType struct {
	Type MoveTypeTag

	Vector                *MoveType          // element type, when Type == TypeVector
	Struct                *MoveStructTag     // when Type == TypeStruct
	GenericTypeParamIndex uint32             // when Type == TypeGenericTypeParam
	Reference             *MoveTypeReference // when Type == TypeReference
	Unparsable             string             // raw text, when Type == TypeUnparsable
}
