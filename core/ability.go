package core

import (
	"aptos-etl/domainerr"
	"aptos-etl/rawtx"
)

// Ability is a Move ability's deterministic string encoding: its enum name
// with the MOVE_ABILITY_ prefix stripped.
type Ability string

const (
	AbilityCopy  Ability = "COPY"
	AbilityDrop  Ability = "DROP"
	AbilityStore Ability = "STORE"
	AbilityKey   Ability = "KEY"
)

// AbilityFromRaw maps a raw ability discriminant to its canonical string,
// failing on any value outside the known set.
func AbilityFromRaw(raw rawtx.MoveAbility) (Ability, error) {
	switch raw {
	case rawtx.AbilityCopy:
		return AbilityCopy, nil
	case rawtx.AbilityDrop:
		return AbilityDrop, nil
	case rawtx.AbilityStore:
		return AbilityStore, nil
	case rawtx.AbilityKey:
		return AbilityKey, nil
	default:
		return "", &domainerr.AbilityError{Raw: int32(raw)}
	}
}

// Visibility is a Move function visibility's deterministic string encoding:
// its enum name with the MOVE_FUNCTION_VISIBILITY_ prefix stripped.
type Visibility string

const (
	VisibilityPrivate Visibility = "PRIVATE"
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityFriend  Visibility = "FRIEND"
)

// VisibilityFromRaw maps a raw visibility discriminant to its canonical
// string, failing on any value outside the known set.
func VisibilityFromRaw(raw rawtx.MoveFunctionVisibility) (Visibility, error) {
	switch raw {
	case rawtx.VisibilityPrivate:
		return VisibilityPrivate, nil
	case rawtx.VisibilityPublic:
		return VisibilityPublic, nil
	case rawtx.VisibilityFriend:
		return VisibilityFriend, nil
	default:
		return "", &domainerr.VisibilityError{Raw: int32(raw)}
	}
}
