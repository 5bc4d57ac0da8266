package core

import (
	"encoding/hex"
	"strings"

	"aptos-etl/domainerr"
)

// Address is a canonical 32-byte Aptos account address. The zero value is
// the all-zero address, not an invalid one.
type Address [32]byte

// AddressFromBytes canonicalizes raw address bytes, left-padding with
// zeros if fewer than 32 bytes were supplied. More than 32 bytes is a
// length violation.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) > 32 {
		return Address{}, &domainerr.AddressError{Input: hex.EncodeToString(b), Cause: "more than 32 bytes"}
	}
	var a Address
	copy(a[32-len(b):], b)
	return a, nil
}

// AddressFromHex canonicalizes a hex string (with or without a leading
// "0x"/"0X"), left-padding with zeros up to 64 hex digits. Any non-hex
// character, or more than 64 hex digits, fails with AddressError.
func AddressFromHex(s string) (Address, error) {
	trimmed := s
	if strings.HasPrefix(trimmed, "0x") || strings.HasPrefix(trimmed, "0X") {
		trimmed = trimmed[2:]
	}
	if len(trimmed) > 64 {
		return Address{}, &domainerr.AddressError{Input: s, Cause: "more than 64 hex digits"}
	}
	for _, r := range trimmed {
		if !isHexDigit(r) {
			return Address{}, &domainerr.AddressError{Input: s, Cause: "non-hex character"}
		}
	}
	padded := strings.Repeat("0", 64-len(trimmed)) + trimmed
	raw, err := hex.DecodeString(padded)
	if err != nil {
		return Address{}, &domainerr.AddressError{Input: s, Cause: "invalid hex"}
	}
	return AddressFromBytes(raw)
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// Hex returns the canonical "0x" + 64 lowercase hex digit encoding.
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}
