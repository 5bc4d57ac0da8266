package core

import "encoding/hex"

// HashValue is a raw hash (state change hash, event root hash, ...)
// canonicalized to its deterministic "0x" + lowercase hex string.
type HashValue []byte

// Encode returns the "0x" + hex(lowercase) form.
func (h HashValue) Encode() string {
	return "0x" + hex.EncodeToString(h)
}
