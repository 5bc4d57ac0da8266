// Package wireformat implements the length-prefixed framing used to persist
// raw transactions and record bundles to ".pb" fixture files (spec §6.1,
// §6.3). Real protobuf code generation is an external build step (out of
// scope for this module, per the top-level spec); this package is the
// hand-maintained stand-in a generated "protoc-gen-go" wire codec would
// otherwise provide, using gob as the underlying payload encoding.
package wireformat

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
)

// WriteDelimited writes v to w as a single length-prefixed frame: a
// big-endian uint32 byte length followed by the gob encoding of v.
func WriteDelimited(w io.Writer, v any) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Errorf("wireformat: encode: %w", err)
	}
	var lenBytes [4]byte
	binary.BigEndian.PutUint32(lenBytes[:], uint32(buf.Len()))
	if _, err := w.Write(lenBytes[:]); err != nil {
		return fmt.Errorf("wireformat: write length: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("wireformat: write payload: %w", err)
	}
	return nil
}

// ReadDelimited reads a single length-prefixed frame written by
// WriteDelimited into v. It returns io.EOF if r is exhausted before any
// bytes of a new frame are read.
func ReadDelimited(r io.Reader, v any) error {
	br := bufio.NewReader(r)
	var lenBytes [4]byte
	if _, err := io.ReadFull(br, lenBytes[:]); err != nil {
		return err
	}
	n := binary.BigEndian.Uint32(lenBytes[:])
	payload := make([]byte, n)
	if _, err := io.ReadFull(br, payload); err != nil {
		return fmt.Errorf("wireformat: read payload: %w", err)
	}
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(v); err != nil {
		return fmt.Errorf("wireformat: decode: %w", err)
	}
	return nil
}
