package core

import "aptos-etl/domainerr"

// deferredState discriminates a Deferred value's three states.
type deferredState int

const (
	stateDeferred deferredState = iota
	statePresent
	stateDeferredFallback
)

// Deferred is a three-state placeholder used for multi-pass assembly of
// signature sub-records, where some fields (signer, build type) are only
// known once outer context (the transaction sender) becomes available.
// See spec §4.3.
type Deferred[T any] struct {
	state deferredState
	value T
}

// NewPresent returns a Deferred already holding v.
func NewPresent[T any](v T) Deferred[T] {
	return Deferred[T]{state: statePresent, value: v}
}

// NewDeferred returns a Deferred with no value yet.
func NewDeferred[T any]() Deferred[T] {
	return Deferred[T]{state: stateDeferred}
}

// NewDeferredFallback returns a Deferred that will resolve to v unless
// overridden by a later MakePresent call.
func NewDeferredFallback[T any](v T) Deferred[T] {
	return Deferred[T]{state: stateDeferredFallback, value: v}
}

// Extract returns the value from Present or DeferredFallback; it fails if
// the value is purely Deferred with no fallback.
func (d Deferred[T]) Extract() (T, error) {
	var zero T
	if d.state == stateDeferred {
		return zero, &domainerr.SignatureError{Detail: "deferred value never resolved"}
	}
	return d.value, nil
}

// ExtractPresent returns the value only if it was ever explicitly made
// Present (not a fallback).
func (d Deferred[T]) ExtractPresent() (T, error) {
	var zero T
	if d.state != statePresent {
		return zero, &domainerr.SignatureError{Detail: "deferred value not present"}
	}
	return d.value, nil
}

// MakePresent transitions a Deferred or DeferredFallback value to Present.
// It fails if called on an already-Present value, preventing an accidental
// overwrite.
func (d Deferred[T]) MakePresent(v T) (Deferred[T], error) {
	if d.state == statePresent {
		return d, &domainerr.SignatureError{Detail: "deferred value already present"}
	}
	return NewPresent(v), nil
}

// IsDeferred reports whether the value is still purely Deferred (no
// fallback, not Present).
func (d Deferred[T]) IsDeferred() bool {
	return d.state == stateDeferred
}
