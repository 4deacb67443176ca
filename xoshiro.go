// Package xoshiro holds the contracts shared by the xoshiro++ engine family.
//
// The engines themselves live in the xoshiro256 and xoshiro128 subpackages.
// Anything coded against Source64 or Source32 works unmodified against the
// matching engine variant.
package xoshiro

import "errors"

// Source64 is a uniform random bit source producing 64-bit words.
// Every value returned by Uint64 lies in [Min(), Max()] inclusive.
type Source64 interface {
	Uint64() uint64
	Min() uint64
	Max() uint64
}

// Source32 is a uniform random bit source producing 32-bit words.
type Source32 interface {
	Uint32() uint32
	Min() uint32
	Max() uint32
}

// SeedSequence expands a small or variable-length seed into well-mixed
// 32-bit words. Generate must fill the whole of out deterministically.
// An engine calls Generate exactly once per seeding.
type SeedSequence interface {
	Generate(out []uint32)
}

// ErrFormat is returned (wrapped) when deserializing an engine from text
// that does not contain exactly 4 in-range decimal state words.
var ErrFormat = errors.New("malformed engine state")
