// xoshiro256++ pseudo-random number generator
// Derived from the public domain xoshiro256plusplus.c by
// David Blackman and Sebastiano Vigna (https://prng.di.unimi.it)

package xoshiro256

import (
	"encoding"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"

	xoshiro "github.com/david-cortes/xoshiro-cpp"
	"github.com/david-cortes/xoshiro-cpp/splitmix"
)

// DefaultSeed is the seed used by New, so default-constructed engines
// are reproducible across runs and hosts.
const DefaultSeed uint64 = 5489

// seedSeqWords is the number of 32-bit words requested from a seed
// sequence: two words per 32 bits of state.
const seedSeqWords = 16

// Polynomial coefficients for advancing the sequence by 2^128 steps.
var jumpTable = [4]uint64{
	0x180ec6d33cfd0aba,
	0xd5a61266f0c9392c,
	0xa9582618e03fc9aa,
	0x39abdc4529b1661c,
}

// Polynomial coefficients for advancing the sequence by 2^192 steps.
var longJumpTable = [4]uint64{
	0x76e15d3efefdcbbf,
	0xc5004e441c522fb3,
	0x77710069854ee241,
	0x39109bb02acbe635,
}

// Engine is a xoshiro256++ generator: 4 words of 64-bit state with a
// rotate-add output scrambler. The zero value is the degenerate
// all-zero state; construct engines through New, NewWithSeed or
// NewFromSequence instead.
//
// An Engine is not safe for concurrent use. Derive one engine per
// worker via Jump or LongJump rather than sharing an instance.
type Engine struct {
	s [4]uint64
}

var (
	_ xoshiro.Source64         = (*Engine)(nil)
	_ encoding.TextMarshaler   = (*Engine)(nil)
	_ encoding.TextUnmarshaler = (*Engine)(nil)
)

// New returns an engine seeded with DefaultSeed.
func New() *Engine {
	return NewWithSeed(DefaultSeed)
}

// NewWithSeed returns an engine seeded from the single word seed.
func NewWithSeed(seed uint64) *Engine {
	e := new(Engine)
	e.Seed(seed)
	return e
}

// NewFromSequence returns an engine seeded from a seed sequence.
func NewFromSequence(seq xoshiro.SeedSequence) *Engine {
	e := new(Engine)
	e.SeedFromSequence(seq)
	return e
}

// Seed reinitializes the engine in place. The state words are drawn
// from a splitmix64 stream started at seed rather than from the seed
// directly, so adjacent seeds produce decorrelated states and no seed
// reaches the all-zero state.
func (e *Engine) Seed(seed uint64) {
	acc := seed
	for i := range e.s {
		e.s[i] = splitmix.Next64(&acc)
	}
}

// SeedFromSequence reinitializes the engine from seq, which is assumed
// already well-mixed and is consumed with a single Generate call for
// seedSeqWords 32-bit words. Each state word is packed little-endian
// from its group of four words modulo 2^64 (the two high words fall
// out of the modulus). A sequence that generates only zeros would
// leave the engine degenerate, so that case falls back to
// Seed(DefaultSeed).
func (e *Engine) SeedFromSequence(seq xoshiro.SeedSequence) {
	var words [seedSeqWords]uint32
	seq.Generate(words[:])

	var s [4]uint64
	for i := range s {
		s[i] = uint64(words[4*i]) | uint64(words[4*i+1])<<32
	}
	if s == [4]uint64{} {
		e.Seed(DefaultSeed)
		return
	}
	e.s = s
}

// Uint64 advances the state by one step and returns the output word
// for the pre-advance state.
func (e *Engine) Uint64() uint64 {
	r := bits.RotateLeft64(e.s[0]+e.s[3], 23) + e.s[0]
	e.step()
	return r
}

// step applies the linear state transition without computing an output.
func (e *Engine) step() {
	t := e.s[1] << 17

	e.s[2] ^= e.s[0]
	e.s[3] ^= e.s[1]
	e.s[1] ^= e.s[2]
	e.s[0] ^= e.s[3]

	e.s[2] ^= t

	e.s[3] = bits.RotateLeft64(e.s[3], 45)
}

// Min returns the smallest value Uint64 can produce.
func (e *Engine) Min() uint64 { return 0 }

// Max returns the largest value Uint64 can produce.
func (e *Engine) Max() uint64 { return math.MaxUint64 }

// Discard advances the state by n steps without producing outputs.
func (e *Engine) Discard(n uint64) {
	for ; n > 0; n-- {
		e.step()
	}
}

// Jump returns a new, independently owned engine whose state equals
// the receiver's advanced by 2^128 steps. The receiver is unchanged.
// The two sequences do not overlap before 2^128 outputs, which makes
// Jump suitable for carving out parallel substreams.
func (e *Engine) Jump() *Engine {
	return e.advance(&jumpTable)
}

// LongJump is Jump with a 2^192 step advance, for deriving widely
// separated streams that can themselves be subdivided with Jump.
func (e *Engine) LongJump() *Engine {
	return e.advance(&longJumpTable)
}

// advance computes the polynomial jump: for every set bit of the
// table, XOR the running state into the accumulator; step once per
// bit regardless of its value.
func (e *Engine) advance(table *[4]uint64) *Engine {
	scratch := *e
	var s [4]uint64
	for _, w := range table {
		for b := 0; b < 64; b++ {
			if w&(1<<b) != 0 {
				s[0] ^= scratch.s[0]
				s[1] ^= scratch.s[1]
				s[2] ^= scratch.s[2]
				s[3] ^= scratch.s[3]
			}
			scratch.step()
		}
	}
	return &Engine{s: s}
}

// Equal reports whether both engines hold identical state and will
// therefore produce identical future outputs.
func (e *Engine) Equal(o *Engine) bool {
	return e.s == o.s
}

// String returns the canonical text form: the 4 state words as
// decimal integers separated by single spaces, in state order.
func (e *Engine) String() string {
	return fmt.Sprintf("%d %d %d %d", e.s[0], e.s[1], e.s[2], e.s[3])
}

// MarshalText encodes the engine in its canonical text form.
func (e *Engine) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText parses the canonical "s0 s1 s2 s3" form. It fails with
// an error wrapping xoshiro.ErrFormat unless the text holds exactly 4
// whitespace-separated decimal tokens in [0, 2^64). On failure the
// receiver keeps its previous state.
func (e *Engine) UnmarshalText(text []byte) error {
	tokens := strings.Fields(string(text))
	if len(tokens) != 4 {
		return fmt.Errorf("%w: want 4 state words, have %d", xoshiro.ErrFormat, len(tokens))
	}
	var s [4]uint64
	for i, tok := range tokens {
		v, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: state word %d: %q", xoshiro.ErrFormat, i, tok)
		}
		s[i] = v
	}
	e.s = s
	return nil
}
