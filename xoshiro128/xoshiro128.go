// xoshiro128++ pseudo-random number generator
// Derived from the public domain xoshiro128plusplus.c by
// David Blackman and Sebastiano Vigna (https://prng.di.unimi.it)

package xoshiro128

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

// DefaultSeed is the seed used by New.
const DefaultSeed uint32 = 5489

// seedSeqWords is the number of 32-bit words requested from a seed
// sequence: two words per 32 bits of state.
const seedSeqWords = 8

// Polynomial coefficients for advancing the sequence by 2^64 steps.
var jumpTable = [4]uint32{
	0x8764000b,
	0xf542d2d3,
	0x6fa035c3,
	0x77f2db5b,
}

// Polynomial coefficients for advancing the sequence by 2^96 steps.
var longJumpTable = [4]uint32{
	0xb523952e,
	0x0b6f099f,
	0xccf5a0ef,
	0x1c580662,
}

// Engine is a xoshiro128++ generator, the 32-bit half-width sibling of
// xoshiro256.Engine: 4 words of 32-bit state, same transition shape
// with smaller shift constants. The zero value is the degenerate
// all-zero state; construct engines through New, NewWithSeed or
// NewFromSequence instead.
//
// An Engine is not safe for concurrent use. Derive one engine per
// worker via Jump or LongJump rather than sharing an instance.
type Engine struct {
	s [4]uint32
}

var (
	_ xoshiro.Source32         = (*Engine)(nil)
	_ encoding.TextMarshaler   = (*Engine)(nil)
	_ encoding.TextUnmarshaler = (*Engine)(nil)
)

// New returns an engine seeded with DefaultSeed.
func New() *Engine {
	return NewWithSeed(DefaultSeed)
}

// NewWithSeed returns an engine seeded from the single word seed.
func NewWithSeed(seed uint32) *Engine {
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

// Seed reinitializes the engine in place from a splitmix32 stream
// started at seed, so adjacent seeds produce decorrelated states and
// no seed reaches the all-zero state.
func (e *Engine) Seed(seed uint32) {
	acc := seed
	for i := range e.s {
		e.s[i] = splitmix.Next32(&acc)
	}
}

// SeedFromSequence reinitializes the engine from seq, consumed with a
// single Generate call for seedSeqWords 32-bit words. Each state word
// takes the low word of its pair (the high word falls out of the
// modulus at 32-bit width). A sequence that generates only zeros
// falls back to Seed(DefaultSeed) so the engine is never left in the
// degenerate state.
func (e *Engine) SeedFromSequence(seq xoshiro.SeedSequence) {
	var words [seedSeqWords]uint32
	seq.Generate(words[:])

	var s [4]uint32
	for i := range s {
		s[i] = words[2*i]
	}
	if s == [4]uint32{} {
		e.Seed(DefaultSeed)
		return
	}
	e.s = s
}

// Uint32 advances the state by one step and returns the output word
// for the pre-advance state.
func (e *Engine) Uint32() uint32 {
	r := bits.RotateLeft32(e.s[0]+e.s[3], 7) + e.s[0]
	e.step()
	return r
}

// step applies the linear state transition without computing an output.
func (e *Engine) step() {
	t := e.s[1] << 9

	e.s[2] ^= e.s[0]
	e.s[3] ^= e.s[1]
	e.s[1] ^= e.s[2]
	e.s[0] ^= e.s[3]

	e.s[2] ^= t

	e.s[3] = bits.RotateLeft32(e.s[3], 11)
}

// Min returns the smallest value Uint32 can produce.
func (e *Engine) Min() uint32 { return 0 }

// Max returns the largest value Uint32 can produce.
func (e *Engine) Max() uint32 { return math.MaxUint32 }

// Discard advances the state by n steps without producing outputs.
func (e *Engine) Discard(n uint64) {
	for ; n > 0; n-- {
		e.step()
	}
}

// Jump returns a new, independently owned engine whose state equals
// the receiver's advanced by 2^64 steps. The receiver is unchanged.
func (e *Engine) Jump() *Engine {
	return e.advance(&jumpTable)
}

// LongJump is Jump with a 2^96 step advance, for deriving widely
// separated streams that can themselves be subdivided with Jump.
func (e *Engine) LongJump() *Engine {
	return e.advance(&longJumpTable)
}

// advance computes the polynomial jump: for every set bit of the
// table, XOR the running state into the accumulator; step once per
// bit regardless of its value.
func (e *Engine) advance(table *[4]uint32) *Engine {
	scratch := *e
	var s [4]uint32
	for _, w := range table {
		for b := 0; b < 32; b++ {
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
// whitespace-separated decimal tokens in [0, 2^32). On failure the
// receiver keeps its previous state.
func (e *Engine) UnmarshalText(text []byte) error {
	tokens := strings.Fields(string(text))
	if len(tokens) != 4 {
		return fmt.Errorf("%w: want 4 state words, have %d", xoshiro.ErrFormat, len(tokens))
	}
	var s [4]uint32
	for i, tok := range tokens {
		v, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: state word %d: %q", xoshiro.ErrFormat, i, tok)
		}
		s[i] = uint32(v)
	}
	e.s = s
	return nil
}
