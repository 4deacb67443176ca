// splitmix64 / splitmix32 seed expansion
// Derived from the public domain splitmix64.c by Sebastiano Vigna

package splitmix

// Golden-ratio increments. Adding one of these to the accumulator per
// step keeps successive inputs to the finalizer maximally spread out.
const (
	gamma64 uint64 = 0x9e3779b97f4a7c15
	gamma32 uint32 = 0x9e3779b9
)

// Mix64 applies the 64-bit avalanche finalizer to z. A single flipped
// input bit changes roughly half the output bits.
func Mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Mix32 is the 32-bit finalizer (the murmur3 constants).
func Mix32(z uint32) uint32 {
	z = (z ^ (z >> 16)) * 0x85ebca6b
	z = (z ^ (z >> 13)) * 0xc2b2ae35
	return z ^ (z >> 16)
}

// Next64 advances the accumulator by the golden increment and returns
// the mixed word. Repeated calls with the same starting accumulator
// reproduce the same stream.
func Next64(state *uint64) uint64 {
	*state += gamma64
	return Mix64(*state)
}

// Next32 is Next64 at 32-bit width.
func Next32(state *uint32) uint32 {
	*state += gamma32
	return Mix32(*state)
}
