package engine

import "errors"

// maxSafeSeed bounds seeds to the float64 safe-integer range. Share links
// and QR payloads round-trip seeds through JavaScript hosts; a seed outside
// ±(2^53−1) cannot survive that trip bit-for-bit.
const maxSafeSeed = 1<<53 - 1

// ErrInvalidSeed is returned when a seed is outside the shareable range.
var ErrInvalidSeed = errors.New("engine: seed outside safe integer range")

// rng is a xorshift64 generator. The exact operation sequence (shift
// constants 13, 7, 17, seed 0 corrected to 1) is load-bearing: the same
// seed must produce the identical deal on every platform and in every
// port of this engine.
type rng struct {
	s uint64
}

func newRNG(seed int64) rng {
	s := uint64(seed)
	if s == 0 {
		s = 1 // xorshift can't start at 0
	}
	return rng{s: s}
}

func (r *rng) next() uint64 {
	x := r.s
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.s = x
	return x
}

// intN returns a value in [0, n).
func (r *rng) intN(n int) int {
	return int(r.next() % uint64(n))
}

func validSeed(seed int64) bool {
	return seed >= -maxSafeSeed && seed <= maxSafeSeed
}
