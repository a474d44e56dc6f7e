package generator

import "hash/fnv"

// HashVersion names the seeding scheme. Changing the hash or the mixing step
// changes every generated song, so bump it when either changes.
const HashVersion = "fnv1a32+xorshift32/v1"

// DefaultSeed is used when the caller supplies an empty seed.
const DefaultSeed = "songsmith"

// zeroStateReplacement keeps xorshift32 out of its all-zero fixed point.
const zeroStateReplacement uint32 = 0x9E3779B9

// Rand is a deterministic pseudo-random source seeded from a string.
// It is not safe for concurrent use; every request builds its own.
type Rand struct {
	state uint32
}

// HashSeed returns the FNV-1a 32-bit hash of seed.
func HashSeed(seed string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))
	return h.Sum32()
}

// NewRand creates a source seeded from seed. An empty seed behaves like DefaultSeed.
func NewRand(seed string) *Rand {
	if seed == "" {
		seed = DefaultSeed
	}
	return newRandState(HashSeed(seed))
}

func newRandState(state uint32) *Rand {
	if state == 0 {
		state = zeroStateReplacement
	}
	return &Rand{state: state}
}

// Uint32 advances the xorshift32 state and returns it.
func (r *Rand) Uint32() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint32()) / (1 << 32)
}
