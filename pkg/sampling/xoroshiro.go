package sampling

import "math/bits"

// SplitMix64 is the 64-bit generator used to expand a single u64 seed into
// xoroshiro state.
type SplitMix64 struct {
	x uint64
}

// NewSplitMix64 seeds the generator with seed.
func NewSplitMix64(seed uint64) *SplitMix64 {
	return &SplitMix64{x: seed}
}

// NextU64 returns the next output.
func (s *SplitMix64) NextU64() uint64 {
	s.x += 0x9e3779b97f4a7c15
	z := s.x
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Xoroshiro128Plus is the xoroshiro128+ generator (a=24, b=16, c=37).
type Xoroshiro128Plus struct {
	s0, s1 uint64
}

// NewXoroshiro128Plus seeds the generator from a u64 through SplitMix64:
// the first output becomes s0, the second s1.
func NewXoroshiro128Plus(seed uint64) *Xoroshiro128Plus {
	sm := NewSplitMix64(seed)
	x := &Xoroshiro128Plus{s0: sm.NextU64(), s1: sm.NextU64()}
	if x.s0 == 0 && x.s1 == 0 {
		// all-zero state is a fixed point
		return NewXoroshiro128Plus(0)
	}
	return x
}

// NextU64 returns the next output.
func (x *Xoroshiro128Plus) NextU64() uint64 {
	s0, s1 := x.s0, x.s1
	r := s0 + s1

	s1 ^= s0
	x.s0 = bits.RotateLeft64(s0, 24) ^ s1 ^ (s1 << 16)
	x.s1 = bits.RotateLeft64(s1, 37)
	return r
}

// NextU32 returns the upper half of the next 64-bit output.
// The lowest bits of xoroshiro128+ are weak.
func (x *Xoroshiro128Plus) NextU32() uint32 {
	return uint32(x.NextU64() >> 32)
}
