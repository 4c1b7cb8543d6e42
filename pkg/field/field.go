// Package field provides KoalaBear field helpers for the permutation packages.
//
// The field is Z_P where P = 2^31 - 2^24 + 1 = 2130706433. Elements are the
// gnark-crypto koalabear.Element type, stored in Montgomery form with R = 2^32.
package field

import (
	"math/big"
	"math/bits"

	"github.com/consensys/gnark-crypto/field/koalabear"
	"github.com/pkg/errors"
)

const (
	// P is the prime modulus: 2^31 - 2^24 + 1
	P = 2130706433

	// Bits is the bit length of P
	Bits = 31

	// MontyBits is log2 of the Montgomery radix R
	MontyBits = 32

	// TwoAdicity is the largest k such that 2^k divides P-1
	TwoAdicity = 24

	// TwoAdicGenerator is a primitive 2^24-th root of unity (canonical form).
	TwoAdicGenerator = 1791270792

	// Generator generates the multiplicative group of Z_P (canonical form).
	// It is the shift used for coset evaluations.
	Generator = 3
)

const (
	// montyMu = P^(-1) mod 2^32
	montyMu   uint32 = 0x81000001
	montyMask uint64 = 1<<MontyBits - 1
)

// Element is a KoalaBear field element in Montgomery form.
type Element = koalabear.Element

// MontyInverse is the element whose Montgomery representation is 1, i.e. 2^-32 mod P.
var MontyInverse = Element{1}

var (
	ErrNoTwoAdicRoot = errors.New("field: two-adic root of unity does not exist")
	ErrNotPowerOfTwo = errors.New("field: not a power of two")
)

// MontyReduce returns x * 2^-32 mod P.
// x must be below P * 2^32; sums of raw Montgomery values fit as long as
// fewer than 2^32 of them are added.
func MontyReduce(x uint64) uint32 {
	t := x * uint64(montyMu) & montyMask
	u := t * P

	// x - u has zero low half, the high half is x*R^-1 up to a multiple of P.
	xSubU, borrow := bits.Sub64(x, u, 0)
	r := uint32(xSubU >> MontyBits)
	if borrow != 0 {
		r += P
	}
	return r
}

// FromRaw returns the element whose Montgomery representation is v.
// v must be < P.
func FromRaw(v uint32) Element {
	return Element{v}
}

// Raw returns the Montgomery representation of e.
func Raw(e Element) uint32 {
	return e[0]
}

// FromCanonical converts a canonical integer to Montgomery form.
func FromCanonical(v uint32) Element {
	return koalabear.NewElement(uint64(v))
}

// ToCanonical returns the canonical integer in [0, P) represented by e.
func ToCanonical(e Element) uint32 {
	return uint32(e.Uint64())
}

// FromCanonicalSlice converts canonical integers to field elements.
func FromCanonicalSlice(vs []uint32) []Element {
	out := make([]Element, len(vs))
	for i, v := range vs {
		out[i] = FromCanonical(v)
	}
	return out
}

// ToCanonicalSlice converts field elements to canonical integers.
func ToCanonicalSlice(es []Element) []uint32 {
	out := make([]uint32, len(es))
	for i := range es {
		out[i] = ToCanonical(es[i])
	}
	return out
}

// ExpConst returns x^d using binary exponentiation.
// d is the small public S-box exponent, so a big.Int is not needed.
func ExpConst(x Element, d uint64) Element {
	result := koalabear.One()
	base := x
	for d > 0 {
		if d&1 == 1 {
			result.Mul(&result, &base)
		}
		base.Square(&base)
		d >>= 1
	}
	return result
}

// Powers returns [1, base, base^2, ..., base^(n-1)].
func Powers(base Element, n int) []Element {
	out := make([]Element, n)
	if n == 0 {
		return out
	}
	out[0].SetOne()
	for i := 1; i < n; i++ {
		out[i].Mul(&out[i-1], &base)
	}
	return out
}

// TwoAdicGeneratorOf returns a primitive 2^logN-th root of unity, the power of
// TwoAdicGenerator of order exactly 2^logN.
func TwoAdicGeneratorOf(logN int) (Element, error) {
	if logN < 0 || logN > TwoAdicity {
		return Element{}, errors.Wrapf(ErrNoTwoAdicRoot, "order 2^%d", logN)
	}
	g, err := koalabear.Generator(uint64(1) << logN)
	if err != nil {
		return Element{}, errors.Wrapf(ErrNoTwoAdicRoot, "order 2^%d: %v", logN, err)
	}
	return g, nil
}

// Inverse returns x^-1, or 0 when x is 0.
func Inverse(x Element) Element {
	var inv Element
	inv.Inverse(&x)
	return inv
}

// CheckSboxDegree reports whether x -> x^d is a permutation of Z_P, i.e.
// gcd(d, P-1) = 1.
func CheckSboxDegree(d uint64) bool {
	if d < 2 {
		return false
	}
	var g big.Int
	g.GCD(nil, nil, new(big.Int).SetUint64(d), big.NewInt(P-1))
	return g.IsInt64() && g.Int64() == 1
}
