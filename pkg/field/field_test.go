package field

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/consensys/gnark-crypto/field/koalabear"
)

// Test constants agree with gnark-crypto and with each other
func TestConstants(t *testing.T) {
	if got := koalabear.Modulus(); !got.IsUint64() || got.Uint64() != P {
		t.Errorf("koalabear.Modulus() = %s, want %d", got, P)
	}
	if P != 1<<31-1<<24+1 {
		t.Errorf("P = %d, want 2^31 - 2^24 + 1", P)
	}
	mu := montyMu
	if mu*P != 1 {
		t.Errorf("montyMu * P = %d mod 2^32, want 1", mu*P)
	}
	if (P-1)%(1<<TwoAdicity) != 0 || ((P-1)>>TwoAdicity)%2 == 0 {
		t.Errorf("TwoAdicity = %d does not match P-1", TwoAdicity)
	}
}

// MontyInverse times 2^32 must be one.
func TestMontyInverse(t *testing.T) {
	r := FromCanonical(uint32((uint64(1) << 32) % P))
	var prod Element
	prod.Mul(&MontyInverse, &r)
	if !prod.IsOne() {
		t.Errorf("MontyInverse * 2^32 = %d, want 1", ToCanonical(prod))
	}
}

func montyReduceRef(x uint64) uint32 {
	rInv := new(big.Int).ModInverse(new(big.Int).Lsh(big.NewInt(1), 32), big.NewInt(P))
	v := new(big.Int).SetUint64(x)
	v.Mul(v, rInv).Mod(v, big.NewInt(P))
	return uint32(v.Uint64())
}

// Test MontyReduce on boundary values
func TestMontyReduceKnown(t *testing.T) {
	tests := []uint64{
		0,
		1,
		P - 1,
		P,
		1 << 32,
		uint64(P) << 32 >> 1,
		uint64(P)<<32 - 1,
		24 * (P - 1),
		24*(P-1) + (P-1)<<23,
	}
	for _, x := range tests {
		got := MontyReduce(x)
		want := montyReduceRef(x)
		if got != want {
			t.Errorf("MontyReduce(%d) = %d, want %d", x, got, want)
		}
		if got >= P {
			t.Errorf("MontyReduce(%d) = %d >= P", x, got)
		}
	}
}

// Test MontyReduce against big.Int on random inputs below P*2^32
func TestMontyReduceRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	bound := uint64(P) << 32
	for i := 0; i < 10000; i++ {
		x := rng.Uint64() % bound
		if got, want := MontyReduce(x), montyReduceRef(x); got != want {
			t.Fatalf("MontyReduce(%d) = %d, want %d", x, got, want)
		}
	}
}

// MontyReduce of a product of raw values must match gnark-crypto Mul
func TestMontyReduceMatchesMul(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		a := FromCanonical(uint32(rng.Int63n(P)))
		b := FromCanonical(uint32(rng.Int63n(P)))
		var want Element
		want.Mul(&a, &b)
		got := FromRaw(MontyReduce(uint64(Raw(a)) * uint64(Raw(b))))
		if got != want {
			t.Fatalf("MontyReduce(raw(a)*raw(b)) = %v, want %v", got, want)
		}
	}
}

func TestCanonicalRoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 2, 3, 1 << 24, P - 2, P - 1} {
		if got := ToCanonical(FromCanonical(v)); got != v {
			t.Errorf("ToCanonical(FromCanonical(%d)) = %d", v, got)
		}
	}
	// Values >= P wrap
	if got := ToCanonical(FromCanonical(P + 5)); got != 5 {
		t.Errorf("ToCanonical(FromCanonical(P+5)) = %d, want 5", got)
	}
	vs := []uint32{894848333, 1437655012, 1200606629}
	back := ToCanonicalSlice(FromCanonicalSlice(vs))
	for i := range vs {
		if back[i] != vs[i] {
			t.Errorf("slice round trip [%d] = %d, want %d", i, back[i], vs[i])
		}
	}
}

// Raw form of a canonical value is v * 2^32 mod P
func TestRawIsMontgomeryForm(t *testing.T) {
	for _, v := range []uint32{1, 2, 12345, P - 1} {
		want := uint32(uint64(v) << 32 % P)
		if got := Raw(FromCanonical(v)); got != want {
			t.Errorf("Raw(FromCanonical(%d)) = %d, want %d", v, got, want)
		}
	}
}

// Negation of zero must stay canonical
func TestNegZero(t *testing.T) {
	var zero, neg Element
	neg.Neg(&zero)
	if Raw(neg) != 0 {
		t.Errorf("Raw(-0) = %d, want 0", Raw(neg))
	}
	one := FromCanonical(1)
	neg.Neg(&one)
	if got := ToCanonical(neg); got != P-1 {
		t.Errorf("-1 = %d, want %d", got, P-1)
	}
}

func TestExpConstMatchesExp(t *testing.T) {
	bases := []uint32{0, 1, 2, 3, 7, 123456789, P - 1}
	for _, b := range bases {
		x := FromCanonical(b)
		for _, d := range []uint64{0, 1, 2, 3, 5, 7, 11, 64} {
			var want Element
			want.Exp(x, new(big.Int).SetUint64(d))
			if got := ExpConst(x, d); got != want {
				t.Errorf("ExpConst(%d, %d) = %d, want %d", b, d, ToCanonical(got), ToCanonical(want))
			}
		}
	}
}

func TestPowers(t *testing.T) {
	ps := Powers(FromCanonical(Generator), 5)
	want := []uint32{1, 3, 9, 27, 81}
	for i := range want {
		if got := ToCanonical(ps[i]); got != want[i] {
			t.Errorf("Powers(3)[%d] = %d, want %d", i, got, want[i])
		}
	}
	if len(Powers(FromCanonical(Generator), 0)) != 0 {
		t.Error("Powers(_, 0) should be empty")
	}
}

// Test generators have exactly the requested order
func TestTwoAdicGeneratorOrder(t *testing.T) {
	top, err := TwoAdicGeneratorOf(TwoAdicity)
	if err != nil {
		t.Fatal(err)
	}
	if got := ToCanonical(top); got != TwoAdicGenerator {
		t.Errorf("TwoAdicGeneratorOf(24) = %d, want %d", got, TwoAdicGenerator)
	}
	for logN := 0; logN <= TwoAdicity; logN++ {
		g, err := TwoAdicGeneratorOf(logN)
		if err != nil {
			t.Fatalf("TwoAdicGeneratorOf(%d): %v", logN, err)
		}
		if p := ExpConst(g, 1<<logN); !p.IsOne() {
			t.Errorf("g_%d^(2^%d) != 1", logN, logN)
		}
		if logN > 0 {
			if p := ExpConst(g, 1<<(logN-1)); p.IsOne() {
				t.Errorf("g_%d has order < 2^%d", logN, logN)
			}
		}
	}
}

func TestTwoAdicGeneratorTooLarge(t *testing.T) {
	if _, err := TwoAdicGeneratorOf(TwoAdicity + 1); err == nil {
		t.Error("TwoAdicGeneratorOf(25) should fail")
	}
	if _, err := TwoAdicGeneratorOf(-1); err == nil {
		t.Error("TwoAdicGeneratorOf(-1) should fail")
	}
}

// 3 generates the whole group: it is not a square and not a 127th power
func TestGeneratorIsPrimitive(t *testing.T) {
	g := FromCanonical(Generator)
	for _, q := range []uint64{2, 127} {
		if p := ExpConst(g, (P-1)/q); p.IsOne() {
			t.Errorf("3^((P-1)/%d) = 1", q)
		}
	}
}

func TestCheckSboxDegree(t *testing.T) {
	tests := []struct {
		d    uint64
		want bool
	}{
		{0, false},
		{1, false},
		{2, false},
		{3, true},
		{5, true},
		{7, true},
		{127, false},
		{254, false},
	}
	for _, tc := range tests {
		if got := CheckSboxDegree(tc.d); got != tc.want {
			t.Errorf("CheckSboxDegree(%d) = %v, want %v", tc.d, got, tc.want)
		}
	}
}

func TestInverse(t *testing.T) {
	for _, v := range []uint32{1, 2, 3, 1000, P - 1} {
		x := FromCanonical(v)
		inv := Inverse(x)
		var prod Element
		prod.Mul(&x, &inv)
		if !prod.IsOne() {
			t.Errorf("Inverse(%d) * %d != 1", v, v)
		}
	}
	if inv := Inverse(Element{}); !inv.IsZero() {
		t.Error("Inverse(0) should be 0")
	}
}
