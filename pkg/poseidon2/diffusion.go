package poseidon2

import (
	"fmt"

	"koalabear-perm/pkg/field"
)

const (
	Width16 = 16
	Width24 = 24
)

// Shift tables: diagonal entry i (i >= 1) is 2^internalShifts[i-1].
var (
	internalShifts16 = [Width16 - 1]uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 15}
	internalShifts24 = [Width24 - 1]uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 23}
)

// The accumulator of one output element is at most Width24*(P-1) plus the
// largest shifted element, and MontyReduce needs it below P*2^32.
const (
	maxShift       = 23
	maxAccumulator = Width24*(field.P-1) + (field.P-1)<<maxShift
)

var _ = [1]struct{}{}[maxAccumulator/(field.P<<field.MontyBits)]

// InternalDiag16Monty and InternalDiag24Monty are the vectors v of the
// internal matrices: v[0] = -2 and v[i] = 2^shift[i-1]. The shift-based
// multiply applies MontyInverse * (1 + diag(v)).
var (
	InternalDiag16Monty [Width16]field.Element
	InternalDiag24Monty [Width24]field.Element
)

func init() {
	fillInternalDiag(InternalDiag16Monty[:], internalShifts16[:])
	fillInternalDiag(InternalDiag24Monty[:], internalShifts24[:])
}

func fillInternalDiag(diag []field.Element, shifts []uint8) {
	diag[0] = field.FromCanonical(field.P - 2)
	for i, s := range shifts {
		if s > maxShift {
			panic(fmt.Sprintf("poseidon2: shift %d exceeds %d", s, maxShift))
		}
		diag[i+1] = field.FromCanonical(1 << s)
	}
}

// diffusionPermuteMut multiplies state by MontyInverse * (1 + diag(v)),
// using one reduction per element and shifts in place of multiplications.
func diffusionPermuteMut(state []field.Element, shifts []uint8) {
	if len(shifts) != len(state)-1 {
		panic(fmt.Sprintf("poseidon2: %d shifts for width %d", len(shifts), len(state)))
	}

	var partSum uint64
	for i := 1; i < len(state); i++ {
		partSum += uint64(field.Raw(state[i]))
	}
	fullSum := partSum + uint64(field.Raw(state[0]))

	// v[0] = -2: state[0] * (1 - 2) + partSum
	var neg field.Element
	neg.Neg(&state[0])
	state[0] = field.FromRaw(field.MontyReduce(partSum + uint64(field.Raw(neg))))

	for i := 1; i < len(state); i++ {
		si := fullSum + uint64(field.Raw(state[i]))<<shifts[i-1]
		state[i] = field.FromRaw(field.MontyReduce(si))
	}
}

// InternalLayer applies the partial rounds of a Poseidon2 permutation.
type InternalLayer interface {
	PermuteState(state []field.Element, internalConstants []field.Element)
}

// InternalPermuteState runs one partial round per constant: add the constant
// to state[0], raise state[0] to the S-box degree, then apply diffusion.
func InternalPermuteState(state []field.Element, diffusion func([]field.Element), internalConstants []field.Element, degree uint64) {
	for i := range internalConstants {
		state[0].Add(&state[0], &internalConstants[i])
		sbox(&state[0], degree)
		diffusion(state)
	}
}

// DiffusionMatrix16 is the width-16 internal layer.
type DiffusionMatrix16 struct {
	SboxDegree uint64
}

// Diffuse applies the width-16 internal matrix.
func (DiffusionMatrix16) Diffuse(state *[Width16]field.Element) {
	diffusionPermuteMut(state[:], internalShifts16[:])
}

func (m DiffusionMatrix16) PermuteState(state []field.Element, internalConstants []field.Element) {
	s := widthArray16(state)
	InternalPermuteState(s[:], func(v []field.Element) {
		m.Diffuse((*[Width16]field.Element)(v))
	}, internalConstants, m.SboxDegree)
}

// DiffusionMatrix24 is the width-24 internal layer.
type DiffusionMatrix24 struct {
	SboxDegree uint64
}

// Diffuse applies the width-24 internal matrix.
func (DiffusionMatrix24) Diffuse(state *[Width24]field.Element) {
	diffusionPermuteMut(state[:], internalShifts24[:])
}

func (m DiffusionMatrix24) PermuteState(state []field.Element, internalConstants []field.Element) {
	s := widthArray24(state)
	InternalPermuteState(s[:], func(v []field.Element) {
		m.Diffuse((*[Width24]field.Element)(v))
	}, internalConstants, m.SboxDegree)
}

func widthArray16(state []field.Element) *[Width16]field.Element {
	if len(state) != Width16 {
		panic(fmt.Sprintf("poseidon2: state has %d elements, want %d", len(state), Width16))
	}
	return (*[Width16]field.Element)(state)
}

func widthArray24(state []field.Element) *[Width24]field.Element {
	if len(state) != Width24 {
		panic(fmt.Sprintf("poseidon2: state has %d elements, want %d", len(state), Width24))
	}
	return (*[Width24]field.Element)(state)
}

// sbox sets x = x^degree.
func sbox(x *field.Element, degree uint64) {
	var t field.Element
	switch degree {
	case 3:
		t.Square(x)
		x.Mul(x, &t)
	case 5:
		t.Square(x)
		t.Square(&t)
		x.Mul(x, &t)
	case 7:
		t.Square(x)
		var t3 field.Element
		t3.Mul(&t, x)
		t.Square(&t3)
		x.Mul(&t, x)
	default:
		*x = field.ExpConst(*x, degree)
	}
}
