package poseidon2

import (
	"fmt"

	"koalabear-perm/pkg/field"
)

// ArrayState is the external-layer view of a state: a single row.
type ArrayState [1][]field.Element

// ExternalLayer applies the full rounds of a Poseidon2 permutation.
type ExternalLayer interface {
	ToInternalRep(state []field.Element) ArrayState
	ToOutputRep(state ArrayState) []field.Element
	// PermuteStateInitial applies the initial linear layer followed by one
	// full round per constant row.
	PermuteStateInitial(state ArrayState, constants [][]field.Element)
	// PermuteStateFinal applies one full round per constant row.
	PermuteStateFinal(state ArrayState, constants [][]field.Element)
}

// MDSLightPermutation is the external layer built on MDSMat4.
type MDSLightPermutation struct {
	SboxDegree uint64
}

var _ ExternalLayer = MDSLightPermutation{}

func (MDSLightPermutation) ToInternalRep(state []field.Element) ArrayState {
	return ArrayState{state}
}

func (MDSLightPermutation) ToOutputRep(state ArrayState) []field.Element {
	return state[0]
}

func (m MDSLightPermutation) PermuteStateInitial(state ArrayState, constants [][]field.Element) {
	MDSLightPermuteMut(state[0])
	externalRounds(state[0], constants, m.SboxDegree)
}

func (m MDSLightPermutation) PermuteStateFinal(state ArrayState, constants [][]field.Element) {
	externalRounds(state[0], constants, m.SboxDegree)
}

// externalRounds adds each constant row, applies the S-box to every element
// and mixes with the MDS-light layer.
func externalRounds(state []field.Element, constants [][]field.Element, degree uint64) {
	for _, rc := range constants {
		if len(rc) != len(state) {
			panic(fmt.Sprintf("poseidon2: round constants have %d elements, state %d", len(rc), len(state)))
		}
		for i := range state {
			state[i].Add(&state[i], &rc[i])
			sbox(&state[i], degree)
		}
		MDSLightPermuteMut(state)
	}
}

// MDSMat4 multiplies x by the 4x4 matrix
//
//	[ 2 3 1 1 ]
//	[ 1 2 3 1 ]
//	[ 1 1 2 3 ]
//	[ 3 1 1 2 ]
//
// using 7 additions and 2 doublings.
func MDSMat4(x *[4]field.Element) {
	var t01, t23, t0123, t01123, t01233, d field.Element
	t01.Add(&x[0], &x[1])
	t23.Add(&x[2], &x[3])
	t0123.Add(&t01, &t23)
	t01123.Add(&t0123, &x[1])
	t01233.Add(&t0123, &x[3])

	// order matters: x0 and x2 are read before being overwritten
	d.Double(&x[0])
	x[3].Add(&t01233, &d)
	d.Double(&x[2])
	x[1].Add(&t01123, &d)
	x[0].Add(&t01123, &t01)
	x[2].Add(&t01233, &t23)
}

// MDSLightPermuteMut applies the external linear layer: MDSMat4 on every
// 4-element chunk, then adds to each element the sum of the elements in its
// position class mod 4. A width-4 state only gets MDSMat4.
func MDSLightPermuteMut(state []field.Element) {
	width := len(state)
	if width == 0 || width%4 != 0 {
		panic(fmt.Sprintf("poseidon2: MDS-light width %d is not a multiple of 4", width))
	}

	for i := 0; i < width; i += 4 {
		MDSMat4((*[4]field.Element)(state[i : i+4]))
	}
	if width == 4 {
		return
	}

	var sums [4]field.Element
	for i := range state {
		sums[i%4].Add(&sums[i%4], &state[i])
	}
	for i := range state {
		state[i].Add(&state[i], &sums[i%4])
	}
}
