// Package mds provides a Reed-Solomon based MDS permutation over KoalaBear.
package mds

import (
	"fmt"

	"koalabear-perm/pkg/field"

	"github.com/pkg/errors"
)

// Permutation is a width-preserving map on state vectors.
type Permutation interface {
	Permute(values []field.Element) []field.Element
	PermuteMut(values []field.Element)
}

// ErrWidthNotPowerOfTwo is returned when a Coset-MDS width is not 2^k.
var ErrWidthNotPowerOfTwo = errors.New("mds: width must be a power of two")

// CosetMds interprets its input as the evaluations of a polynomial on the
// order-N subgroup and returns the evaluations of the same polynomial on the
// coset shifted by field.Generator, scaled by N. These are the parity
// elements of a systematic Reed-Solomon code, so the map is MDS.
//
// The tables are read-only after construction; one CosetMds may be shared by
// any number of goroutines permuting distinct states.
type CosetMds struct {
	width        int
	logWidth     int
	fftTwiddles  []field.Element
	ifftTwiddles []field.Element
	weights      []field.Element
}

var _ Permutation = (*CosetMds)(nil)

// NewCosetMds builds the twiddle tables and coset weights for the given width.
func NewCosetMds(width int) (*CosetMds, error) {
	logN, err := field.Log2Strict(width)
	if err != nil {
		return nil, errors.Wrapf(ErrWidthNotPowerOfTwo, "width %d", width)
	}

	root, err := field.TwoAdicGeneratorOf(logN)
	if err != nil {
		return nil, errors.Wrapf(err, "width %d", width)
	}
	rootInv := field.Inverse(root)

	fftTwiddles := field.Powers(root, width/2)
	ifftTwiddles := field.Powers(rootInv, width/2)
	field.BitReverse(fftTwiddles)
	field.BitReverse(ifftTwiddles)

	weights := field.Powers(field.FromCanonical(field.Generator), width)
	field.BitReverse(weights)

	return &CosetMds{
		width:        width,
		logWidth:     logN,
		fftTwiddles:  fftTwiddles,
		ifftTwiddles: ifftTwiddles,
		weights:      weights,
	}, nil
}

// MustNewCosetMds is like NewCosetMds but panics on error.
func MustNewCosetMds(width int) *CosetMds {
	m, err := NewCosetMds(width)
	if err != nil {
		panic(err)
	}
	return m
}

// Width returns the state width N.
func (m *CosetMds) Width() int {
	return m.width
}

// Permute returns the permuted copy of values.
func (m *CosetMds) Permute(values []field.Element) []field.Element {
	out := make([]field.Element, len(values))
	copy(out, values)
	m.PermuteMut(out)
	return out
}

// PermuteMut permutes values in place. len(values) must equal the width.
func (m *CosetMds) PermuteMut(values []field.Element) {
	if len(values) != m.width {
		panic(fmt.Sprintf("mds: state has %d elements, want %d", len(values), m.width))
	}

	// Inverse DFT, except we skip bit reversal and rescaling by 1/N.
	m.bowersGT(values)

	// Coefficients times powers of the shift, in bit-reversed order.
	for i := range values {
		values[i].Mul(&values[i], &m.weights[i])
	}

	// DFT, assuming bit-reversed input.
	m.bowersG(values)
}

// bowersG runs the Bowers G network: a DFT of bit-reversed input.
func (m *CosetMds) bowersG(values []field.Element) {
	for logHalfBlockSize := 0; logHalfBlockSize < m.logWidth; logHalfBlockSize++ {
		bowersGLayer(values, logHalfBlockSize, m.fftTwiddles)
	}
}

// bowersGT runs the Bowers G^T network: an inverse DFT without the 1/N
// factor, leaving the output bit-reversed.
func (m *CosetMds) bowersGT(values []field.Element) {
	for logHalfBlockSize := m.logWidth - 1; logHalfBlockSize >= 0; logHalfBlockSize-- {
		bowersGTLayer(values, logHalfBlockSize, m.ifftTwiddles)
	}
}

// One layer of the G network; block b > 0 uses twiddles[b].
func bowersGLayer(values []field.Element, logHalfBlockSize int, twiddles []field.Element) {
	logBlockSize := logHalfBlockSize + 1
	halfBlockSize := 1 << logHalfBlockSize
	numBlocks := len(values) >> logBlockSize

	// first block has a twiddle of one
	for hi := 0; hi < halfBlockSize; hi++ {
		TwiddleFreeButterfly(values, hi, hi+halfBlockSize)
	}

	for block := 1; block < numBlocks; block++ {
		twiddle := twiddles[block]
		blockStart := block << logBlockSize
		for hi := blockStart; hi < blockStart+halfBlockSize; hi++ {
			DIFButterfly(values, hi, hi+halfBlockSize, twiddle)
		}
	}
}

// Same as bowersGLayer with the DIT butterfly.
func bowersGTLayer(values []field.Element, logHalfBlockSize int, twiddles []field.Element) {
	logBlockSize := logHalfBlockSize + 1
	halfBlockSize := 1 << logHalfBlockSize
	numBlocks := len(values) >> logBlockSize

	for hi := 0; hi < halfBlockSize; hi++ {
		TwiddleFreeButterfly(values, hi, hi+halfBlockSize)
	}

	for block := 1; block < numBlocks; block++ {
		twiddle := twiddles[block]
		blockStart := block << logBlockSize
		for hi := blockStart; hi < blockStart+halfBlockSize; hi++ {
			DITButterfly(values, hi, hi+halfBlockSize, twiddle)
		}
	}
}
