// Package sampling draws KoalaBear field elements from deterministic random sources.
//
// Round constants are drawn with the same generator and rejection rule that
// produced the published Poseidon2 test vectors, so those vectors can be
// reproduced bit for bit.
package sampling

import "koalabear-perm/pkg/field"

// Source is a stream of 32-bit words.
type Source interface {
	NextU32() uint32
}

// SampleElement draws one field element by rejection sampling.
// The top 31 bits of each word are kept and taken directly as the Montgomery
// representation; words whose value is >= P are discarded.
func SampleElement(src Source) field.Element {
	for {
		v := src.NextU32() >> 1
		if v < field.P {
			return field.FromRaw(v)
		}
	}
}

// SampleElements draws n field elements.
func SampleElements(src Source, n int) []field.Element {
	out := make([]field.Element, n)
	for i := range out {
		out[i] = SampleElement(src)
	}
	return out
}

// SampleRows draws rows arrays of width elements each, row by row.
func SampleRows(src Source, rows, width int) [][]field.Element {
	out := make([][]field.Element, rows)
	for r := range out {
		out[r] = SampleElements(src, width)
	}
	return out
}
