package mds

import "koalabear-perm/pkg/field"

// TwiddleFreeButterfly sets (v[hi], v[lo]) = (hi + lo, hi - lo).
func TwiddleFreeButterfly(v []field.Element, hi, lo int) {
	x, y := v[hi], v[lo]
	v[hi].Add(&x, &y)
	v[lo].Sub(&x, &y)
}

// DIFButterfly is the decimation-in-frequency butterfly:
// (v[hi], v[lo]) = (hi + lo, (hi - lo) * twiddle).
func DIFButterfly(v []field.Element, hi, lo int, twiddle field.Element) {
	x, y := v[hi], v[lo]
	v[hi].Add(&x, &y)
	v[lo].Sub(&x, &y)
	v[lo].Mul(&v[lo], &twiddle)
}

// DITButterfly is the decimation-in-time butterfly:
// (v[hi], v[lo]) = (hi + lo * twiddle, hi - lo * twiddle).
func DITButterfly(v []field.Element, hi, lo int, twiddle field.Element) {
	x := v[hi]
	var yt field.Element
	yt.Mul(&v[lo], &twiddle)
	v[hi].Add(&x, &yt)
	v[lo].Sub(&x, &yt)
}
