// Package poly provides naive polynomial and matrix operations over KoalaBear.
//
// Everything here is quadratic or cubic and is meant as an unoptimized
// reference for the fast permutations, not for production use.
package poly

import (
	"koalabear-perm/pkg/field"

	"github.com/pkg/errors"
)

// Poly is a polynomial given by its coefficients, lowest degree first.
type Poly []field.Element

// Evaluate returns p(x) using Horner's rule.
func (p Poly) Evaluate(x field.Element) field.Element {
	var acc field.Element
	for i := len(p) - 1; i >= 0; i-- {
		acc.Mul(&acc, &x)
		acc.Add(&acc, &p[i])
	}
	return acc
}

// EvaluateOnCoset returns [p(s), p(s g), ..., p(s g^(n-1))] for n = len(p).
func (p Poly) EvaluateOnCoset(shift field.Element) ([]field.Element, error) {
	g, err := subgroupGenerator(len(p))
	if err != nil {
		return nil, err
	}
	out := make([]field.Element, len(p))
	x := shift
	for i := range out {
		out[i] = p.Evaluate(x)
		x.Mul(&x, &g)
	}
	return out, nil
}

// Interpolate returns the polynomial of degree < n taking the given values on
// the order-n subgroup, by a naive inverse DFT including the 1/n factor.
func Interpolate(evals []field.Element) (Poly, error) {
	n := len(evals)
	g, err := subgroupGenerator(n)
	if err != nil {
		return nil, err
	}
	gInv := field.Inverse(g)
	nInv := field.Inverse(field.FromCanonical(uint32(n)))

	coeffs := make(Poly, n)
	var rowStep field.Element
	rowStep.SetOne()
	for k := 0; k < n; k++ {
		// coeffs[k] = 1/n * sum_j evals[j] * g^(-jk)
		var acc, w, term field.Element
		w.SetOne()
		for j := 0; j < n; j++ {
			term.Mul(&evals[j], &w)
			acc.Add(&acc, &term)
			w.Mul(&w, &rowStep)
		}
		coeffs[k].Mul(&acc, &nInv)
		rowStep.Mul(&rowStep, &gInv)
	}
	return coeffs, nil
}

// CosetLDE re-evaluates on the coset shift*H the polynomial given by its
// evaluations on the subgroup H of order len(evals).
func CosetLDE(evals []field.Element, shift field.Element) ([]field.Element, error) {
	p, err := Interpolate(evals)
	if err != nil {
		return nil, errors.Wrap(err, "interpolating")
	}
	return p.EvaluateOnCoset(shift)
}

func subgroupGenerator(n int) (field.Element, error) {
	logN, err := field.Log2Strict(n)
	if err != nil {
		return field.Element{}, errors.Wrap(err, "subgroup size")
	}
	return field.TwoAdicGeneratorOf(logN)
}
