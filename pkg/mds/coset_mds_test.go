package mds

import (
	"fmt"
	"testing"

	"koalabear-perm/pkg/field"
	"koalabear-perm/pkg/poly"

	"github.com/consensys/gnark-crypto/field/koalabear/fft"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func seq(n int) []field.Element {
	out := make([]field.Element, n)
	for i := range out {
		out[i] = field.FromCanonical(uint32(i))
	}
	return out
}

func TestButterflies(t *testing.T) {
	a, b, tw := field.FromCanonical(10), field.FromCanonical(3), field.FromCanonical(5)

	v := []field.Element{a, b}
	TwiddleFreeButterfly(v, 0, 1)
	require.Equal(t, []uint32{13, 7}, field.ToCanonicalSlice(v))

	v = []field.Element{a, b}
	DIFButterfly(v, 0, 1, tw)
	require.Equal(t, []uint32{13, 35}, field.ToCanonicalSlice(v))

	v = []field.Element{a, b}
	DITButterfly(v, 0, 1, tw)
	require.Equal(t, []uint32{25, field.P - 5}, field.ToCanonicalSlice(v))

	// unit twiddle reduces both to the plain butterfly
	one := field.FromCanonical(1)
	for _, fn := range []func([]field.Element, int, int, field.Element){DIFButterfly, DITButterfly} {
		v = []field.Element{a, b}
		fn(v, 0, 1, one)
		require.Equal(t, []uint32{13, 7}, field.ToCanonicalSlice(v))
	}
}

func TestCosetMdsKnownVectors(t *testing.T) {
	tests := []struct {
		width int
		want  []uint32
	}{
		{8, []uint32{
			382417202, 672170717, 1771099489, 2125751162,
			2125764290, 1081048961, 2112837134, 382443434,
		}},
		{16, []uint32{
			932070838, 85082522, 1629831934, 1010737297,
			599991072, 1064627793, 2050229597, 990726579,
			1162913475, 1991031678, 112138828, 966809445,
			1515305206, 1137786700, 519925838, 1276444582,
		}},
	}
	for _, tc := range tests {
		m := MustNewCosetMds(tc.width)
		got := m.Permute(seq(tc.width))
		require.Equal(t, tc.want, field.ToCanonicalSlice(got), "width %d", tc.width)
	}
}

// N times the coset LDE computed from the naive interpolation
func TestCosetMdsMatchesNaiveLDE(t *testing.T) {
	shift := field.FromCanonical(field.Generator)
	for _, n := range []int{1, 2, 4, 8, 16, 32} {
		m, err := NewCosetMds(n)
		require.NoError(t, err)

		input := make([]field.Element, n)
		for i := range input {
			input[i] = field.FromCanonical(uint32(i*i*31 + 17))
		}
		want, err := poly.CosetLDE(input, shift)
		require.NoError(t, err)
		scale := field.FromCanonical(uint32(n))
		for i := range want {
			want[i].Mul(&want[i], &scale)
		}

		got := m.Permute(input)
		require.Equal(t, field.ToCanonicalSlice(want), field.ToCanonicalSlice(got), "width %d", n)
	}
}

// Same map assembled from gnark-crypto's radix-2 FFT
func TestCosetMdsMatchesGnarkFFT(t *testing.T) {
	for _, n := range []int{4, 8, 16, 32} {
		m := MustNewCosetMds(n)
		domain := fft.NewDomain(uint64(n))

		input := make([]field.Element, n)
		for i := range input {
			input[i] = field.FromCanonical(uint32(7*i + 123456))
		}

		want := make([]field.Element, n)
		copy(want, input)
		domain.FFTInverse(want, fft.DIF)
		fft.BitReverse(want)
		domain.FFT(want, fft.DIF, fft.OnCoset())
		fft.BitReverse(want)
		scale := field.FromCanonical(uint32(n))
		for i := range want {
			want[i].Mul(&want[i], &scale)
		}

		got := m.Permute(input)
		require.Equal(t, field.ToCanonicalSlice(want), field.ToCanonicalSlice(got), "width %d", n)
	}
}

// Every square submatrix of an MDS matrix is non-singular.
func TestCosetMdsIsMDS(t *testing.T) {
	for _, n := range []int{2, 4, 8} {
		m := MustNewCosetMds(n)
		mat := poly.MatrixOf(m.PermuteMut, n)
		for k := 1; k <= n; k++ {
			poly.Combinations(n, k, func(rows []int) {
				poly.Combinations(n, k, func(cols []int) {
					det := mat.Submatrix(rows, cols).Determinant()
					if det.IsZero() {
						t.Fatalf("width %d: singular minor rows=%v cols=%v", n, rows, cols)
					}
				})
			})
		}
	}
}

func TestCosetMdsLinearity(t *testing.T) {
	m := MustNewCosetMds(16)
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	elems := gen.SliceOfN(16, gen.UInt32Range(0, field.P-1))

	properties.Property("M(x + y) = M(x) + M(y)", prop.ForAll(
		func(xs, ys []uint32) bool {
			x, y := field.FromCanonicalSlice(xs), field.FromCanonicalSlice(ys)
			sum := make([]field.Element, 16)
			for i := range sum {
				sum[i].Add(&x[i], &y[i])
			}
			mx, my, ms := m.Permute(x), m.Permute(y), m.Permute(sum)
			for i := range ms {
				var e field.Element
				e.Add(&mx[i], &my[i])
				if e != ms[i] {
					return false
				}
			}
			return true
		},
		elems, elems,
	))

	properties.Property("Permute leaves its input untouched", prop.ForAll(
		func(xs []uint32) bool {
			x := field.FromCanonicalSlice(xs)
			m.Permute(x)
			got := field.ToCanonicalSlice(x)
			for i := range xs {
				if got[i] != xs[i] {
					return false
				}
			}
			return true
		},
		elems,
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCosetMdsDeterministic(t *testing.T) {
	a, b := MustNewCosetMds(32), MustNewCosetMds(32)
	require.Equal(t, 32, a.Width())
	in := seq(32)
	require.Equal(t, a.Permute(in), b.Permute(in))

	mut := seq(32)
	a.PermuteMut(mut)
	require.Equal(t, a.Permute(in), mut)
}

func TestCosetMdsZeroInput(t *testing.T) {
	m := MustNewCosetMds(8)
	out := m.Permute(make([]field.Element, 8))
	for i := range out {
		require.True(t, out[i].IsZero())
	}
}

func TestNewCosetMdsRejectsBadWidths(t *testing.T) {
	for _, w := range []int{0, -4, 3, 6, 12, 24} {
		_, err := NewCosetMds(w)
		require.Error(t, err, "width %d", w)
		require.True(t, errors.Is(err, ErrWidthNotPowerOfTwo), "width %d: %v", w, err)
	}
	require.Panics(t, func() { MustNewCosetMds(3) })
}

func TestCosetMdsPanicsOnLengthMismatch(t *testing.T) {
	m := MustNewCosetMds(8)
	require.Panics(t, func() { m.PermuteMut(make([]field.Element, 7)) })
	require.Panics(t, func() { m.Permute(make([]field.Element, 16)) })
}

func BenchmarkCosetMds(b *testing.B) {
	for _, n := range []int{16, 32} {
		m := MustNewCosetMds(n)
		state := seq(n)
		b.Run(fmt.Sprintf("width=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				m.PermuteMut(state)
			}
		})
	}
}
