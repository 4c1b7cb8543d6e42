package field

import (
	"math/bits"

	"github.com/consensys/gnark-crypto/field/koalabear/fft"
	"github.com/pkg/errors"
)

// Log2Strict returns log2(n) and fails unless n is an exact power of two.
func Log2Strict(n int) (int, error) {
	if n <= 0 || n&(n-1) != 0 {
		return 0, errors.Wrapf(ErrNotPowerOfTwo, "%d", n)
	}
	return bits.TrailingZeros(uint(n)), nil
}

// BitReverse permutes v in place so that v[i] and v[rev(i)] are swapped.
// len(v) must be a power of two.
func BitReverse(v []Element) {
	if len(v) == 0 {
		return
	}
	fft.BitReverse(v)
}
