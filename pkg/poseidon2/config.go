package poseidon2

import (
	"koalabear-perm/pkg/field"

	"github.com/pkg/errors"
)

var (
	ErrUnsupportedRounds = errors.New("poseidon2: no round numbers for width and degree")
	ErrInvalidSboxDegree = errors.New("poseidon2: x^d is not a permutation of the field")
	ErrUnsupportedWidth  = errors.New("poseidon2: unsupported width")
	ErrWidthMismatch     = errors.New("poseidon2: constants do not match the width")
)

// Config holds the parameters of a Poseidon2 instance.
type Config struct {
	Width      int
	SboxDegree uint64
	RoundsF    int // full rounds, split evenly before and after the partial rounds
	RoundsP    int // partial rounds
}

type roundKey struct {
	width  int
	degree uint64
}

// 128-bit security round numbers for 31-bit fields.
var roundNumbers128 = map[roundKey][2]int{
	{16, 3}:  {8, 20},
	{16, 5}:  {8, 14},
	{16, 7}:  {8, 13},
	{16, 9}:  {8, 13},
	{16, 11}: {8, 13},
	{24, 3}:  {8, 23},
	{24, 5}:  {8, 22},
	{24, 7}:  {8, 21},
	{24, 9}:  {8, 21},
	{24, 11}: {8, 21},
}

// RoundNumbers128 returns the full and partial round counts giving 128-bit
// security for the given width and S-box degree.
func RoundNumbers128(width int, degree uint64) (roundsF, roundsP int, err error) {
	rn, ok := roundNumbers128[roundKey{width, degree}]
	if !ok {
		return 0, 0, errors.Wrapf(ErrUnsupportedRounds, "width %d, degree %d", width, degree)
	}
	return rn[0], rn[1], nil
}

// DefaultConfig returns the KoalaBear configuration for width 16 or 24:
// S-box x^3 and 128-bit security round numbers.
func DefaultConfig(width int) (Config, error) {
	const degree = 3
	rf, rp, err := RoundNumbers128(width, degree)
	if err != nil {
		return Config{}, err
	}
	return Config{Width: width, SboxDegree: degree, RoundsF: rf, RoundsP: rp}, nil
}

// Validate checks that the configuration can be instantiated.
func (c Config) Validate() error {
	if c.Width != Width16 && c.Width != Width24 {
		return errors.Wrapf(ErrUnsupportedWidth, "width %d", c.Width)
	}
	if !field.CheckSboxDegree(c.SboxDegree) {
		return errors.Wrapf(ErrInvalidSboxDegree, "degree %d", c.SboxDegree)
	}
	if c.RoundsF <= 0 || c.RoundsF%2 != 0 || c.RoundsP < 0 {
		return errors.Wrapf(ErrUnsupportedRounds, "RoundsF %d, RoundsP %d", c.RoundsF, c.RoundsP)
	}
	return nil
}
