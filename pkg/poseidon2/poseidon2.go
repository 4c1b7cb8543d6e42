// Package poseidon2 implements the Poseidon2 permutation over KoalaBear for
// widths 16 and 24.
//
// A permutation is an initial linear layer and RoundsF/2 full rounds, then
// RoundsP partial rounds, then RoundsF/2 full rounds. Full rounds use the
// MDS-light external layer; partial rounds use the shift-based internal
// diffusion matrices.
package poseidon2

import (
	"fmt"

	"koalabear-perm/pkg/field"
	"koalabear-perm/pkg/mds"
	"koalabear-perm/pkg/sampling"

	"github.com/pkg/errors"
)

// Poseidon2 is a configured permutation with its round constants.
// It holds no mutable state and may be shared between goroutines.
type Poseidon2 struct {
	config   Config
	external ExternalLayer
	internal InternalLayer

	initialConstants  [][]field.Element
	finalConstants    [][]field.Element
	internalConstants []field.Element
}

var _ mds.Permutation = (*Poseidon2)(nil)

// New builds a permutation from explicit round constants: RoundsF/2 rows of
// Width elements for each external half and RoundsP internal constants.
func New(cfg Config, initial, final [][]field.Element, internal []field.Element) (*Poseidon2, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	half := cfg.RoundsF / 2
	if len(initial) != half || len(final) != half {
		return nil, errors.Wrapf(ErrWidthMismatch, "got %d initial and %d final rows, want %d",
			len(initial), len(final), half)
	}
	for i := 0; i < half; i++ {
		if len(initial[i]) != cfg.Width || len(final[i]) != cfg.Width {
			return nil, errors.Wrapf(ErrWidthMismatch, "round %d constants have %d and %d elements, want %d",
				i, len(initial[i]), len(final[i]), cfg.Width)
		}
	}
	if len(internal) != cfg.RoundsP {
		return nil, errors.Wrapf(ErrWidthMismatch, "got %d internal constants, want %d", len(internal), cfg.RoundsP)
	}

	p := &Poseidon2{
		config:            cfg,
		external:          MDSLightPermutation{SboxDegree: cfg.SboxDegree},
		initialConstants:  initial,
		finalConstants:    final,
		internalConstants: internal,
	}
	switch cfg.Width {
	case Width16:
		p.internal = DiffusionMatrix16{SboxDegree: cfg.SboxDegree}
	case Width24:
		p.internal = DiffusionMatrix24{SboxDegree: cfg.SboxDegree}
	}
	return p, nil
}

// NewFromSource samples the round constants from src in the order: initial
// external rows, final external rows, internal constants.
func NewFromSource(cfg Config, src sampling.Source) (*Poseidon2, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	initial := sampling.SampleRows(src, cfg.RoundsF/2, cfg.Width)
	final := sampling.SampleRows(src, cfg.RoundsF/2, cfg.Width)
	internal := sampling.SampleElements(src, cfg.RoundsP)
	return New(cfg, initial, final, internal)
}

// NewKoalaBear returns the default configuration for width with constants
// from a Xoroshiro128+ generator seeded with seed.
func NewKoalaBear(width int, seed uint64) (*Poseidon2, error) {
	cfg, err := DefaultConfig(width)
	if err != nil {
		return nil, err
	}
	return NewFromSource(cfg, sampling.NewXoroshiro128Plus(seed))
}

// MustNewKoalaBear is like NewKoalaBear but panics on error.
func MustNewKoalaBear(width int, seed uint64) *Poseidon2 {
	p, err := NewKoalaBear(width, seed)
	if err != nil {
		panic(err)
	}
	return p
}

// Config returns the parameters of p.
func (p *Poseidon2) Config() Config {
	return p.config
}

// Width returns the state width.
func (p *Poseidon2) Width() int {
	return p.config.Width
}

// Constants returns the round constants. The slices are shared with p and
// must not be modified.
func (p *Poseidon2) Constants() (initial, final [][]field.Element, internal []field.Element) {
	return p.initialConstants, p.finalConstants, p.internalConstants
}

// PermuteMut permutes state in place. len(state) must equal the width.
func (p *Poseidon2) PermuteMut(state []field.Element) {
	if len(state) != p.config.Width {
		panic(fmt.Sprintf("poseidon2: state has %d elements, want %d", len(state), p.config.Width))
	}
	s := p.external.ToInternalRep(state)
	p.external.PermuteStateInitial(s, p.initialConstants)
	p.internal.PermuteState(s[0], p.internalConstants)
	p.external.PermuteStateFinal(s, p.finalConstants)
	copy(state, p.external.ToOutputRep(s))
}

// Permute returns the permuted copy of state.
func (p *Poseidon2) Permute(state []field.Element) []field.Element {
	out := make([]field.Element, len(state))
	copy(out, state)
	p.PermuteMut(out)
	return out
}
