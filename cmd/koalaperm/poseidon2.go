package main

import (
	"time"

	"koalabear-perm/pkg/poseidon2"
	"koalabear-perm/pkg/sampling"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type permOptions struct {
	width     int
	degree    uint64
	seed      uint64
	source    string
	shakeSeed string
}

func (o *permOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.width, "width", poseidon2.Width16, "state width (16 or 24)")
	cmd.Flags().Uint64Var(&o.degree, "degree", 3, "S-box degree")
	cmd.Flags().Uint64Var(&o.seed, "seed", 1, "Xoroshiro128+ seed for the round constants")
	cmd.Flags().StringVar(&o.source, "source", "xoroshiro", "round constant source: xoroshiro or shake")
	cmd.Flags().StringVar(&o.shakeSeed, "shake-seed", "", "seed string for the shake source")
}

func (o *permOptions) constantSource() (sampling.Source, error) {
	switch o.source {
	case "xoroshiro":
		return sampling.NewXoroshiro128Plus(o.seed), nil
	case "shake":
		return sampling.NewShakeSource([]byte(o.shakeSeed)), nil
	default:
		return nil, errors.Errorf("unknown constant source %q", o.source)
	}
}

func (o *permOptions) build() (*poseidon2.Poseidon2, error) {
	rf, rp, err := poseidon2.RoundNumbers128(o.width, o.degree)
	if err != nil {
		return nil, err
	}
	src, err := o.constantSource()
	if err != nil {
		return nil, err
	}
	cfg := poseidon2.Config{Width: o.width, SboxDegree: o.degree, RoundsF: rf, RoundsP: rp}
	return poseidon2.NewFromSource(cfg, src)
}

func newPoseidon2Cmd(root *rootOptions) *cobra.Command {
	opts := &permOptions{}
	cmd := &cobra.Command{
		Use:   "poseidon2 [state...]",
		Short: "Apply the Poseidon2 permutation to a state of canonical integers",
		RunE: func(cmd *cobra.Command, args []string) error {
			perm, err := opts.build()
			if err != nil {
				return errors.Wrap(err, "building permutation")
			}
			cfg := perm.Config()
			root.log.Debug().
				Int("width", cfg.Width).
				Uint64("degree", cfg.SboxDegree).
				Int("roundsF", cfg.RoundsF).
				Int("roundsP", cfg.RoundsP).
				Str("source", opts.source).
				Msg("poseidon2 parameters")

			input, err := readState(args, opts.width)
			if err != nil {
				return err
			}
			start := time.Now()
			output := perm.Permute(input)
			root.log.Debug().Dur("elapsed", time.Since(start)).Msg("permuted")

			return writeResult(cmd, root, "poseidon2", input, output)
		},
	}
	opts.addFlags(cmd)
	return cmd
}
