package main

import (
	"time"

	"koalabear-perm/pkg/encoding"
	"koalabear-perm/pkg/field"
	"koalabear-perm/pkg/mds"
	"koalabear-perm/pkg/poly"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newMdsCmd(root *rootOptions) *cobra.Command {
	var (
		width int
		naive bool
	)
	cmd := &cobra.Command{
		Use:   "mds [state...]",
		Short: "Apply the Coset-MDS permutation to a state of canonical integers",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mds.NewCosetMds(width)
			if err != nil {
				return err
			}
			input, err := readState(args, width)
			if err != nil {
				return err
			}

			start := time.Now()
			output := m.Permute(input)
			root.log.Debug().Int("width", width).Dur("elapsed", time.Since(start)).Msg("coset-mds permuted")

			if naive {
				want, err := naiveCosetMds(input)
				if err != nil {
					return err
				}
				for i := range want {
					if want[i] != output[i] {
						return errors.Errorf("naive check failed at %d: got %s, want %s",
							i, encoding.FormatState(output), encoding.FormatState(want))
					}
				}
				root.log.Info().Int("width", width).Msg("output matches the naive coset LDE")
			}

			return writeResult(cmd, root, "coset-mds", input, output)
		},
	}
	cmd.Flags().IntVar(&width, "width", 8, "state width, a power of two")
	cmd.Flags().BoolVar(&naive, "naive", false, "check the result against an O(N^2) coset LDE")
	return cmd
}

// naiveCosetMds returns N times the evaluations on the shifted coset of the
// polynomial interpolating input on the order-N subgroup.
func naiveCosetMds(input []field.Element) ([]field.Element, error) {
	want, err := poly.CosetLDE(input, field.FromCanonical(field.Generator))
	if err != nil {
		return nil, err
	}
	n := field.FromCanonical(uint32(len(input)))
	for i := range want {
		want[i].Mul(&want[i], &n)
	}
	return want, nil
}
