package main

import (
	"encoding/json"
	"fmt"

	"koalabear-perm/pkg/encoding"
	"koalabear-perm/pkg/field"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type constantsDump struct {
	Width    int        `json:"width"`
	Initial  [][]uint32 `json:"initial"`
	Internal []uint32   `json:"internal"`
	Final    [][]uint32 `json:"final"`
}

func newConstantsCmd(root *rootOptions) *cobra.Command {
	opts := &permOptions{}
	cmd := &cobra.Command{
		Use:   "constants",
		Short: "Print the Poseidon2 round constants in canonical form",
		RunE: func(cmd *cobra.Command, args []string) error {
			perm, err := opts.build()
			if err != nil {
				return errors.Wrap(err, "building permutation")
			}
			initial, final, internal := perm.Constants()
			out := cmd.OutOrStdout()

			if root.json {
				dump := constantsDump{
					Width:    perm.Width(),
					Internal: field.ToCanonicalSlice(internal),
				}
				for _, row := range initial {
					dump.Initial = append(dump.Initial, field.ToCanonicalSlice(row))
				}
				for _, row := range final {
					dump.Final = append(dump.Final, field.ToCanonicalSlice(row))
				}
				data, err := json.MarshalIndent(dump, "", "  ")
				if err != nil {
					return errors.Wrap(err, "encoding constants")
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}

			for i, row := range initial {
				fmt.Fprintf(out, "initial[%d] %s\n", i, encoding.FormatState(row))
			}
			fmt.Fprintf(out, "internal %s\n", encoding.FormatState(internal))
			for i, row := range final {
				fmt.Fprintf(out, "final[%d] %s\n", i, encoding.FormatState(row))
			}
			return nil
		},
	}
	opts.addFlags(cmd)
	return cmd
}
