package main

import (
	"encoding/hex"
	"os"
	"strings"
	"time"

	"koalabear-perm/pkg/encoding"
	"koalabear-perm/pkg/field"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbose bool
	json    bool
	hex     bool
	log     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "koalaperm",
		Short:         "Run KoalaBear Poseidon2 and Coset-MDS permutations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if opts.verbose {
				level = zerolog.DebugLevel
			}
			opts.log = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.RFC3339}).
				Level(level).
				With().Timestamp().Logger()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log parameters and timings")
	rootCmd.PersistentFlags().BoolVar(&opts.json, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().BoolVar(&opts.hex, "hex", false, "print results as packed little-endian hex")

	rootCmd.AddCommand(newPoseidon2Cmd(opts))
	rootCmd.AddCommand(newMdsCmd(opts))
	rootCmd.AddCommand(newConstantsCmd(opts))
	return rootCmd
}

// readState parses the positional arguments as a state of the given width.
// No arguments means the all-zero state. A single 0x-prefixed argument is
// read as packed little-endian hex.
func readState(args []string, width int) ([]field.Element, error) {
	if len(args) == 0 {
		return make([]field.Element, width), nil
	}
	if len(args) == 1 && strings.HasPrefix(args[0], "0x") {
		raw, err := hex.DecodeString(args[0][2:])
		if err != nil {
			return nil, errors.Wrap(err, "decoding hex state")
		}
		state, err := encoding.UnpackFes(raw)
		if err != nil {
			return nil, errors.Wrap(err, "unpacking state")
		}
		if len(state) != width {
			return nil, errors.Wrapf(encoding.ErrBadLength, "got %d elements, want %d", len(state), width)
		}
		return state, nil
	}
	state, err := encoding.ParseState(strings.Join(args, " "), width)
	if err != nil {
		return nil, errors.Wrap(err, "parsing state")
	}
	return state, nil
}

// writeResult prints output as a list or packed hex, or the whole call as JSON.
func writeResult(cmd *cobra.Command, opts *rootOptions, name string, input, output []field.Element) error {
	out := cmd.OutOrStdout()
	if opts.json {
		data, err := encoding.MarshalResult(name, input, output)
		if err != nil {
			return err
		}
		_, err = out.Write(append(data, '\n'))
		return err
	}
	if opts.hex {
		_, err := out.Write([]byte("0x" + hex.EncodeToString(encoding.PackFes(output)) + "\n"))
		return err
	}
	_, err := out.Write([]byte(encoding.FormatState(output) + "\n"))
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
		log.Error().Err(err).Msg("koalaperm failed")
		os.Exit(1)
	}
}
