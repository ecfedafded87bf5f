package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oy3o/flow"
	"github.com/spf13/cobra"
)

func (a *app) newDecodeCmd() *cobra.Command {
	var (
		spec, schema string
		inFile       string
		strict       bool
	)

	cmd := &cobra.Command{
		Use:   "decode [hex]",
		Short: "Decode bytes against a layout",
		Example: `  flowctl decode -l uint16,uint 2c01ac02
  flowctl decode -s login --in message.bin`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.resolveLayout(spec, schema)
			if err != nil {
				return err
			}

			data, err := readInput(cmd, args, inFile)
			if err != nil {
				return err
			}

			in := flow.NewBufferInflow(data)
			fields, err := l.Decode(in)
			if err != nil {
				a.log.Debug().Int("offset", in.N).Int("fields", len(fields)).Msg("decode stopped")
				return fmt.Errorf("decode at offset %d: %w", in.N, err)
			}
			if rest := in.Available(); rest > 0 {
				if strict {
					return fmt.Errorf("%w: %d bytes after offset %d", flow.ErrTrailingData, rest, in.N)
				}
				a.log.Warn().Int("offset", in.N).Int("trailing", rest).Msg("unread bytes after layout")
			}
			a.log.Debug().Int("bytes", in.N).Int("fields", len(fields)).Msg("decoded")

			return writeFields(cmd.OutOrStdout(), a.cfg.OutputFormat, fields)
		},
	}

	addLayoutFlags(cmd, &spec, &schema)
	cmd.Flags().StringVar(&inFile, "in", "", "read raw bytes from file (\"-\" for stdin) instead of a hex argument")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail if bytes remain after the layout")
	return cmd
}

// readInput returns the hex argument decoded, or the raw contents of --in.
func readInput(cmd *cobra.Command, args []string, inFile string) ([]byte, error) {
	switch {
	case inFile == "-":
		return io.ReadAll(cmd.InOrStdin())
	case inFile != "":
		return os.ReadFile(inFile)
	case len(args) == 1:
		s := strings.Join(strings.Fields(args[0]), "")
		s = strings.TrimPrefix(s, "0x")
		data, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid hex input: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("no input: pass a hex argument or --in")
	}
}
