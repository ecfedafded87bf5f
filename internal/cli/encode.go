package cli

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/oy3o/flow"
	"github.com/spf13/cobra"
)

func (a *app) newEncodeCmd() *cobra.Command {
	var (
		spec, schema string
		outFile      string
	)

	cmd := &cobra.Command{
		Use:   "encode [values...]",
		Short: "Encode values against a layout",
		Long: `Encode one value per kind of the layout. Numbers, booleans and arrays are
read as YAML ("300", "true", "[1, 2, 3]"), strings are taken verbatim and
bytes:N values are hex.`,
		Example: `  flowctl encode -l uint16,uint 300 300
  flowctl encode -l flags,string "[true,false,true,false,false,false,false,false]" hello`,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.resolveLayout(spec, schema)
			if err != nil {
				return err
			}

			values, err := l.ParseValues(args)
			if err != nil {
				return err
			}

			out := flow.NewBufferOutflow(64)
			if err := l.Encode(out, values); err != nil {
				a.log.Debug().Int("offset", out.N).Msg("encode stopped")
				return fmt.Errorf("encode at offset %d: %w", out.N, err)
			}
			a.log.Debug().Int("bytes", out.Len()).Msg("encoded")

			if outFile != "" {
				if err := os.WriteFile(outFile, out.Bytes(), 0o644); err != nil {
					return err
				}
				a.log.Info().Str("file", outFile).Int("bytes", out.Len()).Msg("written")
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(out.Bytes()))
			return err
		},
	}

	addLayoutFlags(cmd, &spec, &schema)
	cmd.Flags().StringVar(&outFile, "out", "", "write raw bytes to file instead of printing hex")
	return cmd
}
