package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/oy3o/flow/layout"
	"github.com/spf13/cobra"
)

func (a *app) newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the wire kinds and configured schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, name := range layout.Names() {
				fmt.Fprintln(w, name)
			}
			fmt.Fprintln(w, "bytes:N")

			if len(a.cfg.Schemas) == 0 {
				return nil
			}
			fmt.Fprintln(w, "\nschemas:")
			names := slices.Sorted(maps.Keys(a.cfg.Schemas))
			for _, name := range names {
				fmt.Fprintf(w, "  %s = %s\n", name, a.cfg.Schemas[name])
			}
			return nil
		},
	}
}
