package cli

import (
	"fmt"
	"os"

	"github.com/oy3o/flow/internal/config"
	"github.com/oy3o/flow/layout"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries the global flags and the state set up in PersistentPreRunE.
type app struct {
	cfgFile      string
	outputFormat string
	logLevel     string

	cfg *config.Config
	log zerolog.Logger
}

// NewRootCmd builds the flowctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "flowctl",
		Short: "Inspect and produce flow wire encodings",
		Long: `flowctl decodes hex or raw bytes against a layout of wire kinds
and encodes values into the same wire format.

A layout is a comma separated list of kinds, for example "uint16,uint,string".
Named layouts can be kept under "schemas" in the config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfgFile
			if path == "" {
				path = config.DefaultPath()
			}
			var err error
			a.cfg, err = config.Load(path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			// Override config with flags
			if a.outputFormat != "" {
				a.cfg.OutputFormat = a.outputFormat
			}
			if a.logLevel != "" {
				a.cfg.LogLevel = a.logLevel
			}

			level, err := zerolog.ParseLevel(a.cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", a.cfg.LogLevel, err)
			}
			a.log = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
				Level(level).With().Timestamp().Logger()
			a.log.Debug().Str("config", path).Str("output", a.cfg.OutputFormat).Msg("config loaded")
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.flowctl/config.yaml)")
	root.PersistentFlags().StringVarP(&a.outputFormat, "output", "o", "", "output format: yaml, json, text (default \"yaml\")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(a.newDecodeCmd(), a.newEncodeCmd(), a.newKindsCmd(), newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// resolveLayout picks the layout from --layout or, failing that, --schema.
func (a *app) resolveLayout(spec, schema string) (layout.Layout, error) {
	if spec == "" && schema == "" {
		return nil, fmt.Errorf("one of --layout or --schema is required")
	}
	if spec == "" {
		var err error
		if spec, err = a.cfg.Schema(schema); err != nil {
			return nil, err
		}
	}
	l, err := layout.Parse(spec)
	if err != nil {
		return nil, err
	}
	a.log.Debug().Str("layout", l.String()).Msg("layout resolved")
	return l, nil
}

func addLayoutFlags(cmd *cobra.Command, spec, schema *string) {
	cmd.Flags().StringVarP(spec, "layout", "l", "", "comma separated wire kinds, e.g. uint16,uint,string")
	cmd.Flags().StringVarP(schema, "schema", "s", "", "name of a layout in the config file")
	cmd.MarkFlagsMutuallyExclusive("layout", "schema")
}
