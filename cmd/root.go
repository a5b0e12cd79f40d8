package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-matchconf/internal/config"
	"github.com/MyCarrier-DevOps/go-matchconf/internal/layout"
	"github.com/MyCarrier-DevOps/go-matchconf/internal/logging"
	"github.com/MyCarrier-DevOps/go-matchconf/internal/output"
)

// Global flags shared across commands.
var (
	flagConfigDir   string
	flagPackageDir  string
	flagOutput      string
	flagVerbosity   string
	flagLogFormat   string
	flagParallelism int
)

// rootCmd is the top-level command for matchconf.
var rootCmd = &cobra.Command{
	Use:   "matchconf",
	Short: "Resolve hierarchical text-expansion configuration",
	Long: `matchconf discovers the configuration documents of the config and package
directories, merges every parent/child tree and prints the resolved set.`,
	SilenceUsage: true,
	// Default action is resolve.
	RunE: resolveRunE,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (or set "+layout.EnvConfigDir+")")
	rootCmd.PersistentFlags().StringVar(&flagPackageDir, "package-dir", "", "package directory (or set "+layout.EnvPackageDir+")")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "summary", "output format: summary, json, yaml")
	rootCmd.PersistentFlags().StringVarP(&flagVerbosity, "verbosity", "v", "info", "log verbosity: quiet, info, debug")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "log format: text, json")
	rootCmd.PersistentFlags().IntVar(&flagParallelism, "parallelism", 4, "number of documents parsed concurrently")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the logger for a command from the global flags.
func newLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	return logging.Setup(flagVerbosity, flagLogFormat, cmd.ErrOrStderr())
}

// loadOptions returns the engine options shared by every loading command.
func loadOptions(logger zerolog.Logger) []config.Option {
	return []config.Option{
		config.WithLogger(logger),
		config.WithParallelism(flagParallelism),
	}
}

// writeOutput writes v in the requested format. summary renders through fn.
func writeOutput(w io.Writer, v any, summary func(io.Writer) error) error {
	switch flagOutput {
	case "json":
		return output.WriteJSON(w, v)
	case "yaml":
		return output.WriteYAML(w, v)
	case "summary", "":
		return summary(w)
	default:
		return fmt.Errorf("unknown output format %q", flagOutput)
	}
}
