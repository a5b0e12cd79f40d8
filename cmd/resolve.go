package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-matchconf/internal/layout"
	"github.com/MyCarrier-DevOps/go-matchconf/internal/output"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the resolved configuration set",
	Long: `Resolve loads every configuration document, merges each parent/child tree
and prints the default and specific configurations. Missing directories and
the default document are created on first run.`,
	Args: cobra.NoArgs,
	RunE: resolveRunE,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func resolveRunE(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	set, dirs, err := layout.LoadDefault(flagConfigDir, flagPackageDir, loadOptions(logger)...)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	logger.Debug().
		Str("config_dir", dirs.ConfigDir).
		Str("package_dir", dirs.PackageDir).
		Msg("configuration resolved")

	return writeOutput(cmd.OutOrStdout(), set, func(w io.Writer) error {
		return output.WriteSummary(w, set)
	})
}
