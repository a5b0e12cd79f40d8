package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-matchconf/internal/config"
	"github.com/MyCarrier-DevOps/go-matchconf/internal/layout"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration without creating anything",
	Long: `Check loads the configuration set exactly as resolve does but never creates
directories or the default document. It exits non-zero on the first error.`,
	Args: cobra.NoArgs,
	RunE: checkRunE,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkRunE(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	dirs, err := layout.Resolve(flagConfigDir, flagPackageDir)
	if err != nil {
		return err
	}

	set, err := config.Load(dirs.ConfigDir, dirs.PackageDir, loadOptions(logger)...)
	if err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}

	matches := 0
	for _, cfg := range set.All() {
		matches += len(cfg.Matches)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "configuration OK: %d configs, %d resolved matches\n", len(set.All()), matches)
	return err
}
