package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-matchconf/internal/config"
	"github.com/MyCarrier-DevOps/go-matchconf/internal/layout"
	"github.com/MyCarrier-DevOps/go-matchconf/internal/output"
)

var (
	flagWindowTitle string
	flagWindowExec  string
	flagWindowClass string
)

var activeCmd = &cobra.Command{
	Use:   "active",
	Short: "Show the configuration active for a window",
	Long: `Active selects the configuration that applies to a window. Title filters
are checked first, then exec filters, then class filters; without a match
the default configuration applies.

Examples:
  matchconf active --class kitty
  matchconf active --title "Mozilla Firefox" --output json`,
	Args: cobra.NoArgs,
	RunE: activeRunE,
}

func init() {
	activeCmd.Flags().StringVar(&flagWindowTitle, "title", "", "window title")
	activeCmd.Flags().StringVar(&flagWindowExec, "exec", "", "executable path of the window's process")
	activeCmd.Flags().StringVar(&flagWindowClass, "class", "", "window class")

	rootCmd.AddCommand(activeCmd)
}

func activeRunE(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	set, _, err := layout.LoadDefault(flagConfigDir, flagPackageDir, loadOptions(logger)...)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	manager := config.NewManager(set, config.WithLogger(logger))
	window := config.Window{Title: flagWindowTitle, Exec: flagWindowExec, Class: flagWindowClass}
	active := manager.ActiveConfig(window)

	return writeOutput(cmd.OutOrStdout(), active, func(w io.Writer) error {
		state := "enabled"
		if !manager.IsEnabled(window) {
			state = "disabled"
		}
		if _, err := fmt.Fprintf(w, "Active configuration: %s (%s)\n", active.Name, state); err != nil {
			return err
		}
		return output.WriteMatches(w, active.Matches)
	})
}
