package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag of cmd and its subcommands to its default
// so package-level flag state does not leak between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// newDirs creates a config directory with the given default document and an
// empty package directory, returning the flags that point at them.
func newDirs(t *testing.T, defaultContent string) (string, string, []string) {
	t.Helper()
	root := t.TempDir()
	configDir := filepath.Join(root, "config")
	packageDir := filepath.Join(root, "packages")
	require.NoError(t, os.MkdirAll(filepath.Join(configDir, "user"), 0o755))
	require.NoError(t, os.MkdirAll(packageDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "default.yml"), []byte(defaultContent), 0o644))
	return configDir, packageDir, []string{"--config-dir", configDir, "--package-dir", packageDir, "--verbosity", "quiet"}
}

func writeUser(t *testing.T, configDir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "user", name), []byte(content), 0o644))
}

func TestRootCmd_HasExpectedFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	require.NotNil(t, flags.Lookup("config-dir"))
	require.NotNil(t, flags.Lookup("package-dir"))
	require.NotNil(t, flags.Lookup("output"))
	require.NotNil(t, flags.Lookup("verbosity"))
	require.NotNil(t, flags.Lookup("log-format"))
	require.NotNil(t, flags.Lookup("parallelism"))
}

func TestRootCmd_HasExpectedSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"version", "resolve", "check", "active", "package"} {
		require.True(t, names[want], "%s subcommand should be registered", want)
	}
}

func TestRootCmd_DefaultsToResolve(t *testing.T) {
	_, _, flags := newDirs(t, "matches:\n  - trigger: \":a\"\n    replace: \"A\"\n")

	out, err := execute(t, flags...)
	require.NoError(t, err)
	require.Contains(t, out, "Default configuration:")
	require.Contains(t, out, "1 matches")
}

func TestRootCmd_UnknownOutputFormat(t *testing.T) {
	_, _, flags := newDirs(t, "")

	_, err := execute(t, append(flags, "--output", "xml")...)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown output format")
}

func TestRootCmd_InvalidVerbosity(t *testing.T) {
	_, _, flags := newDirs(t, "")

	_, err := execute(t, append(flags, "--verbosity", "loud")...)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown verbosity")
}

func TestRootCmd_InvalidLogFormat(t *testing.T) {
	_, _, flags := newDirs(t, "")

	_, err := execute(t, append(flags, "--log-format", "xml")...)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown log format")
}
