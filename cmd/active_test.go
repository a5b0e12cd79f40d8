package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActive_SelectsByClass(t *testing.T) {
	configDir, _, flags := newDirs(t, defaultDoc)
	writeUser(t, configDir, "term.yml", "name: terminal\nfilter_class: kitty\nmatches:\n  - trigger: \":ls\"\n    replace: \"ls -la\"\n")

	out, err := execute(t, append([]string{"active", "--class", "kitty"}, flags...)...)
	require.NoError(t, err)
	require.Contains(t, out, "Active configuration: terminal (enabled)")
	require.Contains(t, out, ":ls")
	require.Contains(t, out, ":lol")
}

func TestActive_FallsBackToDefault(t *testing.T) {
	configDir, _, flags := newDirs(t, defaultDoc)
	writeUser(t, configDir, "term.yml", "name: terminal\nfilter_class: kitty\n")

	out, err := execute(t, append([]string{"active", "--class", "xterm"}, flags...)...)
	require.NoError(t, err)
	require.Contains(t, out, "Active configuration: default (enabled)")
}

func TestActive_TitleBeatsClassAndReportsDisabled(t *testing.T) {
	configDir, _, flags := newDirs(t, defaultDoc)
	writeUser(t, configDir, "a.yml", "name: terminal\nfilter_class: kitty\n")
	writeUser(t, configDir, "b.yml", "name: secrets\nfilter_title: Vault\ndisabled: true\n")

	out, err := execute(t, append([]string{"active", "--class", "kitty", "--title", "Vault - kitty"}, flags...)...)
	require.NoError(t, err)
	require.Contains(t, out, "Active configuration: secrets (disabled)")
}

func TestActive_JSON(t *testing.T) {
	configDir, _, flags := newDirs(t, defaultDoc)
	writeUser(t, configDir, "term.yml", "name: terminal\nfilter_exec: bash$\n")

	out, err := execute(t, append([]string{"active", "--exec", "/bin/bash", "-o", "json"}, flags...)...)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Equal(t, "terminal", parsed["name"])
}
