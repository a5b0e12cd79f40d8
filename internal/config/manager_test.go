package config

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newManagerSet() *ConfigSet {
	def := CreateDefaultConfig()
	def.Matches = []Match{{Trigger: ":d", Replace: "default"}}

	byClass := CreateDefaultConfig()
	byClass.Name = "terminal"
	byClass.FilterClass = "(?i)kitty|alacritty"
	byClass.Matches = []Match{{Trigger: ":t", Replace: "terminal"}}

	byTitle := CreateDefaultConfig()
	byTitle.Name = "browser"
	byTitle.FilterTitle = "Firefox$"
	byTitle.Disabled = true

	byExec := CreateDefaultConfig()
	byExec.Name = "editor"
	byExec.FilterExec = "/usr/bin/(n)?vim"

	return &ConfigSet{Default: def, Specific: []*Config{byClass, byTitle, byExec}}
}

func TestManager_ActiveConfig(t *testing.T) {
	m := NewManager(newManagerSet())

	tests := []struct {
		name   string
		window Window
		want   string
	}{
		{"no match falls back to default", Window{Title: "Files", Class: "nautilus"}, "default"},
		{"class match", Window{Class: "Kitty"}, "terminal"},
		{"title match", Window{Title: "Mozilla Firefox"}, "browser"},
		{"exec match", Window{Exec: "/usr/bin/nvim"}, "editor"},
		{"title beats class", Window{Title: "Mozilla Firefox", Class: "kitty"}, "browser"},
		{"exec beats class", Window{Exec: "/usr/bin/vim", Class: "alacritty"}, "editor"},
		{"title beats exec", Window{Title: "Firefox", Exec: "/usr/bin/vim"}, "browser"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, m.ActiveConfig(tt.window).Name)
		})
	}
}

func TestManager_FirstConfigWinsWithinFilterKind(t *testing.T) {
	first := CreateDefaultConfig()
	first.Name = "first"
	first.FilterClass = "term"
	second := CreateDefaultConfig()
	second.Name = "second"
	second.FilterClass = "terminal"

	m := NewManager(&ConfigSet{Default: CreateDefaultConfig(), Specific: []*Config{first, second}})
	require.Equal(t, "first", m.ActiveConfig(Window{Class: "terminal"}).Name)
}

func TestManager_MatchesAndEnabled(t *testing.T) {
	m := NewManager(newManagerSet())

	require.Equal(t, []Match{{Trigger: ":t", Replace: "terminal"}}, m.Matches(Window{Class: "kitty"}))
	require.Equal(t, []Match{{Trigger: ":d", Replace: "default"}}, m.Matches(Window{}))
	require.True(t, m.IsEnabled(Window{Class: "kitty"}))
	require.False(t, m.IsEnabled(Window{Title: "Firefox"}))
	require.Equal(t, "default", m.DefaultConfig().Name)
}

func TestManager_InvalidFilterIsIgnored(t *testing.T) {
	bad := CreateDefaultConfig()
	bad.Name = "bad"
	bad.FilterTitle = "([unclosed"

	var logs bytes.Buffer
	m := NewManager(&ConfigSet{Default: CreateDefaultConfig(), Specific: []*Config{bad}}, WithLogger(zerolog.New(&logs)))

	require.Equal(t, DefaultName, m.ActiveConfig(Window{Title: "([unclosed"}).Name)
	require.Contains(t, logs.String(), "invalid filter expression")
	require.Contains(t, logs.String(), "filter_title")
}

func TestManager_FromLoadedSet(t *testing.T) {
	configDir, packageDir := newTestDirs(t, testDefaultContent)
	writeUserConfig(t, configDir, "terminal.yml", `
name: terminal
filter_class: Terminal
matches:
  - trigger: ":lol"
    replace: "terminal lol"
`)

	set, err := Load(configDir, packageDir)
	require.NoError(t, err)
	m := NewManager(set)

	active := m.ActiveConfig(Window{Class: "Gnome-Terminal"})
	require.Equal(t, "terminal", active.Name)
	require.True(t, hasMatch(active.Matches, ":lol", "terminal lol"))
	require.True(t, hasMatch(active.Matches, ":yess", "Bob"))
}
