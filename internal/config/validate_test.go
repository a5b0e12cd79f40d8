package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateUserDefined_AllowsOrdinaryFields(t *testing.T) {
	cfg, err := LoadFromBytes("specific.yml", []byte(`
backend: Clipboard
filter_title: Editor
disabled: true
exclude_default_matches: true
`))
	require.NoError(t, err)
	require.True(t, cfg.ValidateUserDefined())
	require.Empty(t, cfg.ReservedViolations())
}

func TestValidateUserDefined_RejectsEachReservedField(t *testing.T) {
	tests := []struct {
		field string
		yaml  string
	}{
		{"config_caching_interval", "config_caching_interval: 100"},
		{"log_level", "log_level: 1"},
		{"toggle_key", "toggle_key: CTRL"},
		{"toggle_interval", "toggle_interval: 1000"},
		{"backspace_limit", "backspace_limit: 10"},
		{"ipc_server_port", "ipc_server_port: 1234"},
		{"use_system_agent", "use_system_agent: false"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			cfg, err := LoadFromBytes("specific.yml", []byte(tt.yaml))
			require.NoError(t, err)
			require.False(t, cfg.ValidateUserDefined())
			require.Equal(t, []string{tt.field}, cfg.ReservedViolations())
		})
	}
}

func TestReservedViolations_AccumulatesEveryField(t *testing.T) {
	cfg, err := LoadFromBytes("specific.yml", []byte(`
log_level: 3
backspace_limit: 1
use_system_agent: false
`))
	require.NoError(t, err)
	require.Equal(t, []string{"log_level", "backspace_limit", "use_system_agent"}, cfg.ReservedViolations())
}

func TestValidateUserDefined_ExplicitDefaultIsAllowed(t *testing.T) {
	cfg, err := LoadFromBytes("specific.yml", []byte("backspace_limit: 3\ntoggle_key: ALT\n"))
	require.NoError(t, err)
	require.True(t, cfg.ValidateUserDefined())
}

func TestReservedFieldNames(t *testing.T) {
	require.ElementsMatch(t, []string{
		"config_caching_interval", "log_level", "toggle_key", "toggle_interval",
		"backspace_limit", "ipc_server_port", "use_system_agent",
	}, ReservedFieldNames())
}

func TestCheckReserved(t *testing.T) {
	cfg := CreateDefaultConfig()
	cfg.SourcePath = "user/a.yml"
	require.NoError(t, cfg.CheckReserved())

	cfg.BackspaceLimit = 10
	cfg.LogLevel = 3
	err := cfg.CheckReserved()
	require.ErrorIs(t, err, ErrInvalidParameter)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	require.Equal(t, "user/a.yml", le.Path)
	require.Equal(t, "log_level, backspace_limit", le.Detail)
}
