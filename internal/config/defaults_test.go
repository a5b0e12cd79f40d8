package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateDefaultConfig_Values(t *testing.T) {
	cfg := CreateDefaultConfig()

	require.Equal(t, "default", cfg.Name)
	require.Equal(t, "self", cfg.Parent)
	require.True(t, cfg.IsRoot())
	require.Equal(t, "", cfg.FilterTitle)
	require.Equal(t, "", cfg.FilterClass)
	require.Equal(t, "", cfg.FilterExec)
	require.False(t, cfg.Disabled)
	require.Equal(t, 0, cfg.LogLevel)
	require.Equal(t, 34982, cfg.IPCServerPort)
	require.True(t, cfg.UseSystemAgent)
	require.Equal(t, 800, cfg.ConfigCachingInterval)
	require.Equal(t, Separators{' ', ',', '.', '\r', '\n', rune(22)}, cfg.WordSeparators)
	require.Equal(t, KeyModifierAlt, cfg.ToggleKey)
	require.Equal(t, uint32(230), cfg.ToggleInterval)
	require.Equal(t, 3, cfg.BackspaceLimit)
	require.Equal(t, DefaultBackend(), cfg.Backend)
	require.False(t, cfg.ForceAlternativePasteShortcut)
	require.False(t, cfg.ExcludeDefaultMatches)
	require.NotNil(t, cfg.Matches)
	require.Empty(t, cfg.Matches)
}

func TestCreateDefaultConfig_ReturnsFreshCopies(t *testing.T) {
	a := CreateDefaultConfig()
	b := CreateDefaultConfig()
	a.WordSeparators[0] = 'x'
	a.Matches = append(a.Matches, Match{Trigger: "t", Replace: "r"})

	require.Equal(t, ' ', b.WordSeparators[0])
	require.Empty(t, b.Matches)
}

func TestDefaultBackendFor(t *testing.T) {
	tests := []struct {
		goos     string
		expected Backend
	}{
		{"linux", BackendClipboard},
		{"darwin", BackendInject},
		{"windows", BackendInject},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			require.Equal(t, tt.expected, defaultBackendFor(tt.goos))
		})
	}
}

func TestDefaultConfig_PassesUserValidation(t *testing.T) {
	require.True(t, CreateDefaultConfig().ValidateUserDefined())
}
