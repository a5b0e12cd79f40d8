package config

import "runtime"

const (
	// DefaultConfigFileName is the reserved name of the default document at
	// the top level of the config directory.
	DefaultConfigFileName = "default.yml"

	// UserConfigsFolderName is the config-directory subfolder holding
	// user-authored documents.
	UserConfigsFolderName = "user"

	// ConfigFileExtension is the only extension considered during discovery.
	ConfigFileExtension = ".yml"

	// ParentSelf is the parent sentinel marking a root document.
	ParentSelf = "self"

	// DefaultName is the name a document carries when it does not declare one.
	DefaultName = "default"
)

// Documented defaults for every optional field.
const (
	DefaultLogLevel              = 0
	DefaultIPCServerPort         = 34982
	DefaultUseSystemAgent        = true
	DefaultConfigCachingInterval = 800
	DefaultToggleKey             = KeyModifierAlt
	DefaultToggleInterval        = uint32(230)
	DefaultBackspaceLimit        = 3
)

// DefaultWordSeparators returns the characters that end a word when the
// document does not override them.
func DefaultWordSeparators() Separators {
	return Separators{' ', ',', '.', '\r', '\n', rune(22)}
}

// DefaultBackend returns the backend used on the running platform.
func DefaultBackend() Backend {
	return defaultBackendFor(runtime.GOOS)
}

// The inject backend misbehaves on Linux, so Clipboard is preferred there.
func defaultBackendFor(goos string) Backend {
	if goos == "linux" {
		return BackendClipboard
	}
	return BackendInject
}

// CreateDefaultConfig returns a Config with every field set to its
// documented default.
func CreateDefaultConfig() *Config {
	return &Config{
		Name:                  DefaultName,
		Parent:                ParentSelf,
		LogLevel:              DefaultLogLevel,
		IPCServerPort:         DefaultIPCServerPort,
		UseSystemAgent:        DefaultUseSystemAgent,
		ConfigCachingInterval: DefaultConfigCachingInterval,
		WordSeparators:        DefaultWordSeparators(),
		ToggleKey:             DefaultToggleKey,
		ToggleInterval:        DefaultToggleInterval,
		BackspaceLimit:        DefaultBackspaceLimit,
		Backend:               DefaultBackend(),
		Matches:               []Match{},
	}
}
