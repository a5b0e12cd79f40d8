// Package config provides YAML configuration loading, reserved-field
// validation, parent/child tree reduction, and active configuration
// selection for matchconf.
package config

// Config is one configuration document after parsing. Every field not present
// in the document holds its documented default (see CreateDefaultConfig).
type Config struct {
	Name        string `yaml:"name" json:"name"`
	Parent      string `yaml:"parent" json:"parent"`
	FilterTitle string `yaml:"filter_title" json:"filter_title"`
	FilterClass string `yaml:"filter_class" json:"filter_class"`
	FilterExec  string `yaml:"filter_exec" json:"filter_exec"`
	Disabled    bool   `yaml:"disabled" json:"disabled"`

	LogLevel              int         `yaml:"log_level" json:"log_level"`
	IPCServerPort         int         `yaml:"ipc_server_port" json:"ipc_server_port"`
	UseSystemAgent        bool        `yaml:"use_system_agent" json:"use_system_agent"`
	ConfigCachingInterval int         `yaml:"config_caching_interval" json:"config_caching_interval"`
	WordSeparators        Separators  `yaml:"word_separators" json:"word_separators"`
	ToggleKey             KeyModifier `yaml:"toggle_key" json:"toggle_key"`
	ToggleInterval        uint32      `yaml:"toggle_interval" json:"toggle_interval"`
	BackspaceLimit        int         `yaml:"backspace_limit" json:"backspace_limit"`

	Backend                       Backend `yaml:"backend" json:"backend"`
	ForceAlternativePasteShortcut bool    `yaml:"force_alternative_paste_shortcut" json:"force_alternative_paste_shortcut"`
	ExcludeDefaultMatches         bool    `yaml:"exclude_default_matches" json:"exclude_default_matches"`

	Matches []Match `yaml:"matches" json:"matches"`

	// SourcePath is the file the document was loaded from.
	SourcePath string `yaml:"-" json:"source_path,omitempty"`
}

// IsRoot reports whether the document starts its own merge tree.
func (cfg *Config) IsRoot() bool {
	return cfg.Parent == ParentSelf
}

// ConfigSet is the resolved output of Load: the default configuration and
// every other resolved root, in first-encounter order. Consumers must treat
// it as read-only.
type ConfigSet struct {
	Default  *Config   `yaml:"default" json:"default"`
	Specific []*Config `yaml:"specific" json:"specific"`
}

// All returns the default configuration followed by the specific ones.
func (s *ConfigSet) All() []*Config {
	out := make([]*Config, 0, len(s.Specific)+1)
	out = append(out, s.Default)
	return append(out, s.Specific...)
}
