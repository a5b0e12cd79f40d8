package config

import "strings"

// reservedField pairs a root-only field with a check that it still holds
// its documented default.
type reservedField struct {
	name      string
	isDefault func(cfg *Config) bool
}

// reservedFields may only carry a non-default value in the default document.
var reservedFields = []reservedField{
	{"config_caching_interval", func(c *Config) bool { return c.ConfigCachingInterval == DefaultConfigCachingInterval }},
	{"log_level", func(c *Config) bool { return c.LogLevel == DefaultLogLevel }},
	{"toggle_key", func(c *Config) bool { return c.ToggleKey == DefaultToggleKey }},
	{"toggle_interval", func(c *Config) bool { return c.ToggleInterval == DefaultToggleInterval }},
	{"backspace_limit", func(c *Config) bool { return c.BackspaceLimit == DefaultBackspaceLimit }},
	{"ipc_server_port", func(c *Config) bool { return c.IPCServerPort == DefaultIPCServerPort }},
	{"use_system_agent", func(c *Config) bool { return c.UseSystemAgent == DefaultUseSystemAgent }},
}

// ReservedFieldNames returns the names of every root-only field.
func ReservedFieldNames() []string {
	names := make([]string, len(reservedFields))
	for i, f := range reservedFields {
		names[i] = f.name
	}
	return names
}

// ReservedViolations returns every root-only field that cfg sets to a
// non-default value, in table order.
func (cfg *Config) ReservedViolations() []string {
	var violations []string
	for _, f := range reservedFields {
		if !f.isDefault(cfg) {
			violations = append(violations, f.name)
		}
	}
	return violations
}

// ValidateUserDefined reports whether cfg is acceptable as a non-default
// document, i.e. it leaves every root-only field at its default.
func (cfg *Config) ValidateUserDefined() bool {
	return len(cfg.ReservedViolations()) == 0
}

// CheckReserved returns an ErrInvalidParameter LoadError listing every
// root-only field cfg sets, or nil when it sets none.
func (cfg *Config) CheckReserved() error {
	violations := cfg.ReservedViolations()
	if len(violations) == 0 {
		return nil
	}
	return &LoadError{
		Kind:   ErrInvalidParameter,
		Path:   cfg.SourcePath,
		Detail: strings.Join(violations, ", "),
	}
}
