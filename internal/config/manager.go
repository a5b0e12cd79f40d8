package config

import (
	"regexp"

	"github.com/rs/zerolog"
)

// Window describes the focused application used to pick the active config.
type Window struct {
	Title string
	Exec  string
	Class string
}

type compiledFilters struct {
	title *regexp.Regexp
	exec  *regexp.Regexp
	class *regexp.Regexp
}

// Manager selects the active configuration of a ConfigSet for a window.
type Manager struct {
	set     *ConfigSet
	filters []compiledFilters
}

// NewManager compiles the window filters of every specific config. Invalid
// filter expressions are logged and treated as absent.
func NewManager(set *ConfigSet, opts ...Option) *Manager {
	s := newSettings(opts)
	m := &Manager{
		set:     set,
		filters: make([]compiledFilters, len(set.Specific)),
	}
	for i, cfg := range set.Specific {
		m.filters[i] = compiledFilters{
			title: compileFilter(s.logger, cfg, "filter_title", cfg.FilterTitle),
			exec:  compileFilter(s.logger, cfg, "filter_exec", cfg.FilterExec),
			class: compileFilter(s.logger, cfg, "filter_class", cfg.FilterClass),
		}
	}
	return m
}

func compileFilter(logger zerolog.Logger, cfg *Config, field, expr string) *regexp.Regexp {
	if expr == "" {
		return nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("config", cfg.Name).
			Str("field", field).
			Msg("invalid filter expression, ignoring")
		return nil
	}
	return re
}

// ActiveConfig returns the config for w. Title filters are checked first
// across all specific configs, then exec filters, then class filters; the
// first match in config order wins. Without a match the default is returned.
func (m *Manager) ActiveConfig(w Window) *Config {
	pick := []func(compiledFilters) (*regexp.Regexp, string){
		func(f compiledFilters) (*regexp.Regexp, string) { return f.title, w.Title },
		func(f compiledFilters) (*regexp.Regexp, string) { return f.exec, w.Exec },
		func(f compiledFilters) (*regexp.Regexp, string) { return f.class, w.Class },
	}
	for _, get := range pick {
		for i, f := range m.filters {
			re, value := get(f)
			if re != nil && re.MatchString(value) {
				return m.set.Specific[i]
			}
		}
	}
	return m.set.Default
}

// DefaultConfig returns the default configuration.
func (m *Manager) DefaultConfig() *Config {
	return m.set.Default
}

// Matches returns the rules of the active config for w.
func (m *Manager) Matches(w Window) []Match {
	return m.ActiveConfig(w).Matches
}

// IsEnabled reports whether expansion is enabled for w.
func (m *Manager) IsEnabled(w Window) bool {
	return !m.ActiveConfig(w).Disabled
}
