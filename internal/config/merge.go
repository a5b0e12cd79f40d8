package config

// mergeChild folds a reduced child into cfg. The child's rules come first and
// win every trigger they define; the rest of cfg's rules follow. No other
// field of cfg changes.
func (cfg *Config) mergeChild(child *Config) {
	triggers := triggerSet(child.Matches)
	merged := make([]Match, 0, len(child.Matches)+len(cfg.Matches))
	merged = append(merged, child.Matches...)
	for _, m := range cfg.Matches {
		if _, ok := triggers[m.Trigger]; !ok {
			merged = append(merged, m)
		}
	}
	cfg.Matches = merged
}

// mergeDefault appends the default's rules whose trigger cfg does not
// already define.
func (cfg *Config) mergeDefault(def *Config) {
	triggers := triggerSet(cfg.Matches)
	merged := cloneMatches(cfg.Matches)
	for _, m := range def.Matches {
		if _, ok := triggers[m.Trigger]; !ok {
			merged = append(merged, m)
		}
	}
	cfg.Matches = merged
}
