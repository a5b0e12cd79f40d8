package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Match is a single trigger→replacement rule. Merging and overriding is keyed
// on the exact Trigger string.
type Match struct {
	Trigger       string          `yaml:"trigger" json:"trigger"`
	Replace       string          `yaml:"replace" json:"replace"`
	Word          bool            `yaml:"word,omitempty" json:"word,omitempty"`
	PropagateCase bool            `yaml:"propagate_case,omitempty" json:"propagate_case,omitempty"`
	PassiveOnly   bool            `yaml:"passive_only,omitempty" json:"passive_only,omitempty"`
	Vars          []MatchVariable `yaml:"vars,omitempty" json:"vars,omitempty"`
}

// MatchVariable is a named variable referenced by a replacement. Its
// evaluation belongs to the expansion engine; here it is carried verbatim.
type MatchVariable struct {
	Name   string         `yaml:"name" json:"name"`
	Type   string         `yaml:"type" json:"type"`
	Params map[string]any `yaml:"params,omitempty" json:"params,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler for Match, requiring both
// trigger and replace to be present.
func (m *Match) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Trigger       *string         `yaml:"trigger"`
		Replace       *string         `yaml:"replace"`
		Word          bool            `yaml:"word"`
		PropagateCase bool            `yaml:"propagate_case"`
		PassiveOnly   bool            `yaml:"passive_only"`
		Vars          []MatchVariable `yaml:"vars"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Trigger == nil || *raw.Trigger == "" {
		return fmt.Errorf("line %d: match is missing required field \"trigger\"", value.Line)
	}
	if raw.Replace == nil {
		return fmt.Errorf("line %d: match %q is missing required field \"replace\"", value.Line, *raw.Trigger)
	}

	*m = Match{
		Trigger:       *raw.Trigger,
		Replace:       *raw.Replace,
		Word:          raw.Word,
		PropagateCase: raw.PropagateCase,
		PassiveOnly:   raw.PassiveOnly,
		Vars:          raw.Vars,
	}
	return nil
}

// triggerSet returns the set of triggers defined by matches.
func triggerSet(matches []Match) map[string]struct{} {
	set := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		set[m.Trigger] = struct{}{}
	}
	return set
}
