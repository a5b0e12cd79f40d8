package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// KeyModifier identifies the key used to toggle expansion on and off.
type KeyModifier int

const (
	KeyModifierAlt KeyModifier = iota
	KeyModifierCtrl
	KeyModifierShift
	KeyModifierMeta
	KeyModifierBackspace
	KeyModifierOff
)

func (k KeyModifier) String() string {
	switch k {
	case KeyModifierAlt:
		return "ALT"
	case KeyModifierCtrl:
		return "CTRL"
	case KeyModifierShift:
		return "SHIFT"
	case KeyModifierMeta:
		return "META"
	case KeyModifierBackspace:
		return "BACKSPACE"
	case KeyModifierOff:
		return "OFF"
	default:
		return "Unknown"
	}
}

// ParseKeyModifier parses a toggle key name. Matching is case-insensitive.
func ParseKeyModifier(s string) (KeyModifier, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ALT":
		return KeyModifierAlt, nil
	case "CTRL":
		return KeyModifierCtrl, nil
	case "SHIFT":
		return KeyModifierShift, nil
	case "META", "CMD":
		return KeyModifierMeta, nil
	case "BACKSPACE":
		return KeyModifierBackspace, nil
	case "OFF":
		return KeyModifierOff, nil
	default:
		return 0, fmt.Errorf("unknown toggle key %q", s)
	}
}

// Backend is the text-injection strategy used by the expansion engine.
type Backend int

const (
	BackendInject Backend = iota
	BackendClipboard
)

func (b Backend) String() string {
	switch b {
	case BackendInject:
		return "Inject"
	case BackendClipboard:
		return "Clipboard"
	default:
		return "Unknown"
	}
}

// ParseBackend parses a backend name. Matching is case-insensitive.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inject":
		return BackendInject, nil
	case "clipboard":
		return BackendClipboard, nil
	default:
		return 0, fmt.Errorf("unknown backend %q", s)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for KeyModifier.
func (k *KeyModifier) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseKeyModifier(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*k = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for KeyModifier.
func (k KeyModifier) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Backend.
func (b *Backend) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseBackend(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*b = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for Backend.
func (b Backend) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// Separators is the set of characters that terminate a word.
// In YAML it is written as a list of single-character strings.
type Separators []rune

// UnmarshalYAML implements yaml.Unmarshaler for Separators.
func (s *Separators) UnmarshalYAML(value *yaml.Node) error {
	var raw []string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	out := make(Separators, 0, len(raw))
	for _, item := range raw {
		runes := []rune(item)
		if len(runes) != 1 {
			return fmt.Errorf("line %d: word separator %q must be exactly one character", value.Line, item)
		}
		out = append(out, runes[0])
	}
	*s = out
	return nil
}

// MarshalYAML implements yaml.Marshaler for Separators.
func (s Separators) MarshalYAML() (any, error) {
	return s.strings(), nil
}

// MarshalJSON implements json.Marshaler for Separators.
func (s Separators) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.strings())
}

func (s Separators) strings() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = string(r)
	}
	return out
}

// Equal reports whether both separator lists hold the same characters in
// the same order.
func (s Separators) Equal(other Separators) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
