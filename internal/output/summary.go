package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/MyCarrier-DevOps/go-matchconf/internal/config"
)

// WriteSummary writes one line per configuration of set: the default first,
// then every specific configuration in resolution order.
func WriteSummary(w io.Writer, set *config.ConfigSet) error {
	if _, err := fmt.Fprintln(w, "Default configuration:"); err != nil {
		return err
	}
	if err := writeConfigLine(w, set.Default, true); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Specific configurations: %d\n", len(set.Specific)); err != nil {
		return err
	}
	for _, cfg := range set.Specific {
		if err := writeConfigLine(w, cfg, false); err != nil {
			return err
		}
	}
	return nil
}

func writeConfigLine(w io.Writer, cfg *config.Config, isDefault bool) error {
	details := []string{fmt.Sprintf("%d matches", len(cfg.Matches))}
	if isDefault {
		details = append(details,
			"backend: "+cfg.Backend.String(),
			"toggle_key: "+cfg.ToggleKey.String(),
		)
	}
	for _, f := range []struct{ key, value string }{
		{"filter_title", cfg.FilterTitle},
		{"filter_exec", cfg.FilterExec},
		{"filter_class", cfg.FilterClass},
	} {
		if f.value != "" {
			details = append(details, fmt.Sprintf("%s: %q", f.key, f.value))
		}
	}
	if cfg.ExcludeDefaultMatches {
		details = append(details, "excludes default matches")
	}
	if cfg.Disabled {
		details = append(details, "disabled")
	}

	_, err := fmt.Fprintf(w, "  %-22s (%s)\n", cfg.Name, strings.Join(details, ", "))
	return err
}

// WriteMatches writes the rules as trigger and quoted replacement pairs, in
// rule order.
func WriteMatches(w io.Writer, matches []config.Match) error {
	for _, m := range matches {
		flags := ""
		if m.Word {
			flags += " [word]"
		}
		if m.PropagateCase {
			flags += " [propagate_case]"
		}
		if _, err := fmt.Fprintf(w, "  %-22s => %q%s\n", m.Trigger, m.Replace, flags); err != nil {
			return err
		}
	}
	return nil
}
