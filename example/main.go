// Example program demonstrating the matchconf library API.
//
// Run from the repo root:
//
//	go run ./example/
//
// Point it at a configuration with MATCHCONF_CONFIG_DIR and
// MATCHCONF_PACKAGE_DIR; otherwise the per-user directories are used and
// created on first run.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/MyCarrier-DevOps/go-matchconf/pkg/matchconf"
)

func main() {
	set, err := matchconf.Resolve(matchconf.Options{Bootstrap: true, Parallelism: 4})
	if err != nil {
		log.Fatalf("resolving configuration failed: %v", err)
	}

	printConfig("Default", set.Default)
	for _, cfg := range set.Specific {
		printConfig("Specific", cfg)
	}

	window := matchconf.Window{Title: os.Getenv("WINDOW_TITLE"), Class: os.Getenv("WINDOW_CLASS")}
	active := matchconf.NewManager(set).ActiveConfig(window)
	fmt.Printf("=== Active for %+v: %s ===\n", window, active.Name)
}

func printConfig(label string, cfg *matchconf.Config) {
	fmt.Printf("=== %s: %s ===\n", label, cfg.Name)
	for _, m := range cfg.Matches {
		fmt.Printf("  %-20s %q\n", m.Trigger, m.Replace)
	}
}
