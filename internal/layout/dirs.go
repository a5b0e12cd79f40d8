// Package layout locates the configuration and package directories and
// prepares them on first run.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the per-user directories.
const AppName = "matchconf"

// Environment variables that override the resolved directories.
const (
	EnvConfigDir  = "MATCHCONF_CONFIG_DIR"
	EnvPackageDir = "MATCHCONF_PACKAGE_DIR"
)

// Dirs holds the two directories a configuration set is loaded from.
type Dirs struct {
	ConfigDir  string
	PackageDir string
}

// Resolve computes the directories, preferring explicit values, then the
// environment, then the platform defaults.
func Resolve(configDir, packageDir string) (Dirs, error) {
	var err error
	dirs := Dirs{
		ConfigDir:  resolveString(configDir, EnvConfigDir),
		PackageDir: resolveString(packageDir, EnvPackageDir),
	}

	if dirs.ConfigDir == "" {
		dirs.ConfigDir, err = defaultConfigDir()
		if err != nil {
			return Dirs{}, err
		}
	}
	if dirs.PackageDir == "" {
		dirs.PackageDir, err = defaultPackageDir()
		if err != nil {
			return Dirs{}, err
		}
	}
	return dirs, nil
}

func defaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

func defaultPackageDir() (string, error) {
	if data := os.Getenv("XDG_DATA_HOME"); data != "" {
		return filepath.Join(data, AppName, "packages"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", AppName, "packages"), nil
}

// resolveString returns the flag value if non-empty, otherwise the env var value.
func resolveString(flag, envKey string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(envKey)
}
