// Package packages installs, lists and removes packages in the package
// directory. A package is a directory of configuration documents.
package packages

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/MyCarrier-DevOps/go-matchconf/internal/config"
)

var (
	ErrInvalidName  = errors.New("invalid package name")
	ErrExists       = errors.New("package already installed")
	ErrNotInstalled = errors.New("package not installed")
	ErrEmpty        = errors.New("package contains no configuration documents")
)

// stagingPrefix marks in-progress installs. The leading dot keeps List and
// the config collector out of them, including ones left by a crash.
const stagingPrefix = ".install-"

// Installer manages packages under Dir.
type Installer struct {
	dir       string
	configDir string
	logger    zerolog.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithLogger sets the logger used for install progress.
func WithLogger(logger zerolog.Logger) Option {
	return func(i *Installer) { i.logger = logger }
}

// WithConfigDir includes the documents of configDir when checking a new
// package for names that are already taken.
func WithConfigDir(configDir string) Option {
	return func(i *Installer) { i.configDir = configDir }
}

// NewInstaller creates an Installer for the package directory dir.
func NewInstaller(dir string, opts ...Option) *Installer {
	i := &Installer{dir: dir, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Dir returns the package directory.
func (i *Installer) Dir() string {
	return i.dir
}

// Install fetches src into <dir>/<name>. The package is staged in a
// temporary directory first and only moved into place once every document
// in it loads, leaves the reserved fields alone and declares a name no
// installed document uses, so a failed install leaves nothing behind.
func (i *Installer) Install(ctx context.Context, name string, src Source) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	target := filepath.Join(i.dir, name)
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, name)
	}

	if err := os.MkdirAll(i.dir, 0o755); err != nil {
		return fmt.Errorf("creating package directory: %w", err)
	}
	staging, err := os.MkdirTemp(i.dir, stagingPrefix+name+"-")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	i.logger.Info().Str("package", name).Str("source", src.String()).Msg("fetching package")
	if err := src.Fetch(ctx, staging); err != nil {
		return fmt.Errorf("fetching package %s: %w", name, err)
	}

	if err := os.RemoveAll(filepath.Join(staging, ".git")); err != nil {
		return fmt.Errorf("removing git metadata: %w", err)
	}

	count, err := i.validate(staging, target)
	if err != nil {
		return fmt.Errorf("validating package %s: %w", name, err)
	}

	if err := os.Rename(staging, target); err != nil {
		return fmt.Errorf("installing package %s: %w", name, err)
	}

	i.logger.Info().Str("package", name).Int("documents", count).Msg("package installed")
	return nil
}

// validate loads every document of the staged package and rejects reserved
// fields and taken names the same way a full configuration load would.
// Errors name documents by their final location under target.
func (i *Installer) validate(staging, target string) (int, error) {
	files := config.CollectFiles(i.logger, staging)
	if len(files) == 0 {
		return 0, ErrEmpty
	}

	taken := i.takenNames()
	for _, path := range files {
		cfg, err := config.LoadFromFile(path)
		if err != nil {
			return 0, err
		}
		if err := cfg.CheckReserved(); err != nil {
			return 0, err
		}
		if cfg.Name == config.DefaultName {
			continue
		}
		final := path
		if rel, relErr := filepath.Rel(staging, path); relErr == nil {
			final = filepath.Join(target, rel)
		}
		if existing, ok := taken[cfg.Name]; ok {
			return 0, &config.LoadError{Kind: config.ErrNameDuplicate, Path: final, Detail: existing}
		}
		taken[cfg.Name] = final
	}
	return len(files), nil
}

// takenNames maps every name declared by the default document, the user
// documents and the installed packages to the document declaring it.
// Documents that fail to load are skipped; the next full load reports them.
func (i *Installer) takenNames() map[string]string {
	taken := map[string]string{}
	var roots []string
	if i.configDir != "" {
		defaultPath := filepath.Join(i.configDir, config.DefaultConfigFileName)
		if def, err := config.LoadFromFile(defaultPath); err == nil {
			taken[def.Name] = defaultPath
		}
		roots = append(roots, filepath.Join(i.configDir, config.UserConfigsFolderName))
	}
	roots = append(roots, i.dir)

	for _, path := range config.CollectFiles(i.logger, roots...) {
		cfg, err := config.LoadFromFile(path)
		if err != nil {
			i.logger.Debug().Err(err).Str("path", path).Msg("skipping unreadable document in name check")
			continue
		}
		if cfg.Name != config.DefaultName {
			taken[cfg.Name] = path
		}
	}
	return taken
}

// List returns the names of installed packages, sorted.
func (i *Installer) List() ([]string, error) {
	entries, err := os.ReadDir(i.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading package directory: %w", err)
	}

	names := []string{}
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Remove deletes an installed package.
func (i *Installer) Remove(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	target := filepath.Join(i.dir, name)
	info, err := os.Stat(target)
	if errors.Is(err, os.ErrNotExist) || (err == nil && !info.IsDir()) {
		return fmt.Errorf("%w: %s", ErrNotInstalled, name)
	}
	if err != nil {
		return fmt.Errorf("checking package %s: %w", name, err)
	}

	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("removing package %s: %w", name, err)
	}
	i.logger.Info().Str("package", name).Msg("package removed")
	return nil
}

// ValidateName accepts a single, non-hidden path element.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q must not start with a dot", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`), filepath.Base(name) != name:
		return fmt.Errorf("%w: %q must be a single path element", ErrInvalidName, name)
	}
	return nil
}
