// Package matchconf provides a public Go API for resolving hierarchical
// text-expansion configuration and for installing configuration packages.
//
// Basic usage:
//
//	set, err := matchconf.Resolve(matchconf.Options{
//	    ConfigDir:  "/home/me/.config/matchconf",
//	    PackageDir: "/home/me/.local/share/matchconf/packages",
//	})
//	manager := matchconf.NewManager(set)
//	active := manager.ActiveConfig(matchconf.Window{Class: "kitty"})
//	fmt.Println(active.Name, len(active.Matches))
//
//	err = matchconf.InstallPackage(ctx, matchconf.PackageOptions{
//	    Name:   "emoji",
//	    GitURL: "https://github.com/acme/emoji-package.git",
//	})
package matchconf

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/MyCarrier-DevOps/go-matchconf/internal/config"
	ghprovider "github.com/MyCarrier-DevOps/go-matchconf/internal/github"
	"github.com/MyCarrier-DevOps/go-matchconf/internal/layout"
	"github.com/MyCarrier-DevOps/go-matchconf/internal/packages"
)

type (
	// Config is one resolved configuration.
	Config = config.Config
	// Match is a single trigger/replacement rule.
	Match = config.Match
	// ConfigSet holds the default configuration and the specific ones.
	ConfigSet = config.ConfigSet
	// Manager selects the active configuration for a window.
	Manager = config.Manager
	// Window describes the focused application.
	Window = config.Window
	// LoadError is the error type returned by Resolve.
	LoadError = config.LoadError
)

// Error kinds, usable with errors.Is.
var (
	ErrFileNotFound                = config.ErrFileNotFound
	ErrUnableToReadFile            = config.ErrUnableToReadFile
	ErrInvalidSyntax               = config.ErrInvalidSyntax
	ErrInvalidConfigDirectory      = config.ErrInvalidConfigDirectory
	ErrInvalidParameter            = config.ErrInvalidParameter
	ErrNameDuplicate               = config.ErrNameDuplicate
	ErrUnableToCreateDefaultConfig = config.ErrUnableToCreateDefaultConfig
	ErrParentCycle                 = config.ErrParentCycle
)

// Options configures Resolve.
type Options struct {
	// ConfigDir holds default.yml and the user subdirectory. Falls back to
	// MATCHCONF_CONFIG_DIR, then the platform config directory.
	ConfigDir string

	// PackageDir holds installed packages. Falls back to
	// MATCHCONF_PACKAGE_DIR, then the platform data directory.
	PackageDir string

	// Bootstrap creates missing directories and the default document
	// before loading.
	Bootstrap bool

	// Parallelism is the number of documents parsed concurrently.
	// Values below 2 load sequentially.
	Parallelism int

	// Logger receives warnings and validation diagnostics. Nil discards them.
	Logger *zerolog.Logger
}

// Resolve loads and merges every configuration document.
func Resolve(opts Options) (*ConfigSet, error) {
	loadOpts := []config.Option{config.WithParallelism(opts.Parallelism)}
	if opts.Logger != nil {
		loadOpts = append(loadOpts, config.WithLogger(*opts.Logger))
	}

	if opts.Bootstrap {
		set, _, err := layout.LoadDefault(opts.ConfigDir, opts.PackageDir, loadOpts...)
		return set, err
	}

	dirs, err := layout.Resolve(opts.ConfigDir, opts.PackageDir)
	if err != nil {
		return nil, err
	}
	return config.Load(dirs.ConfigDir, dirs.PackageDir, loadOpts...)
}

// NewManager returns a Manager for set.
func NewManager(set *ConfigSet) *Manager {
	return config.NewManager(set)
}

// PackageOptions configures InstallPackage.
type PackageOptions struct {
	// Name is the directory the package is installed as (required).
	Name string

	// PackageDir overrides the resolved package directory.
	PackageDir string

	// ConfigDir overrides the resolved config directory, whose documents
	// are checked for names the package would duplicate.
	ConfigDir string

	// GitURL clones the package with git. Exclusive with GitHub.
	GitURL string

	// GitHub downloads the package documents of "owner/repo[/path]" through
	// the GitHub contents API. Exclusive with GitURL.
	GitHub string

	// Ref is a branch or full reference. Empty means the default branch.
	Ref string

	// Depth limits the git clone history. Zero clones everything.
	Depth int

	// Token is a GitHub token for GitHub sources. Falls back to GITHUB_TOKEN;
	// without one public repositories are read anonymously.
	Token string

	// BaseURL is a custom GitHub API base URL for GitHub Enterprise.
	BaseURL string
}

// InstallPackage installs a package into the package directory.
func InstallPackage(ctx context.Context, opts PackageOptions) error {
	if (opts.GitURL == "") == (opts.GitHub == "") {
		return errors.New("exactly one of GitURL or GitHub is required")
	}

	dirs, err := layout.Resolve(opts.ConfigDir, opts.PackageDir)
	if err != nil {
		return err
	}

	var src packages.Source
	if opts.GitURL != "" {
		src = &packages.GitSource{URL: opts.GitURL, Ref: opts.Ref, Depth: opts.Depth}
	} else {
		ghSrc, err := ghprovider.ParseSource(opts.GitHub)
		if err != nil {
			return err
		}
		ghSrc.Ref = opts.Ref
		client, err := ghprovider.NewClient(ctx, ghprovider.ClientConfig{
			Token:     opts.Token,
			BaseURL:   opts.BaseURL,
			Owner:     ghSrc.Owner,
			Anonymous: true,
		})
		if err != nil {
			return fmt.Errorf("creating GitHub client: %w", err)
		}
		src = ghprovider.NewFetcher(client, ghSrc)
	}

	return packages.NewInstaller(dirs.PackageDir, packages.WithConfigDir(dirs.ConfigDir)).Install(ctx, opts.Name, src)
}

// ListPackages returns the installed package names, sorted.
func ListPackages(packageDir string) ([]string, error) {
	dirs, err := layout.Resolve("", packageDir)
	if err != nil {
		return nil, err
	}
	return packages.NewInstaller(dirs.PackageDir).List()
}

// RemovePackage deletes an installed package.
func RemovePackage(packageDir, name string) error {
	dirs, err := layout.Resolve("", packageDir)
	if err != nil {
		return err
	}
	return packages.NewInstaller(dirs.PackageDir).Remove(name)
}
