package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	ghprovider "github.com/MyCarrier-DevOps/go-matchconf/internal/github"
	"github.com/MyCarrier-DevOps/go-matchconf/internal/layout"
	"github.com/MyCarrier-DevOps/go-matchconf/internal/packages"
)

var (
	flagGitURL     string
	flagGitHubRepo string
	flagRef        string
	flagDepth      int
	flagToken      string
	flagAppID      int64
	flagAppKey     string
	flagAppKeyPath string
	flagGitHubURL  string
)

var packageCmd = &cobra.Command{
	Use:   "package",
	Short: "Install, list and remove packages",
}

var packageInstallCmd = &cobra.Command{
	Use:   "install name",
	Short: "Install a package from a git repository or from GitHub",
	Long: `Install fetches a package into the package directory. The package is
validated before it is moved into place: every document must parse, none
may set a reserved field and none may reuse a name already declared by the
configuration or another package. A failed install leaves nothing behind.

Sources (exactly one):
  --git URL               clone any git repository with go-git
  --github owner/repo[/path]
                          download the .yml documents of a repository
                          directory through the GitHub contents API

GitHub authentication (checked in order, anonymous access otherwise):
  1. --token flag or GITHUB_TOKEN env var
  2. --github-app-id + --github-app-key (PEM content) or GH_APP_ID + GH_APP_PRIVATE_KEY env vars
  3. --github-app-id + --github-app-key-path (PEM file) or GH_APP_ID + GH_APP_PRIVATE_KEY_PATH env vars

Examples:
  matchconf package install emoji --git https://github.com/acme/emoji-package.git
  matchconf package install emoji --git https://github.com/acme/emoji-package.git --ref refs/tags/v1.2.0
  matchconf package install greek --github acme/hub/packages/greek --ref main`,
	Args: cobra.ExactArgs(1),
	RunE: packageInstallRunE,
}

var packageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed packages",
	Args:  cobra.NoArgs,
	RunE:  packageListRunE,
}

var packageRemoveCmd = &cobra.Command{
	Use:   "remove name",
	Short: "Remove an installed package",
	Args:  cobra.ExactArgs(1),
	RunE:  packageRemoveRunE,
}

func init() {
	f := packageInstallCmd.Flags()
	f.StringVar(&flagGitURL, "git", "", "git repository URL to clone")
	f.StringVar(&flagGitHubRepo, "github", "", "GitHub source as owner/repo[/path]")
	f.StringVar(&flagRef, "ref", "", "branch, or full reference such as refs/tags/v1.0.0 (default: repository default branch)")
	f.IntVar(&flagDepth, "depth", 1, "clone depth for --git, 0 for full history")
	f.StringVar(&flagToken, "token", "", "GitHub token (or set GITHUB_TOKEN env var)")
	f.Int64Var(&flagAppID, "github-app-id", 0, "GitHub App ID (or set GH_APP_ID env var)")
	f.StringVar(&flagAppKey, "github-app-key", "", "GitHub App private key PEM content (or set GH_APP_PRIVATE_KEY env var)")
	f.StringVar(&flagAppKeyPath, "github-app-key-path", "", "path to GitHub App private key PEM file (or set GH_APP_PRIVATE_KEY_PATH env var)")
	f.StringVar(&flagGitHubURL, "github-url", "", "GitHub API base URL for GitHub Enterprise (or set GITHUB_API_URL env var)")
	packageInstallCmd.MarkFlagsMutuallyExclusive("git", "github")
	packageInstallCmd.MarkFlagsOneRequired("git", "github")

	packageCmd.AddCommand(packageInstallCmd, packageListCmd, packageRemoveCmd)
	rootCmd.AddCommand(packageCmd)
}

// newInstaller resolves the package directory and returns an installer for it.
func newInstaller(cmd *cobra.Command) (*packages.Installer, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}
	dirs, err := layout.Resolve(flagConfigDir, flagPackageDir)
	if err != nil {
		return nil, err
	}
	return packages.NewInstaller(dirs.PackageDir,
		packages.WithLogger(logger),
		packages.WithConfigDir(dirs.ConfigDir),
	), nil
}

func packageInstallRunE(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := packages.ValidateName(name); err != nil {
		return err
	}

	installer, err := newInstaller(cmd)
	if err != nil {
		return err
	}

	src, err := packageSource(cmd)
	if err != nil {
		return err
	}

	if err := installer.Install(cmd.Context(), name, src); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "installed package %s from %s\n", name, src)
	return err
}

// packageSource builds the source selected by --git or --github.
func packageSource(cmd *cobra.Command) (packages.Source, error) {
	if flagGitURL != "" {
		return &packages.GitSource{URL: flagGitURL, Ref: flagRef, Depth: flagDepth}, nil
	}
	if flagGitHubRepo == "" {
		return nil, errors.New("one of --git or --github is required")
	}

	src, err := ghprovider.ParseSource(flagGitHubRepo)
	if err != nil {
		return nil, err
	}
	src.Ref = flagRef

	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}

	client, err := ghprovider.NewClient(cmd.Context(), ghprovider.ClientConfig{
		Token:      flagToken,
		AppID:      flagAppID,
		AppKey:     flagAppKey,
		AppKeyPath: flagAppKeyPath,
		BaseURL:    flagGitHubURL,
		Owner:      src.Owner,
		Anonymous:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GitHub client: %w", err)
	}
	return ghprovider.NewFetcher(client, src, ghprovider.WithLogger(logger)), nil
}

func packageListRunE(cmd *cobra.Command, _ []string) error {
	installer, err := newInstaller(cmd)
	if err != nil {
		return err
	}
	names, err := installer.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagOutput == "json" || flagOutput == "yaml" {
		return writeOutput(out, names, nil)
	}
	if len(names) == 0 {
		_, err := fmt.Fprintln(out, "no packages installed")
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(out, name); err != nil {
			return err
		}
	}
	return nil
}

func packageRemoveRunE(cmd *cobra.Command, args []string) error {
	installer, err := newInstaller(cmd)
	if err != nil {
		return err
	}
	if err := installer.Remove(args[0]); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed package %s\n", args[0])
	return err
}
