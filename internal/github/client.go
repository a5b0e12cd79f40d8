// Package github fetches packages from GitHub repositories through the
// contents API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// ClientConfig holds the configuration for creating a GitHub API client.
type ClientConfig struct {
	// Token is a GitHub personal access token or GITHUB_TOKEN.
	// Falls back to GITHUB_TOKEN env var if empty.
	Token string

	// AppID is the GitHub App ID for app authentication.
	// Falls back to GH_APP_ID env var if zero.
	AppID int64

	// AppKey is the GitHub App private key PEM content.
	// Falls back to GH_APP_PRIVATE_KEY env var if empty.
	AppKey string

	// AppKeyPath is the path to a GitHub App private key PEM file.
	// Falls back to GH_APP_PRIVATE_KEY_PATH env var if empty.
	AppKeyPath string

	// BaseURL is a custom GitHub API base URL for GitHub Enterprise.
	// Falls back to GITHUB_API_URL env var if empty.
	BaseURL string

	// Owner is the repository owner, used for auto-detecting the app installation.
	Owner string

	// Anonymous allows an unauthenticated client when no credentials are
	// found. Public repositories can be read this way at a low rate limit.
	Anonymous bool
}

// NewClient creates a GitHub API client.
// Auth resolution order: Token flag → GITHUB_TOKEN env → App credentials →
// anonymous (if allowed) → error.
func NewClient(ctx context.Context, cfg ClientConfig) (*gh.Client, error) {
	baseURL := ResolveBaseURL(cfg.BaseURL)

	if token := resolveString(cfg.Token, "GITHUB_TOKEN"); token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		return withBaseURL(gh.NewClient(oauth2.NewClient(ctx, ts)), baseURL)
	}

	appID := cfg.AppID
	if appID == 0 {
		if s := os.Getenv("GH_APP_ID"); s != "" {
			if v, err := strconv.ParseInt(s, 10, 64); err == nil {
				appID = v
			}
		}
	}
	key := appKey{
		pem:  resolveString(cfg.AppKey, "GH_APP_PRIVATE_KEY"),
		path: resolveString(cfg.AppKeyPath, "GH_APP_PRIVATE_KEY_PATH"),
	}
	if appID != 0 && !key.empty() {
		return newAppClient(ctx, appID, key, cfg.Owner, baseURL)
	}

	if cfg.Anonymous {
		return withBaseURL(gh.NewClient(nil), baseURL)
	}

	return nil, errors.New("no GitHub authentication provided: set GITHUB_TOKEN, use --token, or provide --github-app-id and --github-app-key")
}

// appKey is a GitHub App private key given either inline or as a file.
type appKey struct {
	pem  string
	path string
}

func (k appKey) empty() bool {
	return k.pem == "" && k.path == ""
}

func (k appKey) appsTransport(appID int64) (*ghinstallation.AppsTransport, error) {
	if k.pem != "" {
		return ghinstallation.NewAppsTransport(http.DefaultTransport, appID, []byte(k.pem))
	}
	return ghinstallation.NewAppsTransportKeyFromFile(http.DefaultTransport, appID, k.path)
}

func (k appKey) installationTransport(appID, installationID int64) (*ghinstallation.Transport, error) {
	if k.pem != "" {
		return ghinstallation.New(http.DefaultTransport, appID, installationID, []byte(k.pem))
	}
	return ghinstallation.NewKeyFromFile(http.DefaultTransport, appID, installationID, k.path)
}

func newAppClient(ctx context.Context, appID int64, key appKey, owner, baseURL string) (*gh.Client, error) {
	// Create an app-level transport to discover the installation ID.
	appTransport, err := key.appsTransport(appID)
	if err != nil {
		return nil, fmt.Errorf("creating GitHub App transport: %w", err)
	}
	if baseURL != "" {
		appTransport.BaseURL = baseURL
	}

	appClient, err := withBaseURL(gh.NewClient(&http.Client{Transport: appTransport}), baseURL)
	if err != nil {
		return nil, err
	}

	installationID, err := findInstallation(ctx, appClient, owner)
	if err != nil {
		return nil, err
	}

	installTransport, err := key.installationTransport(appID, installationID)
	if err != nil {
		return nil, fmt.Errorf("creating installation transport: %w", err)
	}
	if baseURL != "" {
		installTransport.BaseURL = baseURL
	}

	return withBaseURL(gh.NewClient(&http.Client{Transport: installTransport}), baseURL)
}

func withBaseURL(client *gh.Client, baseURL string) (*gh.Client, error) {
	if baseURL == "" {
		return client, nil
	}
	c, err := client.WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, fmt.Errorf("setting enterprise URL: %w", err)
	}
	return c, nil
}

// findInstallation finds the GitHub App installation for the given owner.
func findInstallation(ctx context.Context, client *gh.Client, owner string) (int64, error) {
	opts := &gh.ListOptions{PerPage: 100}

	for {
		installations, resp, err := client.Apps.ListInstallations(ctx, opts)
		if err != nil {
			return 0, fmt.Errorf("listing GitHub App installations: %w", err)
		}

		for _, inst := range installations {
			if inst.GetAccount().GetLogin() == owner {
				return inst.GetID(), nil
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return 0, fmt.Errorf("no GitHub App installation found for owner %q", owner)
}

// IsNotFoundError returns true if the error represents an HTTP 404 response
// from the GitHub API.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}

// resolveString returns the flag value if non-empty, otherwise the env var value.
func resolveString(flag, envKey string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(envKey)
}

// ResolveBaseURL resolves the GitHub API base URL from the flag value or
// the GITHUB_API_URL environment variable. Returns empty string for github.com.
func ResolveBaseURL(flagValue string) string {
	return resolveString(flagValue, "GITHUB_API_URL")
}
