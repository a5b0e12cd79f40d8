package github

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	gh "github.com/google/go-github/v68/github"
	"github.com/rs/zerolog"

	"github.com/MyCarrier-DevOps/go-matchconf/internal/config"
	"github.com/MyCarrier-DevOps/go-matchconf/internal/packages"
)

// Compile-time check that Fetcher implements packages.Source.
var _ packages.Source = (*Fetcher)(nil)

// ErrPathNotFound is returned when the package path does not exist in the
// repository.
var ErrPathNotFound = errors.New("package path not found in repository")

// Source identifies a directory (or single document) inside a repository.
type Source struct {
	Owner string
	Repo  string
	Path  string
	Ref   string
}

// ParseSource parses "owner/repo" or "owner/repo/path/to/package".
func ParseSource(s string) (Source, error) {
	parts := strings.SplitN(s, "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Source{}, fmt.Errorf("invalid repository format %q, expected owner/repo[/path]", s)
	}
	src := Source{Owner: parts[0], Repo: parts[1]}
	if len(parts) == 3 {
		src.Path = strings.Trim(parts[2], "/")
	}
	return src, nil
}

func (s Source) String() string {
	out := s.Owner + "/" + s.Repo
	if s.Path != "" {
		out += "/" + s.Path
	}
	if s.Ref != "" {
		out += "@" + s.Ref
	}
	return out
}

// Fetcher downloads the configuration documents of a package through the
// GitHub contents API. Only files with the configuration extension are
// written; directories are followed recursively.
type Fetcher struct {
	client *gh.Client
	src    Source
	logger zerolog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithLogger sets the logger used to report downloaded files.
func WithLogger(logger zerolog.Logger) FetcherOption {
	return func(f *Fetcher) { f.logger = logger }
}

// NewFetcher creates a Fetcher for src.
func NewFetcher(client *gh.Client, src Source, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{client: client, src: src, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fetcher) String() string {
	return "github:" + f.src.String()
}

// Fetch writes the package documents into dest, preserving the directory
// structure below the source path.
func (f *Fetcher) Fetch(ctx context.Context, dest string) error {
	return f.fetch(ctx, f.src.Path, dest)
}

func (f *Fetcher) fetch(ctx context.Context, repoPath, dest string) error {
	file, dir, err := f.getContents(ctx, repoPath)
	if err != nil {
		return err
	}

	if file != nil {
		return f.writeFile(file, dest)
	}

	for _, entry := range dir {
		name := path.Base(entry.GetName())
		if name == "." || name == ".." || name == "/" {
			continue
		}

		switch entry.GetType() {
		case "dir":
			sub := filepath.Join(dest, name)
			if err := os.MkdirAll(sub, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", sub, err)
			}
			if err := f.fetch(ctx, entry.GetPath(), sub); err != nil {
				return err
			}
		case "file":
			if path.Ext(name) != config.ConfigFileExtension {
				continue
			}
			content, _, err := f.getContents(ctx, entry.GetPath())
			if err != nil {
				return err
			}
			if content == nil {
				return fmt.Errorf("fetching file %s: not a file", entry.GetPath())
			}
			if err := f.writeFile(content, dest); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Fetcher) getContents(ctx context.Context, repoPath string) (*gh.RepositoryContent, []*gh.RepositoryContent, error) {
	opts := &gh.RepositoryContentGetOptions{Ref: f.src.Ref}
	file, dir, _, err := f.client.Repositories.GetContents(ctx, f.src.Owner, f.src.Repo, repoPath, opts)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, nil, fmt.Errorf("%w: %s/%s/%s", ErrPathNotFound, f.src.Owner, f.src.Repo, repoPath)
		}
		return nil, nil, fmt.Errorf("fetching %s: %w", repoPath, err)
	}
	return file, dir, nil
}

func (f *Fetcher) writeFile(content *gh.RepositoryContent, dest string) error {
	name := path.Base(content.GetName())
	if name == "" || name == "." || name == "/" {
		name = path.Base(content.GetPath())
	}
	if path.Ext(name) != config.ConfigFileExtension {
		return nil
	}

	decoded, err := content.GetContent()
	if err != nil {
		return fmt.Errorf("decoding file content: %w", err)
	}

	target := filepath.Join(dest, name)
	if err := os.WriteFile(target, []byte(decoded), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	f.logger.Debug().Str("file", content.GetPath()).Msg("downloaded package document")
	return nil
}
