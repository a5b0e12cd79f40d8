package packages

import (
	"context"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Source materialises a package's files into a directory.
type Source interface {
	// Fetch writes the package contents into dest, which already exists
	// and is empty.
	Fetch(ctx context.Context, dest string) error

	// String describes the source for logs.
	String() string
}

// Compile-time check that GitSource implements Source.
var _ Source = (*GitSource)(nil)

// GitSource clones a git repository with go-git.
type GitSource struct {
	URL string
	// Ref is a branch name or a full reference such as refs/tags/v1.0.0.
	// Empty means the remote HEAD.
	Ref string
	// Depth limits the clone history. Zero clones everything.
	Depth int
}

// Fetch clones the repository into dest.
func (s *GitSource) Fetch(ctx context.Context, dest string) error {
	opts := &gogit.CloneOptions{
		URL:          s.URL,
		Depth:        s.Depth,
		SingleBranch: true,
	}
	if s.Ref != "" {
		opts.ReferenceName = referenceName(s.Ref)
	}

	if _, err := gogit.PlainCloneContext(ctx, dest, false, opts); err != nil {
		return fmt.Errorf("cloning %s: %w", s, err)
	}
	return nil
}

func (s *GitSource) String() string {
	if s.Ref == "" {
		return s.URL
	}
	return s.URL + "@" + s.Ref
}

func referenceName(ref string) plumbing.ReferenceName {
	if strings.HasPrefix(ref, "refs/") {
		return plumbing.ReferenceName(ref)
	}
	return plumbing.NewBranchReferenceName(ref)
}
