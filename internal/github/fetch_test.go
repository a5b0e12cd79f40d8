package github

import (
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-matchconf/internal/packages"
)

const contentsPrefix = "/api/v3/repos/testowner/testrepo/contents/"

func fileEntry(name, path string) map[string]interface{} {
	return map[string]interface{}{"type": "file", "name": name, "path": path}
}

func dirEntry(name, path string) map[string]interface{} {
	return map[string]interface{}{"type": "dir", "name": name, "path": path}
}

func fileContent(name, path, content string) map[string]interface{} {
	return map[string]interface{}{
		"type":     "file",
		"name":     name,
		"path":     path,
		"encoding": "base64",
		"content":  base64.StdEncoding.EncodeToString([]byte(content)),
	}
}

// contentsServer serves canned contents API responses keyed by repository
// path and records every requested path.
func contentsServer(t *testing.T, responses map[string]interface{}) (*http.ServeMux, *[]string) {
	t.Helper()
	var requested []string
	mux := http.NewServeMux()
	mux.HandleFunc(contentsPrefix, func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path[len(contentsPrefix):]
		requested = append(requested, p+"@"+r.URL.Query().Get("ref"))
		resp, ok := responses[p]
		if !ok {
			http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, resp)
	})
	return mux, &requested
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		in   string
		want Source
		err  bool
	}{
		{in: "owner/repo", want: Source{Owner: "owner", Repo: "repo"}},
		{in: "owner/repo/packages/emoji", want: Source{Owner: "owner", Repo: "repo", Path: "packages/emoji"}},
		{in: "owner/repo/dir/", want: Source{Owner: "owner", Repo: "repo", Path: "dir"}},
		{in: "repo", err: true},
		{in: "/repo", err: true},
		{in: "owner/", err: true},
		{in: "", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSource(tt.in)
			if tt.err {
				require.Error(t, err)
				require.Contains(t, err.Error(), "expected owner/repo")
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSource_String(t *testing.T) {
	require.Equal(t, "o/r", Source{Owner: "o", Repo: "r"}.String())
	require.Equal(t, "o/r/p@v1", Source{Owner: "o", Repo: "r", Path: "p", Ref: "v1"}.String())
}

func TestFetch_DirectoryWritesOnlyDocuments(t *testing.T) {
	mux, requested := contentsServer(t, map[string]interface{}{
		"pkg": []map[string]interface{}{
			fileEntry("package.yml", "pkg/package.yml"),
			fileEntry("README.md", "pkg/README.md"),
			fileEntry("other.yaml", "pkg/other.yaml"),
			dirEntry("extra", "pkg/extra"),
		},
		"pkg/package.yml": fileContent("package.yml", "pkg/package.yml", "name: emoji\n"),
		"pkg/extra": []map[string]interface{}{
			fileEntry("more.yml", "pkg/extra/more.yml"),
		},
		"pkg/extra/more.yml": fileContent("more.yml", "pkg/extra/more.yml", "parent: emoji\n"),
	})

	dest := t.TempDir()
	f := NewFetcher(newTestClient(t, mux), Source{Owner: "testowner", Repo: "testrepo", Path: "pkg", Ref: "main"})
	require.NoError(t, f.Fetch(context.Background(), dest))

	data, err := os.ReadFile(filepath.Join(dest, "package.yml"))
	require.NoError(t, err)
	require.Equal(t, "name: emoji\n", string(data))

	data, err = os.ReadFile(filepath.Join(dest, "extra", "more.yml"))
	require.NoError(t, err)
	require.Equal(t, "parent: emoji\n", string(data))

	require.NoFileExists(t, filepath.Join(dest, "README.md"))
	require.NoFileExists(t, filepath.Join(dest, "other.yaml"))
	require.NotContains(t, *requested, "pkg/README.md@main")
	for _, p := range *requested {
		require.Contains(t, p, "@main")
	}
}

func TestFetch_SingleFile(t *testing.T) {
	mux, _ := contentsServer(t, map[string]interface{}{
		"snippets.yml": fileContent("snippets.yml", "snippets.yml", "name: snippets\n"),
	})

	dest := t.TempDir()
	f := NewFetcher(newTestClient(t, mux), Source{Owner: "testowner", Repo: "testrepo", Path: "snippets.yml"})
	require.NoError(t, f.Fetch(context.Background(), dest))
	require.FileExists(t, filepath.Join(dest, "snippets.yml"))
}

func TestFetch_NotFound(t *testing.T) {
	mux, _ := contentsServer(t, map[string]interface{}{})

	f := NewFetcher(newTestClient(t, mux), Source{Owner: "testowner", Repo: "testrepo", Path: "missing"})
	err := f.Fetch(context.Background(), t.TempDir())
	require.ErrorIs(t, err, ErrPathNotFound)
}

func TestFetch_ServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(contentsPrefix, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "boom"}`, http.StatusInternalServerError)
	})

	f := NewFetcher(newTestClient(t, mux), Source{Owner: "testowner", Repo: "testrepo", Path: "pkg"})
	err := f.Fetch(context.Background(), t.TempDir())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrPathNotFound)
	require.Contains(t, err.Error(), "fetching pkg")
}

func TestFetch_InstallsThroughInstaller(t *testing.T) {
	mux, _ := contentsServer(t, map[string]interface{}{
		"pkg": []map[string]interface{}{
			fileEntry("package.yml", "pkg/package.yml"),
		},
		"pkg/package.yml": fileContent("package.yml", "pkg/package.yml", "name: remote\nmatches:\n  - trigger: \":r\"\n    replace: \"remote\"\n"),
	})

	dir := t.TempDir()
	inst := packages.NewInstaller(dir)
	f := NewFetcher(newTestClient(t, mux), Source{Owner: "testowner", Repo: "testrepo", Path: "pkg"})
	require.NoError(t, inst.Install(context.Background(), "remote", f))

	names, err := inst.List()
	require.NoError(t, err)
	require.Equal(t, []string{"remote"}, names)
	require.FileExists(t, filepath.Join(dir, "remote", "package.yml"))
}

func TestFetcher_String(t *testing.T) {
	f := NewFetcher(nil, Source{Owner: "o", Repo: "r", Path: "p"})
	require.Equal(t, "github:o/r/p", f.String())
}
