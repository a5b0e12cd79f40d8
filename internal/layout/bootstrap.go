package layout

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MyCarrier-DevOps/go-matchconf/internal/config"
)

//go:embed default.yml
var defaultTemplate []byte

// DefaultTemplate returns the document written on first run.
func DefaultTemplate() []byte {
	return append([]byte(nil), defaultTemplate...)
}

// EnsureDefaults creates the config directory, its default document, the
// user subdirectory and the package directory when they are missing.
// Existing files are never overwritten.
func EnsureDefaults(dirs Dirs) error {
	for _, dir := range []string{
		dirs.ConfigDir,
		filepath.Join(dirs.ConfigDir, config.UserConfigsFolderName),
		dirs.PackageDir,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return createError(dir, err)
		}
	}

	path := filepath.Join(dirs.ConfigDir, config.DefaultConfigFileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return createError(path, err)
	}
	if _, err := f.Write(defaultTemplate); err != nil {
		f.Close()
		return createError(path, err)
	}
	if err := f.Close(); err != nil {
		return createError(path, err)
	}
	return nil
}

// LoadDefault resolves the directories, bootstraps them and loads the
// configuration set.
func LoadDefault(configDir, packageDir string, opts ...config.Option) (*config.ConfigSet, Dirs, error) {
	dirs, err := Resolve(configDir, packageDir)
	if err != nil {
		return nil, Dirs{}, err
	}
	if err := EnsureDefaults(dirs); err != nil {
		return nil, dirs, err
	}
	set, err := config.Load(dirs.ConfigDir, dirs.PackageDir, opts...)
	if err != nil {
		return nil, dirs, err
	}
	return set, dirs, nil
}

func createError(path string, cause error) error {
	return &config.LoadError{Kind: config.ErrUnableToCreateDefaultConfig, Path: path, Err: cause}
}
