package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// CollectFiles returns every configuration document below the given roots.
// Roots that do not exist contribute nothing. Hidden directories below a
// root are not descended into. Entries that cannot be read are logged and
// skipped. Files are returned root by root, each root in
// lexical walk order.
func CollectFiles(logger zerolog.Logger, roots ...string) []string {
	var files []string
	for _, root := range roots {
		if root == "" {
			continue
		}
		if _, err := os.Stat(root); err != nil {
			logger.Debug().Str("dir", root).Msg("config directory not present, skipping")
			continue
		}

		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("unable to read config file")
				return nil
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ConfigFileExtension {
				return nil
			}
			if !isRegularFile(path, d) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if walkErr != nil {
			logger.Warn().Err(walkErr).Str("dir", root).Msg("config directory walk aborted")
		}
	}
	return files
}

// isRegularFile accepts regular files and symlinks that resolve to one.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
