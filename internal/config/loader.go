package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

var (
	yamlLinePrefix = regexp.MustCompile(`^line (\d+): `)
	yamlLineRegex  = regexp.MustCompile(`line (\d+)`)

	errInvalidUTF8 = errors.New("stream did not contain valid UTF-8")
)

// LoadFromFile reads and parses one configuration document.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newLoadError(ErrFileNotFound, path, err)
		}
		return nil, newLoadError(ErrUnableToReadFile, path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, newLoadError(ErrUnableToReadFile, path, err)
	}
	if !utf8.Valid(data) {
		return nil, newLoadError(ErrUnableToReadFile, path, errInvalidUTF8)
	}
	return LoadFromBytes(path, data)
}

// LoadFromBytes parses a configuration document from raw YAML bytes. Fields
// absent from the document keep their documented defaults. path is only used
// for error reporting and Config.SourcePath.
func LoadFromBytes(path string, data []byte) (*Config, error) {
	cfg := CreateDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, syntaxError(path, err)
	}

	// An explicit null resets a list; treat it as absent.
	if cfg.Matches == nil {
		cfg.Matches = []Match{}
	}
	if cfg.WordSeparators == nil {
		cfg.WordSeparators = DefaultWordSeparators()
	}

	cfg.SourcePath = path
	return cfg, nil
}

func syntaxError(path string, err error) *LoadError {
	detail := strings.TrimPrefix(err.Error(), "yaml: ")
	le := &LoadError{
		Kind:   ErrInvalidSyntax,
		Path:   path,
		Detail: detail,
		Err:    err,
	}
	m := yamlLinePrefix.FindStringSubmatch(detail)
	if m != nil {
		le.Detail = strings.TrimPrefix(detail, m[0])
	} else {
		m = yamlLineRegex.FindStringSubmatch(detail)
	}
	if m != nil {
		if line, convErr := strconv.Atoi(m[1]); convErr == nil {
			le.Line = line
		}
	}
	return le
}
