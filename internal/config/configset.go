package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Load resolves every configuration document under configDir (the default
// document plus the user subfolder) and packageDir into a ConfigSet.
//
// Documents whose parent is "self" start their own tree; every other
// document is merged into the document it names as parent, children first,
// with the child's rules winning on equal triggers. The first resolved root
// is the default document; every specific root then inherits the default's
// rules unless it sets exclude_default_matches.
func Load(configDir, packageDir string, opts ...Option) (*ConfigSet, error) {
	s := newSettings(opts)

	info, err := os.Stat(configDir)
	if err != nil {
		return nil, newLoadError(ErrInvalidConfigDirectory, configDir, err)
	}
	if !info.IsDir() {
		return nil, newLoadError(ErrInvalidConfigDirectory, configDir, nil)
	}

	def, err := LoadFromFile(filepath.Join(configDir, DefaultConfigFileName))
	if err != nil {
		return nil, err
	}

	files := CollectFiles(s.logger, filepath.Join(configDir, UserConfigsFolderName), packageDir)
	loaded, err := loadFiles(s.logger, files, s.parallelism)
	if err != nil {
		return nil, err
	}

	idx := newIndex(def)
	for _, cfg := range loaded {
		if err := idx.add(cfg); err != nil {
			return nil, err
		}
	}

	reduced := make([]*Config, 0, len(idx.roots))
	for _, root := range idx.roots {
		reduced = append(reduced, idx.reduce(root))
	}

	if err := idx.checkDetached(s.logger); err != nil {
		return nil, err
	}

	set := partition(reduced)
	set.injectDefaults()

	s.logger.Debug().
		Int("files", len(files)).
		Int("specific", len(set.Specific)).
		Int("default_matches", len(set.Default.Matches)).
		Msg("configuration set loaded")

	return set, nil
}

type loadResult struct {
	cfg *Config
	err error
}

// loadFiles parses and validates every file. With parallelism above one the
// files are handled by a bounded worker pool, but the error reported is
// always the one of the earliest failing file so results do not depend on
// scheduling.
func loadFiles(logger zerolog.Logger, files []string, parallelism int) ([]*Config, error) {
	results := make([]loadResult, len(files))

	if parallelism <= 1 {
		for i, path := range files {
			cfg, err := loadDocument(logger, path)
			if err != nil {
				return nil, err
			}
			results[i] = loadResult{cfg: cfg}
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < parallelism; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					cfg, err := loadDocument(logger, files[i])
					results[i] = loadResult{cfg: cfg, err: err}
				}
			}()
		}
		for i := range files {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	configs := make([]*Config, len(files))
	for i, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		configs[i] = r.cfg
	}
	return configs, nil
}

// loadDocument parses a non-default document and rejects reserved fields.
func loadDocument(logger zerolog.Logger, path string) (*Config, error) {
	cfg, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.CheckReserved(); err != nil {
		for _, field := range cfg.ReservedViolations() {
			logger.Error().
				Str("path", path).
				Str("field", field).
				Msgf("validation error, parameter '%s' is reserved and can be only used in the %s config file", field, DefaultConfigFileName)
		}
		return nil, err
	}
	return cfg, nil
}

// index partitions loaded documents into roots and children keyed by the
// parent name they reference.
type index struct {
	roots    []*Config
	children map[string][]*Config
	byName   map[string]*Config
	attached map[string]bool
	// pending lists non-root documents in encounter order.
	pending []*Config
}

func newIndex(def *Config) *index {
	return &index{
		roots:    []*Config{def},
		children: make(map[string][]*Config),
		byName:   map[string]*Config{def.Name: def},
		attached: make(map[string]bool),
	}
}

func (idx *index) add(cfg *Config) error {
	path := cfg.SourcePath

	if cfg.Name == DefaultName {
		cfg.Name = path
	}

	if _, ok := idx.byName[cfg.Name]; ok {
		return newLoadError(ErrNameDuplicate, path, nil)
	}
	idx.byName[cfg.Name] = cfg

	if cfg.IsRoot() {
		idx.roots = append(idx.roots, cfg)
		return nil
	}
	idx.children[cfg.Parent] = append(idx.children[cfg.Parent], cfg)
	idx.pending = append(idx.pending, cfg)
	return nil
}

// reduce resolves node's subtree into node. Names are unique and every
// child names its parent, so a walk from a root cannot revisit a node;
// loops only exist among documents no root reaches (see checkDetached).
func (idx *index) reduce(node *Config) *Config {
	idx.attached[node.Name] = true
	for _, child := range idx.children[node.Name] {
		node.mergeChild(idx.reduce(child))
	}
	return node
}

// checkDetached inspects documents no root reached. A parent chain that
// loops is an error; a chain ending at an unknown name is only logged.
func (idx *index) checkDetached(logger zerolog.Logger) error {
	for _, cfg := range idx.pending {
		if idx.attached[cfg.Name] {
			continue
		}

		seen := map[string]bool{}
		chain := []string{}
		cur := cfg
		for cur != nil {
			if seen[cur.Name] {
				chain = append(chain, cur.Name)
				return &LoadError{
					Kind:   ErrParentCycle,
					Path:   cfg.SourcePath,
					Detail: strings.Join(chain, " -> "),
				}
			}
			seen[cur.Name] = true
			chain = append(chain, cur.Name)
			if cur.IsRoot() {
				break
			}
			cur = idx.byName[cur.Parent]
		}

		logger.Warn().
			Str("path", cfg.SourcePath).
			Str("parent", cfg.Parent).
			Msg("config parent not found, ignoring document")
	}
	return nil
}

// partition splits reduced roots into the default and the specific configs.
func partition(reduced []*Config) *ConfigSet {
	return &ConfigSet{
		Default:  reduced[0],
		Specific: append([]*Config{}, reduced[1:]...),
	}
}

func (s *ConfigSet) injectDefaults() {
	for _, cfg := range s.Specific {
		if !cfg.ExcludeDefaultMatches {
			cfg.mergeDefault(s.Default)
		}
	}
}
