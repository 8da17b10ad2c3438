package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/mechdyane/desktop/internal/shared/types"
)

// manifest is the on-disk shape of a catalog file
type manifest struct {
	Apps []types.CatalogEntry `yaml:"apps" toml:"apps"`
}

// Seeder loads extra catalog entries from disk
type Seeder struct {
	catalog *Catalog
	dir     string
	logger  *zap.Logger
}

// NewSeeder creates a new catalog seeder
func NewSeeder(catalog *Catalog, dir string, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		catalog: catalog,
		dir:     dir,
		logger:  logger,
	}
}

// Seed loads every .yaml, .yml and .toml file in the catalog directory.
// A missing directory is not an error. Files that fail to parse are
// skipped and counted.
func (s *Seeder) Seed() (loaded, failed int, err error) {
	if s.dir == "" {
		return 0, 0, nil
	}

	if _, statErr := os.Stat(s.dir); os.IsNotExist(statErr) {
		s.logger.Warn("Catalog directory not found", zap.String("dir", s.dir))
		return 0, 0, nil
	}

	err = filepath.WalkDir(s.dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		entries, parseErr := ParseFile(path)
		if errors.Is(parseErr, errUnsupported) {
			return nil
		}
		if parseErr != nil {
			s.logger.Warn("Failed to load catalog file", zap.String("file", d.Name()), zap.Error(parseErr))
			failed++
			return nil
		}

		for _, e := range entries {
			if addErr := s.catalog.Add(e); addErr != nil {
				s.logger.Warn("Skipping catalog entry", zap.String("file", d.Name()), zap.Error(addErr))
				continue
			}
			loaded++
		}
		return nil
	})
	if err != nil {
		return loaded, failed, fmt.Errorf("failed to walk catalog directory: %w", err)
	}

	s.logger.Info("Catalog seeding complete",
		zap.Int("loaded", loaded),
		zap.Int("failed", failed),
		zap.Int("total", s.catalog.Len()))
	return loaded, failed, nil
}

var errUnsupported = errors.New("unsupported catalog file")

// ParseFile decodes a single catalog file, choosing the format by extension
func ParseFile(path string) ([]types.CatalogEntry, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" && ext != ".toml" {
		return nil, errUnsupported
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var m manifest
	switch ext {
	case ".toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	}

	return m.Apps, nil
}
