package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"

	"github.com/mechdyane/desktop/internal/shared/types"
)

// DirLoader reads panel descriptors named <window id>.yaml, .yml or .json
// from a directory
type DirLoader struct {
	Dir string
}

// Load reads the descriptor for windowID
func (l DirLoader) Load(ctx context.Context, windowID string) (Panel, error) {
	if l.Dir == "" {
		return Panel{}, ErrNoContent
	}
	if filepath.Base(windowID) != windowID {
		return Panel{}, fmt.Errorf("invalid window id %q", windowID)
	}

	for _, ext := range []string{".yaml", ".yml", ".json"} {
		if err := ctx.Err(); err != nil {
			return Panel{}, err
		}

		data, err := os.ReadFile(filepath.Join(l.Dir, windowID+ext))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return Panel{}, fmt.Errorf("failed to read panel: %w", err)
		}

		var p Panel
		if ext == ".json" {
			err = sonic.Unmarshal(data, &p)
		} else {
			err = yaml.Unmarshal(data, &p)
		}
		if err != nil {
			return Panel{}, fmt.Errorf("invalid panel %s%s: %w", windowID, ext, err)
		}

		p.WindowID = windowID
		if p.Kind == "" {
			p.Kind = "app"
		}
		p.Source = "dir"
		return p, nil
	}

	return Panel{}, fmt.Errorf("%w: %s", ErrNoContent, windowID)
}

// Catalog is the lookup CatalogLoader builds placeholders from
type Catalog interface {
	Lookup(id string) (types.CatalogEntry, bool)
}

// CatalogLoader builds a placeholder panel from catalog metadata. It never
// fails, which makes it the usual fallback.
type CatalogLoader struct {
	Catalog Catalog
}

// Load returns a placeholder for windowID
func (l CatalogLoader) Load(_ context.Context, windowID string) (Panel, error) {
	p := Panel{
		WindowID: windowID,
		Kind:     "placeholder",
		Title:    windowID,
		Source:   "catalog",
	}
	if l.Catalog == nil {
		return p, nil
	}

	if e, ok := l.Catalog.Lookup(windowID); ok {
		p.Title = e.Name
		p.Props = map[string]any{
			"icon":        e.Icon,
			"category":    e.Category,
			"description": e.Description,
		}
	}
	return p, nil
}
