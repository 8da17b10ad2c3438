package catalog

import (
	"fmt"
	"sync"

	"github.com/mechdyane/desktop/internal/shared/types"
)

// DefaultIcon is used when neither a hint nor the catalog supplies one
const DefaultIcon = "fa-cube"

// Catalog maps application ids to display metadata
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]types.CatalogEntry // Protected by mu
	order   []string                      // Protected by mu
}

// New creates a catalog with the given entries
func New(entries ...types.CatalogEntry) *Catalog {
	c := &Catalog{entries: make(map[string]types.CatalogEntry)}
	for _, e := range entries {
		_ = c.Add(e)
	}
	return c
}

// NewDefault creates a catalog with the built-in desktop apps
func NewDefault() *Catalog {
	return New(Builtin()...)
}

// Add inserts or replaces an entry. Replacing keeps the original position.
func (c *Catalog) Add(e types.CatalogEntry) error {
	if e.ID == "" {
		return fmt.Errorf("catalog entry ID is required")
	}
	if e.Icon == "" {
		e.Icon = DefaultIcon
	}
	if e.Name == "" {
		e.Name = e.ID
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[e.ID]; !exists {
		c.order = append(c.order, e.ID)
	}
	c.entries[e.ID] = e
	return nil
}

// Lookup returns the entry for an id
func (c *Catalog) Lookup(id string) (types.CatalogEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[id]
	return e, ok
}

// List returns all entries in insertion order
func (c *Catalog) List() []types.CatalogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]types.CatalogEntry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.entries[id])
	}
	return out
}

// SystemIDs returns the ids of apps installed by default
func (c *Catalog) SystemIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var ids []string
	for _, id := range c.order {
		if c.entries[id].IsSystem {
			ids = append(ids, id)
		}
	}
	return ids
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
