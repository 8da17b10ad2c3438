package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mechdyane/desktop/internal/shared/types"
)

func TestDefaultCatalog(t *testing.T) {
	c := NewDefault()

	entry, ok := c.Lookup("calc")
	require.True(t, ok)
	assert.Equal(t, "Smart Calc", entry.Name)

	_, ok = c.Lookup("unknown-app")
	assert.False(t, ok)

	assert.Contains(t, c.SystemIDs(), "dashboard")
	assert.NotContains(t, c.SystemIDs(), "calc")
	assert.Equal(t, "dashboard", c.List()[0].ID)
}

func TestAddFillsDefaults(t *testing.T) {
	c := New()

	require.NoError(t, c.Add(types.CatalogEntry{ID: "notes"}))
	entry, ok := c.Lookup("notes")
	require.True(t, ok)
	assert.Equal(t, "notes", entry.Name)
	assert.Equal(t, DefaultIcon, entry.Icon)

	assert.Error(t, c.Add(types.CatalogEntry{Name: "no id"}))
}

func TestAddReplaceKeepsOrder(t *testing.T) {
	c := New(
		types.CatalogEntry{ID: "a", Name: "A"},
		types.CatalogEntry{ID: "b", Name: "B"},
	)
	require.NoError(t, c.Add(types.CatalogEntry{ID: "a", Name: "A2"}))

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "A2", list[0].Name)
	assert.Equal(t, "b", list[1].ID)
}

func TestSeederLoadsYAMLAndTOML(t *testing.T) {
	dir := t.TempDir()

	yamlDoc := `apps:
  - id: notes
    name: Notes
    icon: fa-note-sticky
    category: Productivity
`
	tomlDoc := `[[apps]]
id = "paint"
name = "Paint"
category = "Creative"
is_system = true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte(yamlDoc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "more.toml"), []byte(tomlDoc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yml"), []byte("apps: [\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	c := New()
	loaded, failed, err := NewSeeder(c, dir, nil).Seed()
	require.NoError(t, err)
	assert.Equal(t, 2, loaded)
	assert.Equal(t, 1, failed)

	notes, ok := c.Lookup("notes")
	require.True(t, ok)
	assert.Equal(t, "fa-note-sticky", notes.Icon)

	paint, ok := c.Lookup("paint")
	require.True(t, ok)
	assert.True(t, paint.IsSystem)
	assert.Equal(t, DefaultIcon, paint.Icon)
}

func TestSeederMissingDir(t *testing.T) {
	loaded, failed, err := NewSeeder(New(), filepath.Join(t.TempDir(), "nope"), nil).Seed()
	require.NoError(t, err)
	assert.Zero(t, loaded)
	assert.Zero(t, failed)
}
