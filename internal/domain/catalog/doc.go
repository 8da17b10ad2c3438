// Package catalog holds the application catalog consulted when a window is
// opened without an explicit title or icon.
//
// The catalog starts from the built-in desktop apps and can be extended by
// YAML or TOML files dropped into a catalog directory:
//
//	# apps/extra.yaml
//	apps:
//	  - id: notes
//	    name: Notes
//	    icon: fa-note-sticky
//	    category: Productivity
//
// Lookups of unknown ids are not errors; callers fall back to the id itself.
package catalog
