package types

// CatalogEntry describes an installable application
type CatalogEntry struct {
	ID          string `json:"id" yaml:"id" toml:"id"`
	Name        string `json:"name" yaml:"name" toml:"name"`
	Icon        string `json:"icon" yaml:"icon" toml:"icon"`
	Category    string `json:"category" yaml:"category" toml:"category"`
	Description string `json:"description" yaml:"description" toml:"description"`
	IsSystem    bool   `json:"is_system" yaml:"is_system" toml:"is_system"`
}
