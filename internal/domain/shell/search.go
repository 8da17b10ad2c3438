package shell

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mechdyane/desktop/internal/shared/types"
)

const (
	// EmptyQueryResults is how many entries an empty query lists
	EmptyQueryResults = 5
	// MaxResults caps any search
	MaxResults = 8
)

// Search matches the query against entry names, categories and
// descriptions, case-insensitively. When nothing contains the query, entry
// names within a small edit distance are returned instead, closest first.
func Search(entries []types.CatalogEntry, query string) []types.SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return toResults(entries, EmptyQueryResults)
	}

	var hits []types.CatalogEntry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.Category), q) ||
			strings.Contains(strings.ToLower(e.Description), q) {
			hits = append(hits, e)
		}
	}
	if len(hits) > 0 {
		return toResults(hits, MaxResults)
	}

	return toResults(nearest(entries, q), MaxResults)
}

type ranked struct {
	entry types.CatalogEntry
	dist  int
}

func nearest(entries []types.CatalogEntry, q string) []types.CatalogEntry {
	limit := max(2, len(q)/3)

	var candidates []ranked
	for _, e := range entries {
		name := strings.ToLower(e.Name)
		d := levenshtein.ComputeDistance(q, name)
		// Compare against each word too so "calc" style prefixes of long
		// names still rank.
		for _, word := range strings.Fields(name) {
			d = min(d, levenshtein.ComputeDistance(q, word))
		}
		if d <= limit {
			candidates = append(candidates, ranked{entry: e, dist: d})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	out := make([]types.CatalogEntry, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.entry)
	}
	return out
}

func toResults(entries []types.CatalogEntry, limit int) []types.SearchResult {
	if len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]types.SearchResult, 0, len(entries))
	for _, e := range entries {
		out = append(out, types.SearchResult{
			ID:          e.ID,
			Name:        e.Name,
			Icon:        e.Icon,
			Category:    e.Category,
			Description: e.Description,
		})
	}
	return out
}
