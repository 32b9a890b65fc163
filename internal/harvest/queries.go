// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"fmt"
	"os"
	"sort"

	"go.yaml.in/yaml/v3"
)

// QuerySet holds the arXiv query term sets for one category. Each inner
// list is one query; its terms are AND-combined. A paper matching any query
// in the set gets the category assigned.
type QuerySet struct {
	Queries [][]string `yaml:"queries"`
}

// QueryFile maps category identifiers to their query sets. It is the
// operator-maintained side of the facet registry: the categories here
// should line up with the compiled-in tag definitions.
type QueryFile struct {
	Categories map[string]QuerySet `yaml:"categories"`
}

// CategoryIDs returns the configured category identifiers in sorted order,
// so a harvest run visits categories deterministically.
func (f QueryFile) CategoryIDs() []string {
	ids := make([]string, 0, len(f.Categories))
	for id := range f.Categories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LoadQueries reads and parses the query file at path.
func LoadQueries(path string) (QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return QueryFile{}, fmt.Errorf("reading query file: %w", err)
	}
	var f QueryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return QueryFile{}, fmt.Errorf("parsing query file: %w", err)
	}
	if len(f.Categories) == 0 {
		return QueryFile{}, fmt.Errorf("query file %s defines no categories", path)
	}
	return f, nil
}
