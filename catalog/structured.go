package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"cocktailseed/model"
)

// ParseStructured reads a YAML or JSON list of {id, name} entries. Entries with an invalid id or
// an empty name are skipped, the same tolerance ParseDDL applies to malformed lines.
func ParseStructured(data []byte) (*Catalog, error) {
	var entries []model.BaseIngredient
	// YAML is a superset of JSON, one decoder serves both
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("catalog: decoding structured catalog: %w", err)
	}
	return FromEntries(entries), nil
}

// FromEntries builds a catalog from already structured base ingredients, e.g. rows read from a
// SQLite catalog. Any stored slug is recomputed from the name.
func FromEntries(entries []model.BaseIngredient) *Catalog {
	c := New()
	for _, e := range entries {
		id, err := uuid.Parse(strings.TrimSpace(e.ID))
		if err != nil || strings.TrimSpace(e.Name) == "" {
			continue
		}
		c.Add(model.BaseIngredient{ID: id.String(), Name: e.Name})
	}
	return c
}
