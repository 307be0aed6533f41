// Package catalog loads the canonical base ingredients and resolves normalized ingredient keys to
// their stable identifiers.
package catalog

import (
	"sort"

	"github.com/antzucaro/matchr"

	"cocktailseed/model"
	"cocktailseed/slug"
)

// SuggestThreshold is the minimum Jaro-Winkler similarity for Suggest to return an entry.
const SuggestThreshold = 0.85

// Catalog maps normalized keys to base ingredients. It is built once per run and treated as
// read-only afterwards.
type Catalog struct {
	bySlug     map[string]model.BaseIngredient
	duplicates []string
}

func New() *Catalog {
	return &Catalog{bySlug: make(map[string]model.BaseIngredient)}
}

// Add inserts b under the key of its name. A later entry with the same key replaces the earlier
// one and the key is remembered in Duplicates. Names that normalize to nothing are not added.
func (c *Catalog) Add(b model.BaseIngredient) bool {
	b.Slug = slug.Make(b.Name)
	if b.Slug == "" {
		return false
	}
	if _, ok := c.bySlug[b.Slug]; ok {
		c.duplicates = append(c.duplicates, b.Slug)
	}
	c.bySlug[b.Slug] = b
	return true
}

// Resolve returns the base ingredient whose key equals key.
func (c *Catalog) Resolve(key string) (model.BaseIngredient, bool) {
	b, ok := c.bySlug[key]
	return b, ok
}

func (c *Catalog) Len() int {
	return len(c.bySlug)
}

// Duplicates returns the keys declared more than once, in declaration order.
func (c *Catalog) Duplicates() []string {
	return c.duplicates
}

// Entries returns every base ingredient sorted by key.
func (c *Catalog) Entries() []model.BaseIngredient {
	out := make([]model.BaseIngredient, 0, len(c.bySlug))
	for _, b := range c.bySlug {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// Suggest returns the catalog entry closest to name, for operator hints only. Matching itself is
// strict key equality and never uses this.
func (c *Catalog) Suggest(name string) (model.BaseIngredient, bool) {
	key := slug.Make(name)
	if key == "" {
		return model.BaseIngredient{}, false
	}

	var best model.BaseIngredient
	var bestScore float64
	// iterate in key order so ties resolve the same way on every run
	for _, b := range c.Entries() {
		score := matchr.JaroWinkler(key, b.Slug, false)
		if score > bestScore {
			bestScore = score
			best = b
		}
	}
	if bestScore < SuggestThreshold {
		return model.BaseIngredient{}, false
	}
	return best, true
}
