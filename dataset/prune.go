package dataset

import (
	"encoding/json"
	"fmt"
)

// Prune drops every recipe that has no image_url key. A key holding null still counts as
// present. It returns the kept recipes in their original order and how many were removed.
func Prune(items []json.RawMessage) ([]json.RawMessage, int, error) {
	kept := make([]json.RawMessage, 0, len(items))
	for i, item := range items {
		m, err := fields(item)
		if err != nil {
			return nil, 0, fmt.Errorf("recipe #%d: %w", i+1, err)
		}
		if _, ok := m[imageKey]; ok {
			kept = append(kept, item)
		}
	}
	return kept, len(items) - len(kept), nil
}
