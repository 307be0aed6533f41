package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ImageIndex maps a lowercased cocktail name to its image URL.
type ImageIndex map[string]string

type ibaDataset struct {
	Cocktails []struct {
		Name     string `json:"name"`
		ImageURL string `json:"image_url"`
	} `json:"cocktails"`
}

// LoadImageIndex reads the IBA cocktail dataset at path. Entries missing a name or an image are
// ignored; when two entries share a name the later one wins.
func LoadImageIndex(path string) (ImageIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	return ParseImageIndex(data)
}

func ParseImageIndex(data []byte) (ImageIndex, error) {
	var iba ibaDataset
	if err := json.Unmarshal(data, &iba); err != nil {
		return nil, fmt.Errorf("dataset: decoding IBA dataset: %w", err)
	}
	index := make(ImageIndex, len(iba.Cocktails))
	for _, c := range iba.Cocktails {
		if c.Name == "" || c.ImageURL == "" {
			continue
		}
		index[strings.ToLower(c.Name)] = c.ImageURL
	}
	return index, nil
}

// MergeImages sets image_url on every recipe that lacks the key and whose lowercased name is in
// index. Recipes that already carry the key, even as null, are left alone. It returns the
// rewritten recipes and how many were updated.
func MergeImages(items []json.RawMessage, index ImageIndex) ([]json.RawMessage, int, error) {
	out := make([]json.RawMessage, len(items))
	updated := 0
	for i, item := range items {
		out[i] = item
		m, err := fields(item)
		if err != nil {
			return nil, 0, fmt.Errorf("recipe #%d: %w", i+1, err)
		}
		if _, ok := m[imageKey]; ok {
			continue
		}
		var name string
		if raw, ok := m["name"]; ok {
			// a non-string name simply never matches
			_ = json.Unmarshal(raw, &name)
		}
		url, ok := index[strings.ToLower(name)]
		if !ok {
			continue
		}
		merged, err := setField(item, imageKey, url)
		if err != nil {
			return nil, 0, fmt.Errorf("recipe #%d: %w", i+1, err)
		}
		out[i] = merged
		updated++
	}
	return out, updated, nil
}
