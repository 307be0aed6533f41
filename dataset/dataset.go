// Package dataset reads and rewrites recipes.json.
//
// Maintenance passes work on the raw JSON objects so keys the compiler does not know about, and
// the order of every key, survive a rewrite.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"cocktailseed/model"
)

const imageKey = "image_url"

// LoadRecipes decodes the recipe dataset at path.
func LoadRecipes(path string) ([]model.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	var recipes []model.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("dataset: decoding %s: %w", path, err)
	}
	return recipes, nil
}

// ReadRaw returns the recipe objects of the dataset at path, undecoded.
func ReadRaw(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("dataset: decoding %s: %w", path, err)
	}
	return items, nil
}

// WriteRaw writes items to path as a JSON array indented by two spaces, followed by a newline.
func WriteRaw(path string, items []json.RawMessage) error {
	data, err := Encode(items)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	return nil
}

// Encode renders items the way WriteRaw stores them.
func Encode(items []json.RawMessage) ([]byte, error) {
	if items == nil {
		items = []json.RawMessage{}
	}
	var compact bytes.Buffer
	enc := json.NewEncoder(&compact)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return nil, fmt.Errorf("dataset: encoding: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(compact.Bytes()), "", "  "); err != nil {
		return nil, fmt.Errorf("dataset: indenting: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func fields(item json.RawMessage) (map[string]json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(item, &m); err != nil {
		return nil, fmt.Errorf("dataset: recipe is not an object: %w", err)
	}
	return m, nil
}

// setField appends key to the object in item. The key must not already be present.
func setField(item json.RawMessage, key string, value any) (json.RawMessage, error) {
	var v bytes.Buffer
	enc := json.NewEncoder(&v)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	k, err := json.Marshal(key)
	if err != nil {
		return nil, err
	}

	obj := bytes.TrimSpace(item)
	if len(obj) < 2 || obj[0] != '{' || obj[len(obj)-1] != '}' {
		return nil, fmt.Errorf("dataset: recipe is not an object")
	}
	inner := bytes.TrimSpace(obj[1 : len(obj)-1])

	var out bytes.Buffer
	out.WriteByte('{')
	if len(inner) > 0 {
		out.Write(inner)
		out.WriteByte(',')
	}
	out.Write(k)
	out.WriteByte(':')
	out.Write(bytes.TrimSpace(v.Bytes()))
	out.WriteByte('}')
	return out.Bytes(), nil
}
