package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMergeImages(t *testing.T) {
	log := zap.NewNop().Sugar()
	dir := t.TempDir()
	recipes := filepath.Join(dir, "recipes.json")
	iba := filepath.Join(dir, "iba.json")
	original := `[{"name": "Martini"}, {"name": "Vesper", "image_url": "v.png"}]`
	require.NoError(t, os.WriteFile(recipes, []byte(original), 0o644))
	require.NoError(t, os.WriteFile(iba, []byte(`{"cocktails": [{"name": "martini", "image_url": "m.png"}, {"name": "Vesper", "image_url": "other.png"}]}`), 0o644))

	var out bytes.Buffer
	require.NoError(t, mergeImages(log, &out, recipes, iba))
	assert.Equal(t, "Updated 1 recipes with image URLs and saved back to "+recipes+".\n", out.String())

	data, err := os.ReadFile(recipes)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"name\": \"Martini\",\n    \"image_url\": \"m.png\"")
	assert.Contains(t, string(data), "\"image_url\": \"v.png\"")

	out.Reset()
	require.NoError(t, mergeImages(log, &out, recipes, iba))
	assert.Equal(t, "No recipes were updated. Either they already had images or none matched.\n", out.String())

	t.Run("missing IBA dataset", func(t *testing.T) {
		assert.ErrorIs(t, mergeImages(log, &out, recipes, filepath.Join(dir, "nope.json")), os.ErrNotExist)
	})
}
