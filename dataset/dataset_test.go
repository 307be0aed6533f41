package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recipesFixture = `[
  {"name": "Martini", "glass": "Cocktail glass", "image_url": "https://img/martini.png?a=1&b=2", "ingredients": [{"ingredient": "Gin", "amount": 60, "unit": "ml"}]},
  {"name": "Négroni", "zeta": 1, "alpha": [], "ingredients": []},
  {"name": "Kir", "image_url": null},
  {"name": "Vesper"}
]`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRecipes(t *testing.T) {
	recipes, err := LoadRecipes(writeFixture(t, recipesFixture))
	require.NoError(t, err)
	require.Len(t, recipes, 4)

	m := recipes[0]
	assert.Equal(t, "Martini", m.Name)
	require.NotNil(t, m.Glass)
	assert.Equal(t, "Cocktail glass", *m.Glass)
	require.Len(t, m.Ingredients, 1)
	require.NotNil(t, m.Ingredients[0].Amount)
	assert.Equal(t, "60", m.Ingredients[0].Amount.String())
	assert.Nil(t, recipes[2].ImageURL)

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRecipes(filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("corrupt file", func(t *testing.T) {
		_, err := LoadRecipes(writeFixture(t, `[{"name": "x", "ingredients": [{"amount": "a lot"}]}]`))
		assert.Error(t, err)
	})
}

func TestPrune(t *testing.T) {
	items, err := ReadRaw(writeFixture(t, recipesFixture))
	require.NoError(t, err)

	kept, removed, err := Prune(items)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	require.Len(t, kept, 2)
	assert.Contains(t, string(kept[0]), `"Martini"`)
	assert.Contains(t, string(kept[1]), `"Kir"`)

	t.Run("nothing to prune", func(t *testing.T) {
		again, removed, err := Prune(kept)
		require.NoError(t, err)
		assert.Zero(t, removed)
		assert.Len(t, again, 2)
	})

	t.Run("non object entries are an error", func(t *testing.T) {
		_, _, err := Prune([]json.RawMessage{json.RawMessage(`"Martini"`)})
		assert.Error(t, err)
	})
}

func TestMergeImages(t *testing.T) {
	index, err := ParseImageIndex([]byte(`{"cocktails": [
  {"name": "NEGRONI", "image_url": "https://img/old.png"},
  {"name": "Négroni", "image_url": "https://img/negroni.png"},
  {"name": "Vesper", "image_url": ""},
  {"name": "Kir", "image_url": "https://img/kir.png"},
  {"image_url": "https://img/anonymous.png"}
]}`))
	require.NoError(t, err)
	assert.Len(t, index, 3)

	items, err := ReadRaw(writeFixture(t, recipesFixture))
	require.NoError(t, err)

	merged, updated, err := MergeImages(items, index)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	require.Len(t, merged, 4)

	assert.Equal(t, string(items[0]), string(merged[0]), "recipes with an image are untouched")
	assert.Equal(t, string(items[2]), string(merged[2]), "a null image_url still counts as present")
	assert.Equal(t, string(items[3]), string(merged[3]), "no image in the index")

	var negroni map[string]any
	require.NoError(t, json.Unmarshal(merged[1], &negroni))
	assert.Equal(t, "https://img/negroni.png", negroni["image_url"])
	assert.Equal(t, float64(1), negroni["zeta"])
}

func TestSetField(t *testing.T) {
	out, err := setField(json.RawMessage(" {} "), "image_url", "a&b")
	require.NoError(t, err)
	assert.Equal(t, `{"image_url":"a&b"}`, string(out))

	out, err = setField(json.RawMessage(`{"name": "x"}`), "image_url", "u")
	require.NoError(t, err)
	assert.Equal(t, `{"name": "x","image_url":"u"}`, string(out))

	_, err = setField(json.RawMessage(`[]`), "image_url", "u")
	assert.Error(t, err)
}

func TestWriteRawKeepsKeyOrder(t *testing.T) {
	items, err := ReadRaw(writeFixture(t, recipesFixture))
	require.NoError(t, err)
	index := ImageIndex{"vesper": "https://img/vesper.png?x=<1>"}
	merged, updated, err := MergeImages(items, index)
	require.NoError(t, err)
	require.Equal(t, 1, updated)

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteRaw(path, merged[1:]))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `[
  {
    "name": "Négroni",
    "zeta": 1,
    "alpha": [],
    "ingredients": []
  },
  {
    "name": "Kir",
    "image_url": null
  },
  {
    "name": "Vesper",
    "image_url": "https://img/vesper.png?x=<1>"
  }
]
`
	assert.Equal(t, want, string(data))
}

func TestEncodeEmpty(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}
