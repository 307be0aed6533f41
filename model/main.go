package model

import "encoding/json"

// A BaseIngredient is a canonical bartending ingredient that recipe lines are matched against.
//
// ID is the stable identifier used by the destination schema (a lowercase UUID), Slug is the
// normalized form of Name and is unique within a catalog.
type BaseIngredient struct {
	ID   string `gorm:"primaryKey;size:36" json:"id" yaml:"id"`
	Slug string `gorm:"uniqueIndex;not null;check:slug <> ''" json:"slug,omitempty" yaml:"slug,omitempty"`
	Name string `gorm:"not null" json:"name" yaml:"name"`
}

// TableName matches the destination schema so a SQLite catalog mirrors the Postgres one.
func (BaseIngredient) TableName() string {
	return "base_ingredients"
}

// A Recipe is one cocktail as it appears in recipes.json.
type Recipe struct {
	Name        string             `json:"name"`
	Glass       *string            `json:"glass,omitempty"`
	Category    *string            `json:"category,omitempty"`
	Garnish     *string            `json:"garnish,omitempty"`
	Preparation *string            `json:"preparation,omitempty"`
	ImageURL    *string            `json:"image_url,omitempty"`
	Ingredients []RecipeIngredient `json:"ingredients,omitempty"`
}

// A RecipeIngredient is a single line of a Recipe. Its position is its 1-based index in
// Recipe.Ingredients.
//
// Lines without an Ingredient are "special" lines (garnish notes and the like) and never
// reference a BaseIngredient.
type RecipeIngredient struct {
	Ingredient string       `json:"ingredient,omitempty"`
	Amount     *json.Number `json:"amount,omitempty"`
	Unit       *string      `json:"unit,omitempty"`
	Label      *string      `json:"label,omitempty"`
	Special    *string      `json:"special,omitempty"`
}

// IsSpecial returns true if the line carries no base ingredient name.
func (ri RecipeIngredient) IsSpecial() bool {
	return ri.Ingredient == ""
}
