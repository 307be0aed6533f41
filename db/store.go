package db

import (
	"context"
	"errors"

	"cocktailseed/model"

	"go.uber.org/zap"
)

var ErrCatalogEmpty = errors.New("base ingredient catalog is empty")

// Store is the SQLite copy of the base ingredient catalog.
type Store interface {
	Ping(ctx context.Context) error
	ListBaseIngredients() ([]model.BaseIngredient, error)
	CountBaseIngredients() (int64, error)
	ReplaceBaseIngredients(logger *zap.SugaredLogger, items []model.BaseIngredient) error
}
