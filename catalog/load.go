package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cocktailseed/db"
)

var ErrUnsupportedSource = errors.New("unsupported catalog source")

// LoadFile loads a catalog from path, picking the parser from the file extension:
//
//	.sql          DDL seeding base_ingredients (see ParseDDL)
//	.json .yaml   list of {id, name} (see ParseStructured)
//	.yml
//	.db .sqlite   SQLite catalog written by the catalogdb command
//
// An unreadable source is an error. Malformed entries are not.
func LoadFile(path string) (*Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sql":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		defer f.Close()
		return ParseDDL(f)
	case ".json", ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		return ParseStructured(data)
	case ".db", ".sqlite", ".sqlite3":
		return loadSQLite(path)
	default:
		return nil, fmt.Errorf("catalog: %s: %w", path, ErrUnsupportedSource)
	}
}

func loadSQLite(path string) (*Catalog, error) {
	conn, err := db.OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if sqlDB, err := conn.DB(); err == nil {
		defer sqlDB.Close()
	}

	c, err := FromStore(context.Background(), db.NewSQLStore(conn))
	if err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", path, err)
	}
	return c, nil
}

// FromStore builds a catalog from the base ingredients held by store.
func FromStore(ctx context.Context, store db.Store) (*Catalog, error) {
	if err := store.Ping(ctx); err != nil {
		return nil, err
	}
	items, err := store.ListBaseIngredients()
	if err != nil {
		return nil, err
	}
	return FromEntries(items), nil
}
