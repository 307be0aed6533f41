package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cocktailseed/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	insertBatchSize = 100
	pingTimeout     = 2 * time.Second
)

var _ Store = (*SQLStore)(nil)

type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Ping checks that the catalog database answers within pingTimeout.
func (s *SQLStore) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("catalog store is not open")
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("catalog store: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("catalog store: ping: %w", err)
	}
	return nil
}

// ListBaseIngredients returns every base ingredient ordered by slug.
func (s *SQLStore) ListBaseIngredients() ([]model.BaseIngredient, error) {
	var items []model.BaseIngredient
	if err := s.db.Order("slug").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQLStore) CountBaseIngredients() (int64, error) {
	var count int64
	err := s.db.Model(&model.BaseIngredient{}).Count(&count).Error
	return count, err
}

// ReplaceBaseIngredients swaps the stored catalog for items in a single transaction, so a failed
// rebuild leaves the previous catalog untouched.
func (s *SQLStore) ReplaceBaseIngredients(logger *zap.SugaredLogger, items []model.BaseIngredient) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.BaseIngredient{})
		if res.Error != nil {
			return fmt.Errorf("clearing base_ingredients: %w", res.Error)
		}
		logger.Debugf("removed %d stored base ingredients", res.RowsAffected)
		if len(items) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(items, insertBatchSize).Error; err != nil {
			return fmt.Errorf("inserting base_ingredients: %w", err)
		}
		logger.Debugf("inserted %d base ingredients", len(items))
		return nil
	})
}
