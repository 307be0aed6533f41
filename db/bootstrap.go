package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"cocktailseed/model"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second,   // Slow SQL threshold
			LogLevel:                  logger.Silent, // Log level
			IgnoreRecordNotFoundError: true,          // Ignore ErrRecordNotFound error for logger
			ParameterizedQueries:      true,          // Don't include params in the SQL log
			Colorful:                  false,         // Disable color
		},
	)
}

// OpenSQLite opens an existing catalog database. A missing file is an error rather than a new,
// empty database.
func OpenSQLite(dbPath string) (*gorm.DB, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("catalog database %s: %w", dbPath, err)
	}
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}
	return db, nil
}

// BootstrapSQLite creates (or migrates) the catalog schema at dbPath and replaces its content
// with seed.
func BootstrapSQLite(logger *zap.SugaredLogger, dbPath string, seed []model.BaseIngredient) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	if err := seedCatalog(logger, db, seed); err != nil {
		return nil, err
	}

	logger.Infof("bootstrap: loaded %d base ingredients into %s", len(seed), dbPath)
	return db, nil
}

// seedCatalog migrates the schema and replaces the stored catalog with seed. db is closed when
// either step fails.
func seedCatalog(logger *zap.SugaredLogger, db *gorm.DB, seed []model.BaseIngredient) (err error) {
	defer func() {
		if err != nil {
			closeDB(logger, db)
		}
	}()

	if err := db.AutoMigrate(&model.BaseIngredient{}); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	if err := NewSQLStore(db).ReplaceBaseIngredients(logger, seed); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	return nil
}

func closeDB(logger *zap.SugaredLogger, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warnf("failed to close DB: %v", err)
	}
}
