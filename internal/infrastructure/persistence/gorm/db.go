package gorm

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/narwhalmedia/catalog/internal/config"
	"github.com/narwhalmedia/catalog/pkg/database"
)

// NewDB opens the postgres connection described by cfg. The returned
// cleanup closes the pool.
func NewDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewGormDB(context.Background(), cfg.Database.Postgres(), logger)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := database.Close(db); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}

	return db, cleanup, nil
}

// Migrations returns the catalog schema migrations in order.
func Migrations() []database.MigrationEntry {
	return []database.MigrationEntry{
		{
			Version: "20240101_001",
			Name:    "Create catalog schema",
			Up:      migration001CreateSchema,
		},
		{
			Version: "20240101_002",
			Name:    "Add search indexes",
			Up:      migration002AddIndexes,
		},
	}
}

// Migrate applies pending catalog migrations.
func Migrate(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	return database.NewMigrator(db, logger, Migrations()).Migrate(ctx)
}

func migration001CreateSchema(tx *gorm.DB) error {
	return tx.AutoMigrate(Models()...)
}

func migration002AddIndexes(tx *gorm.DB) error {
	return database.ExecAll(tx,
		"CREATE INDEX IF NOT EXISTS idx_titles_title_lower ON titles (LOWER(title))",
		"CREATE INDEX IF NOT EXISTS idx_titles_created_at ON titles (created_at)",
		"CREATE INDEX IF NOT EXISTS idx_categories_name_lower ON categories (LOWER(name))",
		"CREATE INDEX IF NOT EXISTS idx_genres_name_lower ON genres (LOWER(name))",
		"CREATE INDEX IF NOT EXISTS idx_cast_members_name_lower ON cast_members (LOWER(name))",
	)
}
