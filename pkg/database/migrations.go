package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migration is a row of the schema_migrations table.
type Migration struct {
	ID        uint      `gorm:"primaryKey"`
	Version   string    `gorm:"uniqueIndex;not null"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName returns the table name
func (Migration) TableName() string { return "schema_migrations" }

// MigrationFunc changes the schema inside the migration's transaction.
type MigrationFunc func(tx *gorm.DB) error

// MigrationEntry is one versioned schema change.
type MigrationEntry struct {
	Version string
	Name    string
	Up      MigrationFunc
}

// MigrationStatus pairs an entry with the time it was applied, if it was.
type MigrationStatus struct {
	MigrationEntry
	AppliedAt *time.Time
}

// Applied reports whether the migration has run.
func (s MigrationStatus) Applied() bool {
	return s.AppliedAt != nil
}

// Migrator applies entries in the order given, each in its own transaction,
// and records them in schema_migrations.
type Migrator struct {
	db      *gorm.DB
	logger  *zap.Logger
	entries []MigrationEntry
}

// NewMigrator creates a migrator for the given entries.
func NewMigrator(db *gorm.DB, logger *zap.Logger, entries []MigrationEntry) *Migrator {
	return &Migrator{
		db:      db,
		logger:  logger.Named("migrator"),
		entries: entries,
	}
}

// Migrate applies every pending entry. It stops at the first failure; the
// failed entry is not recorded.
func (m *Migrator) Migrate(ctx context.Context) error {
	db := m.db.WithContext(ctx)
	if err := db.AutoMigrate(&Migration{}); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	pending, err := m.Pending(ctx)
	if err != nil {
		return err
	}

	for _, entry := range pending {
		start := time.Now()
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := entry.Up(tx); err != nil {
				return err
			}
			return tx.Create(&Migration{
				Version:   entry.Version,
				Name:      entry.Name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s (%s): %w", entry.Version, entry.Name, err)
		}
		m.logger.Info("migration applied",
			zap.String("version", entry.Version),
			zap.String("name", entry.Name),
			zap.Duration("took", time.Since(start)))
	}
	return nil
}

// Status lists every entry with its applied time.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, len(m.entries))
	for i, entry := range m.entries {
		statuses[i] = MigrationStatus{MigrationEntry: entry}
		if at, ok := applied[entry.Version]; ok {
			statuses[i].AppliedAt = &at
		}
	}
	return statuses, nil
}

// Pending lists the entries that have not been applied.
func (m *Migrator) Pending(ctx context.Context) ([]MigrationEntry, error) {
	statuses, err := m.Status(ctx)
	if err != nil {
		return nil, err
	}

	var pending []MigrationEntry
	for _, s := range statuses {
		if !s.Applied() {
			pending = append(pending, s.MigrationEntry)
		}
	}
	return pending, nil
}

func (m *Migrator) applied(ctx context.Context) (map[string]time.Time, error) {
	db := m.db.WithContext(ctx)
	applied := make(map[string]time.Time)
	if !db.Migrator().HasTable(&Migration{}) {
		return applied, nil
	}

	var rows []Migration
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	for _, row := range rows {
		applied[row.Version] = row.AppliedAt
	}
	return applied, nil
}

// ExecAll runs raw statements in order. A statement failing because its
// object already exists is skipped.
func ExecAll(tx *gorm.DB, statements ...string) error {
	for _, stmt := range statements {
		err := tx.Exec(stmt).Error
		if err == nil || alreadyExists(err) {
			continue
		}
		return fmt.Errorf("exec %q: %w", stmt, err)
	}
	return nil
}

func alreadyExists(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate key")
}
