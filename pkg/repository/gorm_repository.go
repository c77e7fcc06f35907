// Package repository holds generic gorm helpers that map driver errors onto
// pkg/errors classes.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	pkgerrors "github.com/narwhalmedia/catalog/pkg/errors"
	"github.com/narwhalmedia/catalog/pkg/pagination"
)

// uniqueViolation is the postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// IsDuplicateKey reports whether err is a unique constraint violation from
// postgres or sqlite.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts entity. A duplicate key becomes a Conflict.
func Create[T any](ctx context.Context, db *gorm.DB, entity *T) error {
	err := db.WithContext(ctx).Create(entity).Error
	if IsDuplicateKey(err) {
		return pkgerrors.Conflict("record already exists")
	}
	return err
}

// FindByID loads the row with the given id and the named associations.
// A missing row becomes a NotFound.
func FindByID[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, preloads ...string) (*T, error) {
	query := db.WithContext(ctx)
	for _, p := range preloads {
		query = query.Preload(p)
	}

	var entity T
	err := query.First(&entity, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.NotFound("record " + id.String() + " not found")
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// Delete removes the row with the given id. Deleting nothing is a NotFound.
func Delete[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	result := db.WithContext(ctx).Delete(new(T), "id = ?", id)
	switch {
	case result.Error != nil:
		return result.Error
	case result.RowsAffected == 0:
		return pkgerrors.NotFound("record " + id.String() + " not found")
	}
	return nil
}

// ExistingIDs returns the subset of ids that have a row in T's table.
func ExistingIDs[T any](ctx context.Context, db *gorm.DB, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []uuid.UUID
	err := db.WithContext(ctx).Model(new(T)).Where("id IN ?", ids).Pluck("id", &found).Error
	return found, err
}

// Search counts and loads one page. input is bounded before use; filter may
// be nil.
func Search[T any](ctx context.Context, db *gorm.DB, input pagination.SearchInput, filter func(*gorm.DB) *gorm.DB, preloads ...string) ([]*T, int64, error) {
	input = input.Bounded()
	scoped := func() *gorm.DB {
		q := db.WithContext(ctx).Model(new(T))
		if filter != nil {
			q = filter(q)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := scoped()
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var items []*T
	err := q.Order(input.OrderClause()).Limit(input.PerPage).Offset(input.Offset()).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
