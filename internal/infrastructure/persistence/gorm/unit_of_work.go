package gorm

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/narwhalmedia/catalog/internal/application/title"
)

type txKey struct{}

// UnitOfWork implements the Unit of Work pattern for GORM
type UnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new GORM-based unit of work
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Begin starts a new transaction. Repositories called with the returned
// transaction's context run inside it.
func (u *UnitOfWork) Begin(ctx context.Context) (title.Transaction, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	return &gormTransaction{
		tx:  tx,
		ctx: context.WithValue(ctx, txKey{}, tx),
	}, nil
}

// gormTransaction implements the Transaction interface for GORM
type gormTransaction struct {
	tx  *gorm.DB
	ctx context.Context
}

// Commit commits the transaction and returns the driver error as is
func (t *gormTransaction) Commit() error {
	return t.tx.Commit().Error
}

// Rollback rolls back the transaction. Rolling back a finished transaction is a no-op.
func (t *gormTransaction) Rollback() error {
	if err := t.tx.Rollback().Error; err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			return nil
		}
		return err
	}
	return nil
}

// Context returns the transaction context
func (t *gormTransaction) Context() context.Context {
	return t.ctx
}

// conn returns the transaction bound to ctx, or db when there is none.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// WithTransaction executes fn within a transaction bound to the context passed to it
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(ctx context.Context) error) error {
	return conn(ctx, db).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
