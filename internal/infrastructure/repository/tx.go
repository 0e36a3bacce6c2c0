package repository

import (
	"context"

	domainRepo "github.com/pymeflow/gestion-api/internal/domain/repository"
	"gorm.io/gorm"
)

type txKey struct{}

type atomic struct {
	db *gorm.DB
}

// NewAtomic creates the transaction runner shared by all repositories.
func NewAtomic(db *gorm.DB) domainRepo.Atomic {
	return &atomic{db: db}
}

// Transaction opens a database transaction and stores its handle in the
// context passed to fn. Every repository resolves its connection through
// conn, so all repository calls inside fn share the one transaction and
// roll back together when fn errors.
func (a *atomic) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction carried by ctx, or the base connection.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
