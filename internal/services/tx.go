package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/pkg/dbctx"
)

// withTx runs fn inside a database transaction. Without a configured
// handle the work runs untransacted against the repos' own connections.
func withTx(ctx context.Context, db *gorm.DB, fn func(dbctx.Context) error) error {
	if db == nil {
		return fn(dbctx.New(ctx))
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.WithTx(ctx, tx))
	})
}
