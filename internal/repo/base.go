package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base is the shared foundation domain repositories embed. It owns the
// GORM connection and binds it to the request context on every query.
type Base struct {
	db *gorm.DB
}

// NewBase wraps a GORM connection for embedding in a domain repository.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to ctx, or the raw connection when ctx
// is nil.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}
