package repo

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	return conn
}

func TestDBBindsContext(t *testing.T) {
	db := openTestDB(t)
	base := NewBase(db)

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	bound := base.DB(ctx)

	if bound == nil || bound.Statement == nil {
		t.Fatalf("expected a session with a statement after binding")
	}
	if bound.Statement.Context != ctx {
		t.Fatalf("expected the request context to flow through, got %v", bound.Statement.Context)
	}
}

func TestDBWithoutContextReturnsRawConnection(t *testing.T) {
	db := openTestDB(t)
	base := NewBase(db)

	if got := base.DB(nil); got != db {
		t.Fatalf("expected nil context to return the raw connection")
	}
}
