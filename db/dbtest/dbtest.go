// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"testing"

	"github.com/KAsare1/Kodefx-channels/config"
	"github.com/KAsare1/Kodefx-channels/db"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Open returns a fresh, migrated SQLite database private to t.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := db.NewStorage(config.Database{Driver: db.DialectSQLite, URL: dsn})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return conn
}
