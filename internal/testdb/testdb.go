// Package testdb opens throwaway sqlite databases for package tests.
package testdb

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq int64

// Open returns a fresh in-memory database migrated with models. The pool is
// limited to one connection: sqlite has no row locks, so every transaction runs
// to completion before the next begins and concurrent tests never interleave
// inside a transaction. They check outcomes, not lock behaviour; the
// integration-tagged tests run the same races against postgres (OpenPostgres).
func Open(t testing.TB, models ...interface{}) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("file:pitchside_%d?mode=memory&cache=shared", atomic.AddInt64(&seq, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}
