//go:build integration

package testdb

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresDSNEnv names the variable holding the DSN for integration tests.
const PostgresDSNEnv = "PITCHSIDE_TEST_DSN"

// OpenPostgres returns a database backed by a throwaway schema on the server in
// PITCHSIDE_TEST_DSN, with a real connection pool. The test is skipped when
// the variable is unset.
func OpenPostgres(t testing.TB, models ...interface{}) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresDSNEnv)
	}
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	admin, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	schema := fmt.Sprintf("pitchside_it_%d_%d", time.Now().UnixNano(), atomic.AddInt64(&seq, 1))
	if err := admin.Exec("CREATE SCHEMA " + schema).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}
	adminDB, err := admin.DB()
	if err != nil {
		t.Fatalf("postgres handle: %v", err)
	}
	t.Cleanup(func() {
		_ = admin.Exec("DROP SCHEMA " + schema + " CASCADE").Error
		_ = adminDB.Close()
	})

	db, err := gorm.Open(postgres.Open(withSearchPath(dsn, schema)), cfg)
	if err != nil {
		t.Fatalf("open postgres schema: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("postgres handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(16)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

// withSearchPath accepts both URL and keyword/value DSNs.
func withSearchPath(dsn, schema string) string {
	if !strings.Contains(dsn, "://") {
		return dsn + " search_path=" + schema
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&search_path=" + schema
	}
	return dsn + "?search_path=" + schema
}
