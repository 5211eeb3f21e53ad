package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// busyTimeoutMs lets concurrent writers wait on the file lock instead of failing with SQLITE_BUSY.
const busyTimeoutMs = 5000

const createFeedbackLinksTable = `CREATE TABLE IF NOT EXISTS feedback_links (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	cust_sr_no TEXT NOT NULL,
	cust_mob_no TEXT NOT NULL,
	cust_veh_no TEXT NOT NULL,
	feedback_id TEXT NOT NULL,
	link TEXT NOT NULL,
	created_at TEXT NOT NULL
)`

// Open opens (creating if needed) the SQLite file at path. The parent
// directory is created when missing.
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=%d", path, busyTimeoutMs)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}

	log.Info().Str("path", path).Msg("connected to SQLite")
	return db, nil
}

// EnsureSchema creates the feedback_links table if it does not exist yet.
// Safe to run on every startup.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).Exec(createFeedbackLinksTable).Error; err != nil {
		return fmt.Errorf("create feedback_links table: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
