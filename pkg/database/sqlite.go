package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config describes where the on-disk store lives. The data directory is
// created on first boot if absent.
type Config struct {
	Dir  string
	File string
}

func (c Config) Path() string {
	return filepath.Join(c.Dir, c.File)
}

// Open bootstraps the data directory and opens the SQLite database file,
// creating it if it does not exist. The returned handle is shared by all
// repositories.
func Open(cfg Config) (*gorm.DB, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", cfg.Dir, err)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(sqlite.Open(cfg.Path()), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", cfg.Path(), err)
	}

	// SQLite handles one writer at a time; cap the pool accordingly.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection established:", cfg.Path())
	return db, nil
}
