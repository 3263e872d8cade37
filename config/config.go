package config

import (
	"os"
	"path/filepath"
)

// Config is the explicit startup configuration. Everything the process needs
// from the environment is read once here and passed down by reference; no
// package reads env vars after boot.
type Config struct {
	Port      string
	DataDir   string
	DBFile    string
	StaticDir string
}

func Load() Config {
	cfg := Config{
		Port:      getEnv("PORT", "8080"),
		DataDir:   os.Getenv("WAREHOUSE_DATA_DIR"),
		DBFile:    getEnv("WAREHOUSE_DB_FILE", "warehouse.db"),
		StaticDir: getEnv("STATIC_DIR", "./static"),
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.DataDir = filepath.Join(home, ".warehouse")
	}
	return cfg
}

// DBPath is the absolute location of the database file.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
