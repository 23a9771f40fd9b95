package db

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds database connection configuration
type Config struct {
	// URL is the database connection URL (defaults to DATABASE_URL env var)
	URL string
	// Logger receives SQL logs when HYDRA_DEBUG=true. Defaults to the
	// logrus standard logger.
	Logger *logrus.Entry
}

// Connect establishes a database connection.
// If no URL is provided, it reads from DATABASE_URL environment variable.
func Connect(cfg Config) (*gorm.DB, error) {
	dbURL := cfg.URL
	if dbURL == "" {
		dbURL = URL()
	}
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	db, err := gorm.Open(
		postgres.New(postgres.Config{
			DSN:                  dbURL,
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}),
		&gorm.Config{
			Logger: newLogger(cfg.Logger),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// newLogger routes gorm's SQL log through logrus. It is silent unless
// HYDRA_DEBUG=true is set.
func newLogger(entry *logrus.Entry) logger.Interface {
	if !Debug() {
		return logger.Default.LogMode(logger.Silent)
	}
	if entry == nil {
		entry = logrus.NewEntry(logrus.StandardLogger())
	}
	return logger.New(entry.WithField("component", "sql"), logger.Config{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      logger.Info,
	})
}

// Debug reports whether HYDRA_DEBUG enables SQL logging.
func Debug() bool {
	v := os.Getenv("HYDRA_DEBUG")
	return v == "true" || v == "1"
}

// URL returns the database URL from environment.
// Returns empty string if DATABASE_URL is not set.
func URL() string {
	return os.Getenv("DATABASE_URL")
}
