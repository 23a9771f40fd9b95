package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/config"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/db"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/hydra"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/logging"
	gormstore "github.com/doodlesbykumbi/hydra-in-go/pkg/server/store/gorm"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/token"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if p, err := strconv.Atoi(defaultPort()); err == nil {
		return p
	}
	return 8000
}

// newLogger builds the CLI logger from the loaded config.
func newLogger(cfg *config.HydraConfig) *logrus.Logger {
	return logging.New(cfg.LogLevel, cfg.LogFormat)
}

// loadConfig loads and validates the configuration and installs it as the
// global config.
func loadConfig() (*config.HydraConfig, error) {
	cfg, err := config.Reload()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func connect(log *logrus.Logger) (*gorm.DB, error) {
	if db.URL() == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return db.Connect(db.Config{Logger: logrus.NewEntry(log)})
}

func newService(conn *gorm.DB, log *logrus.Logger) *hydra.Service {
	return hydra.New(gormstore.NewStores(conn),
		hydra.WithLogger(logrus.NewEntry(log)),
		hydra.WithDB(conn),
	)
}

func newSigner() (*token.Signer, error) {
	signer, err := token.NewSigner([]byte(os.Getenv("HYDRA_TOKEN_SECRET")))
	if err != nil {
		return nil, fmt.Errorf("HYDRA_TOKEN_SECRET: %w", err)
	}
	return signer, nil
}
