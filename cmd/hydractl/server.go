package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/config"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/logging"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/server/endpoints"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Hydra API server",
	Long: `Run the Hydra API server

To run the server requires the environment variables DATABASE_URL and
HYDRA_TOKEN_SECRET.

By default, database migrations are run on startup. Use --no-migrate to skip.
The config file is watched and reloaded when it changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		signer, err := newSigner()
		if err != nil {
			return err
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Info("running database migrations")
			if err := runMigrations(log); err != nil {
				return err
			}
		}

		conn, err := connect(log)
		if err != nil {
			return err
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go watchConfig(ctx, cfg.ConfigFilePath(), log)

		s := server.NewServer(newService(conn, log), signer, config.Get, logrus.NewEntry(log), host, port)
		s.Version = version
		endpoints.RegisterAll(s)

		errs := make(chan error, 1)
		go func() { errs <- s.Start() }()

		select {
		case err := <-errs:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	},
}

// watchConfig re-applies the log settings whenever the config file changes.
// The new config is installed globally by config.Watch.
func watchConfig(ctx context.Context, path string, log *logrus.Logger) {
	err := config.Watch(ctx, path, func(cfg *config.HydraConfig, err error) {
		if err != nil {
			log.WithError(err).Warn("ignoring invalid configuration change")
			return
		}
		logging.Configure(log, cfg.LogLevel, cfg.LogFormat)
		log.WithField("path", path).Info("configuration reloaded")
	})
	if err != nil {
		log.WithError(err).Warn("configuration file is not watched")
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
