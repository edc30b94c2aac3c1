package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/api"
	"github.com/vovakirdan/arcade-portal/internal/auth"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

var (
	flagAPIAddr  string
	flagNoMetric bool
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the portal REST backend",
	Long: `Start the HTTP backend for accounts, likes, leaderboards, message
boards and favorites.

Storage and auth come from the portal config (see --config). The JWT
secret and the Mongo URI can be set with ARCADE_JWT_SECRET and
ARCADE_MONGO_URI; without a secret tokens only last for the process.

Examples:
  arcade api
  arcade api --addr :9090 --db ./portal.db
  ARCADE_DB_DRIVER=mongo ARCADE_MONGO_URI=mongodb://localhost:27017 arcade api`,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", "", "Listen address (overrides the portal config)")
	apiCmd.Flags().BoolVar(&flagNoMetric, "no-metrics", false, "Disable the /metrics endpoint")
}

func runAPI(_ *cobra.Command, _ []string) error {
	logger := serverLogger("arcade-api")

	cfg, err := loadPortalConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagAPIAddr != "" {
		cfg.Server.Addr = flagAPIAddr
	}
	if flagNoMetric {
		cfg.Server.MetricsEnabled = false
	}

	repo, err := storage.OpenRepository(cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer repo.Close()

	if cfg.Auth.JWTSecret == "" {
		logger.Warn("no JWT secret configured, using a random one")
	}
	issuer, err := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	srv := api.New(cfg.Server, repo, issuer, api.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("storage ready", "driver", cfg.Storage.Driver)
	return srv.Run(ctx)
}
