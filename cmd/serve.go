package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/DhavalSuthar-24/pitchside/internal/match"
	"github.com/DhavalSuthar-24/pitchside/internal/notify"
	"github.com/DhavalSuthar-24/pitchside/internal/venue"
	"github.com/DhavalSuthar-24/pitchside/pkg/token"
	"github.com/DhavalSuthar-24/pitchside/pkg/validator"
	"github.com/DhavalSuthar-24/pitchside/routes"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, logger, db, err := bootstrap()
		if err != nil {
			return err
		}
		if err := db.AutoMigrate(allModels()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		if err := validator.Register(); err != nil {
			return err
		}

		var rdb redis.UniversalClient
		if cfg.Redis.URL != "" {
			opts, err := redis.ParseURL(cfg.Redis.URL)
			if err != nil {
				return fmt.Errorf("invalid REDIS_URL: %w", err)
			}
			client := redis.NewClient(opts)
			defer client.Close()
			rdb = client
		}

		notifier, closeNotifier, err := notify.New(ctx, cfg, rdb, logger.Named("notify"))
		if err != nil {
			return err
		}
		defer closeNotifier()

		venueRepo := venue.NewVenueRepository(db)
		var directory venue.Directory = venue.NewDirectory(venueRepo)
		if rdb != nil {
			directory = venue.NewCachedDirectory(directory, rdb, cfg.Venue.CacheTTL, logger.Named("venue"))
		}

		svc := newMatchService(cfg, db, logger, notifier, directory)
		router := routes.SetupRoutes(routes.Dependencies{
			Config:   cfg,
			DB:       db,
			Logger:   logger,
			Identity: token.NewProvider(cfg.JWT.AccessTokenSecret),
			Matches:  match.NewMatchController(svc, logger.Named("match")),
			Venues:   venue.NewVenueController(venueRepo),
		})

		srv := &http.Server{
			Addr:              ":" + cfg.App.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		errCh := make(chan error, 1)
		go func() {
			logger.Info("starting server", "port", cfg.App.Port, "env", cfg.App.Env)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
