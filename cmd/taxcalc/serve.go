package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/taxgenius/regime-calculator/internal/api"
	"github.com/taxgenius/regime-calculator/internal/cache"
	"github.com/taxgenius/regime-calculator/internal/calculation"
	"github.com/taxgenius/regime-calculator/internal/config"
	"github.com/taxgenius/regime-calculator/internal/service"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		envFile   string
		port      int
		rateLimit int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.verbose {
				a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: slog.LevelInfo}))
			}
			settings, err := config.LoadServerSettings(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				settings.Port = port
			}
			rulesFile := settings.RulesFile
			if a.rulesFile != "" {
				rulesFile = a.rulesFile
			}

			registry, gst, err := a.registry(rulesFile)
			if err != nil {
				return err
			}
			// A rule file's default_year stands unless the flag or the
			// environment names one.
			year := a.year
			if year == "" && os.Getenv(config.EnvDefaultYear) != "" {
				year = settings.DefaultYear
			}
			if year != "" {
				if err := registry.SetDefault(year); err != nil {
					return err
				}
			}

			repo := buildCache(cmd.Context(), a, settings)
			if closer, ok := repo.(interface{ Close() error }); ok {
				defer closer.Close()
			}

			svc, err := service.NewTaxService(registry, gst, repo)
			if err != nil {
				return err
			}
			logger := calculation.NewSlogLogger(a.logger)
			svc.SetLogger(logger)

			limiter := api.NewRateLimiter(rateLimit, time.Minute)
			defer limiter.Stop()

			h := api.NewHandler(svc)
			h.CacheBackend = cache.Describe(repo)
			h.Logger = logger

			server := &http.Server{
				Addr:         fmt.Sprintf(":%d", settings.Port),
				Handler:      api.NewRouter(h, api.RouterOptions{Limiter: limiter}),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}
			return runServer(a, server)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file with TAXCALC_* settings")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "listen port (overrides TAXCALC_PORT)")
	cmd.Flags().IntVar(&rateLimit, "rate-limit", 60, "calculation requests per client per minute")
	return cmd
}

// buildCache selects Redis when an address is configured and reachable,
// falling back to the in-memory cache.
func buildCache(ctx context.Context, a *app, settings config.ServerSettings) cache.Repository {
	if settings.RedisAddr != "" {
		if ctx == nil {
			ctx = context.Background()
		}
		rc := cache.NewRedisCache(settings.RedisAddr, settings.CacheTTL)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		err := rc.Ping(pingCtx)
		if err == nil {
			return rc
		}
		a.logger.Warn("redis unavailable, using in-memory cache", "addr", settings.RedisAddr, "error", err)
		_ = rc.Close()
	}
	return cache.NewMemoryCache(settings.CacheTTL)
}

// runServer serves until SIGINT or SIGTERM, then drains connections.
func runServer(a *app, server *http.Server) error {
	serverErr := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
		a.logger.Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
