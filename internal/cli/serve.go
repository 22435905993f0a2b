package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/slotforge/slotforge/internal/server"
	"github.com/slotforge/slotforge/pkg/cache"
	"github.com/slotforge/slotforge/pkg/pipeline"
)

// shutdownTimeout bounds graceful drain of in-flight requests.
const shutdownTimeout = 5 * time.Second

// newServeCmd creates the serve command for the HTTP generation API.
func newServeCmd() *cobra.Command {
	var (
		addr        string
		catalogPath string
		cacheDir    string
		redisAddr   string
		redisDB     int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP generation API",
		Long: `Serve exposes the extrusion generator as a JSON API.

Endpoints:
  GET  /healthz           liveness probe
  GET  /api/v1/profiles   catalog listing
  POST /api/v1/generate   build a bar, returns a report or SVG

Generated artifacts are cached. By default an in-memory null cache is
used; --cache-dir enables a filesystem cache and --redis a Redis one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			catalog, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}

			var store cache.Cache
			switch {
			case redisAddr != "":
				store, err = cache.NewRedisCache(cmd.Context(), cache.RedisConfig{Addr: redisAddr, DB: redisDB})
				if err != nil {
					return fmt.Errorf("connect redis: %w", err)
				}
				logger.Info("using redis cache", "addr", redisAddr)
			case cacheDir != "":
				store, err = cache.NewFileCache(cacheDir)
				if err != nil {
					return fmt.Errorf("open file cache: %w", err)
				}
				logger.Info("using file cache", "dir", cacheDir)
			default:
				store = cache.NewNullCache()
			}
			defer store.Close()

			runner := pipeline.NewRunner(catalog, logger)
			handler := server.NewHandler(runner, store, cache.NewDefaultKeyer(), logger)

			srv := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			serverErrors := make(chan error, 1)
			go func() {
				logger.Info("server listening", "addr", addr)
				serverErrors <- srv.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server: %w", err)

			case <-cmd.Context().Done():
				logger.Info("shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					logger.Warn("graceful shutdown incomplete", "err", err)
					return srv.Close()
				}
				logger.Info("server stopped")
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "TOML file with extra or overriding profiles")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "directory for the filesystem artifact cache")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for the artifact cache (e.g. localhost:6379)")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "redis database number")

	return cmd
}
