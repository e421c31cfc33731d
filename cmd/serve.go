package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/denismitr/scmboard"
	"github.com/denismitr/scmboard/internal/config"
	"github.com/denismitr/scmboard/internal/httpapi"
	"github.com/denismitr/scmboard/internal/logger"
	"github.com/denismitr/scmboard/internal/lru"
	"github.com/denismitr/scmboard/internal/metrics"
	"github.com/denismitr/scmboard/internal/seedfile"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const cacheShards = 8

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}

			cfg, err := config.Load(v, file)
			if err != nil {
				return err
			}

			lg, err := logger.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			zap.ReplaceGlobals(lg)
			defer func() { _ = lg.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, lg)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":5000", "API listen address")
	flags.String("health-addr", ":8086", "health check listen address")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.String("seed-file", "", "json or toml file replacing the built-in seed")
	flags.String("seed-routes", string(config.SeedRoutesPrefixed), "prefixed, shadow or off")
	flags.String("id-strategy", string(scmboard.CounterIDs), "counter, timestamp or uuid")
	flags.String("validation", string(scmboard.ValidationWarn), "off, warn or strict")

	for key, flag := range map[string]string{
		config.KeyAddr:       "addr",
		config.KeyHealthAddr: "health-addr",
		config.KeyLogLevel:   "log-level",
		config.KeySeedFile:   "seed-file",
		config.KeySeedRoutes: "seed-routes",
		config.KeyIDStrategy: "id-strategy",
		config.KeyValidation: "validation",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	return cmd
}

// serve runs the API and health servers until ctx is done.
func serve(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	seed := scmboard.DefaultSeed()
	if cfg.SeedFile != "" {
		loaded, err := seedfile.Load(cfg.SeedFile)
		if err != nil {
			return err
		}
		seed = loaded
	}

	storeCfg := cfg.Store()
	storeCfg.OnValidationWarning = func(dataset string, r scmboard.Record, err error) {
		lg.Warn("record does not match dataset schema",
			zap.String("dataset", dataset),
			zap.String("record", r.RawString()),
			zap.Error(err),
		)
	}

	store, closeStore, err := scmboard.New(seed, storeCfg)
	if err != nil {
		return errors.Wrap(err, "could not build store")
	}
	defer func() { _ = closeStore() }()

	budget := lru.Budget(cfg.CacheBytes)
	cache, err := lru.NewShardedCache(cacheShards, budget, nil)
	if err != nil {
		return errors.Wrapf(err, "could not build response cache of %d bytes", budget)
	}

	gin.SetMode(gin.ReleaseMode)
	router, err := httpapi.NewRouter(store, httpapi.Options{
		Logger:         lg,
		Metrics:        metrics.New(),
		Cache:          cache,
		SeedRoutes:     cfg.SeedRoutes,
		CORSOrigins:    cfg.CORSOrigins,
		Gzip:           cfg.Gzip,
		WriteRateLimit: cfg.WriteRateLimit,
		WriteBurst:     cfg.WriteBurst,
	})
	if err != nil {
		return err
	}

	var shuttingDown atomic.Bool
	api := &http.Server{Addr: cfg.Addr, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	health := &http.Server{Addr: cfg.HealthAddr, Handler: httpapi.NewHealthHandler(&shuttingDown), ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 2)
	for _, srv := range []*http.Server{api, health} {
		go func(srv *http.Server) {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- errors.Wrapf(err, "could not serve on %s", srv.Addr)
			}
		}(srv)
	}

	lg.Info("scmboard started",
		zap.String("addr", cfg.Addr),
		zap.String("health_addr", cfg.HealthAddr),
		zap.String("seed_routes", string(cfg.SeedRoutes)),
		zap.Uint64("cache_bytes", budget),
	)

	var serveErr error
	select {
	case <-ctx.Done():
		lg.Info("shutting down")
	case serveErr = <-errCh:
		lg.Error("server failed", zap.Error(serveErr))
	}

	shuttingDown.Store(true)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := api.Shutdown(shutdownCtx); err != nil {
		lg.Error("could not shut down api server", zap.Error(err))
	}
	if err := health.Shutdown(shutdownCtx); err != nil {
		lg.Error("could not shut down health server", zap.Error(err))
	}

	lg.Info("successful shutdown")
	return serveErr
}
