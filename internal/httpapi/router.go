// Package httpapi is the HTTP facade over the dashboard store.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/denismitr/scmboard"
	"github.com/denismitr/scmboard/internal/config"
	"github.com/denismitr/scmboard/internal/lru"
	"github.com/denismitr/scmboard/internal/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Store is the part of *scmboard.Store the handlers use.
type Store interface {
	View(ctx context.Context, cb scmboard.UserCallback) error
	Insert(ctx context.Context, name string, r scmboard.Record) ([]scmboard.Record, error)
	Delete(ctx context.Context, name, id string) ([]scmboard.Record, error)
	Snapshot(name string) ([]scmboard.Record, error)
	Datasets() []string
}

var _ Store = (*scmboard.Store)(nil)

type Options struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// Cache holds encoded GET bodies. Nil disables caching.
	Cache lru.Cache

	SeedRoutes     config.SeedRoutes
	CORSOrigins    []string
	Gzip           bool
	WriteRateLimit float64
	WriteBurst     int
}

type server struct {
	store   Store
	logger  *zap.Logger
	metrics *metrics.Metrics
	cache   lru.Cache
	limiter *rate.Limiter
	// epoch keeps ETags of different processes apart, revisions restart at 0.
	epoch string
}

func NewRouter(store Store, opts Options) (*gin.Engine, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}

	s := &server{
		store:   store,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		cache:   opts.Cache,
		epoch:   uuid.NewString(),
	}

	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	if s.cache == nil {
		s.cache = lru.NullCache{}
	}
	if opts.WriteRateLimit > 0 {
		burst := opts.WriteBurst
		if burst <= 0 {
			burst = int(opts.WriteRateLimit)
			if burst < 1 {
				burst = 1
			}
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.WriteRateLimit), burst)
	}

	if err := s.countRecords(); err != nil {
		return nil, err
	}

	router := gin.New()

	// Logs all requests, like a combined access and error log.
	router.Use(ginzap.Ginzap(s.logger, time.RFC3339, true))
	// Logs all panic to error log
	router.Use(ginzap.RecoveryWithZap(s.logger, true))
	router.Use(s.observe)
	router.Use(corsMiddleware(opts.CORSOrigins))
	if opts.Gzip {
		router.Use(gzip.Gzip(gzip.DefaultCompression))
	}

	router.NoRoute(func(c *gin.Context) {
		writeJSON(c, http.StatusNotFound, gin.H{"error": "Not found"})
	})

	// Healthcheck
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "online")
	})
	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	router.GET("/reports/summary", s.getSummary)

	api := router.Group("/api")
	{
		api.GET("/:dataset", s.getDataset)
		api.POST("/:dataset", s.throttle, s.insertRecord)
		api.DELETE("/:dataset/:id", s.throttle, s.deleteRecord)
	}

	switch opts.SeedRoutes {
	case config.SeedRoutesPrefixed, "":
		s.registerSeedRoutes(router.Group("/seed"))
	case config.SeedRoutesShadow:
		// static routes take precedence over /api/:dataset
		s.registerSeedRoutes(api)
	case config.SeedRoutesOff:
	default:
		return nil, errors.Errorf("unknown seed routes mode %q", opts.SeedRoutes)
	}

	return router, nil
}

func (s *server) registerSeedRoutes(g *gin.RouterGroup) {
	for _, name := range s.store.Datasets() {
		g.GET("/"+name, s.getSeed(name))
	}
}

func (s *server) countRecords() error {
	return s.store.View(context.Background(), func(tx *scmboard.Tx) error {
		for _, name := range s.store.Datasets() {
			n, err := tx.Len(name)
			if err != nil {
				return err
			}
			s.metrics.SetRecords(name, n)
		}
		return nil
	})
}

func (s *server) observe(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.metrics.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
}

func (s *server) throttle(c *gin.Context) {
	if s.limiter != nil && !s.limiter.Allow() {
		s.metrics.Throttled()
		writeJSON(c, http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
		c.Abort()
		return
	}
	c.Next()
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "If-None-Match")
	cfg.ExposeHeaders = []string{"ETag"}

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}

	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	return cors.New(cfg)
}
