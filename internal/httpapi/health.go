package httpapi

import (
	"sync/atomic"

	"github.com/heptiolabs/healthcheck"
	"github.com/pkg/errors"
)

var errShuttingDown = errors.New("shutdown")

// NewHealthHandler serves /live and /ready. Readiness fails once shuttingDown
// is set.
func NewHealthHandler(shuttingDown *atomic.Bool) healthcheck.Handler {
	health := healthcheck.NewHandler()
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(100))
	health.AddReadinessCheck("shutdownEnabled", func() error {
		if shuttingDown.Load() {
			return errShuttingDown
		}
		return nil
	})
	return health
}
