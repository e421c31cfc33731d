package metrics

import (
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/:dataset", 200, 3*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/:dataset", 200, time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", 404, time.Millisecond)
	m.Inserted("orders", 5)
	m.Deleted("orders", 4)
	m.SetRecords("inventory", 5)
	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()
	m.Throttled()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/:dataset", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inserted.WithLabelValues("orders")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deleted.WithLabelValues("orders")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.records.WithLabelValues("orders")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.records.WithLabelValues("inventory")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cache.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cache.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.throttled))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `scmboard_store_records{dataset="orders"} 4`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()
	a.CacheHit()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.cache.WithLabelValues("hit")))
}
