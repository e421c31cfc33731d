package httpapi_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/denismitr/scmboard/internal/httpapi"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	var shuttingDown atomic.Bool
	h := httpapi.NewHealthHandler(&shuttingDown)

	probe := func(path string) int {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, probe("/live"))
	assert.Equal(t, http.StatusOK, probe("/ready"))

	shuttingDown.Store(true)
	assert.Equal(t, http.StatusOK, probe("/live"))
	assert.Equal(t, http.StatusServiceUnavailable, probe("/ready"))
}
