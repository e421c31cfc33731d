package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const contentTypeJSON = "application/json; charset=utf-8"

// cached returns the body stored under key or encodes and stores a new one.
func (s *server) cached(key uint64, encode func() ([]byte, error)) ([]byte, error) {
	if body, ok := s.cache.Get(key); ok {
		s.metrics.CacheHit()
		return body, nil
	}

	s.metrics.CacheMiss()
	body, err := encode()
	if err != nil {
		return nil, err
	}

	s.cache.Add(key, body)
	return body, nil
}

func etagOf(key uint64) string {
	return `"` + strconv.FormatUint(key, 16) + `"`
}

func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}

	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}

	return false
}

// writeCacheable answers 304 when body is nil.
func writeCacheable(c *gin.Context, etag string, body []byte) {
	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-cache")

	if body == nil {
		c.Status(http.StatusNotModified)
		return
	}

	c.Data(http.StatusOK, contentTypeJSON, body)
}
