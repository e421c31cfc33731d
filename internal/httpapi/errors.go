package httpapi

import (
	"context"
	"net/http"

	"github.com/denismitr/scmboard"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) writeError(c *gin.Context, err error) {
	status, message := classify(err)

	if status >= http.StatusInternalServerError {
		s.logger.Error("Internal server error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
	} else {
		s.logger.Debug("Invalid input error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
	}

	writeJSON(c, status, errorResponse{Error: message})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, scmboard.ErrDatasetNotFound):
		return http.StatusNotFound, "Dataset not found"
	case errors.Is(err, scmboard.ErrItemNotFound):
		return http.StatusNotFound, "Item not found"
	case errors.Is(err, scmboard.ErrRecordMalformed):
		return http.StatusBadRequest, "Request body must be a JSON object"
	case errors.Is(err, scmboard.ErrRecordInvalid):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, scmboard.ErrStoreClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "Service unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func writeJSON(c *gin.Context, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		c.String(http.StatusInternalServerError, "could not encode response")
		return
	}

	c.Data(status, contentTypeJSON, b)
}
