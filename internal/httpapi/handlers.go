package httpapi

import (
	"net/http"
	"strconv"

	"github.com/denismitr/scmboard"
	"github.com/denismitr/scmboard/internal/analytics"
	"github.com/denismitr/scmboard/internal/lru"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

type mutationResponse struct {
	Success bool              `json:"success"`
	Updated []scmboard.Record `json:"updated"`
}

// ---------------------- live datasets ----------------------

func (s *server) getDataset(c *gin.Context) {
	name := c.Param("dataset")

	var (
		etag string
		body []byte
	)

	err := s.store.View(c.Request.Context(), func(tx *scmboard.Tx) error {
		rev, err := tx.Revision(name)
		if err != nil {
			return err
		}

		key := lru.Key(s.epoch, "live", name, strconv.FormatUint(rev, 10))
		etag = etagOf(key)
		if matchesETag(c.GetHeader("If-None-Match"), etag) {
			return nil
		}

		body, err = s.cached(key, func() ([]byte, error) {
			records, err := tx.Get(name)
			if err != nil {
				return nil, err
			}
			return json.Marshal(records)
		})
		return err
	})

	if err != nil {
		s.writeError(c, err)
		return
	}

	writeCacheable(c, etag, body)
}

func (s *server) insertRecord(c *gin.Context) {
	name := c.Param("dataset")
	if !scmboard.IsDataset(name) {
		s.writeError(c, errors.Wrapf(scmboard.ErrDatasetNotFound, "%s", name))
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		s.writeError(c, errors.Wrap(scmboard.ErrRecordMalformed, err.Error()))
		return
	}

	r, err := scmboard.ParseRecord(raw)
	if err != nil {
		s.writeError(c, err)
		return
	}

	updated, err := s.store.Insert(c.Request.Context(), name, r)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.metrics.Inserted(name, len(updated))
	writeJSON(c, http.StatusOK, mutationResponse{Success: true, Updated: updated})
}

func (s *server) deleteRecord(c *gin.Context) {
	name := c.Param("dataset")
	id := c.Param("id")

	updated, err := s.store.Delete(c.Request.Context(), name, id)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.metrics.Deleted(name, len(updated))
	writeJSON(c, http.StatusOK, mutationResponse{Success: true, Updated: updated})
}

// ---------------------- seed snapshots ----------------------

func (s *server) getSeed(name string) gin.HandlerFunc {
	key := lru.Key(s.epoch, "seed", name)
	etag := etagOf(key)

	return func(c *gin.Context) {
		if matchesETag(c.GetHeader("If-None-Match"), etag) {
			writeCacheable(c, etag, nil)
			return
		}

		body, err := s.cached(key, func() ([]byte, error) {
			records, err := s.store.Snapshot(name)
			if err != nil {
				return nil, err
			}
			return json.Marshal(records)
		})
		if err != nil {
			s.writeError(c, err)
			return
		}

		writeCacheable(c, etag, body)
	}
}

// ---------------------- reports ----------------------

func (s *server) getSummary(c *gin.Context) {
	var summary *analytics.Summary
	err := s.store.View(c.Request.Context(), func(tx *scmboard.Tx) error {
		var err error
		summary, err = analytics.Summarize(tx)
		return err
	})

	if err != nil {
		s.writeError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, summary)
}
