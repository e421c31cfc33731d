package scmboard

import (
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"math"
	"time"
)

type idGenerator interface {
	next(ds *dataset) interface{}
}

func newIDGenerator(s IDStrategy) idGenerator {
	switch s {
	case UUIDs:
		return uuidGenerator{}
	case TimestampIDs:
		return &timestampGenerator{now: time.Now}
	default:
		return counterGenerator{}
	}
}

// counterGenerator hands out the next integer above the largest numeric id
// the dataset has ever held.
type counterGenerator struct{}

func (counterGenerator) next(ds *dataset) interface{} {
	return ds.maxID + 1
}

// timestampGenerator keeps the wall clock flavour of the dashboard ids but
// never repeats a value within a dataset.
type timestampGenerator struct {
	now func() time.Time
}

func (g *timestampGenerator) next(ds *dataset) interface{} {
	ts := g.now().UnixNano() / int64(time.Millisecond)
	if ts <= ds.maxID {
		ts = ds.maxID + 1
	}
	return ts
}

type uuidGenerator struct{}

func (uuidGenerator) next(*dataset) interface{} {
	return uuid.NewString()
}

// numericID reports the integer value of an id when it is one, either as a
// JSON number or a string of digits.
func numericID(r Record) (int64, bool) {
	res := gjson.GetBytes(r.raw, idField)
	if missingID(res) {
		return 0, false
	}

	switch res.Type {
	case gjson.Number:
		if res.Num != math.Trunc(res.Num) || math.Abs(res.Num) > 1<<53 {
			return 0, false
		}
		return int64(res.Num), true
	case gjson.String:
		if !isDigits(res.Str) {
			return 0, false
		}
		return res.Int(), true
	}

	return 0, false
}

func isDigits(s string) bool {
	if s == "" || len(s) > 18 {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
