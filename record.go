package scmboard

import (
	"bytes"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var ErrRecordMalformed = errors.New("record must be a json object")
var ErrJsonPathInvalid = errors.New("json path is invalid")

const idField = "id"

type M map[string]interface{}

// Record is a single JSON object inside a dataset. The raw bytes are kept as
// received so that field order and an explicit id survive verbatim.
type Record struct {
	raw []byte
}

func ParseRecord(b []byte) (Record, error) {
	b = bytes.TrimSpace(b)
	if !gjson.ValidBytes(b) {
		return Record{}, errors.Wrap(ErrRecordMalformed, "invalid json")
	}

	if !gjson.ParseBytes(b).IsObject() {
		return Record{}, errors.Wrapf(ErrRecordMalformed, "got %s", gjson.ParseBytes(b).Type.String())
	}

	raw := make([]byte, len(b))
	copy(raw, b)

	return Record{raw: raw}, nil
}

// NewRecord builds a record from a map, a struct or raw JSON bytes.
func NewRecord(v interface{}) (Record, error) {
	switch typedValue := v.(type) {
	case Record:
		return typedValue, nil
	case []byte:
		return ParseRecord(typedValue)
	case json.RawMessage:
		return ParseRecord(typedValue)
	case string:
		return ParseRecord([]byte(typedValue))
	}

	b, err := json.Marshal(v)
	if err != nil {
		return Record{}, errors.Wrapf(err, "could not marshal record %+v", v)
	}

	return ParseRecord(b)
}

func MustRecord(v interface{}) Record {
	r, err := NewRecord(v)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Record) Raw() []byte {
	return r.raw
}

func (r Record) RawString() string {
	return string(r.raw)
}

func (r Record) IsZero() bool {
	return len(r.raw) == 0
}

func (r Record) MarshalJSON() ([]byte, error) {
	if r.raw == nil {
		return []byte("null"), nil
	}
	return r.raw, nil
}

func (r *Record) UnmarshalJSON(b []byte) error {
	parsed, err := ParseRecord(b)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Record) M() (M, error) {
	m := make(M)
	if err := json.Unmarshal(r.raw, &m); err != nil {
		return nil, errors.Wrap(ErrRecordMalformed, err.Error())
	}
	return m, nil
}

func (r Record) Has(path string) bool {
	return gjson.GetBytes(r.raw, path).Exists()
}

// ID returns the record id in its string form, the way it is compared on
// delete. ok is false when the record has no usable id.
func (r Record) ID() (string, bool) {
	res := gjson.GetBytes(r.raw, idField)
	if missingID(res) {
		return "", false
	}
	return res.String(), true
}

func (r Record) withID(id interface{}) (Record, error) {
	// decode numbers as json.Number so that the other fields keep their
	// exact textual form when re-encoded
	m := make(map[string]interface{})
	d := json.NewDecoder(bytes.NewReader(r.raw))
	d.UseNumber()
	if err := d.Decode(&m); err != nil {
		return Record{}, errors.Wrap(ErrRecordMalformed, err.Error())
	}

	m[idField] = id
	return NewRecord(m)
}

func (r Record) String(path string) (string, error) {
	raw := gjson.GetBytes(r.raw, path)
	if !raw.Exists() {
		return "", ErrJsonPathInvalid
	}
	return raw.String(), nil
}

func (r Record) StringOrDefault(path, def string) string {
	if v, err := r.String(path); err != nil {
		return def
	} else {
		return v
	}
}

func (r Record) Float(path string) (float64, error) {
	get := gjson.GetBytes(r.raw, path)
	if !get.Exists() {
		return 0, ErrJsonPathInvalid
	}
	return get.Float(), nil
}

func (r Record) FloatOrDefault(path string, def float64) float64 {
	if v, err := r.Float(path); err != nil {
		return def
	} else {
		return v
	}
}

func (r Record) Int(path string) (int, error) {
	get := gjson.GetBytes(r.raw, path)
	if !get.Exists() {
		return 0, ErrJsonPathInvalid
	}

	return int(get.Int()), nil
}

func (r Record) IntOrDefault(path string, def int) int {
	if v, err := r.Int(path); err != nil {
		return def
	} else {
		return v
	}
}

// missingID mirrors the falsy check of the dashboard client: absent, null,
// false, 0 and "" all count as no id.
func missingID(res gjson.Result) bool {
	if !res.Exists() {
		return true
	}

	switch res.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.Number:
		return res.Num == 0
	case gjson.String:
		return res.Str == ""
	}

	return false
}
