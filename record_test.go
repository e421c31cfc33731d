package scmboard

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_RecordAccessors(t *testing.T) {
	r, err := ParseRecord([]byte(`{"str":"foo bar baz","null":null,"float":345.54,"zeroFloat":0,"int":452,"zeroInt":0,"numStr":"77"}`))
	require.NoError(t, err)

	t.Run("floats", func(t *testing.T) {
		f, err := r.Float("float")
		require.NoError(t, err)
		assert.Equal(t, 345.54, f)

		fz, err := r.Float("zeroFloat")
		require.NoError(t, err)
		assert.Equal(t, float64(0), fz)

		emp, err := r.Float("nonExistent")
		require.Error(t, err)
		assert.Equal(t, float64(0), emp)

		assert.Equal(t, 345.54, r.FloatOrDefault("float", 44))
		assert.Equal(t, 44.9, r.FloatOrDefault("nonExistent", 44.9))
		assert.Equal(t, float64(77), r.FloatOrDefault("numStr", 0))
	})

	t.Run("int", func(t *testing.T) {
		i, err := r.Int("int")
		require.NoError(t, err)
		assert.Equal(t, 452, i)

		_, err = r.Int("nonExistent")
		assert.ErrorIs(t, err, ErrJsonPathInvalid)
		assert.Equal(t, 5, r.IntOrDefault("nonExistent", 5))
	})

	t.Run("strings", func(t *testing.T) {
		s, err := r.String("str")
		require.NoError(t, err)
		assert.Equal(t, "foo bar baz", s)
		assert.Equal(t, "def", r.StringOrDefault("nonExistent", "def"))
	})
}

func Test_ParseRecord(t *testing.T) {
	tt := []struct {
		name  string
		input string
		valid bool
	}{
		{"object", `{"a":1}`, true},
		{"padded object", "  {\"a\":1}\n", true},
		{"empty object", `{}`, true},
		{"array", `[1,2]`, false},
		{"number", `42`, false},
		{"string", `"x"`, false},
		{"broken", `{"a":`, false},
		{"empty", ``, false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRecord([]byte(tc.input))
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrRecordMalformed)
			}
		})
	}
}

func Test_RecordID(t *testing.T) {
	tt := []struct {
		input string
		id    string
		ok    bool
	}{
		{`{"id":101}`, "101", true},
		{`{"id":"abc"}`, "abc", true},
		{`{"id":"0"}`, "0", true},
		{`{"id":1.5}`, "1.5", true},
		{`{"id":0}`, "", false},
		{`{"id":""}`, "", false},
		{`{"id":null}`, "", false},
		{`{"id":false}`, "", false},
		{`{"name":"x"}`, "", false},
	}

	for _, tc := range tt {
		t.Run(tc.input, func(t *testing.T) {
			r := MustRecord(tc.input)
			id, ok := r.ID()
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.id, id)
		})
	}
}

func Test_RecordWithIDKeepsOtherFields(t *testing.T) {
	r := MustRecord(`{"customer":"X","quantity":5,"big":12345678901234567890}`)

	withID, err := r.withID(int64(7))
	require.NoError(t, err)

	id, ok := withID.ID()
	require.True(t, ok)
	assert.Equal(t, "7", id)
	assert.Equal(t, "X", withID.StringOrDefault("customer", ""))
	assert.Equal(t, 5, withID.IntOrDefault("quantity", 0))
	assert.Contains(t, withID.RawString(), `12345678901234567890`)

	// the source record is untouched
	_, ok = r.ID()
	assert.False(t, ok)
}

func Test_RecordJSON(t *testing.T) {
	r := MustRecord(M{"foo": "bar"})

	b, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"foo":"bar"}`, string(b))

	var decoded Record
	require.NoError(t, decoded.UnmarshalJSON([]byte(`{"id":3,"x":"y"}`)))
	assert.Equal(t, `{"id":3,"x":"y"}`, decoded.RawString())

	m, err := decoded.M()
	require.NoError(t, err)
	assert.Equal(t, M{"id": float64(3), "x": "y"}, m)
}
