package scmboard_test

import (
	"github.com/denismitr/scmboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestSchema_Validate(t *testing.T) {
	schema, ok := scmboard.SchemaFor(scmboard.Orders)
	require.True(t, ok)

	tt := []struct {
		name   string
		record scmboard.M
		valid  bool
	}{
		{
			name:   "complete order",
			record: scmboard.M{"customer": "X", "item": "Mice", "quantity": 5, "status": "Pending", "date": "2025-11-01"},
			valid:  true,
		},
		{
			name:   "quantity as numeric string",
			record: scmboard.M{"customer": "X", "item": "Mice", "quantity": "5", "status": "Pending", "date": "2025-11-01"},
			valid:  true,
		},
		{
			name:   "extra fields are fine",
			record: scmboard.M{"id": 9, "customer": "X", "item": "Mice", "quantity": 5, "status": "Pending", "date": "2025-11-01", "note": "rush"},
			valid:  true,
		},
		{
			name:   "missing status",
			record: scmboard.M{"customer": "X", "item": "Mice", "quantity": 5, "date": "2025-11-01"},
			valid:  false,
		},
		{
			name:   "quantity not a number",
			record: scmboard.M{"customer": "X", "item": "Mice", "quantity": "five", "status": "Pending", "date": "2025-11-01"},
			valid:  false,
		},
		{
			name:   "customer not a string",
			record: scmboard.M{"customer": 12, "item": "Mice", "quantity": 5, "status": "Pending", "date": "2025-11-01"},
			valid:  false,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := schema.Validate(scmboard.MustRecord(tc.record))
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, scmboard.ErrRecordInvalid)
			}
		})
	}
}

func TestSchema_CoversEveryDataset(t *testing.T) {
	seed := scmboard.DefaultSeed()

	for _, name := range scmboard.Datasets {
		schema, ok := scmboard.SchemaFor(name)
		require.Truef(t, ok, "no schema for %s", name)

		for i, m := range seed[name] {
			assert.NoErrorf(t, schema.Validate(scmboard.MustRecord(m)), "seed record %d of %s", i, name)
		}
	}

	_, ok := scmboard.SchemaFor("customers")
	assert.False(t, ok)
}
