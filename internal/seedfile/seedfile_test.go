package seedfile_test

import (
	"bytes"
	"context"
	"github.com/denismitr/scmboard"
	"github.com/denismitr/scmboard/internal/seedfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func requireSameRecords(t *testing.T, expected, actual scmboard.Seed) {
	t.Helper()

	a, closeA, err := scmboard.New(expected, nil)
	require.NoError(t, err)
	defer closeA()

	b, closeB, err := scmboard.New(actual, nil)
	require.NoError(t, err)
	defer closeB()

	for _, name := range scmboard.Datasets {
		ra, err := a.Get(context.Background(), name)
		require.NoError(t, err)
		rb, err := b.Get(context.Background(), name)
		require.NoError(t, err)
		require.Lenf(t, rb, len(ra), "dataset %s", name)

		for i := range ra {
			assert.JSONEq(t, ra[i].RawString(), rb[i].RawString())
		}
	}
}

func TestWriteAndRead(t *testing.T) {
	tt := []struct {
		format seedfile.Format
	}{
		{format: seedfile.JSON},
		{format: seedfile.TOML},
	}

	for _, tc := range tt {
		t.Run(string(tc.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, seedfile.Write(&buf, scmboard.DefaultSeed(), tc.format))
			require.NotZero(t, buf.Len())

			sd, err := seedfile.Read(&buf, tc.format)
			require.NoError(t, err)
			requireSameRecords(t, scmboard.DefaultSeed(), sd)
		})
	}
}

func TestWrite_JSONKeepsDatasetOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, seedfile.Write(&buf, scmboard.DefaultSeed(), seedfile.JSON))

	out := buf.String()
	last := -1
	for _, name := range scmboard.Datasets {
		idx := strings.Index(out, `"`+name+`"`)
		require.Greaterf(t, idx, last, "dataset %s out of order", name)
		last = idx
	}
}

func TestRead(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		sd, err := seedfile.Read(strings.NewReader(`{"orders":[{"id":7,"customer":"Zed"}]}`), seedfile.JSON)
		require.NoError(t, err)
		require.Len(t, sd[scmboard.Orders], 1)
		assert.Equal(t, "Zed", sd[scmboard.Orders][0]["customer"])
	})

	t.Run("toml", func(t *testing.T) {
		src := "[[warehouses]]\nlocation = \"Pune\"\ncapacity = 100\nused = 40\n"
		sd, err := seedfile.Read(strings.NewReader(src), seedfile.TOML)
		require.NoError(t, err)
		require.Len(t, sd[scmboard.Warehouses], 1)
		assert.Equal(t, "Pune", sd[scmboard.Warehouses][0]["location"])
	})

	t.Run("unknown dataset", func(t *testing.T) {
		_, err := seedfile.Read(strings.NewReader(`{"planets":[]}`), seedfile.JSON)
		assert.ErrorIs(t, err, seedfile.ErrUnknownDataset)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := seedfile.Read(strings.NewReader(`{"orders":`), seedfile.JSON)
		assert.Error(t, err)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := seedfile.Read(strings.NewReader(`{}`), seedfile.Format("yaml"))
		assert.ErrorIs(t, err, seedfile.ErrUnsupportedFormat)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("by extension", func(t *testing.T) {
		path := filepath.Join(dir, "seed.toml")
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, seedfile.Write(f, scmboard.DefaultSeed(), seedfile.TOML))
		require.NoError(t, f.Close())

		sd, err := seedfile.Load(path)
		require.NoError(t, err)
		requireSameRecords(t, scmboard.DefaultSeed(), sd)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := seedfile.Load(filepath.Join(dir, "nope.json"))
		assert.Error(t, err)
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := seedfile.Load(filepath.Join(dir, "seed.yaml"))
		assert.ErrorIs(t, err, seedfile.ErrUnsupportedFormat)
	})
}

func TestParseFormat(t *testing.T) {
	f, err := seedfile.ParseFormat("TOML")
	require.NoError(t, err)
	assert.Equal(t, seedfile.TOML, f)

	_, err = seedfile.ParseFormat("xml")
	assert.ErrorIs(t, err, seedfile.ErrUnsupportedFormat)
}
