package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arboclima/arboclima/core"
	"github.com/arboclima/arboclima/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "domain,region,year,month,value\n"

// TestLoadSeriesCSV tests parsing of normalized monthly series files.
func TestLoadSeriesCSV(t *testing.T) {
	t.Run("groups rows into one series per key", func(t *testing.T) {
		input := header +
			"dengue,sudeste,2023,1,10\n" +
			"dengue,sudeste,2023,2,12\n" +
			"temperature,sudeste,2023,1,25.5\n" +
			"dengue,norte,2023,1,7\n"

		series, err := LoadSeriesCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, series, 3)

		// Output is sorted by domain, region, year.
		assert.Equal(t, "dengue", series[0].Domain)
		assert.Equal(t, schema.NorteRegion, series[0].Region)
		assert.Equal(t, "dengue", series[1].Domain)
		assert.Equal(t, schema.SudesteRegion, series[1].Region)
		assert.Equal(t, "temperature", series[2].Domain)

		v, ok := series[1].ValueAt(2)
		assert.True(t, ok)
		assert.Equal(t, 12.0, v)
	})

	t.Run("unlisted months stay absent", func(t *testing.T) {
		input := header + "zika,sul,2022,6,3\n"

		series, err := LoadSeriesCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, series, 1)

		_, ok := series[0].ValueAt(5)
		assert.False(t, ok)
		v, ok := series[0].ValueAt(6)
		assert.True(t, ok)
		assert.Equal(t, 3.0, v)
	})

	t.Run("sentinel and unusable values mark the month absent", func(t *testing.T) {
		input := header +
			"humidity,norte,2023,1,\n" +
			"humidity,norte,2023,2,NA\n" +
			"humidity,norte,2023,3,n/a\n" +
			"humidity,norte,2023,4,null\n" +
			"humidity,norte,2023,5,NaN\n" +
			"humidity,norte,2023,6,-\n" +
			"humidity,norte,2023,7,not-a-number\n" +
			"humidity,norte,2023,8,77.5\n"

		series, err := LoadSeriesCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, series, 1)

		for month := 1; month <= 7; month++ {
			_, ok := series[0].ValueAt(month)
			assert.False(t, ok, "month %d should be absent", month)
		}
		v, ok := series[0].ValueAt(8)
		assert.True(t, ok)
		assert.Equal(t, 77.5, v)
	})

	t.Run("zero is a real observation, not absence", func(t *testing.T) {
		input := header + "precipitation,centro-oeste,2023,7,0\n"

		series, err := LoadSeriesCSV(strings.NewReader(input))
		require.NoError(t, err)

		v, ok := series[0].ValueAt(7)
		assert.True(t, ok)
		assert.Equal(t, 0.0, v)
	})

	t.Run("duplicate month fails the load", func(t *testing.T) {
		input := header +
			"dengue,sudeste,2023,1,10\n" +
			"dengue,sudeste,2023,1,11\n"

		_, err := LoadSeriesCSV(strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate month")
	})

	t.Run("malformed keys fail the load", func(t *testing.T) {
		tests := []struct {
			name string
			row  string
		}{
			{"unknown domain", "plague,sudeste,2023,1,10\n"},
			{"unknown region", "dengue,atlantis,2023,1,10\n"},
			{"bad year", "dengue,sudeste,20x3,1,10\n"},
			{"zero month", "dengue,sudeste,2023,0,10\n"},
			{"month thirteen", "dengue,sudeste,2023,13,10\n"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := LoadSeriesCSV(strings.NewReader(header + tt.row))
				assert.Error(t, err)
			})
		}
	})

	t.Run("header mismatch fails the load", func(t *testing.T) {
		input := "disease,region,year,month,value\ndengue,sudeste,2023,1,10\n"
		_, err := LoadSeriesCSV(strings.NewReader(input))
		assert.Error(t, err)
	})

	t.Run("keys are case insensitive", func(t *testing.T) {
		input := header + "Dengue,SUDESTE,2023,1,10\n"

		series, err := LoadSeriesCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, series, 1)
		assert.Equal(t, "dengue", series[0].Domain)
		assert.Equal(t, schema.SudesteRegion, series[0].Region)
	})
}

// TestLoadDir tests directory ingestion into a series store.
func TestLoadDir(t *testing.T) {
	t.Run("loads every csv into the store", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "disease.csv", header+
			"dengue,sudeste,2023,1,10\n"+
			"dengue,sudeste,2023,2,12\n")
		writeFile(t, dir, "climate.csv", header+
			"temperature,sudeste,2023,1,25\n")

		store := core.NewSeriesStore()
		n, err := LoadDir(dir, store)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 2, store.Len())

		ts, err := store.Get("dengue", schema.SudesteRegion, 2023)
		require.NoError(t, err)
		v, ok := ts.ValueAt(1)
		assert.True(t, ok)
		assert.Equal(t, 10.0, v)
	})

	t.Run("empty directory is an error", func(t *testing.T) {
		store := core.NewSeriesStore()
		_, err := LoadDir(t.TempDir(), store)
		assert.Error(t, err)
	})

	t.Run("bad file reports its path", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "broken.csv", "wrong,header\n")

		store := core.NewSeriesStore()
		_, err := LoadDir(dir, store)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken.csv")
	})
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
