package iocache

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/arboclima/arboclima/internal/contract"
	"github.com/arboclima/arboclima/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteStore creates a throwaway SQLite-backed store.
func newSQLiteStore(t *testing.T) contract.ResultStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "results.db")
	store, err := NewResultStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err, "Failed to create SQLite store")
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// TestResultStoreSQLite tests the full lifecycle of SQLite operations.
func TestResultStoreSQLite(t *testing.T) {
	t.Run("set and get round trip", func(t *testing.T) {
		store := newSQLiteStore(t)

		value := []byte(`{"lag_months":2}`)
		err := store.Set("fp-1", value, CurrentCacheVersion, 1234567890)
		require.NoError(t, err)

		got, version, ts, err := store.Get("fp-1")
		require.NoError(t, err)
		assert.Equal(t, value, got)
		assert.Equal(t, CurrentCacheVersion, version)
		assert.Equal(t, int64(1234567890), ts)
	})

	t.Run("upsert replaces prior row", func(t *testing.T) {
		store := newSQLiteStore(t)

		require.NoError(t, store.Set("fp-up", []byte("old"), 1, 1000))
		require.NoError(t, store.Set("fp-up", []byte("new"), 2, 2000))

		got, version, ts, err := store.Get("fp-up")
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
		assert.Equal(t, 2, version)
		assert.Equal(t, int64(2000), ts)
	})

	t.Run("missing fingerprint returns ErrNoRows", func(t *testing.T) {
		store := newSQLiteStore(t)
		_, _, _, err := store.Get("fp-missing")
		assert.Equal(t, sql.ErrNoRows, err)
	})

	t.Run("get all results decodes rows ordered by fingerprint", func(t *testing.T) {
		store := newSQLiteStore(t)

		rho := 0.8
		p := 0.01
		result := schema.CorrelationResult{
			Region:          schema.NorteRegion,
			Disease:         schema.Zika,
			ClimateVariable: schema.Precipitation,
			Year:            2022,
			LagMonths:       1,
			Coefficient:     &rho,
			PValue:          &p,
			SampleSize:      12,
			Status:          schema.StatusOK,
		}
		data, err := json.Marshal(result)
		require.NoError(t, err)

		require.NoError(t, store.Set("fp-b", data, CurrentCacheVersion, 2000))
		require.NoError(t, store.Set("fp-a", data, CurrentCacheVersion, 1000))
		// Undecodable rows are skipped, not fatal.
		require.NoError(t, store.Set("fp-c", []byte("{broken"), CurrentCacheVersion, 3000))

		records, err := store.GetAllResults()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "fp-a", records[0].Fingerprint)
		assert.Equal(t, "fp-b", records[1].Fingerprint)
		assert.Equal(t, result.Disease, records[0].Result.Disease)
		require.NotNil(t, records[0].Result.Coefficient)
		assert.Equal(t, rho, *records[0].Result.Coefficient)
	})

	t.Run("status reflects stored rows", func(t *testing.T) {
		store := newSQLiteStore(t)

		require.NoError(t, store.Set("fp-1", []byte("a"), CurrentCacheVersion, 1000))
		require.NoError(t, store.Set("fp-2", []byte("b"), CurrentCacheVersion, 2000))
		require.NoError(t, store.Set("fp-3", []byte("c"), CurrentCacheVersion, 1500))

		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", status.Backend)
		assert.True(t, status.Connected)
		assert.Equal(t, 3, status.TotalEntries)
		assert.Equal(t, time.Unix(2000, 0), status.LastEntryTime)
		assert.Equal(t, time.Unix(1000, 0), status.OldestEntryTime)
		assert.Greater(t, status.TableSizeBytes, int64(0))
	})

	t.Run("status on empty store", func(t *testing.T) {
		store := newSQLiteStore(t)

		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.True(t, status.Connected)
		assert.Equal(t, 0, status.TotalEntries)
		assert.True(t, status.LastEntryTime.IsZero())
		assert.True(t, status.OldestEntryTime.IsZero())
	})
}

// TestResultStoreNone tests the no-op backend.
func TestResultStoreNone(t *testing.T) {
	store, err := NewResultStore(schema.NoneBackend, "")
	require.NoError(t, err)

	t.Run("set is a no-op", func(t *testing.T) {
		assert.NoError(t, store.Set("fp", []byte("v"), 1, 1000))
	})

	t.Run("get reports no rows", func(t *testing.T) {
		_, _, _, err := store.Get("fp")
		assert.Equal(t, sql.ErrNoRows, err)
	})

	t.Run("get all results is empty", func(t *testing.T) {
		records, err := store.GetAllResults()
		assert.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("status reports disconnected", func(t *testing.T) {
		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, "none", status.Backend)
		assert.False(t, status.Connected)
	})

	t.Run("close is safe", func(t *testing.T) {
		assert.NoError(t, store.Close())
	})
}

// TestNewResultStoreErrors tests backend validation.
func TestNewResultStoreErrors(t *testing.T) {
	_, err := NewResultStore("oracle", "")
	assert.Error(t, err, "Expected error for unsupported backend")
}
