// Package contract provides interfaces and shared utilities for the
// arboclima CLI's internal architecture.
package contract

import "github.com/arboclima/arboclima/schema"

// CacheManager defines the interface for managing the persistent
// result store. This allows the persistence layer to be mocked.
type CacheManager interface {
	GetResultStore() ResultStore
}

// ResultStore defines the interface for durable fingerprint-keyed
// storage of serialized correlation results.
type ResultStore interface {
	// Get retrieves the serialized result, entry version and creation
	// timestamp for a fingerprint.
	Get(fingerprint string) ([]byte, int, int64, error)

	// Set inserts or replaces the entry for a fingerprint.
	Set(fingerprint string, value []byte, version int, timestamp int64) error

	// GetAllResults retrieves every stored record, for export.
	GetAllResults() ([]schema.ResultRecord, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.CacheStatus, error)

	// Close closes the underlying connection.
	Close() error
}
