// Package iocache is the memoization layer in front of the correlation
// engine: an in-process artifact cache plus a durable, multi-backend
// result store it can hydrate from and flush to.
package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arboclima/arboclima/internal/contract"
	"github.com/arboclima/arboclima/schema"
	"github.com/go-sql-driver/mysql"   // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// resultsTable is the name of the table for correlation result caching.
const resultsTable = "correlation_results"

// ResultStoreImpl handles durable result storage using various
// database backends.
type ResultStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
	connStr    string
}

var _ contract.ResultStore = &ResultStoreImpl{} // Compile-time check

// NewResultStore initializes and returns a new ResultStore based on the backend type.
func NewResultStore(backend schema.DatabaseBackend, connStr string) (contract.ResultStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetCacheDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite cache at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL cache: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL cache: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled persistence
		return &ResultStoreImpl{
			db:      nil,
			backend: backend,
			connStr: connStr,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported cache backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	// Create the table schema
	query := getCreateTableQuery(backend)
	if _, err := db.Exec(query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", resultsTable, err)
	}

	return &ResultStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
	}, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
func getCreateTableQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				fingerprint VARCHAR(255) PRIMARY KEY,
				result_value BLOB NOT NULL,
				cache_version INT NOT NULL,
				cache_timestamp BIGINT NOT NULL
			);
		`, resultsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				fingerprint TEXT PRIMARY KEY,
				result_value BYTEA NOT NULL,
				cache_version INTEGER NOT NULL,
				cache_timestamp BIGINT NOT NULL
			);
		`, resultsTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				fingerprint TEXT PRIMARY KEY,
				result_value BLOB NOT NULL,
				cache_version INTEGER NOT NULL,
				cache_timestamp INTEGER NOT NULL
			);
		`, resultsTable)
	}
}

// Get retrieves a serialized result by fingerprint from the store.
func (rs *ResultStoreImpl) Get(fingerprint string) ([]byte, int, int64, error) {
	// Return not found error for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, 0, 0, sql.ErrNoRows
	}

	var value []byte
	var version int
	var ts int64

	// Use backend-specific placeholder
	query := fmt.Sprintf(`SELECT result_value, cache_version, cache_timestamp FROM %s WHERE fingerprint = %s`, resultsTable, rs.getPlaceholder())
	row := rs.db.QueryRow(query, fingerprint)

	if err := row.Scan(&value, &version, &ts); err != nil {
		return nil, 0, 0, err
	}
	return value, version, ts, nil
}

// Set inserts or replaces a fingerprint/result pair in the store.
func (rs *ResultStoreImpl) Set(fingerprint string, value []byte, version int, timestamp int64) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	// Use backend-specific UPSERT
	query := rs.getUpsertQuery()
	_, err := rs.db.Exec(query, fingerprint, value, version, timestamp)
	return err
}

// GetAllResults retrieves every stored record, decoded, ordered by
// fingerprint. Rows that no longer decode are skipped rather than
// failing the export.
func (rs *ResultStoreImpl) GetAllResults() ([]schema.ResultRecord, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT fingerprint, result_value, cache_version, cache_timestamp FROM %s ORDER BY fingerprint`, resultsTable)
	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.ResultRecord
	for rows.Next() {
		var record schema.ResultRecord
		var value []byte
		if err := rows.Scan(&record.Fingerprint, &value, &record.Version, &record.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		if err := json.Unmarshal(value, &record.Result); err != nil {
			continue
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}
	return records, nil
}

// getPlaceholder returns the parameter placeholder for the backend.
func (rs *ResultStoreImpl) getPlaceholder() string {
	switch rs.backend {
	case schema.PostgreSQLBackend:
		return "$1"
	default: // SQLite and MySQL
		return "?"
	}
}

// getUpsertQuery returns the UPSERT query for the backend.
func (rs *ResultStoreImpl) getUpsertQuery() string {
	switch rs.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (fingerprint, result_value, cache_version, cache_timestamp) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE result_value = new.result_value, cache_version = new.cache_version, cache_timestamp = new.cache_timestamp`, resultsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (fingerprint, result_value, cache_version, cache_timestamp) VALUES ($1, $2, $3, $4)
			ON CONFLICT (fingerprint) DO UPDATE SET result_value = EXCLUDED.result_value, cache_version = EXCLUDED.cache_version, cache_timestamp = EXCLUDED.cache_timestamp`, resultsTable)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (fingerprint, result_value, cache_version, cache_timestamp) VALUES (?, ?, ?, ?)`, resultsTable)
	}
}

// Close closes the underlying DB connection.
func (rs *ResultStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the result store.
func (rs *ResultStoreImpl) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(rs.backend),
		Connected: rs.db != nil,
	}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	// Get total entries
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", resultsTable)
	row := rs.db.QueryRow(countQuery)
	if err := row.Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}

	if status.TotalEntries == 0 {
		return status, nil
	}

	// Get last entry time
	lastQuery := fmt.Sprintf("SELECT MAX(cache_timestamp) FROM %s", resultsTable)
	row = rs.db.QueryRow(lastQuery)
	var lastTs int64
	if err := row.Scan(&lastTs); err != nil {
		return status, fmt.Errorf("failed to get last entry time: %w", err)
	}
	status.LastEntryTime = time.Unix(lastTs, 0)

	// Get oldest entry time
	oldestQuery := fmt.Sprintf("SELECT MIN(cache_timestamp) FROM %s", resultsTable)
	row = rs.db.QueryRow(oldestQuery)
	var oldestTs int64
	if err := row.Scan(&oldestTs); err != nil {
		return status, fmt.Errorf("failed to get oldest entry time: %w", err)
	}
	status.OldestEntryTime = time.Unix(oldestTs, 0)

	// Estimate table size (approximate)
	if rs.backend == schema.SQLiteBackend {
		sizeQuery := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
		row = rs.db.QueryRow(sizeQuery)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			// If pragma fails, skip size
			status.TableSizeBytes = 0
		}
	} else {
		// Fallback rough estimate if the backend-specific query fails
		status.TableSizeBytes = int64(status.TotalEntries) * 1000

		switch rs.backend {
		case schema.MySQLBackend:
			// Use information_schema for MySQL
			cfg, err := mysql.ParseDSN(rs.connStr)
			if err != nil || cfg.DBName == "" {
				break
			}
			sizeQuery := "SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?"
			row := rs.db.QueryRow(sizeQuery, cfg.DBName, resultsTable)
			if err := row.Scan(&status.TableSizeBytes); err != nil {
				status.TableSizeBytes = int64(status.TotalEntries) * 1000
			}
		case schema.PostgreSQLBackend:
			// Use pg_total_relation_size for PostgreSQL
			row = rs.db.QueryRow("SELECT pg_total_relation_size($1)", resultsTable)
			if err := row.Scan(&status.TableSizeBytes); err != nil {
				status.TableSizeBytes = int64(status.TotalEntries) * 1000
			}
		}
	}

	return status, nil
}
