// Package parquet provides data structures and functions for exporting
// cached correlation results to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/arboclima/arboclima/schema"
	"github.com/parquet-go/parquet-go"
)

// CorrelationRow represents one cached correlation result.
// This struct maps to the correlation_results database table, with the
// JSON value column flattened into typed columns.
type CorrelationRow struct {
	// Fingerprint is the deterministic cache key of the request tuple
	Fingerprint string `parquet:"fingerprint,snappy"`

	// Region is the macro-region code
	Region string `parquet:"region,snappy"`

	// Disease is the arbovirus name
	Disease string `parquet:"disease,snappy"`

	// ClimateVariable is the climate measurement name
	ClimateVariable string `parquet:"climate_variable,snappy"`

	// Year is the calendar year of both series
	Year int32 `parquet:"year,snappy"`

	// LagMonths is the months the climate signal was shifted earlier
	LagMonths int32 `parquet:"lag_months,snappy"`

	// Coefficient is the Spearman rho (nullable: undefined for
	// insufficient or degenerate inputs)
	Coefficient *float64 `parquet:"coefficient,optional,snappy"`

	// PValue is the two-sided significance (nullable)
	PValue *float64 `parquet:"p_value,optional,snappy"`

	// SampleSize is the number of paired months
	SampleSize int32 `parquet:"sample_size,snappy"`

	// Status is the computability outcome (ok, insufficient_data, degenerate)
	Status string `parquet:"status,snappy"`

	// CacheTimestamp is the Unix time the entry was persisted
	CacheTimestamp int64 `parquet:"cache_timestamp,snappy"`
}

// ConvertResultRecords converts store records to Parquet rows.
func ConvertResultRecords(records []schema.ResultRecord) []CorrelationRow {
	rows := make([]CorrelationRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, CorrelationRow{
			Fingerprint:     record.Fingerprint,
			Region:          string(record.Result.Region),
			Disease:         string(record.Result.Disease),
			ClimateVariable: string(record.Result.ClimateVariable),
			Year:            int32(record.Result.Year),
			LagMonths:       int32(record.Result.LagMonths),
			Coefficient:     record.Result.Coefficient,
			PValue:          record.Result.PValue,
			SampleSize:      int32(record.Result.SampleSize),
			Status:          string(record.Result.Status),
			CacheTimestamp:  record.Timestamp,
		})
	}
	return rows
}

// WriteCorrelationRowsParquet writes correlation rows to a Parquet file.
func WriteCorrelationRowsParquet(rows []CorrelationRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the struct tags
	writer := parquet.NewGenericWriter[CorrelationRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
