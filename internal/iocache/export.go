package iocache

import (
	"errors"
	"fmt"

	"github.com/arboclima/arboclima/internal/parquet"
)

// ExecuteResultExport exports all cached correlation results to a
// Parquet file for use with analytics tools.
func ExecuteResultExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetResultStore()
	if store == nil {
		return errors.New("no result store configured; set a cache backend")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get cache status: %w", err)
	}
	if status.TotalEntries == 0 {
		return errors.New("no cached results found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total cached results: %d\n", status.TotalEntries)

	records, err := store.GetAllResults()
	if err != nil {
		return fmt.Errorf("failed to retrieve cached results: %w", err)
	}

	rows := parquet.ConvertResultRecords(records)
	if err := parquet.WriteCorrelationRowsParquet(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write correlation rows: %w", err)
	}
	fmt.Printf("Exported %d correlation results to: %s\n", len(rows), outputFile)

	return nil
}
