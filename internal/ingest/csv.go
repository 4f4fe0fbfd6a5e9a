// Package ingest loads normalized monthly series files into the series
// store. It is the boundary where raw values are judged: anything
// unparseable or non-finite becomes an absent point, never a zero and
// never a dropped month.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/arboclima/arboclima/core"
	"github.com/arboclima/arboclima/schema"
)

// expected header of a normalized series file.
var expectedHeader = []string{"domain", "region", "year", "month", "value"}

// LoadSeriesCSV parses a normalized monthly series CSV into one
// TimeSeries per (domain, region, year) found in the rows.
//
// Rows must carry a valid domain (disease or climate variable), region,
// year and month; those identify the observation and a bad key is a
// malformed file, not a missing value. The value column is different:
// an empty, unparseable or non-finite value marks the month absent.
// Duplicate (domain, region, year, month) rows fail the load.
func LoadSeriesCSV(r io.Reader) ([]*schema.TimeSeries, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	series := make(map[schema.SeriesKey]*schema.TimeSeries)
	seen := make(map[schema.SeriesKey][schema.MonthsPerYear]bool)

	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		domain := strings.ToLower(strings.TrimSpace(row[0]))
		region := schema.Region(strings.ToLower(strings.TrimSpace(row[1])))
		if !validDomain(domain) {
			return nil, fmt.Errorf("line %d: unknown domain %q", line, row[0])
		}
		if _, ok := schema.ValidRegions[region]; !ok {
			return nil, fmt.Errorf("line %d: unknown region %q", line, row[1])
		}

		year, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil || year <= 0 {
			return nil, fmt.Errorf("line %d: invalid year %q", line, row[2])
		}
		month, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil || month < 1 || month > schema.MonthsPerYear {
			return nil, fmt.Errorf("line %d: invalid month %q", line, row[3])
		}

		key := schema.SeriesKey{Domain: domain, Region: region, Year: year}
		ts, ok := series[key]
		if !ok {
			ts = schema.NewTimeSeries(domain, region, year)
			series[key] = ts
		}

		months := seen[key]
		if months[month-1] {
			return nil, fmt.Errorf("line %d: duplicate month %d for %s/%s/%d", line, month, domain, region, year)
		}
		months[month-1] = true
		seen[key] = months

		if value, ok := parseValue(row[4]); ok {
			_ = ts.SetValue(month, value)
		}
		// An unusable value leaves the month absent.
	}

	out := make([]*schema.TimeSeries, 0, len(series))
	for _, ts := range series {
		out = append(out, ts)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Key(), out[j].Key()
		if a.Domain != b.Domain {
			return a.Domain < b.Domain
		}
		if a.Region != b.Region {
			return a.Region < b.Region
		}
		return a.Year < b.Year
	})
	return out, nil
}

// LoadSeriesFile loads one normalized series file from disk.
func LoadSeriesFile(path string) ([]*schema.TimeSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open series file: %w", err)
	}
	defer func() { _ = f.Close() }()

	series, err := LoadSeriesCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return series, nil
}

// LoadDir loads every .csv file in dir into the store and returns the
// number of series ingested.
func LoadDir(dir string, store *core.SeriesStore) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return 0, err
	}
	if len(paths) == 0 {
		return 0, fmt.Errorf("no .csv files found in %s", dir)
	}
	sort.Strings(paths)

	count := 0
	for _, path := range paths {
		series, err := LoadSeriesFile(path)
		if err != nil {
			return count, err
		}
		for _, ts := range series {
			store.Put(ts)
			count++
		}
	}
	return count, nil
}

func checkHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("expected header %v, got %v", expectedHeader, header)
	}
	for i, h := range header {
		if strings.ToLower(strings.TrimSpace(h)) != expectedHeader[i] {
			return fmt.Errorf("expected header %v, got %v", expectedHeader, header)
		}
	}
	return nil
}

func validDomain(domain string) bool {
	if _, ok := schema.ValidDiseases[schema.Disease(domain)]; ok {
		return true
	}
	_, ok := schema.ValidClimateVariables[schema.ClimateVariable(domain)]
	return ok
}

// parseValue interprets the value column. Empty and sentinel strings,
// parse failures and non-finite numbers all mean absent.
func parseValue(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "", "na", "n/a", "null", "nan", "-":
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
