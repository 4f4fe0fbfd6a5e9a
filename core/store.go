// Package core holds the lagged-correlation engine: the series store,
// the aligner, the Spearman engine and the analysis facade.
package core

import (
	"fmt"
	"sync"

	"github.com/arboclima/arboclima/schema"
)

// SeriesStore is the in-memory home of all ingested monthly series,
// keyed by (domain, region, year). Series are treated as immutable
// once stored: Put swaps the whole pointer, so a reader holding the
// previous series is never affected by a resubmission.
type SeriesStore struct {
	mu     sync.RWMutex
	series map[schema.SeriesKey]*schema.TimeSeries
}

// NewSeriesStore creates an empty store.
func NewSeriesStore() *SeriesStore {
	return &SeriesStore{series: make(map[schema.SeriesKey]*schema.TimeSeries)}
}

// Get returns the series for the given key, or an error wrapping
// ErrSeriesNotFound when nothing was ingested for it.
func (s *SeriesStore) Get(domain string, region schema.Region, year int) (*schema.TimeSeries, error) {
	key := schema.SeriesKey{Domain: domain, Region: region, Year: year}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ts, ok := s.series[key]
	if !ok {
		return nil, fmt.Errorf("%s/%s/%d: %w", domain, region, year, ErrSeriesNotFound)
	}
	return ts, nil
}

// Put inserts or replaces a series wholesale. There is no partial
// merge; a resubmitted series fully overwrites the previous one.
func (s *SeriesStore) Put(ts *schema.TimeSeries) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series[ts.Key()] = ts
}

// Len returns the number of stored series.
func (s *SeriesStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.series)
}
