// Package session wires the series store, artifact cache and analyzer
// into one analysis session, created once per process and shared by
// the CLI and MCP entry points.
package session

import (
	"fmt"

	"github.com/arboclima/arboclima/core"
	"github.com/arboclima/arboclima/internal/contract"
	"github.com/arboclima/arboclima/internal/ingest"
	"github.com/arboclima/arboclima/schema"
)

// Session owns the ingested series and the memoization cache for one
// process lifetime. The cache is injected into the analyzer explicitly
// so there is no hidden cross-request state.
type Session struct {
	store    *core.SeriesStore
	analyzer *core.Analyzer
}

// New loads every normalized series file under dataDir and injects the
// given artifact cache into the analyzer.
func New(dataDir string, cache core.ArtifactCache) (*Session, error) {
	store := core.NewSeriesStore()
	n, err := ingest.LoadDir(dataDir, store)
	if err != nil {
		return nil, fmt.Errorf("failed to load series from %s: %w", dataDir, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("no series ingested from %s", dataDir)
	}

	analyzer := core.NewAnalyzer(store, cache)
	return &Session{store: store, analyzer: analyzer}, nil
}

// Analyze runs one lag-range correlation request through the cache.
func (s *Session) Analyze(cfg *contract.Config) ([]schema.CorrelationResult, error) {
	return s.analyzer.Analyze(
		string(cfg.Disease),
		string(cfg.Variable),
		string(cfg.Region),
		cfg.Year,
		cfg.LagMin,
		cfg.LagMax,
	)
}

// SeriesCount returns the number of series loaded into the session.
func (s *Session) SeriesCount() int {
	return s.store.Len()
}
