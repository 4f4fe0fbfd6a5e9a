package core

import (
	"errors"
	"fmt"

	"github.com/arboclima/arboclima/schema"
)

// ArtifactCache memoizes correlation results by fingerprint. The
// implementation must guarantee at most one concurrent computation per
// fingerprint; see internal/iocache.
type ArtifactCache interface {
	GetOrCompute(fingerprint string, compute func() (schema.CorrelationResult, error)) (schema.CorrelationResult, error)
}

// Analyzer is the single entry point the presentation layers use.
// It resolves each lag of a request through the artifact cache, only
// touching the aligner and correlation engine on cache misses.
type Analyzer struct {
	store *SeriesStore
	cache ArtifactCache
}

// NewAnalyzer wires a store and a cache into an analyzer. The cache is
// injected so its lifecycle stays bound to the session that created it.
func NewAnalyzer(store *SeriesStore, cache ArtifactCache) *Analyzer {
	return &Analyzer{store: store, cache: cache}
}

// Analyze returns one CorrelationResult per lag in [lagMin, lagMax],
// ascending by lag, for the given request. Callers pass plain values;
// validation happens here.
//
// A missing series fails the whole request with DataUnavailableError:
// every lag shares the same two series fetches, so no lag can succeed
// when one of them is absent.
func (a *Analyzer) Analyze(disease, climateVariable, region string, year, lagMin, lagMax int) ([]schema.CorrelationResult, error) {
	d := schema.Disease(disease)
	v := schema.ClimateVariable(climateVariable)
	r := schema.Region(region)

	if _, ok := schema.ValidDiseases[d]; !ok {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("unknown disease %q", disease)}
	}
	if _, ok := schema.ValidClimateVariables[v]; !ok {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("unknown climate variable %q", climateVariable)}
	}
	if _, ok := schema.ValidRegions[r]; !ok {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("unknown region %q", region)}
	}
	if year <= 0 {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("year %d is not a calendar year", year)}
	}
	if lagMin > lagMax {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("lag range [%d, %d] is empty", lagMin, lagMax)}
	}

	// Both series are identical across lags; verify them up front so
	// all lags of a request fail together when data is missing.
	if err := a.checkSeries(string(d), r, year); err != nil {
		return nil, err
	}
	if err := a.checkSeries(string(v), r, year); err != nil {
		return nil, err
	}

	results := make([]schema.CorrelationResult, 0, lagMax-lagMin+1)
	for lag := lagMin; lag <= lagMax; lag++ {
		fp := Fingerprint(d, v, r, year, lag)
		result, err := a.cache.GetOrCompute(fp, a.computeFunc(d, v, r, year, lag))
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// computeFunc builds the compute closure for one lag: fetch both
// series, align, correlate.
func (a *Analyzer) computeFunc(d schema.Disease, v schema.ClimateVariable, r schema.Region, year, lag int) func() (schema.CorrelationResult, error) {
	return func() (schema.CorrelationResult, error) {
		diseaseSeries, err := a.store.Get(string(d), r, year)
		if err != nil {
			return schema.CorrelationResult{}, a.wrapStoreErr(string(d), r, year, err)
		}
		climateSeries, err := a.store.Get(string(v), r, year)
		if err != nil {
			return schema.CorrelationResult{}, a.wrapStoreErr(string(v), r, year, err)
		}

		pair, err := Align(diseaseSeries, climateSeries, lag)
		if err != nil {
			return schema.CorrelationResult{}, err
		}

		corr := Correlate(pair)
		return schema.CorrelationResult{
			Region:          r,
			Disease:         d,
			ClimateVariable: v,
			Year:            year,
			LagMonths:       lag,
			Coefficient:     corr.Coefficient,
			PValue:          corr.PValue,
			SampleSize:      corr.SampleSize,
			Status:          corr.Status,
		}, nil
	}
}

// checkSeries verifies a series exists, translating the store error to
// the caller-facing kind.
func (a *Analyzer) checkSeries(domain string, region schema.Region, year int) error {
	if _, err := a.store.Get(domain, region, year); err != nil {
		return a.wrapStoreErr(domain, region, year, err)
	}
	return nil
}

func (a *Analyzer) wrapStoreErr(domain string, region schema.Region, year int, err error) error {
	if errors.Is(err, ErrSeriesNotFound) {
		return &DataUnavailableError{
			Key: schema.SeriesKey{Domain: domain, Region: region, Year: year},
			Err: err,
		}
	}
	return err
}
