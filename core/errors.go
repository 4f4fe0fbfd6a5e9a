package core

import (
	"errors"
	"fmt"

	"github.com/arboclima/arboclima/schema"
)

// ErrSeriesNotFound marks a store lookup for data that was never ingested.
var ErrSeriesNotFound = errors.New("series not found")

// InvalidLagError rejects a negative lag. Climate cannot trail disease
// onset under the incubation model, so the lag is never clamped.
type InvalidLagError struct {
	Lag int
}

func (e *InvalidLagError) Error() string {
	return fmt.Sprintf("invalid lag %d: lag must be zero or positive", e.Lag)
}

// InvalidInputError rejects a malformed request tuple, such as an
// unknown region or a series pair from different regions.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// DataUnavailableError is surfaced by the analyzer when a required
// series is missing from the store. It wraps ErrSeriesNotFound so
// callers can distinguish "no such data" from a bad request shape.
type DataUnavailableError struct {
	Key schema.SeriesKey
	Err error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("no data for %s/%s/%d: %v", e.Key.Domain, e.Key.Region, e.Key.Year, e.Err)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}
