package schema

import "fmt"

// MonthsPerYear is the fixed length of every monthly series.
const MonthsPerYear = 12

// MonthlyPoint represents a single observation in a monthly series.
// Valid=false marks a missing observation, which is a distinct state
// from a zero value and must never be collapsed into one.
type MonthlyPoint struct {
	Year  int     `json:"year"`
	Month int     `json:"month"` // 1..12
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// TimeSeries holds one calendar year of monthly observations for a
// single (domain, region) pair. Points are contiguous January through
// December; gaps are absent points, never omitted indices, so two
// series can be walked index-by-index during alignment.
type TimeSeries struct {
	Domain string         `json:"domain"` // disease name or climate variable name
	Region Region         `json:"region"`
	Year   int            `json:"year"`
	Points []MonthlyPoint `json:"points"`
}

// NewTimeSeries creates a series with all twelve months absent.
func NewTimeSeries(domain string, region Region, year int) *TimeSeries {
	points := make([]MonthlyPoint, MonthsPerYear)
	for i := range points {
		points[i] = MonthlyPoint{Year: year, Month: i + 1}
	}
	return &TimeSeries{
		Domain: domain,
		Region: region,
		Year:   year,
		Points: points,
	}
}

// SetValue records an observation for the given month (1..12).
func (ts *TimeSeries) SetValue(month int, value float64) error {
	if month < 1 || month > MonthsPerYear {
		return fmt.Errorf("month %d out of range 1..%d", month, MonthsPerYear)
	}
	ts.Points[month-1] = MonthlyPoint{Year: ts.Year, Month: month, Value: value, Valid: true}
	return nil
}

// ValueAt returns the observation for the given month and whether it is
// present. Months outside 1..12 are reported as absent, which lets the
// aligner probe lag-shifted indices without bounds juggling.
func (ts *TimeSeries) ValueAt(month int) (float64, bool) {
	if month < 1 || month > MonthsPerYear {
		return 0, false
	}
	p := ts.Points[month-1]
	return p.Value, p.Valid
}

// SeriesKey identifies one series in the store.
type SeriesKey struct {
	Domain string
	Region Region
	Year   int
}

// Key returns the store key for this series.
func (ts *TimeSeries) Key() SeriesKey {
	return SeriesKey{Domain: ts.Domain, Region: ts.Region, Year: ts.Year}
}
