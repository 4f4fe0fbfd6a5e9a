package schema

// AlignedPair holds the paired observations for one correlation
// request: Xs[i] is the disease value for a month and Ys[i] the
// lag-shifted climate value for the same month. Entries exist only for
// months where both values are present.
type AlignedPair struct {
	Xs []float64 `json:"xs"`
	Ys []float64 `json:"ys"`
}

// Len returns the number of paired observations.
func (p AlignedPair) Len() int { return len(p.Xs) }

// Correlation is the raw outcome of the correlation engine for one
// aligned pair. Coefficient and PValue are nil unless Status is ok.
type Correlation struct {
	Coefficient *float64          `json:"coefficient"`
	PValue      *float64          `json:"p_value"`
	SampleSize  int               `json:"sample_size"`
	Status      CorrelationStatus `json:"status"`
}

// CorrelationResult is the full, immutable answer for one
// (disease, climate variable, region, year, lag) request. Undefined
// coefficient and p-value stay nil so the record round-trips exactly
// through JSON and the persistent result store.
type CorrelationResult struct {
	Region          Region            `json:"region"`
	Disease         Disease           `json:"disease"`
	ClimateVariable ClimateVariable   `json:"climate_variable"`
	Year            int               `json:"year"`
	LagMonths       int               `json:"lag_months"`
	Coefficient     *float64          `json:"coefficient"`
	PValue          *float64          `json:"p_value"`
	SampleSize      int               `json:"sample_size"`
	Status          CorrelationStatus `json:"status"`
}

// Computable reports whether the result carries a defined coefficient.
func (r CorrelationResult) Computable() bool {
	return r.Status == StatusOK
}

// ResultRecord is one row of the persistent result store, used for
// status reporting and Parquet export.
type ResultRecord struct {
	Fingerprint string
	Result      CorrelationResult
	Version     int
	Timestamp   int64
}
