package core

import (
	"github.com/arboclima/arboclima/schema"
)

// Align joins a disease series and a climate series onto the months
// where both have observations, shifting the climate signal earlier by
// lagMonths: disease month m is paired with climate month m-lagMonths,
// modeling the incubation/transmission delay. Months absent in either
// series are dropped, never imputed. Output order follows the disease
// series month order, ascending.
func Align(disease, climate *schema.TimeSeries, lagMonths int) (schema.AlignedPair, error) {
	if lagMonths < 0 {
		return schema.AlignedPair{}, &InvalidLagError{Lag: lagMonths}
	}
	if disease.Region != climate.Region {
		return schema.AlignedPair{}, &InvalidInputError{
			Reason: "cannot align series from regions " + string(disease.Region) + " and " + string(climate.Region),
		}
	}

	var pair schema.AlignedPair
	for month := 1; month <= schema.MonthsPerYear; month++ {
		x, ok := disease.ValueAt(month)
		if !ok {
			continue
		}
		y, ok := climate.ValueAt(month - lagMonths)
		if !ok {
			continue
		}
		pair.Xs = append(pair.Xs, x)
		pair.Ys = append(pair.Ys, y)
	}
	return pair, nil
}
