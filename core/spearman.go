package core

import (
	"math"
	"sort"

	"github.com/arboclima/arboclima/schema"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MinSampleSize is the smallest pair count for which a rank correlation
// is attempted. Below this the variance is meaningless.
const MinSampleSize = 3

// Correlate computes the Spearman rank correlation and its two-sided
// p-value for an aligned pair.
//
// The coefficient is the Pearson correlation of the two rank sequences,
// with ties resolved by average rank. The p-value uses the Student-t
// approximation under the null of no monotonic association, matching
// the behavior the dashboard's statistics stack exposes by default.
//
// Degenerate inputs never error: fewer than MinSampleSize pairs yield
// StatusInsufficientData without attempting the computation, and zero
// variance in either sequence yields StatusDegenerate. In both cases
// the coefficient and p-value stay undefined.
func Correlate(pair schema.AlignedPair) schema.Correlation {
	n := pair.Len()
	if n < MinSampleSize {
		return schema.Correlation{SampleSize: n, Status: schema.StatusInsufficientData}
	}
	if allEqual(pair.Xs) || allEqual(pair.Ys) {
		return schema.Correlation{SampleSize: n, Status: schema.StatusDegenerate}
	}

	rho := stat.Correlation(rankAverage(pair.Xs), rankAverage(pair.Ys), nil)

	// Ties can nudge the rank correlation past the unit interval by a
	// few ulps; keep the contract rho in [-1, 1].
	rho = math.Max(-1, math.Min(1, rho))

	p := twoSidedPValue(rho, n)
	return schema.Correlation{
		Coefficient: &rho,
		PValue:      &p,
		SampleSize:  n,
		Status:      schema.StatusOK,
	}
}

// twoSidedPValue derives the two-sided significance of rho for n
// samples from the t distribution with n-2 degrees of freedom.
func twoSidedPValue(rho float64, n int) float64 {
	denom := 1 - rho*rho
	if denom <= 0 {
		// Perfect monotonic association.
		return 0
	}
	t := rho * math.Sqrt(float64(n-2)/denom)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	p := 2 * dist.CDF(-math.Abs(t))
	return math.Max(0, math.Min(1, p))
}

// rankAverage returns 1-based ranks for vals, assigning tied values the
// average of the ranks they span.
func rankAverage(vals []float64) []float64 {
	n := len(vals)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return vals[order[a]] < vals[order[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && vals[order[j+1]] == vals[order[i]] {
			j++
		}
		// Average rank across the tie run [i, j].
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[order[k]] = avg
		}
		i = j + 1
	}
	return ranks
}

// allEqual reports whether every value in vals is identical.
func allEqual(vals []float64) bool {
	for _, v := range vals[1:] {
		if v != vals[0] {
			return false
		}
	}
	return true
}
