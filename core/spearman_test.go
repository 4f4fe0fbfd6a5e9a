package core

import (
	"testing"

	"github.com/arboclima/arboclima/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCorrelate tests the Spearman coefficient and its status handling.
func TestCorrelate(t *testing.T) {
	t.Run("perfect monotonic increase", func(t *testing.T) {
		pair := schema.AlignedPair{
			Xs: []float64{1, 2, 3, 4, 5},
			Ys: []float64{10, 20, 30, 40, 50},
		}
		corr := Correlate(pair)
		assert.Equal(t, schema.StatusOK, corr.Status)
		require.NotNil(t, corr.Coefficient)
		require.NotNil(t, corr.PValue)
		assert.InDelta(t, 1.0, *corr.Coefficient, 1e-12)
		assert.InDelta(t, 0.0, *corr.PValue, 1e-12)
		assert.Equal(t, 5, corr.SampleSize)
	})

	t.Run("perfect monotonic decrease", func(t *testing.T) {
		pair := schema.AlignedPair{
			Xs: []float64{1, 2, 3, 4},
			Ys: []float64{9, 7, 5, 3},
		}
		corr := Correlate(pair)
		assert.Equal(t, schema.StatusOK, corr.Status)
		require.NotNil(t, corr.Coefficient)
		assert.InDelta(t, -1.0, *corr.Coefficient, 1e-12)
	})

	t.Run("monotone on ranks not on values", func(t *testing.T) {
		// Nonlinear but strictly increasing, so Spearman is exactly 1.
		pair := schema.AlignedPair{
			Xs: []float64{1, 2, 3, 4, 5},
			Ys: []float64{1, 8, 27, 64, 125},
		}
		corr := Correlate(pair)
		require.NotNil(t, corr.Coefficient)
		assert.InDelta(t, 1.0, *corr.Coefficient, 1e-12)
	})

	t.Run("known mixed ordering", func(t *testing.T) {
		// Ranks of Xs are [1 2 4 3], Ys are [2 1 3 4]; rho = 0.6.
		pair := schema.AlignedPair{
			Xs: []float64{9, 15, 20, 18},
			Ys: []float64{100, 95, 110, 130},
		}
		corr := Correlate(pair)
		assert.Equal(t, schema.StatusOK, corr.Status)
		require.NotNil(t, corr.Coefficient)
		assert.InDelta(t, 0.6, *corr.Coefficient, 1e-12)
		require.NotNil(t, corr.PValue)
		assert.Greater(t, *corr.PValue, 0.0)
		assert.LessOrEqual(t, *corr.PValue, 1.0)
		assert.Equal(t, 4, corr.SampleSize)
	})

	t.Run("fewer than three pairs is insufficient", func(t *testing.T) {
		pair := schema.AlignedPair{Xs: []float64{1, 2}, Ys: []float64{3, 4}}
		corr := Correlate(pair)
		assert.Equal(t, schema.StatusInsufficientData, corr.Status)
		assert.Nil(t, corr.Coefficient)
		assert.Nil(t, corr.PValue)
		assert.Equal(t, 2, corr.SampleSize)
	})

	t.Run("empty pair is insufficient", func(t *testing.T) {
		corr := Correlate(schema.AlignedPair{})
		assert.Equal(t, schema.StatusInsufficientData, corr.Status)
		assert.Equal(t, 0, corr.SampleSize)
	})

	t.Run("constant climate series is degenerate", func(t *testing.T) {
		pair := schema.AlignedPair{
			Xs: []float64{1, 2, 3, 4},
			Ys: []float64{7, 7, 7, 7},
		}
		corr := Correlate(pair)
		assert.Equal(t, schema.StatusDegenerate, corr.Status)
		assert.Nil(t, corr.Coefficient)
		assert.Nil(t, corr.PValue)
		assert.Equal(t, 4, corr.SampleSize)
	})

	t.Run("constant disease series is degenerate", func(t *testing.T) {
		pair := schema.AlignedPair{
			Xs: []float64{5, 5, 5},
			Ys: []float64{1, 2, 3},
		}
		corr := Correlate(pair)
		assert.Equal(t, schema.StatusDegenerate, corr.Status)
	})

	t.Run("ties keep rho within the unit interval", func(t *testing.T) {
		pair := schema.AlignedPair{
			Xs: []float64{1, 1, 2, 2, 3, 3},
			Ys: []float64{4, 4, 5, 5, 6, 6},
		}
		corr := Correlate(pair)
		assert.Equal(t, schema.StatusOK, corr.Status)
		require.NotNil(t, corr.Coefficient)
		assert.GreaterOrEqual(t, *corr.Coefficient, -1.0)
		assert.LessOrEqual(t, *corr.Coefficient, 1.0)
	})
}

// TestRankAverage tests average-rank assignment for ties.
func TestRankAverage(t *testing.T) {
	tests := []struct {
		name string
		vals []float64
		want []float64
	}{
		{
			name: "distinct values",
			vals: []float64{30, 10, 20},
			want: []float64{3, 1, 2},
		},
		{
			name: "one tie pair",
			vals: []float64{1, 2, 2, 3},
			want: []float64{1, 2.5, 2.5, 4},
		},
		{
			name: "triple tie",
			vals: []float64{5, 5, 5, 1},
			want: []float64{3, 3, 3, 1},
		},
		{
			name: "all tied",
			vals: []float64{4, 4, 4},
			want: []float64{2, 2, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rankAverage(tt.vals))
		})
	}
}

// TestTwoSidedPValue tests the t-approximation boundary behavior.
func TestTwoSidedPValue(t *testing.T) {
	t.Run("zero rho yields p of one", func(t *testing.T) {
		assert.InDelta(t, 1.0, twoSidedPValue(0, 10), 1e-12)
	})

	t.Run("perfect rho yields p of zero", func(t *testing.T) {
		assert.Equal(t, 0.0, twoSidedPValue(1, 10))
		assert.Equal(t, 0.0, twoSidedPValue(-1, 10))
	})

	t.Run("stronger rho yields smaller p", func(t *testing.T) {
		weak := twoSidedPValue(0.2, 12)
		strong := twoSidedPValue(0.8, 12)
		assert.Less(t, strong, weak)
	})

	t.Run("p stays in unit interval", func(t *testing.T) {
		for _, rho := range []float64{-0.99, -0.5, 0, 0.5, 0.99} {
			p := twoSidedPValue(rho, 6)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
		}
	})
}

// TestAllEqual tests the degenerate-input predicate.
func TestAllEqual(t *testing.T) {
	assert.True(t, allEqual([]float64{3, 3, 3}))
	assert.True(t, allEqual([]float64{1}))
	assert.False(t, allEqual([]float64{1, 1, 2}))
}
