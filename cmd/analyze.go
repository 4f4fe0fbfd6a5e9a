package cmd

import (
	"time"

	"github.com/arboclima/arboclima/internal/contract"
	"github.com/arboclima/arboclima/internal/iocache"
	"github.com/arboclima/arboclima/internal/outwriter"
	"github.com/arboclima/arboclima/internal/session"
	"github.com/spf13/cobra"
)

// analyzeCmd runs a lag-range correlation analysis.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Correlate a disease series with a lag-shifted climate series.",
	Long: `Compute Spearman rank correlations between a monthly arbovirus
incidence series and a climate series shifted earlier by each lag in
the requested range.

The climate value for lag k is taken k months before the disease
observation, so a positive correlation at lag 2 reads as "climate two
months earlier tracks incidence now". Months missing from either
series are dropped pairwise before ranking.

Results are memoized per (disease, variable, region, year, lag) in the
configured cache backend, so repeated runs are instant.

Examples:
  # Dengue vs temperature in the Southeast, lags 0 through 3
  arboclima analyze -d dengue -v temperature -r sudeste -y 2023

  # A single lag, exported as CSV
  arboclima analyze -d zika -v precipitation -r norte -y 2022 \
    --lag-min 2 --lag-max 2 --output csv --output-file zika.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()

		cache := iocache.NewArtifactCache(iocache.Manager.GetResultStore())
		sess, err := session.New(cfg.DataDir, cache)
		if err != nil {
			contract.LogFatal("Cannot load series data", err)
		}

		results, err := sess.Analyze(cfg)
		if err != nil {
			contract.LogFatal("Cannot run correlation analysis", err)
		}

		if err := outwriter.WriteResults(results, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write results", err)
		}
	},
}
