// Package outwriter renders correlation result sets as text tables,
// CSV or JSON.
package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/arboclima/arboclima/internal/contract"
	"github.com/arboclima/arboclima/schema"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

// compactWidthThreshold is the terminal width below which the table
// drops the sample-size and status columns.
const compactWidthThreshold = 80

// WriteResults outputs the analysis results, dispatching based on the
// output format configured.
func WriteResults(results []schema.CorrelationResult, cfg *contract.Config, duration time.Duration) error {
	color.NoColor = !cfg.UseColors

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResults(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResults(w, results, cfg.Precision)
		}, "Wrote CSV")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResultTable(w, results, cfg, duration)
		}, "Wrote table")
	}
}

// writeResultTable generates and writes the human-readable table.
func writeResultTable(w io.Writer, results []schema.CorrelationResult, cfg *contract.Config, duration time.Duration) error {
	compact := terminalWidth(cfg) < compactWidthThreshold

	table := tablewriter.NewWriter(w)

	headers := []string{"Lag", "Rho", "P-Value", "Strength"}
	if !compact {
		headers = append(headers, "Samples", "Status")
	}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range results {
		row := []string{
			strconv.Itoa(r.LagMonths),
			formatFloatPtr(r.Coefficient, cfg.Precision),
			formatFloatPtr(r.PValue, cfg.Precision),
			contract.GetColorLabel(r.Coefficient),
		}
		if !compact {
			row = append(row, strconv.Itoa(r.SampleSize), string(r.Status))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(results) > 0 {
		r := results[0]
		fmt.Fprintf(w, "%s vs %s | region=%s year=%d | %d lag(s) in %v\n",
			r.Disease, r.ClimateVariable, r.Region, r.Year, len(results), duration.Round(time.Millisecond))
	}
	return nil
}

// writeCSVResults writes results in CSV form.
func writeCSVResults(w io.Writer, results []schema.CorrelationResult, precision int) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	header := []string{"region", "disease", "climate_variable", "year", "lag_months", "coefficient", "p_value", "sample_size", "status"}
	if err := csvWriter.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			string(r.Region),
			string(r.Disease),
			string(r.ClimateVariable),
			strconv.Itoa(r.Year),
			strconv.Itoa(r.LagMonths),
			formatFloatPtr(r.Coefficient, precision),
			formatFloatPtr(r.PValue, precision),
			strconv.Itoa(r.SampleSize),
			string(r.Status),
		}
		if err := csvWriter.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResults writes results as indented JSON.
func writeJSONResults(w io.Writer, results []schema.CorrelationResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

// writeWithFile opens the configured output target, runs writeFn and
// reports where the output landed when it was a file.
func writeWithFile(outputFile string, writeFn func(io.Writer) error, successMsg string) error {
	f, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	if f != os.Stdout {
		defer func() { _ = f.Close() }()
	}

	if err := writeFn(f); err != nil {
		return err
	}
	if f != os.Stdout {
		fmt.Printf("%s to %s\n", successMsg, outputFile)
	}
	return nil
}

// terminalWidth resolves the table width: flag override first, then
// the detected terminal, then a conservative default.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return 80 // conservative default for narrow terminals and CI
	}
	return detected
}

// formatFloatPtr renders a nullable float, using "n/a" for undefined.
func formatFloatPtr(v *float64, precision int) string {
	if v == nil {
		return contract.NotComputable
	}
	return strconv.FormatFloat(*v, 'f', precision, 64)
}
