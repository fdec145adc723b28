package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/internal/parquet"
	"github.com/huangsam/encuesta/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// comparisonSummaryCSV is one CSV line of the compare summary.
type comparisonSummaryCSV struct {
	Property    string `csv:"property"`
	Departments int    `csv:"departments"`
	Rows        int    `csv:"rows"`
	Matched     int    `csv:"matched"`
	MeanDelta   string `csv:"mean_delta"`
}

// PrintComparisonSummaries outputs the per-property counts of the comparative report.
func PrintComparisonSummaries(summaries []schema.ComparisonSummary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summaries)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			records := make([]comparisonSummaryCSV, len(summaries))
			for i, s := range summaries {
				records[i] = comparisonSummaryCSV{
					Property:    s.Property,
					Departments: s.Departments,
					Rows:        s.Rows,
					Matched:     s.Matched,
					MeanDelta:   fmtFloat(s.MeanDelta),
				}
			}
			return writeCSV(w, records)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := parquet.WriteComparisonSummariesParquet(parquet.ConvertComparisonSummaries(summaries), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonTable(summaries, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
}

// formatDelta prefixes positive deltas with a plus sign.
func formatDelta(v float64, fmtFloat func(float64) string) string {
	if v > 0 {
		return "+" + fmtFloat(v)
	}
	return fmtFloat(v)
}

// writeComparisonTable generates and writes the human-readable table.
func writeComparisonTable(summaries []schema.ComparisonSummary, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, w io.Writer) error {
	nameWidth := getMaxTextWidth(cfg, 50)
	var rows [][]string
	matched, total := 0, 0
	for _, s := range summaries {
		rows = append(rows, []string{
			contract.TruncateText(s.Property, nameWidth),
			fmt.Sprintf(intFmt, s.Departments),
			fmt.Sprintf(intFmt, s.Rows),
			fmt.Sprintf(intFmt, s.Matched),
			formatDelta(s.MeanDelta, fmtFloat),
		})
		matched += s.Matched
		total += s.Rows
	}
	headers := []string{"Property", "Departments", "Rows", "Matched", "Mean Delta"}
	if err := writeTable(w, headers, rows, tw.AlignRight); err != nil {
		return err
	}
	return footer(w,
		fmt.Sprintf("Matched %d of %d mapped questions", matched, total),
		fmt.Sprintf("Comparison completed in %v", duration),
	)
}
