package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/internal/parquet"
	"github.com/huangsam/encuesta/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// groupSummaryCSV is one CSV line of the analyze summary.
type groupSummaryCSV struct {
	Rank        int    `csv:"rank"`
	Survey      string `csv:"survey"`
	Department  string `csv:"department"`
	Questions   int    `csv:"questions"`
	Respondents int    `csv:"respondents"`
	Score       string `csv:"score"`
	Label       string `csv:"label"`
}

// PrintGroupSummaries outputs the department summary of an analyze run, dispatching based
// on the output format configured.
func PrintGroupSummaries(summaries []schema.GroupSummary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summaries)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSV(w, groupSummaryRecords(summaries, fmtFloat))
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := parquet.WriteGroupSummariesParquet(parquet.ConvertGroupSummaries(summaries), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGroupTable(summaries, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
}

// groupSummaryRecords formats the summary for CSV output.
func groupSummaryRecords(summaries []schema.GroupSummary, fmtFloat func(float64) string) []groupSummaryCSV {
	records := make([]groupSummaryCSV, len(summaries))
	for i, s := range summaries {
		records[i] = groupSummaryCSV{
			Rank:        s.Rank,
			Survey:      s.Survey,
			Department:  s.Department,
			Questions:   s.Questions,
			Respondents: s.Respondents,
			Score:       fmtFloat(s.Score),
			Label:       s.Label,
		}
	}
	return records
}

// writeGroupTable generates and writes the human-readable table.
func writeGroupTable(summaries []schema.GroupSummary, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, w io.Writer) error {
	nameWidth := getMaxTextWidth(cfg, 55) / 2
	var rows [][]string
	respondents := 0
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.Itoa(s.Rank),
			contract.TruncateText(s.Survey, nameWidth),
			contract.TruncateText(s.Department, nameWidth),
			fmt.Sprintf(intFmt, s.Questions),
			fmt.Sprintf(intFmt, s.Respondents),
			fmtFloat(s.Score),
			contract.GetColorLabel(s.Score),
		})
		respondents += s.Respondents
	}
	headers := []string{"Rank", "Survey", "Department", "Questions", "Respondents", "Score", "Label"}
	if err := writeTable(w, headers, rows, tw.AlignRight); err != nil {
		return err
	}
	return footer(w,
		fmt.Sprintf("Showing %d departments (total respondents: %d)", len(summaries), respondents),
		fmt.Sprintf("Analysis completed in %v. History backend: %s", duration, cfg.HistoryBackend),
	)
}
