package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/schema"
	"github.com/olekukonko/tablewriter/tw"
)

// frequencyCSV is one CSV line of the frequency summary.
type frequencyCSV struct {
	Question  string `csv:"question"`
	Total     int    `csv:"total"`
	Unique    int    `csv:"unique"`
	TopAnswer string `csv:"top_answer"`
	TopCount  int    `csv:"top_count"`
}

// PrintFrequencies outputs the per-column answer frequencies of a survey export.
func PrintFrequencies(freqs []schema.ColumnFrequency, cfg *contract.Config, duration time.Duration) error {
	_, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, freqs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			records := make([]frequencyCSV, len(freqs))
			for i, f := range freqs {
				records[i] = frequencyCSV{
					Question:  f.Header,
					Total:     f.Total,
					Unique:    len(f.Counts),
					TopAnswer: f.TopAnswer,
					TopCount:  f.TopCount,
				}
			}
			return writeCSV(w, records)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the frequency summary")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFrequencyTable(freqs, cfg, intFmt, duration, w)
		}, "Wrote table")
	}
}

// writeFrequencyTable generates and writes the human-readable table.
func writeFrequencyTable(freqs []schema.ColumnFrequency, cfg *contract.Config, intFmt string, duration time.Duration, w io.Writer) error {
	textWidth := getMaxTextWidth(cfg, 30) / 2
	var rows [][]string
	for _, f := range freqs {
		rows = append(rows, []string{
			contract.TruncateText(f.Header, textWidth),
			fmt.Sprintf(intFmt, f.Total),
			fmt.Sprintf(intFmt, len(f.Counts)),
			contract.TruncateText(f.TopAnswer, textWidth),
			fmt.Sprintf(intFmt, f.TopCount),
		})
	}
	headers := []string{"Question", "Total", "Unique", "Top Answer", "Top Count"}
	if err := writeTable(w, headers, rows, tw.AlignLeft); err != nil {
		return err
	}
	return footer(w, fmt.Sprintf("Counted %d columns in %v", len(freqs), duration))
}
