// Package parquet provides data structures and functions for exporting encuesta
// summaries and run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/encuesta/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single analysis run with metadata.
// This struct maps to the encuesta_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// RunKey is the uuid assigned when the run began
	RunKey string `parquet:"run_key,snappy"`

	// JobKind is generic or property
	JobKind string `parquet:"job_kind,snappy"`

	// Source is the survey export the run read
	Source string `parquet:"source,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalResponses is the number of respondents analyzed in this run
	TotalResponses int32 `parquet:"total_responses,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// GroupScore represents the average score of one department in a run.
// This struct maps to the encuesta_group_scores database table.
type GroupScore struct {
	RunID         int64   `parquet:"run_id,snappy"`
	Survey        string  `parquet:"survey,snappy"`
	Department    string  `parquet:"department,snappy"`
	QuestionCount int32   `parquet:"question_count,snappy"`
	Respondents   int32   `parquet:"respondents,snappy"`
	AverageScore  float64 `parquet:"average_score,snappy"`
	ScoreLabel    string  `parquet:"score_label,snappy"`
}

// GroupSummary is one line of the analyze summary.
type GroupSummary struct {
	Rank        int32   `parquet:"rank,snappy"`
	Survey      string  `parquet:"survey,snappy"`
	Department  string  `parquet:"department,snappy"`
	Questions   int32   `parquet:"questions,snappy"`
	Respondents int32   `parquet:"respondents,snappy"`
	Score       float64 `parquet:"score,snappy"`
	Label       string  `parquet:"label,snappy"`
}

// ComparisonSummary is one line of the compare summary.
type ComparisonSummary struct {
	Property    string  `parquet:"property,snappy"`
	Departments int32   `parquet:"departments,snappy"`
	Rows        int32   `parquet:"rows,snappy"`
	Matched     int32   `parquet:"matched,snappy"`
	MeanDelta   float64 `parquet:"mean_delta,snappy"`
}

// writeRecords writes a slice of records to a Parquet file, with the schema
// derived from the struct tags of T.
func writeRecords[T any](data []T, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

// WriteRunsParquet writes run records to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeRecords(data, outputPath)
}

// WriteGroupScoresParquet writes group score records to a Parquet file.
func WriteGroupScoresParquet(data []GroupScore, outputPath string) error {
	return writeRecords(data, outputPath)
}

// WriteGroupSummariesParquet writes the analyze summary to a Parquet file.
func WriteGroupSummariesParquet(data []GroupSummary, outputPath string) error {
	return writeRecords(data, outputPath)
}

// WriteComparisonSummariesParquet writes the compare summary to a Parquet file.
func WriteComparisonSummariesParquet(data []ComparisonSummary, outputPath string) error {
	return writeRecords(data, outputPath)
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:          record.RunID,
			RunKey:         record.RunKey,
			JobKind:        record.JobKind,
			Source:         record.Source,
			StartTime:      record.StartTime,
			EndTime:        record.EndTime,
			RunDurationMs:  record.RunDurationMs,
			TotalResponses: record.TotalResponses,
			ConfigParams:   record.ConfigParams,
		}
	}
	return result
}

// ConvertGroupScoreRecords converts schema.GroupScoreRecord to GroupScore for Parquet export.
func ConvertGroupScoreRecords(records []schema.GroupScoreRecord) []GroupScore {
	result := make([]GroupScore, len(records))
	for i, record := range records {
		result[i] = GroupScore(record)
	}
	return result
}

// ConvertGroupSummaries converts the analyze summary for Parquet export.
func ConvertGroupSummaries(summaries []schema.GroupSummary) []GroupSummary {
	result := make([]GroupSummary, len(summaries))
	for i, s := range summaries {
		result[i] = GroupSummary{
			Rank:        int32(s.Rank),
			Survey:      s.Survey,
			Department:  s.Department,
			Questions:   int32(s.Questions),
			Respondents: int32(s.Respondents),
			Score:       s.Score,
			Label:       s.Label,
		}
	}
	return result
}

// ConvertComparisonSummaries converts the compare summary for Parquet export.
func ConvertComparisonSummaries(summaries []schema.ComparisonSummary) []ComparisonSummary {
	result := make([]ComparisonSummary, len(summaries))
	for i, s := range summaries {
		result[i] = ComparisonSummary{
			Property:    s.Property,
			Departments: int32(s.Departments),
			Rows:        int32(s.Rows),
			Matched:     int32(s.Matched),
			MeanDelta:   s.MeanDelta,
		}
	}
	return result
}
