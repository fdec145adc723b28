// Package core has core logic for survey statistics, reports and comparisons.
package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/internal/outwriter"
	"github.com/huangsam/encuesta/internal/sheetio"
	"github.com/huangsam/encuesta/schema"
	"go.uber.org/zap"
)

// ExecuteAnalyze runs every configured job, writes the analysis workbooks and prints a
// summary of the departments. A failing job is logged and skipped.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, reader contract.SheetReader, mgr contract.StoreManager) error {
	start := time.Now()
	if len(cfg.Jobs) == 0 {
		return fmt.Errorf("no jobs configured")
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	var surveys []schema.SurveyAnalysis
	for _, job := range cfg.Jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		contract.Logger().Info("Processing job", zap.String("input", job.Input), zap.String("kind", string(job.Kind)))
		jobStart := time.Now()
		done, err := runJob(cfg, reader, job)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Cannot process %s", job.Input), err)
			continue
		}
		recordRun(mgr, cfg, job, done, jobStart)
		surveys = append(surveys, done...)
	}

	summaries := SummarizeSurveys(surveys)
	return outwriter.PrintGroupSummaries(summaries, cfg, time.Since(start))
}

// runJob reads one survey export and writes its analysis workbooks.
func runJob(cfg *contract.Config, reader contract.SheetReader, job contract.Job) ([]schema.SurveyAnalysis, error) {
	data, err := reader.ReadRows(cfg.ResolveInput(job.Input), cfg.Geometry.Sheet)
	if err != nil {
		return nil, err
	}
	surveys := BuildSurveys(data, job, cfg.Geometry)
	for _, s := range surveys {
		wb := BuildWorkbook(job, s)
		path := filepath.Join(cfg.OutputDir, wb.FileName)
		if _, err := sheetio.WriteWorkbook(path, wb.Sheets); err != nil {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote %s\n", path)
	}
	return surveys, nil
}

// SummarizeSurveys flattens the departments of every survey into summary lines ranked
// by score, highest first. Departments without statistics are left out.
func SummarizeSurveys(surveys []schema.SurveyAnalysis) []schema.GroupSummary {
	var out []schema.GroupSummary
	for _, s := range surveys {
		for _, dept := range s.Departments {
			if len(dept.Questions) == 0 {
				continue
			}
			out = append(out, schema.GroupSummary{
				Survey:      s.Name,
				Department:  dept.Name,
				Questions:   len(dept.Questions),
				Respondents: dept.Respondents,
				Score:       dept.Average,
				Label:       contract.GetPlainLabel(dept.Average),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// recordRun stores what a job produced in the run history. History is optional, so
// failures are only logged.
func recordRun(mgr contract.StoreManager, cfg *contract.Config, job contract.Job, surveys []schema.SurveyAnalysis, start time.Time) {
	if mgr == nil {
		return
	}
	store := mgr.GetRunStore()
	if store == nil {
		return
	}
	params := map[string]any{
		"sheet-name": job.SheetName,
		"data-sheet": cfg.Geometry.Sheet,
		"header-row": cfg.Geometry.HeaderRow,
		"output-dir": cfg.OutputDir,
	}
	runID, err := store.BeginRun(start, job.Kind, job.Input, params)
	if err != nil {
		contract.LogWarn("Cannot begin history run", err)
		return
	}

	var records []schema.GroupScoreRecord
	total := 0
	for _, s := range surveys {
		total += s.General.Respondents
		for _, dept := range s.Departments {
			records = append(records, schema.GroupScoreRecord{
				RunID:         runID,
				Survey:        s.Name,
				Department:    dept.Name,
				QuestionCount: int32(len(dept.Questions)),
				Respondents:   int32(dept.Respondents),
				AverageScore:  dept.Average,
				ScoreLabel:    contract.GetPlainLabel(dept.Average),
			})
		}
	}
	if err := store.RecordGroupScores(runID, records); err != nil {
		contract.LogWarn("Cannot record group scores", err)
	}
	if err := store.EndRun(runID, time.Now(), total); err != nil {
		contract.LogWarn("Cannot end history run", err)
	}
}
