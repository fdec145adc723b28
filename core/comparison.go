package core

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/internal/outwriter"
	"github.com/huangsam/encuesta/internal/sheetio"
	"github.com/huangsam/encuesta/schema"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.uber.org/zap"
)

// LoadMappings reads the question pairs of a comparison file.
func LoadMappings(path string) ([]schema.QuestionMapping, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("comparison file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var file schema.MappingFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("invalid comparison JSON in %s: %w", path, err)
	}
	return file.Mappings, nil
}

// baselineDept holds the clean questions of a department, in first-appearance order.
type baselineDept struct {
	name      string
	questions []string
	scores    map[string]schema.ScoreValue
}

// baselineProp holds the departments of a property, in first-appearance order.
type baselineProp struct {
	name  string
	depts []*baselineDept
	index map[string]*baselineDept
}

// indexBaseline indexes baseline rows by property, department and clean question.
// A repeated question keeps its first position and takes the last score.
func indexBaseline(rows []schema.BaselineRow) []*baselineProp {
	var props []*baselineProp
	index := make(map[string]*baselineProp)
	for _, row := range rows {
		pName := propertyName(row)
		prop, ok := index[pName]
		if !ok {
			prop = &baselineProp{name: pName, index: make(map[string]*baselineDept)}
			index[pName] = prop
			props = append(props, prop)
		}
		dName := departmentName(row)
		dept, ok := prop.index[dName]
		if !ok {
			dept = &baselineDept{name: dName, scores: make(map[string]schema.ScoreValue)}
			prop.index[dName] = dept
			prop.depts = append(prop.depts, dept)
		}
		q := CleanQuestion(row.Question)
		if _, seen := dept.scores[q]; !seen {
			dept.questions = append(dept.questions, q)
		}
		dept.scores[q] = row.Score
	}
	return props
}

// AnalysisIndex holds the question scores of a generated analysis workbook by department.
type AnalysisIndex struct {
	Departments []string                      // In sheet order
	Scores      map[string]map[string]float64 // department -> clean question -> score
}

// ParseAnalysisRows reads the DEPARTAMENTO blocks of a department sheet. Header and
// average rows are skipped, and scores are taken from the third column.
func ParseAnalysisRows(rows [][]string) AnalysisIndex {
	idx := AnalysisIndex{Scores: make(map[string]map[string]float64)}
	current := ""
	for _, row := range rows {
		first := strings.TrimSpace(sheetio.Cell(row, 0))
		if first == "" {
			continue
		}
		if strings.HasPrefix(first, schema.DepartmentPrefix) {
			current = strings.TrimSpace(strings.TrimPrefix(first, schema.DepartmentPrefix))
			if _, ok := idx.Scores[current]; !ok {
				idx.Departments = append(idx.Departments, current)
			}
			idx.Scores[current] = make(map[string]float64)
			continue
		}
		if first == schema.QuestionHeader || first == schema.SummaryLabel || current == "" {
			continue
		}
		score := schema.ParseScoreValue(sheetio.Cell(row, 2))
		if !score.Numeric {
			continue
		}
		idx.Scores[current][CleanQuestion(sheetio.Cell(row, 0))] = score.Number
	}
	return idx
}

// hasDepartmentBlock reports whether a sheet has at least one DEPARTAMENTO block.
func hasDepartmentBlock(rows [][]string) bool {
	for _, row := range rows {
		if strings.HasPrefix(strings.TrimSpace(sheetio.Cell(row, 0)), schema.DepartmentPrefix) {
			return true
		}
	}
	return false
}

// fixedSheets are the sheets every analysis workbook has besides the department sheet.
var fixedSheets = map[string]struct{}{
	schema.GeneralSheet:          {},
	schema.DemographicsSheet:     {},
	schema.DeptDemographicsSheet: {},
}

// LoadAnalysisWorkbook indexes the department sheet of an analysis workbook. The sheet
// is the one named by sheet, or else the first non-fixed sheet with a DEPARTAMENTO block.
func LoadAnalysisWorkbook(reader contract.SheetReader, path, sheet string) (AnalysisIndex, error) {
	if sheet != "" {
		rows, err := reader.ReadRows(path, sheet)
		if err != nil {
			return AnalysisIndex{}, err
		}
		return ParseAnalysisRows(rows), nil
	}

	names, err := reader.SheetNames(path)
	if err != nil {
		return AnalysisIndex{}, err
	}
	for _, name := range names {
		if _, fixed := fixedSheets[name]; fixed {
			continue
		}
		rows, err := reader.ReadRows(path, name)
		if err != nil {
			return AnalysisIndex{}, err
		}
		if hasDepartmentBlock(rows) {
			return ParseAnalysisRows(rows), nil
		}
	}
	return AnalysisIndex{}, fmt.Errorf("no department sheet found in %s", path)
}

// MatchDepartment finds the analysis department for a baseline department: first by
// case-insensitive name, then ignoring accents, then by fuzzy ranking when maxDistance > 0.
func MatchDepartment(name string, candidates []string, maxDistance int) (string, bool) {
	target := strings.TrimSpace(name)
	for _, c := range candidates {
		if strings.EqualFold(strings.TrimSpace(c), target) {
			return c, true
		}
	}
	folded := foldName(target)
	for _, c := range candidates {
		if foldName(c) == folded {
			return c, true
		}
	}
	if maxDistance <= 0 || folded == "" {
		return "", false
	}
	// Rank folded names so case and accents do not add to the distance
	foldedCandidates := make([]string, len(candidates))
	for i, c := range candidates {
		foldedCandidates[i] = foldName(c)
	}
	ranks := fuzzy.RankFindNormalizedFold(folded, foldedCandidates)
	if len(ranks) == 0 {
		return "", false
	}
	sort.Sort(ranks)
	if ranks[0].Distance > maxDistance {
		return "", false
	}
	return candidates[ranks[0].OriginalIndex], true
}

// CompareBaseline pairs every mapped baseline question with the analysis score of the same
// property and department. Baseline questions without a mapping are dropped. analyses is
// keyed by lowercased property name.
func CompareBaseline(rows []schema.BaselineRow, mappings []schema.QuestionMapping, analyses map[string]AnalysisIndex, fuzzyDistance int) []schema.PropertyComparison {
	cleanSmall := make([]string, len(mappings))
	for i, m := range mappings {
		cleanSmall[i] = CleanQuestion(m.Small)
	}
	findMapping := func(q string) (schema.QuestionMapping, bool) {
		for i, s := range cleanSmall {
			if s == q {
				return mappings[i], true
			}
		}
		return schema.QuestionMapping{}, false
	}

	var result []schema.PropertyComparison
	for _, prop := range indexBaseline(rows) {
		analysis, hasAnalysis := analyses[strings.ToLower(prop.name)]
		pc := schema.PropertyComparison{Name: prop.name}
		for _, dept := range prop.depts {
			var target map[string]float64
			if hasAnalysis {
				if match, ok := MatchDepartment(dept.name, analysis.Departments, fuzzyDistance); ok {
					target = analysis.Scores[match]
				}
			}

			dc := schema.DepartmentComparison{Name: dept.name}
			for _, q := range dept.questions {
				mapping, ok := findMapping(q)
				if !ok {
					continue
				}
				row := schema.ComparisonRow{
					SmallQuestion: mapping.Small,
					SmallScore:    dept.scores[q],
					LargeQuestion: mapping.Large,
				}
				if large, ok := target[CleanQuestion(mapping.Large)]; ok {
					row.LargeScore = &large
					if row.SmallScore.Numeric {
						delta := round2(row.SmallScore.Number - large)
						row.Delta = &delta
					}
				}
				dc.Rows = append(dc.Rows, row)
			}
			if len(dc.Rows) > 0 {
				pc.Departments = append(pc.Departments, dc)
			}
		}
		if len(pc.Departments) > 0 {
			result = append(result, pc)
		}
	}
	return result
}

// optionalCell renders a nil value as N/A.
func optionalCell(v *float64) any {
	if v == nil {
		return schema.NotAvailable
	}
	return *v
}

// ComparisonWorkbook lays out one sheet per property.
func ComparisonWorkbook(pcs []schema.PropertyComparison) []schema.SheetData {
	header := make([]any, len(schema.ComparisonHeader))
	for i, h := range schema.ComparisonHeader {
		header[i] = h
	}
	blank := []any{"", "", "", "", ""}

	sheets := make([]schema.SheetData, 0, len(pcs))
	for _, pc := range pcs {
		var rows [][]any
		for _, dc := range pc.Departments {
			rows = append(rows, []any{fmt.Sprintf("%s %s", schema.DepartmentPrefix, dc.Name), "", "", "", ""}, header)
			for _, r := range dc.Rows {
				rows = append(rows, []any{r.SmallQuestion, r.SmallScore.Cell(), r.LargeQuestion, optionalCell(r.LargeScore), optionalCell(r.Delta)})
			}
			rows = append(rows, blank, blank)
		}
		sheets = append(sheets, schema.SheetData{Name: pc.Name, Rows: rows, Widths: schema.ComparisonColumnWidths})
	}
	return sheets
}

// SummarizeComparisons counts rows and matches by property.
func SummarizeComparisons(pcs []schema.PropertyComparison) []schema.ComparisonSummary {
	out := make([]schema.ComparisonSummary, 0, len(pcs))
	for _, pc := range pcs {
		s := schema.ComparisonSummary{Property: pc.Name, Departments: len(pc.Departments)}
		var deltas []float64
		for _, dc := range pc.Departments {
			for _, r := range dc.Rows {
				s.Rows++
				if r.LargeScore != nil {
					s.Matched++
				}
				if r.Delta != nil {
					deltas = append(deltas, *r.Delta)
				}
			}
		}
		s.MeanDelta = round2(mean(deltas))
		out = append(out, s)
	}
	return out
}

// loadAnalyses indexes the configured analysis workbooks by lowercased property name.
// A workbook that cannot be read is logged and its property has no analysis data.
func loadAnalyses(cfg *contract.Config, reader contract.SheetReader) map[string]AnalysisIndex {
	analyses := make(map[string]AnalysisIndex, len(cfg.Workbooks))
	props := make([]string, 0, len(cfg.Workbooks))
	for prop := range cfg.Workbooks {
		props = append(props, prop)
	}
	sort.Strings(props)
	for _, prop := range props {
		path := cfg.ResolveInput(cfg.Workbooks[prop])
		contract.Logger().Info("Loading analysis workbook", zap.String("property", prop), zap.String("path", path))
		idx, err := LoadAnalysisWorkbook(reader, path, cfg.CompareSheet)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Cannot load analysis for %s", prop), err)
			continue
		}
		analyses[strings.ToLower(prop)] = idx
	}
	return analyses
}

// ExecuteCompare reconciles the baseline export against the generated analysis workbooks
// and writes the comparative report.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, reader contract.SheetReader) error {
	start := time.Now()
	if cfg.MappingsPath == "" {
		return fmt.Errorf("--mappings is required")
	}
	if cfg.BaselinePath == "" {
		return fmt.Errorf("--baseline is required")
	}
	mappings, err := LoadMappings(cfg.MappingsPath)
	if err != nil {
		return err
	}
	rows, err := LoadBaseline(cfg.BaselinePath)
	if err != nil {
		return err
	}
	if len(cfg.Workbooks) == 0 {
		contract.Logger().Warn("No analysis workbooks configured, every analysis score will be N/A")
	}
	analyses := loadAnalyses(cfg, reader)
	if err := ctx.Err(); err != nil {
		return err
	}

	comparisons := CompareBaseline(rows, mappings, analyses, cfg.FuzzyDistance)
	if len(comparisons) == 0 {
		return fmt.Errorf("no baseline question matched the comparison file")
	}

	path := filepath.Join(cfg.OutputDir, schema.ComparisonReportFile)
	if _, err := sheetio.WriteWorkbook(path, ComparisonWorkbook(comparisons)); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote %s\n", path)

	return outwriter.PrintComparisonSummaries(SummarizeComparisons(comparisons), cfg, time.Since(start))
}
