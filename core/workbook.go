package core

import (
	"fmt"
	"strings"

	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/schema"
)

// blankStatsRow spans the nine statistics columns.
func blankStatsRow() []any {
	return []any{"", "", "", "", "", "", "", "", ""}
}

// statsBlock lays out a title, the header, one row per question and the average line.
func statsBlock(title string, qs []schema.QuestionStat) [][]any {
	header := make([]any, len(schema.StatsHeader))
	for i, h := range schema.StatsHeader {
		header[i] = h
	}
	rows := [][]any{{title, "", "", "", "", "", "", "", ""}, header}
	for _, q := range qs {
		d := q.Distribution
		rows = append(rows, []any{q.Question, q.AvgLevel, q.Score100, q.TotalResponses, d[0], d[1], d[2], d[3], d[4]})
	}
	rows = append(rows,
		blankStatsRow(),
		[]any{schema.SummaryLabel, "", FormatPercent(AverageScore(qs)), "", "", "", "", "", ""},
	)
	return rows
}

// departmentTitle is the block title read back by the comparative report.
func departmentTitle(name string) string {
	return fmt.Sprintf("%s %s", schema.DepartmentPrefix, strings.ToUpper(name))
}

// SurveyWorkbook lays out the four sheets of an analysis workbook.
func SurveyWorkbook(s schema.SurveyAnalysis) []schema.SheetData {
	var deptRows, demoRows [][]any
	for _, dept := range s.Departments {
		if len(dept.Questions) > 0 {
			deptRows = append(deptRows, blankStatsRow())
			deptRows = append(deptRows, statsBlock(departmentTitle(dept.Name), dept.Questions)...)
		}

		demoRows = append(demoRows, []any{departmentTitle(dept.Name), "", ""})
		demoRows = append(demoRows, demographicRows(dept.Demographics)...)
		demoRows = append(demoRows,
			[]any{"", "", ""},
			[]any{schema.BlockSeparator, "", ""},
			[]any{"", "", ""},
		)
	}

	return []schema.SheetData{
		{Name: schema.GeneralSheet, Rows: statsBlock(schema.GeneralTitle, s.General.Questions), Widths: schema.StatsColumnWidths},
		{Name: s.SheetName, Rows: deptRows, Widths: schema.StatsColumnWidths},
		{Name: schema.DemographicsSheet, Rows: demographicRows(s.General.Demographics), Widths: schema.DemographicColumnWidths},
		{Name: schema.DeptDemographicsSheet, Rows: demoRows, Widths: schema.DemographicColumnWidths},
	}
}

// WorkbookFileName names the analysis workbook of a survey. Property workbooks carry the
// job name and the property name.
func WorkbookFileName(job contract.Job, s schema.SurveyAnalysis) string {
	if job.Kind == schema.PropertyJob {
		return fmt.Sprintf("analisis_%s_%s.xlsx", contract.SafeFileName(job.SheetName), contract.SafeFileName(s.Name))
	}
	return fmt.Sprintf("analisis_%s.xlsx", contract.SafeFileName(job.SheetName))
}

// BuildWorkbook pairs a survey with its file name and sheets.
func BuildWorkbook(job contract.Job, s schema.SurveyAnalysis) schema.Workbook {
	return schema.Workbook{FileName: WorkbookFileName(job, s), Sheets: SurveyWorkbook(s)}
}
