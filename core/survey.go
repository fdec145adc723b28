package core

import (
	"strings"

	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/internal/sheetio"
	"github.com/huangsam/encuesta/schema"
)

// rowGroup is a named set of rows.
type rowGroup struct {
	name string
	rows [][]string
}

// groupRows buckets rows by the trimmed value of a column, in first-appearance order.
// Rows with a blank value land in the fallback group.
func groupRows(rows [][]string, col int, fallback string) []rowGroup {
	var groups []rowGroup
	index := make(map[string]int)
	for _, row := range rows {
		name := strings.TrimSpace(sheetio.Cell(row, col))
		if name == "" {
			name = fallback
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, rowGroup{name: name})
		}
		groups[i].rows = append(groups[i].rows, row)
	}
	return groups
}

// respondentRows returns the data rows that belong to a respondent. Footer and summary
// rows are dropped because they lack both the gender and the grouping value.
func respondentRows(data [][]string, geometry schema.SheetGeometry, layout schema.Layout) [][]string {
	var rows [][]string
	for i := geometry.DataStartRow; i < len(data); i++ {
		row := data[i]
		if !hasContent(row) {
			continue
		}
		if isBlank(sheetio.Cell(row, layout.Gender)) && isBlank(sheetio.Cell(row, layout.GroupColumn())) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// analyzeGroup computes question and demographic statistics for a set of respondents.
func analyzeGroup(name string, rows [][]string, headers, types []string, layout schema.Layout) schema.GroupAnalysis {
	questions := AnalyzeQuestions(rows, headers, layout.QuestionsStart, types)
	return schema.GroupAnalysis{
		Name:         name,
		Respondents:  len(rows),
		Questions:    questions,
		Demographics: AnalyzeDemographics(rows, layout.DemographicColumns()),
		Average:      round2(AverageScore(questions)),
	}
}

// analyzeSurvey analyzes one output workbook worth of respondents, overall and by department.
func analyzeSurvey(source, name string, kind schema.JobKind, rows [][]string, headers, types []string, layout schema.Layout) schema.SurveyAnalysis {
	survey := schema.SurveyAnalysis{
		Source:    source,
		Name:      name,
		SheetName: name,
		Kind:      kind,
		General:   analyzeGroup(schema.GeneralTitle, rows, headers, types, layout),
	}
	for _, dept := range groupRows(rows, layout.Department, schema.NoDepartment) {
		survey.Departments = append(survey.Departments, analyzeGroup(dept.name, dept.rows, headers, types, layout))
	}
	return survey
}

// BuildSurveys turns the rows of a survey export into analyses. Department jobs yield a
// single analysis named after the job. Property jobs yield one analysis per property.
func BuildSurveys(data [][]string, job contract.Job, geometry schema.SheetGeometry) []schema.SurveyAnalysis {
	headers := sheetio.Row(data, geometry.HeaderRow)
	var types []string
	if geometry.QuestionTypeRow >= 0 {
		types = sheetio.Row(data, geometry.QuestionTypeRow)
	}
	layout := schema.LayoutFor(job.Kind)
	rows := respondentRows(data, geometry, layout)

	if job.Kind != schema.PropertyJob {
		return []schema.SurveyAnalysis{analyzeSurvey(job.Input, job.SheetName, job.Kind, rows, headers, types, layout)}
	}

	var surveys []schema.SurveyAnalysis
	for _, prop := range groupRows(rows, layout.Property, schema.UnknownProperty) {
		surveys = append(surveys, analyzeSurvey(job.Input, prop.name, job.Kind, prop.rows, headers, types, layout))
	}
	return surveys
}
