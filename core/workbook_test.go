package core

import (
	"path/filepath"
	"testing"

	"github.com/huangsam/encuesta/internal/sheetio"
	"github.com/huangsam/encuesta/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurveyWorkbook(t *testing.T) {
	s := BuildSurveys(departmentExport(), palacioJob(), schema.DefaultGeometry())[0]
	sheets := SurveyWorkbook(s)
	require.Len(t, sheets, 4)

	names := []string{sheets[0].Name, sheets[1].Name, sheets[2].Name, sheets[3].Name}
	assert.Equal(t, []string{schema.GeneralSheet, "Palacio", schema.DemographicsSheet, schema.DeptDemographicsSheet}, names)

	general := sheets[0].Rows
	require.Len(t, general, 6)
	assert.Equal(t, schema.GeneralTitle, general[0][0])
	assert.Equal(t, schema.QuestionHeader, general[1][0])
	assert.Equal(t, []any{"1. ¿Te sientes orgulloso de tu trabajo?", 2.33, 66.67, 3, 1, 1, 0, 0, 1}, general[2])
	assert.Equal(t, blankStatsRow(), general[4])
	assert.Equal(t, schema.SummaryLabel, general[5][0])
	assert.Equal(t, "66.67%", general[5][2])

	depts := sheets[1].Rows
	assert.Equal(t, blankStatsRow(), depts[0])
	assert.Equal(t, "DEPARTAMENTO: COCINA", depts[1][0])
	assert.Equal(t, "75.00%", depts[6][2])
	assert.Equal(t, "DEPARTAMENTO: BAR", depts[8][0])

	demo := sheets[3].Rows
	assert.Equal(t, "DEPARTAMENTO: COCINA", demo[0][0])
	assert.Contains(t, demo, []any{schema.BlockSeparator, "", ""})
	assert.Equal(t, schema.StatsColumnWidths, sheets[0].Widths)
	assert.Equal(t, schema.DemographicColumnWidths, sheets[2].Widths)
}

func TestSurveyWorkbookSkipsEmptyDepartmentStats(t *testing.T) {
	s := schema.SurveyAnalysis{
		SheetName: "Pierre",
		Departments: []schema.GroupAnalysis{
			{Name: "Vacío"},
		},
	}
	sheets := SurveyWorkbook(s)
	assert.Empty(t, sheets[1].Rows)
	assert.Equal(t, "DEPARTAMENTO: VACÍO", sheets[3].Rows[0][0])
}

func TestWorkbookFileName(t *testing.T) {
	assert.Equal(t, "analisis_palacio.xlsx", WorkbookFileName(palacioJob(), schema.SurveyAnalysis{Name: "Palacio"}))
	assert.Equal(t, "analisis_princess_princess_mundo.xlsx", WorkbookFileName(princessJob(), schema.SurveyAnalysis{Name: "Princess Mundo"}))
}

func TestBuildWorkbookReadBack(t *testing.T) {
	s := BuildSurveys(departmentExport(), palacioJob(), schema.DefaultGeometry())[0]
	wb := BuildWorkbook(palacioJob(), s)
	path := filepath.Join(t.TempDir(), wb.FileName)

	_, err := sheetio.WriteWorkbook(path, wb.Sheets)
	require.NoError(t, err)

	idx, err := LoadAnalysisWorkbook(sheetio.NewExcelReader(), path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"COCINA", "BAR"}, idx.Departments)
	assert.Equal(t, 100.0, idx.Scores["COCINA"]["¿te sientes orgulloso de tu trabajo?"])
	assert.Equal(t, 50.0, idx.Scores["COCINA"]["¿sientes estres?"])
	assert.Equal(t, 0.0, idx.Scores["BAR"]["¿te sientes orgulloso de tu trabajo?"])
}
