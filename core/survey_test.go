package core

import (
	"testing"

	"github.com/huangsam/encuesta/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRows(t *testing.T) {
	rows := [][]string{
		{"a", "Cocina"},
		{"b", " Bar "},
		{"c", ""},
		{"d", "Cocina"},
		{"e"},
	}
	groups := groupRows(rows, 1, schema.NoDepartment)
	require.Len(t, groups, 3)
	assert.Equal(t, "Cocina", groups[0].name)
	assert.Len(t, groups[0].rows, 2)
	assert.Equal(t, "Bar", groups[1].name)
	assert.Equal(t, schema.NoDepartment, groups[2].name)
	assert.Len(t, groups[2].rows, 2)
}

func TestRespondentRows(t *testing.T) {
	data := departmentExport()
	rows := respondentRows(data, schema.DefaultGeometry(), schema.DepartmentLayout)
	require.Len(t, rows, 3, "the total row has neither gender nor department")
	assert.Equal(t, "1", rows[0][0])
	assert.Equal(t, "3", rows[2][0])

	// A data start past the end yields nothing
	geometry := schema.DefaultGeometry()
	geometry.DataStartRow = 100
	assert.Empty(t, respondentRows(data, geometry, schema.DepartmentLayout))
}

func TestBuildSurveysDepartmentJob(t *testing.T) {
	surveys := BuildSurveys(departmentExport(), palacioJob(), schema.DefaultGeometry())
	require.Len(t, surveys, 1)

	s := surveys[0]
	assert.Equal(t, "Palacio", s.Name)
	assert.Equal(t, "Palacio", s.SheetName)
	assert.Equal(t, "palacio.xlsx", s.Source)
	assert.Equal(t, schema.DepartmentJob, s.Kind)

	assert.Equal(t, schema.GeneralTitle, s.General.Name)
	assert.Equal(t, 3, s.General.Respondents)
	assert.Len(t, s.General.Questions, 2)
	assert.Equal(t, 66.67, s.General.Average)

	require.Len(t, s.Departments, 2)
	cocina, bar := s.Departments[0], s.Departments[1]
	assert.Equal(t, "Cocina", cocina.Name)
	assert.Equal(t, 2, cocina.Respondents)
	assert.Equal(t, 100.0, cocina.Questions[0].Score100)
	assert.Equal(t, 50.0, cocina.Questions[1].Score100)
	assert.Equal(t, 75.0, cocina.Average)

	assert.Equal(t, "Bar", bar.Name)
	assert.Equal(t, 0.0, bar.Questions[0].Score100)
	assert.Equal(t, 100.0, bar.Questions[1].Score100)
	assert.Equal(t, 50.0, bar.Average)
}

func TestBuildSurveysPropertyJob(t *testing.T) {
	surveys := BuildSurveys(propertyExport(), princessJob(), schema.DefaultGeometry())
	require.Len(t, surveys, 3)

	assert.Equal(t, "Princess Mundo", surveys[0].Name)
	assert.Equal(t, "Princess Sian", surveys[1].Name)
	assert.Equal(t, schema.UnknownProperty, surveys[2].Name)

	mundo := surveys[0]
	assert.Equal(t, 2, mundo.General.Respondents)
	require.Len(t, mundo.Departments, 2)
	assert.Equal(t, "Cocina", mundo.Departments[0].Name)
	assert.Equal(t, "Bar", mundo.Departments[1].Name)
	assert.Equal(t, 100.0, mundo.General.Average)

	assert.Equal(t, 0.0, surveys[1].General.Average)
	assert.Equal(t, "Spa", surveys[2].Departments[0].Name)
}

func TestBuildSurveysWithoutTypeRow(t *testing.T) {
	geometry := schema.DefaultGeometry()
	geometry.QuestionTypeRow = -1

	surveys := BuildSurveys(departmentExport(), palacioJob(), geometry)
	require.Len(t, surveys, 1)
	q := surveys[0].General.Questions[0]
	assert.Equal(t, schema.QuestionType(""), q.Type)
	assert.Equal(t, 58.33, q.Score100, "untyped questions score avg/4")
}
