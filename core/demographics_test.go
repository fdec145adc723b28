package core

import (
	"testing"

	"github.com/huangsam/encuesta/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeDemographics(t *testing.T) {
	data := departmentExport()
	rows := respondentRows(data, schema.DefaultGeometry(), schema.DepartmentLayout)

	tables := AnalyzeDemographics(rows, schema.DepartmentLayout.DemographicColumns())
	require.Len(t, tables, 6)

	gender := tables[0]
	assert.Equal(t, "Género", gender.Name)
	assert.Equal(t, 3, gender.Total)
	assert.Equal(t, []schema.DemographicOption{
		{Option: "Mujer", Count: 2, Percent: 66.67},
		{Option: "Hombre", Count: 1, Percent: 33.33},
	}, gender.Options)

	age := tables[1]
	assert.Equal(t, 1, age.Total)
	assert.Equal(t, 100.0, age.Options[0].Percent)

	civil := tables[2]
	assert.Equal(t, 0, civil.Total)
	assert.Empty(t, civil.Options)
}

func TestAnalyzeDemographicsMissingColumn(t *testing.T) {
	rows := [][]string{{"a"}, {"b"}}
	tables := AnalyzeDemographics(rows, []schema.DemographicColumn{{Name: "Lejos", Column: 9}, {Name: "Ninguna", Column: -1}})
	require.Len(t, tables, 2)
	assert.Equal(t, 0, tables[0].Total)
	assert.Equal(t, 0, tables[1].Total)
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "12.50%", FormatPercent(12.5))
	assert.Equal(t, "66.67%", FormatPercent(200.0/3))
	assert.Equal(t, "0.00%", FormatPercent(0))
}

func TestDemographicRows(t *testing.T) {
	tables := []schema.DemographicTable{
		{Name: "Género", Total: 2, Options: []schema.DemographicOption{{Option: "Mujer", Count: 2, Percent: 100}}},
		{Name: "Edad"},
	}
	rows := demographicRows(tables)
	require.Len(t, rows, 7)
	assert.Equal(t, []any{"GÉNERO", "", ""}, rows[0])
	assert.Equal(t, []any{schema.OptionHeader, schema.CountHeader, schema.PercentHeader}, rows[1])
	assert.Equal(t, []any{"Mujer", 2, "100.00%"}, rows[2])
	assert.Equal(t, []any{"", "", ""}, rows[3])
	assert.Equal(t, []any{"EDAD", "", ""}, rows[4])
}
