package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/internal/sheetio"
	"github.com/huangsam/encuesta/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// analysisSheetRows mimics the department sheet of a generated analysis workbook.
func analysisSheetRows() [][]string {
	return [][]string{
		{},
		{"DEPARTAMENTO: COCINA"},
		{"Pregunta", "Nivel Promedio", "Calificación (0-100)"},
		{"1. Me gusta mi trabajo", "3.5", "87.5"},
		{"2. Tengo herramientas", "2", "50"},
		{"3. Pregunta rota", "x", "sin dato"},
		{},
		{"PROMEDIO GENERAL", "", "68.75%"},
		{},
		{"DEPARTAMENTO: RECEPCIÓN"},
		{"Pregunta", "Nivel Promedio", "Calificación (0-100)"},
		{"1. Me gusta mi trabajo", "2", "40"},
	}
}

func sampleMappings() []schema.QuestionMapping {
	return []schema.QuestionMapping{
		{Small: "¿Me gusta mi trabajo?", Large: "Me gusta mi trabajo"},
		{Small: "¿Tengo herramientas?", Large: "Tengo herramientas"},
		{Small: "¿Hay capacitación?", Large: "Recibo capacitación"},
	}
}

func comparisonBaseline() []schema.BaselineRow {
	return []schema.BaselineRow{
		{Property: "Palacio", Department: "Cocina", Question: "¿Me gusta mi trabajo?", Score: schema.ParseScoreValue("90%")},
		{Property: "Palacio", Department: "Cocina", Question: "¿Tengo herramientas?", Score: schema.ScoreValue{}},
		{Property: "Palacio", Department: "Cocina", Question: "¿Pregunta sin mapeo?", Score: schema.NumberScore(10)},
		{Property: "Palacio", Department: "Recepcion", Question: "¿Me gusta mi trabajo?", Score: schema.NumberScore(40)},
		{Property: "Palacio", Department: "Recepcion", Question: "¿Me gusta mi trabajo?", Score: schema.NumberScore(45)},
		{Property: "Pierre", Department: "Bar", Question: "¿Hay capacitación?", Score: schema.NumberScore(70)},
		{Property: "Pierre", Department: "Spa", Question: "¿Sin mapeo?", Score: schema.NumberScore(70)},
	}
}

func TestParseAnalysisRows(t *testing.T) {
	idx := ParseAnalysisRows(analysisSheetRows())
	assert.Equal(t, []string{"COCINA", "RECEPCIÓN"}, idx.Departments)
	assert.Equal(t, map[string]float64{
		"me gusta mi trabajo": 87.5,
		"tengo herramientas":  50,
	}, idx.Scores["COCINA"])
	assert.Equal(t, 40.0, idx.Scores["RECEPCIÓN"]["me gusta mi trabajo"])
}

func TestParseAnalysisRowsIgnoresRowsBeforeFirstBlock(t *testing.T) {
	idx := ParseAnalysisRows([][]string{{"Pregunta suelta", "", "90"}})
	assert.Empty(t, idx.Departments)
}

func TestMatchDepartment(t *testing.T) {
	candidates := []string{"COCINA", "RECEPCIÓN", "AMA DE LLAVES"}
	tests := []struct {
		name        string
		target      string
		maxDistance int
		expected    string
		found       bool
	}{
		{"case insensitive", "Cocina", 0, "COCINA", true},
		{"accent insensitive", "Recepcion", 0, "RECEPCIÓN", true},
		{"fuzzy disabled", "Cocin", 0, "", false},
		{"fuzzy within distance", "Cocin", 2, "COCINA", true},
		{"fuzzy beyond distance", "Ama", 2, "", false},
		{"no candidate", "Spa", 5, "", false},
		{"blank target", "  ", 5, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchDepartment(tt.target, candidates, tt.maxDistance)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCompareBaseline(t *testing.T) {
	analyses := map[string]AnalysisIndex{"palacio": ParseAnalysisRows(analysisSheetRows())}
	result := CompareBaseline(comparisonBaseline(), sampleMappings(), analyses, 0)
	require.Len(t, result, 2)

	palacio := result[0]
	assert.Equal(t, "Palacio", palacio.Name)
	require.Len(t, palacio.Departments, 2)

	cocina := palacio.Departments[0]
	require.Len(t, cocina.Rows, 2, "unmapped questions are dropped")
	first := cocina.Rows[0]
	assert.Equal(t, "¿Me gusta mi trabajo?", first.SmallQuestion)
	assert.Equal(t, "Me gusta mi trabajo", first.LargeQuestion)
	require.NotNil(t, first.LargeScore)
	assert.Equal(t, 87.5, *first.LargeScore)
	require.NotNil(t, first.Delta)
	assert.Equal(t, 2.5, *first.Delta)

	second := cocina.Rows[1]
	require.NotNil(t, second.LargeScore)
	assert.Nil(t, second.Delta, "null baseline scores have no delta")

	recepcion := palacio.Departments[1]
	require.Len(t, recepcion.Rows, 1, "repeated questions keep one row")
	assert.Equal(t, 45.0, recepcion.Rows[0].SmallScore.Number, "the last repeated score wins")
	assert.Equal(t, 5.0, *recepcion.Rows[0].Delta)

	pierre := result[1]
	assert.Equal(t, "Pierre", pierre.Name)
	require.Len(t, pierre.Departments, 1, "departments without mapped questions are dropped")
	assert.Nil(t, pierre.Departments[0].Rows[0].LargeScore, "no analysis workbook for Pierre")
}

func TestCompareBaselineNoMappings(t *testing.T) {
	assert.Empty(t, CompareBaseline(comparisonBaseline(), nil, nil, 0))
}

func TestComparisonWorkbook(t *testing.T) {
	analyses := map[string]AnalysisIndex{"palacio": ParseAnalysisRows(analysisSheetRows())}
	sheets := ComparisonWorkbook(CompareBaseline(comparisonBaseline(), sampleMappings(), analyses, 0))
	require.Len(t, sheets, 2)

	rows := sheets[0].Rows
	assert.Equal(t, "Palacio", sheets[0].Name)
	assert.Equal(t, []any{"DEPARTAMENTO: Cocina", "", "", "", ""}, rows[0])
	assert.Equal(t, schema.ComparisonHeader[0], rows[1][0])
	assert.Equal(t, []any{"¿Me gusta mi trabajo?", 90.0, "Me gusta mi trabajo", 87.5, 2.5}, rows[2])
	assert.Equal(t, []any{"¿Tengo herramientas?", "", "Tengo herramientas", 50.0, schema.NotAvailable}, rows[3])
	assert.Equal(t, []any{"", "", "", "", ""}, rows[4])
	assert.Equal(t, []any{"", "", "", "", ""}, rows[5])

	pierre := sheets[1].Rows
	assert.Equal(t, []any{"¿Hay capacitación?", 70.0, "Recibo capacitación", schema.NotAvailable, schema.NotAvailable}, pierre[2])
	assert.Equal(t, schema.ComparisonColumnWidths, sheets[1].Widths)
}

func TestSummarizeComparisons(t *testing.T) {
	analyses := map[string]AnalysisIndex{"palacio": ParseAnalysisRows(analysisSheetRows())}
	summaries := SummarizeComparisons(CompareBaseline(comparisonBaseline(), sampleMappings(), analyses, 0))
	require.Len(t, summaries, 2)
	assert.Equal(t, schema.ComparisonSummary{Property: "Palacio", Departments: 2, Rows: 3, Matched: 3, MeanDelta: 3.75}, summaries[0])
	assert.Equal(t, schema.ComparisonSummary{Property: "Pierre", Departments: 1, Rows: 1, Matched: 0, MeanDelta: 0}, summaries[1])
}

func TestLoadMappings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Comparativo.json")
	doc := `{"comparativo_completo": [{"pregunta_tabla_pequena": "¿A?", "pregunta_tabla_grande": "1. A"}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	mappings, err := LoadMappings(path)
	require.NoError(t, err)
	assert.Equal(t, []schema.QuestionMapping{{Small: "¿A?", Large: "1. A"}}, mappings)

	_, err = LoadMappings(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "comparison file not found")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("[1,"), 0o644))
	_, err = LoadMappings(bad)
	assert.ErrorContains(t, err, "invalid comparison JSON")
}

func TestLoadAnalysisWorkbook(t *testing.T) {
	t.Run("forced sheet", func(t *testing.T) {
		reader := &sheetio.MockSheetReader{}
		reader.On("ReadRows", "palacio.xlsx", "Palacio").Return(analysisSheetRows(), nil)

		idx, err := LoadAnalysisWorkbook(reader, "palacio.xlsx", "Palacio")
		require.NoError(t, err)
		assert.Len(t, idx.Departments, 2)
		reader.AssertNotCalled(t, "SheetNames", mock.Anything)
	})

	t.Run("scans past fixed and unrelated sheets", func(t *testing.T) {
		reader := &sheetio.MockSheetReader{}
		reader.On("SheetNames", "palacio.xlsx").Return([]string{schema.GeneralSheet, "Notas", "Palacio", schema.DemographicsSheet}, nil)
		reader.On("ReadRows", "palacio.xlsx", "Notas").Return([][]string{{"nada"}}, nil)
		reader.On("ReadRows", "palacio.xlsx", "Palacio").Return(analysisSheetRows(), nil)

		idx, err := LoadAnalysisWorkbook(reader, "palacio.xlsx", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"COCINA", "RECEPCIÓN"}, idx.Departments)
		reader.AssertNotCalled(t, "ReadRows", "palacio.xlsx", schema.GeneralSheet)
		reader.AssertExpectations(t)
	})

	t.Run("no department sheet", func(t *testing.T) {
		reader := &sheetio.MockSheetReader{}
		reader.On("SheetNames", "vacio.xlsx").Return([]string{schema.GeneralSheet}, nil)

		_, err := LoadAnalysisWorkbook(reader, "vacio.xlsx", "")
		assert.ErrorContains(t, err, "no department sheet found")
	})

	t.Run("read error", func(t *testing.T) {
		reader := &sheetio.MockSheetReader{}
		reader.On("SheetNames", "roto.xlsx").Return(nil, errors.New("boom"))

		_, err := LoadAnalysisWorkbook(reader, "roto.xlsx", "")
		assert.ErrorContains(t, err, "boom")
	})
}

func TestExecuteCompare(t *testing.T) {
	dir := t.TempDir()
	mappings := filepath.Join(dir, "Comparativo.json")
	require.NoError(t, os.WriteFile(mappings, []byte(`{"comparativo_completo": [
		{"pregunta_tabla_pequena": "¿Me gusta mi trabajo?", "pregunta_tabla_grande": "Me gusta mi trabajo"}
	]}`), 0o644))
	baseline := filepath.Join(dir, "P.json")
	require.NoError(t, os.WriteFile(baseline, []byte(`[
		{"Propiedad": "Palacio", "Departamento": "Cocina", "Pregunta": "¿Me gusta mi trabajo?", "Resultado_Actual": "90%"}
	]`), 0o644))

	reader := &sheetio.MockSheetReader{}
	reader.On("SheetNames", "analisis_palacio.xlsx").Return([]string{"Palacio"}, nil)
	reader.On("ReadRows", "analisis_palacio.xlsx", "Palacio").Return(analysisSheetRows(), nil)
	reader.On("SheetNames", "analisis_roto.xlsx").Return(nil, errors.New("file not found"))

	cfg := &contract.Config{
		OutputDir:    filepath.Join(dir, "out"),
		MappingsPath: mappings,
		BaselinePath: baseline,
		Workbooks:    map[string]string{"palacio": "analisis_palacio.xlsx", "pierre": "analisis_roto.xlsx"},
		Output:       schema.CSVOut,
		OutputFile:   filepath.Join(dir, "compare.csv"),
		Precision:    2,
	}
	require.NoError(t, ExecuteCompare(context.Background(), cfg, reader))

	_, err := os.Stat(filepath.Join(cfg.OutputDir, schema.ComparisonReportFile))
	assert.NoError(t, err)

	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Palacio,1,1,1,2.50", lines[1])
	reader.AssertExpectations(t)
}

func TestExecuteCompareErrors(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	reader := &sheetio.MockSheetReader{}

	assert.ErrorContains(t, ExecuteCompare(ctx, &contract.Config{}, reader), "--mappings is required")
	assert.ErrorContains(t, ExecuteCompare(ctx, &contract.Config{MappingsPath: "m.json"}, reader), "--baseline is required")

	mappings := filepath.Join(dir, "Comparativo.json")
	require.NoError(t, os.WriteFile(mappings, []byte(`{"comparativo_completo": []}`), 0o644))
	baseline := filepath.Join(dir, "P.json")
	require.NoError(t, os.WriteFile(baseline, []byte(baselineRowsJSON), 0o644))

	cfg := &contract.Config{OutputDir: dir, MappingsPath: mappings, BaselinePath: baseline}
	assert.ErrorContains(t, ExecuteCompare(ctx, cfg, reader), "no baseline question matched")
}
