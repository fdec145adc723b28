//go:build basic

package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// TestEncuestaWorkflow runs analyze, report and compare on generated fixtures.
func TestEncuestaWorkflow(t *testing.T) {
	dir := writeFixtures(t)

	out, err := runEncuesta(t, dir, nil, "analyze", "palacio.xlsx", "--sheet-name", "Palacio", "--color", "no")
	require.NoError(t, err)
	assert.Contains(t, out, "Cocina")
	assert.Contains(t, out, "Bar")

	analysis := filepath.Join(dir, "analisis", "analisis_palacio.xlsx")
	f, err := excelize.OpenFile(analysis)
	require.NoError(t, err)
	sheets := f.GetSheetList()
	_ = f.Close()
	assert.Contains(t, sheets, "Cocina")
	assert.Contains(t, sheets, "Bar")

	_, err = runEncuesta(t, dir, nil, "report", "--json-out", "reporte_final.json")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "analisis", "Reporte_Encuestas_Numerico.xlsx"))
	assert.NoError(t, err)
	raw, err := os.ReadFile(filepath.Join(dir, "reporte_final.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"80%"`)
	assert.Contains(t, string(raw), `"N/A"`)

	_, err = runEncuesta(t, dir, nil, "compare", "--output", "csv", "--output-file", "comparativo.csv")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "analisis", "Reporte_Comparativo.xlsx"))
	assert.NoError(t, err)
	raw, err = os.ReadFile(filepath.Join(dir, "comparativo.csv"))
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(string(raw)), "palacio")
}

// TestEncuestaInspectAndFrequency runs the exploration commands.
func TestEncuestaInspectAndFrequency(t *testing.T) {
	dir := writeFixtures(t)

	out, err := runEncuesta(t, dir, nil, "inspect", "palacio.xlsx", "--columns", "16", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "Departamento")

	_, err = runEncuesta(t, dir, nil, "frequency", "palacio.xlsx")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "analisis", "Reporte_Frecuencias.xlsx"))
	assert.NoError(t, err)
}

// TestEncuestaHistoryWithSQLite records a run and exports the history.
func TestEncuestaHistoryWithSQLite(t *testing.T) {
	dir := writeFixtures(t)
	env := []string{
		"ENCUESTA_HISTORY_BACKEND=sqlite",
		"ENCUESTA_HISTORY_DB_CONNECT=" + filepath.Join(dir, "history.db"),
	}

	_, err := runEncuesta(t, dir, env, "history", "migrate")
	require.NoError(t, err)

	_, err = runEncuesta(t, dir, env, "analyze", "palacio.xlsx", "--sheet-name", "Palacio")
	require.NoError(t, err)

	out, err := runEncuesta(t, dir, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Runs: 1")

	_, err = runEncuesta(t, dir, env, "history", "export", "--output-file", "history.parquet")
	require.NoError(t, err)
	for _, name := range []string{"history.parquet.runs.parquet", "history.parquet.group_scores.parquet"} {
		_, err = os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	_, err = runEncuesta(t, dir, env, "history", "clear")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "history.db"))
	assert.True(t, os.IsNotExist(err))
}

// TestEncuestaRejectsBadConfig checks that validation errors fail the command.
func TestEncuestaRejectsBadConfig(t *testing.T) {
	dir := writeFixtures(t)

	_, err := runEncuesta(t, dir, nil, "analyze", "palacio.xlsx", "--output", "xml")
	assert.Error(t, err)

	_, err = runEncuesta(t, dir, nil, "report", "--output", "parquet")
	assert.Error(t, err)

	_, err = runEncuesta(t, dir, nil, "analyze", "--header-row", "12", "--data-start-row", "11")
	assert.Error(t, err)
}
