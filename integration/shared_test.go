//go:build basic || database

// Package integration runs the encuesta binary end to end.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Or with databases: go test -tags database ./integration
package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var (
	// sharedEncuestaPath holds the path to a shared encuesta binary built once for all tests.
	sharedEncuestaPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getEncuestaBinary returns the path to the encuesta binary, building it once if needed.
func getEncuestaBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "encuesta-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		root, err := filepath.Abs("..")
		if err != nil {
			panic(fmt.Sprintf("failed to resolve project root: %v", err))
		}

		encuestaPath := filepath.Join(tempDir, "encuesta")
		buildCmd := exec.Command("go", "build", "-o", encuestaPath, ".")
		buildCmd.Dir = root // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build encuesta: %v\n%s", err, out))
		}

		sharedEncuestaPath = encuestaPath
	})

	return sharedEncuestaPath
}

// runEncuesta runs the binary inside dir with a clean HOME and the given extra env.
func runEncuesta(t *testing.T, dir string, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getEncuestaBinary(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+dir)
	cmd.Env = append(cmd.Env, env...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}

// writeSurveyExport writes a survey export in the default layout: question types on
// row 10, headers on row 11 and respondents from row 12 of the Worksheet sheet.
func writeSurveyExport(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	require.NoError(t, f.SetSheetName("Sheet1", "Worksheet"))

	rows := map[int]map[int]string{
		10: {15: "+", 16: "-"},
		11: {1: "Folio", 5: "Género", 6: "Edad", 9: "Departamento", 15: "1. ¿Te sientes orgulloso de tu trabajo?", 16: "2. ¿Sientes estrés?"},
		12: {1: "1", 5: "Mujer", 6: "25-30", 9: "Cocina", 15: "Siempre", 16: "Nunca"},
		13: {1: "2", 5: "Hombre", 6: "31-40", 9: "Cocina", 15: "Casi siempre", 16: "Algunas veces"},
		14: {1: "3", 5: "Mujer", 6: "25-30", 9: "Bar", 15: "Nunca", 16: "Casi nunca"},
	}
	for row, cells := range rows {
		for col, value := range cells {
			cell, err := excelize.CoordinatesToCellName(col, row)
			require.NoError(t, err)
			require.NoError(t, f.SetCellStr("Worksheet", cell, value))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

// writeFixtures lays out a working directory with the export and the JSON inputs.
func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeSurveyExport(t, filepath.Join(dir, "palacio.xlsx"))

	baseline := `[{"type":"header","version":"5.2.1"},{"type":"table","name":"resultados","data":[
		{"Propiedad":"Palacio","Departamento":"Cocina","Pregunta":"1. ¿Te sientes orgulloso de tu trabajo?","Resultado_Actual":"80%"},
		{"Propiedad":"Palacio","Departamento":"Bar","Pregunta":"1. ¿Te sientes orgulloso de tu trabajo?","Resultado_Actual":null}
	]}]`
	mappings := `{"comparativo_completo":[{"pregunta_tabla_pequena":"1. ¿Te sientes orgulloso de tu trabajo?","pregunta_tabla_grande":"1. ¿Te sientes orgulloso de tu trabajo?"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "P.json"), []byte(baseline), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Comparativo.json"), []byte(mappings), 0o644))
	return dir
}
