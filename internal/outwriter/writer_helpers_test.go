package outwriter

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoreRecord struct {
	Name  string `csv:"name"`
	Score string `csv:"score"`
}

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		expected string
	}{
		{
			name: "simple object",
			data: map[string]any{
				"name":  "test",
				"value": 42,
			},
			expected: `{
  "name": "test",
  "value": 42
}
`,
		},
		{
			name: "array",
			data: []string{"a", "b"},
			expected: `[
  "a",
  "b"
]
`,
		},
		{
			name:     "string",
			data:     "hola",
			expected: `"hola"` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeJSON(&buf, tt.data))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteJSONError(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteCSV(t *testing.T) {
	tests := []struct {
		name     string
		records  []scoreRecord
		expected string
	}{
		{
			name:     "simple csv",
			records:  []scoreRecord{{"Cocina", "85.00"}, {"Bar", "41.50"}},
			expected: "name,score\nCocina,85.00\nBar,41.50\n",
		},
		{
			name:     "values with commas",
			records:  []scoreRecord{{"Alimentos, Bebidas", "N/A"}},
			expected: "name,score\n\"Alimentos, Bebidas\",N/A\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeCSV(&buf, tt.records))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteWithFileStdout(t *testing.T) {
	called := false
	err := writeWithFile("", func(w io.Writer) error {
		called = true
		return nil
	}, "Test message")

	require.NoError(t, err)
	assert.True(t, called, "Writer function should have been called")
}

func TestWriteWithFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.json")

	err := writeWithFile(tmpFile, func(w io.Writer) error {
		return writeJSON(w, map[string]any{"encuesta": "Palacio", "respuestas": 123})
	}, "Wrote JSON")
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	var result map[string]any
	require.NoError(t, json.Unmarshal(content, &result))
	assert.Equal(t, "Palacio", result["encuesta"])
	assert.Equal(t, float64(123), result["respuestas"])
}

func TestWriteWithFileErrors(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.txt")
	err := writeWithFile(tmpFile, func(io.Writer) error {
		return assert.AnError
	}, "Test message")
	assert.Equal(t, assert.AnError, err)

	err = writeWithFile("/nonexistent/path/file.txt", func(io.Writer) error {
		return nil
	}, "Test message")
	assert.Error(t, err)
}
