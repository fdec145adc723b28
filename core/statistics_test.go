package core

import (
	"testing"

	"github.com/huangsam/encuesta/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreFor(t *testing.T) {
	tests := []struct {
		value    string
		score    int
		expected bool
	}{
		{"Siempre", 4, true},
		{"  casi siempre ", 3, true},
		{"ALGUNAS VECES", 2, true},
		{"Casi nunca", 1, true},
		{"Nunca", 0, true},
		{"Nuca", 0, true},
		{"Casi siempe", 0, false},
		{"Tal vez", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			score, ok := ScoreFor(tt.value)
			assert.Equal(t, tt.expected, ok)
			assert.Equal(t, tt.score, score)
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 2.35, round2(2.345))
	assert.Equal(t, -1.01, round2(-1.005))
	assert.Equal(t, 66.67, round2(200.0/3))
	assert.Equal(t, 0.0, round2(0))
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, mean(nil))
	assert.Equal(t, 2.5, mean([]float64{1, 2, 3, 4}))
}

func TestAnalyzeQuestions(t *testing.T) {
	data := departmentExport()
	rows := respondentRows(data, schema.DefaultGeometry(), schema.DepartmentLayout)
	headers := data[schema.DefaultHeaderRow]
	types := data[schema.DefaultQuestionTypeRow]

	stats := AnalyzeQuestions(rows, headers, schema.DepartmentLayout.QuestionsStart, types)
	require.Len(t, stats, 2)

	positive := stats[0]
	assert.Equal(t, "1. ¿Te sientes orgulloso de tu trabajo?", positive.Question)
	assert.Equal(t, schema.PositiveQuestion, positive.Type)
	assert.Equal(t, 2.33, positive.AvgLevel)
	assert.Equal(t, 66.67, positive.Score100)
	assert.Equal(t, 3, positive.TotalResponses)
	assert.Equal(t, [5]int{1, 1, 0, 0, 1}, positive.Distribution)

	negative := stats[1]
	assert.Equal(t, schema.NegativeQuestion, negative.Type)
	assert.Equal(t, 1.0, negative.AvgLevel)
	assert.Equal(t, 66.67, negative.Score100)
	assert.Equal(t, [5]int{0, 0, 1, 1, 1}, negative.Distribution)

	assert.InDelta(t, 66.67, AverageScore(stats), 1e-9)
}

func TestAnalyzeQuestionsUntyped(t *testing.T) {
	headers := []string{"Pregunta A", "", "Pregunta B"}
	rows := [][]string{
		{"Siempre", "ignorado", "Tal vez"},
		{"Nunca", "", ""},
	}
	stats := AnalyzeQuestions(rows, headers, 0, nil)
	require.Len(t, stats, 2, "blank headers are skipped")

	assert.Equal(t, schema.QuestionType(""), stats[0].Type)
	assert.Equal(t, 2.0, stats[0].AvgLevel)
	assert.Equal(t, 50.0, stats[0].Score100)

	// Unrecognized answers do not count as responses
	assert.Equal(t, 0, stats[1].TotalResponses)
	assert.Equal(t, 0.0, stats[1].Score100)
}

func TestAnalyzeQuestionsAnsweredDenominator(t *testing.T) {
	// A row with content but no answer still counts toward +/- questions
	headers := []string{"Nombre", "Pregunta"}
	rows := [][]string{
		{"Ana", "Siempre"},
		{"Luis", ""},
	}
	stats := AnalyzeQuestions(rows, headers, 1, []string{"", "+"})
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].TotalResponses)
	assert.Equal(t, 4.0, stats[0].AvgLevel)
	assert.Equal(t, 50.0, stats[0].Score100)
}

func TestAnalyzeQuestionsEmpty(t *testing.T) {
	assert.Nil(t, AnalyzeQuestions(nil, []string{"Q"}, 0, nil))
	assert.Nil(t, AnalyzeQuestions([][]string{{"", " "}}, []string{"Q", "R"}, 0, nil))
	assert.Equal(t, 0.0, AverageScore(nil))
}
