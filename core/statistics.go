package core

import (
	"strings"

	"github.com/huangsam/encuesta/schema"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// likertScores maps an uppercased answer to its Likert level.
var likertScores = map[string]int{
	"SIEMPRE":       4,
	"CASI SIEMPRE":  3,
	"ALGUNAS VECES": 2,
	"CASI NUNCA":    1,
	"NUNCA":         0,
	"NUCA":          0, // common typo in the exports
}

// distributionIndex maps an uppercased answer to its distribution bucket.
var distributionIndex = map[string]int{
	"SIEMPRE":       0,
	"CASI SIEMPRE":  1,
	"CASI SIEMPE":   1,
	"ALGUNAS VECES": 2,
	"CASI NUNCA":    3,
	"NUNCA":         4,
	"NUCA":          4,
}

// ScoreFor returns the Likert level of an answer and whether it was recognized.
func ScoreFor(value string) (int, bool) {
	score, ok := likertScores[strings.ToUpper(strings.TrimSpace(value))]
	return score, ok
}

// bucketFor returns the distribution bucket of a recognized answer, or -1.
func bucketFor(value string) int {
	if idx, ok := distributionIndex[strings.ToUpper(strings.TrimSpace(value))]; ok {
		return idx
	}
	return -1
}

// isBlank reports whether a cell has no content.
func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// hasContent reports whether a row has at least one non-blank cell.
func hasContent(row []string) bool {
	for _, cell := range row {
		if !isBlank(cell) {
			return true
		}
	}
	return false
}

// countAnswered counts rows with any content. It is the denominator of +/- questions.
func countAnswered(rows [][]string) int {
	answered := 0
	for _, row := range rows {
		if hasContent(row) {
			answered++
		}
	}
	return answered
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// mean returns the arithmetic mean, or 0 for an empty input.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

// questionType reads the +/- marker of a column.
func questionType(types []string, col int) schema.QuestionType {
	if col < 0 || col >= len(types) {
		return ""
	}
	return schema.QuestionType(strings.TrimSpace(types[col]))
}

// AnalyzeQuestions computes the statistics of every question column from start to the end
// of the headers. Columns with a blank header are skipped. Nothing is emitted when no row
// has content. types holds the +/- markers by column and may be nil.
func AnalyzeQuestions(rows [][]string, headers []string, start int, types []string) []schema.QuestionStat {
	answered := countAnswered(rows)
	if answered == 0 {
		return nil
	}

	var result []schema.QuestionStat
	for col := max(start, 0); col < len(headers); col++ {
		question := headers[col]
		if isBlank(question) {
			continue
		}

		var dist [5]int
		sum, valid := 0, 0
		for _, row := range rows {
			if col >= len(row) || isBlank(row[col]) {
				continue
			}
			score, ok := ScoreFor(row[col])
			if !ok {
				continue
			}
			sum += score
			valid++
			if b := bucketFor(row[col]); b >= 0 {
				dist[b]++
			}
		}

		avg := 0.0
		if valid > 0 {
			avg = float64(sum) / float64(valid)
		}

		qType := questionType(types, col)
		var score100 float64
		switch qType {
		case schema.PositiveQuestion:
			score100 = float64(dist[0]+dist[1]) / float64(answered) * 100
		case schema.NegativeQuestion:
			score100 = float64(dist[3]+dist[4]) / float64(answered) * 100
		default:
			score100 = avg / schema.MaxLikertScore * 100
		}

		result = append(result, schema.QuestionStat{
			Question:       question,
			Type:           qType,
			AvgLevel:       round2(avg),
			Score100:       round2(score100),
			TotalResponses: valid,
			Distribution:   dist,
		})
	}
	return result
}

// AverageScore returns the mean Score100 of the stats, or 0 when there are none.
func AverageScore(qs []schema.QuestionStat) float64 {
	values := make([]float64, len(qs))
	for i, q := range qs {
		values[i] = q.Score100
	}
	return mean(values)
}
