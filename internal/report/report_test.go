package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaywantadh/GradeByte/internal/classifier"
	"github.com/jaywantadh/GradeByte/internal/scorer"
)

func TestBuildAverage(t *testing.T) {
	results := []ModelResult{{
		Name:    "Grok",
		Answers: classifier.AnswerMap{1: "a", 2: "b", 3: "c", 4: "d"},
		Scores:  scorer.ScoreMap{1: 100, 2: 0, 3: 0, 4: 0},
	}}

	table, warnings := Build(results, 4)
	require.Len(t, table.Rows, 5)
	assert.Empty(t, warnings)

	avg := table.AverageRow()
	assert.Equal(t, AverageLabel, avg.Label)
	assert.Equal(t, []float64{25.0}, avg.Values)
}

func TestBuildLayout(t *testing.T) {
	results := []ModelResult{
		{Name: "GPT", Answers: classifier.AnswerMap{1: "x", 2: "y", 3: "z"}, Scores: scorer.ScoreMap{1: 100, 2: 100, 3: 0}},
		{Name: "Claude", Answers: classifier.AnswerMap{2: "y"}, Scores: scorer.ScoreMap{1: 0, 2: 100, 3: 0}},
	}

	table, warnings := Build(results, 3)
	assert.Equal(t, []string{"Question", "GPT", "Claude"}, table.Header)
	assert.Equal(t, []string{"GPT", "Claude"}, table.Models())

	for i, row := range table.Rows[:3] {
		assert.Equal(t, i+1, row.Question)
		for _, v := range row.Values {
			assert.Contains(t, []float64{0, 100}, v)
		}
	}
	assert.Equal(t, []float64{100, 100}, table.Rows[1].Values)
	assert.Equal(t, []float64{66.67, 33.33}, table.AverageRow().Values)

	require.Len(t, warnings, 1)
	assert.Equal(t, Warning{Model: "Claude", Missing: []int{1, 3}}, warnings[0])
	assert.Equal(t, "Claude missing answers for questions: [1 3]", warnings[0].String())
}

func TestBuildNoModels(t *testing.T) {
	table, warnings := Build(nil, 2)
	assert.Equal(t, []string{"Question"}, table.Header)
	assert.Len(t, table.Rows, 3)
	assert.Empty(t, table.AverageRow().Values)
	assert.Nil(t, warnings)
}
