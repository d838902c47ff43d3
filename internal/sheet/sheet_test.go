package sheet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jaywantadh/GradeByte/internal/classifier"
	"github.com/jaywantadh/GradeByte/internal/report"
	"github.com/jaywantadh/GradeByte/internal/scorer"
)

func TestExcelWriter(t *testing.T) {
	table, _ := report.Build([]report.ModelResult{
		{Name: "GPT", Answers: classifier.AnswerMap{}, Scores: scorer.ScoreMap{1: 100, 2: 100, 3: 0}},
		{Name: "Grok", Answers: classifier.AnswerMap{}, Scores: scorer.ScoreMap{1: 0, 2: 0, 3: 100}},
	}, 3)

	path := filepath.Join(t.TempDir(), "out", "results.xlsx")
	require.NoError(t, NewExcelWriter("").Write(path, table))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Results"}, f.GetSheetList())
	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Question", "GPT", "Grok"},
		{"1", "100", "0"},
		{"2", "100", "0"},
		{"3", "0", "100"},
		{"Average", "66.67", "33.33"},
	}, rows)
}

func TestExcelWriterSheetName(t *testing.T) {
	table, _ := report.Build(nil, 1)
	path := filepath.Join(t.TempDir(), "scores.xlsx")
	require.NoError(t, NewExcelWriter("Scores").Write(path, table))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Scores"}, f.GetSheetList())
}
