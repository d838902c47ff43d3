package report

import (
	"fmt"
	"strconv"

	"github.com/jaywantadh/GradeByte/internal/classifier"
	"github.com/jaywantadh/GradeByte/internal/scorer"
)

const (
	QuestionColumn = "Question"
	AverageLabel   = "Average"
)

// ModelResult is one model's parsed answers and scores against the key.
type ModelResult struct {
	Name    string
	Answers classifier.AnswerMap
	Scores  scorer.ScoreMap
}

// Row is one line of the report. Question is 0 for the Average row.
type Row struct {
	Question int
	Label    string
	Values   []float64
}

// Table is the summary written to the spreadsheet: one row per question,
// then the Average row.
type Table struct {
	Header []string
	Rows   []Row
}

// Models returns the model column names in order.
func (t *Table) Models() []string {
	return t.Header[1:]
}

// AverageRow returns the trailing Average row.
func (t *Table) AverageRow() Row {
	return t.Rows[len(t.Rows)-1]
}

// Warning lists the questions a model left unanswered.
type Warning struct {
	Model   string
	Missing []int
}

func (w Warning) String() string {
	return fmt.Sprintf("%s missing answers for questions: %v", w.Model, w.Missing)
}

// Build lays out the per-model scores for questions 1..n in the order the
// results were given and appends each model's average.
func Build(results []ModelResult, n int) (*Table, []Warning) {
	t := &Table{
		Header: make([]string, 0, len(results)+1),
		Rows:   make([]Row, 0, n+1),
	}
	t.Header = append(t.Header, QuestionColumn)
	for _, r := range results {
		t.Header = append(t.Header, r.Name)
	}

	for q := 1; q <= n; q++ {
		row := Row{Question: q, Label: strconv.Itoa(q), Values: make([]float64, len(results))}
		for i, r := range results {
			row.Values[i] = float64(r.Scores[q])
		}
		t.Rows = append(t.Rows, row)
	}

	avg := Row{Label: AverageLabel, Values: make([]float64, len(results))}
	var warnings []Warning
	for i, r := range results {
		avg.Values[i] = scorer.Average(r.Scores, n)
		if missing := r.Answers.Missing(n); len(missing) > 0 {
			warnings = append(warnings, Warning{Model: r.Name, Missing: missing})
		}
	}
	t.Rows = append(t.Rows, avg)

	return t, warnings
}
