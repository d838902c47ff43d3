package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyReducer(t *testing.T) {
	lines := []string{
		"Chemistry answer key",
		"3. What is the capital of France?",
		"(1) - London",
		"(4) - Paris",
		"4) Which gas do plants absorb?",
		"  (*) – Carbon dioxide (CO2)  ",
		"5 Name the largest planet",
		"( 4 ) — Jupiter",
		"some stray line",
	}

	got := Fold(KeyReducer, lines)
	assert.Equal(t, AnswerMap{3: "Paris", 4: "Carbon dioxide", 5: "Jupiter"}, got)
}

func TestKeyReducerSplitsOnFirstDash(t *testing.T) {
	got := Fold(KeyReducer, []string{"1.", "(4) - well-known answer"})
	assert.Equal(t, AnswerMap{1: "well-known answer"}, got)
}

func TestKeyReducerWithoutDashKeepsWholeLine(t *testing.T) {
	got := Fold(KeyReducer, []string{"2", "Paris (4)"})
	assert.Equal(t, AnswerMap{2: "Paris"}, got)
}

func TestKeyReducerBeforeFirstQuestion(t *testing.T) {
	got := Fold(KeyReducer, []string{"(4) - orphan"})
	assert.Equal(t, AnswerMap{0: "orphan"}, got)
}

func TestKeyReducerLaterMarkerOverwrites(t *testing.T) {
	got := Fold(KeyReducer, []string{"9.", "(4) - first", "(*) - second"})
	assert.Equal(t, AnswerMap{9: "second"}, got)
}

func TestKeyReducerUnicodeSpacesInMarker(t *testing.T) {
	got := Fold(KeyReducer, []string{
		"3. Capital of France?",
		"(\u00a04\u00a0) - Paris",
		"4. Capital of Italy?",
		"(\u2009*\u202f) - Rome",
	})
	assert.Equal(t, AnswerMap{3: "Paris", 4: "Rome"}, got)
}

func TestDualReducer(t *testing.T) {
	lines := []string{
		"5: Berlin",
		"6. What is the capital of Spain",
		"Answer: Madrid",
		"80) Last inline: Rome",
		"90. Capital of Japan?",
		"Some reasoning here",
		"Answer: Tokyo",
		"91. Capital of Peru?",
		"92. Capital of Chile?",
		"Final Answer: Santiago: city",
	}

	got := Fold(DualReducer, lines)
	assert.Equal(t, AnswerMap{
		5:  "Berlin",
		80: "Rome",
		90: "Tokyo",
		92: "Santiago: city",
	}, got)
	assert.NotContains(t, got, 6)
	assert.NotContains(t, got, 91)
}

func TestDualReducerQuestionLineAboveLimitIgnoresColon(t *testing.T) {
	got := Fold(DualReducer, []string{"81: not recorded", "Answer: recorded"})
	assert.Equal(t, AnswerMap{81: "recorded"}, got)
}

func TestSimpleReducer(t *testing.T) {
	lines := []string{
		"Model answers",
		"7. Answer is Oxygen",
		"8) Nitrogen",
		"9.   Helium  ",
		"10. see 10. twice",
		"not numbered",
	}

	got := Fold(SimpleReducer, lines)
	assert.Equal(t, AnswerMap{
		7:  "Answer is Oxygen",
		8:  "8) Nitrogen",
		9:  "Helium",
		10: "see 10. twice",
	}, got)
}

func TestSimpleReducerOverwrites(t *testing.T) {
	got := Fold(SimpleReducer, []string{"3. first", "3. second"})
	assert.Equal(t, AnswerMap{3: "second"}, got)
}

func TestParse(t *testing.T) {
	got, err := Parse(VariantSimple, []string{"1. a"})
	require.NoError(t, err)
	assert.Equal(t, AnswerMap{1: "a"}, got)

	_, err = Parse(Variant("fuzzy"), nil)
	assert.Error(t, err)
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant(" Dual ")
	require.NoError(t, err)
	assert.Equal(t, VariantDual, v)

	_, err = ParseVariant("ocr")
	assert.Error(t, err)
}

func TestAnswerMapMissing(t *testing.T) {
	m := AnswerMap{1: "a", 3: "", 7: "x"}
	assert.Equal(t, []int{2, 4, 5}, m.Missing(5))
	assert.Nil(t, AnswerMap{1: "a"}.Missing(1))
	assert.Equal(t, []int{1, 3, 7}, m.Questions())
}

func TestQuestionNumberOverflow(t *testing.T) {
	_, ok := questionNumber("99999999999999999999999. huge")
	assert.False(t, ok)
}
