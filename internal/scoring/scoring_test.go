package scoring

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lshigami/mybeing/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dissonanceQuiz() ([]Question, []Band) {
	questions := make([]Question, 0, 10)
	for i := 1; i <= 10; i++ {
		questions = append(questions, Question{ID: fmt.Sprintf("q%d", i), Type: Likert})
	}
	bands := []Band{
		{Min: 10, Max: 20, Label: "Low dissonance"},
		{Min: 21, Max: 35, Label: "Moderate dissonance"},
		{Min: 36, Max: 50, Label: "High dissonance"},
	}
	return questions, bands
}

func uniformAnswers(questions []Question, v any) Answers {
	answers := Answers{}
	for _, q := range questions {
		answers[q.ID] = v
	}
	return answers
}

func TestScorePerType(t *testing.T) {
	questions := []Question{
		{ID: "l", Type: Likert},
		{ID: "yes", Type: YesNo},
		{ID: "no", Type: YesNo},
		{ID: "mc", Type: MultipleChoice, Options: []string{"a", "b"}},
		{ID: "txt", Type: TextInput},
		{ID: "blank", Type: TextInput},
		{ID: "skipped", Type: Likert},
	}
	answers := Answers{
		"l":     float64(4),
		"yes":   true,
		"no":    false,
		"mc":    "b",
		"txt":   "I felt torn",
		"blank": "   ",
	}
	// 4 + 2 + 1 + 1 + 1 + 0 + 0
	assert.Equal(t, 9, Score(questions, answers))
}

func TestScoreMultipleChoiceIgnoresWhichOption(t *testing.T) {
	questions := []Question{{ID: "mc", Type: MultipleChoice, Options: []string{"a", "b", "c"}}}
	for _, opt := range []string{"a", "b", "c"} {
		assert.Equal(t, ChoicePoints, Score(questions, Answers{"mc": opt}))
	}
}

func TestScoreAcceptsStringEncodings(t *testing.T) {
	questions := []Question{{ID: "l", Type: Likert}, {ID: "y", Type: YesNo}}
	assert.Equal(t, 3+YesPoints, Score(questions, Answers{"l": "3", "y": "yes"}))
	assert.Equal(t, 5+NoPoints, Score(questions, Answers{"l": 5, "y": "no"}))
}

func TestScoreDoesNotBoundLikert(t *testing.T) {
	questions := []Question{{ID: "l", Type: Likert}}
	assert.Equal(t, 42, Score(questions, Answers{"l": float64(42)}))
	assert.Error(t, ValidateAnswers(questions, Answers{"l": float64(42)}))
}

func TestScoreIsDeterministic(t *testing.T) {
	questions, _ := dissonanceQuiz()
	answers := Answers{"q1": 1.0, "q2": 5.0, "q3": 2.0, "q7": 4.0}
	first := Score(questions, answers)
	for i := 0; i < 50; i++ {
		require.Equal(t, first, Score(questions, answers))
	}
}

func TestScoreLikertMonotonic(t *testing.T) {
	questions, _ := dissonanceQuiz()
	base := uniformAnswers(questions, 3.0)
	for _, q := range questions {
		prev := -1
		for v := LikertMin; v <= LikertMax; v++ {
			answers := Answers{}
			for k, val := range base {
				answers[k] = val
			}
			answers[q.ID] = float64(v)
			got := Score(questions, answers)
			assert.GreaterOrEqual(t, got, prev, "question %s value %d", q.ID, v)
			prev = got
		}
	}
}

func TestRange(t *testing.T) {
	questions := []Question{
		{ID: "l", Type: Likert},
		{ID: "y", Type: YesNo},
		{ID: "mc", Type: MultipleChoice},
		{ID: "t", Type: TextInput},
	}
	lo, hi := Range(questions)
	assert.Equal(t, 1+1+1+0, lo)
	assert.Equal(t, 5+2+1+1, hi)
}

func TestValidateAnswers(t *testing.T) {
	questions := []Question{
		{ID: "l", Type: Likert},
		{ID: "y", Type: YesNo},
		{ID: "mc", Type: MultipleChoice, Options: []string{"often", "rarely"}},
		{ID: "t", Type: TextInput},
	}

	require.NoError(t, ValidateAnswers(questions, Answers{"l": 2.0, "y": true, "mc": "often", "t": "fine"}))
	require.NoError(t, ValidateAnswers(questions, Answers{}))

	cases := []struct {
		name    string
		answers Answers
	}{
		{"likert below domain", Answers{"l": 0.0}},
		{"likert fractional", Answers{"l": 2.5}},
		{"likert not numeric", Answers{"l": "lots"}},
		{"yes/no not boolean", Answers{"y": 1.0}},
		{"unknown option", Answers{"mc": "never"}},
		{"text not string", Answers{"t": 12.0}},
		{"unknown question", Answers{"zzz": 1.0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateAnswers(questions, c.answers)
			require.Error(t, err)
			assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
		})
	}
}

func TestValidateAnswersBlankChoice(t *testing.T) {
	// Options stored before blank options were rejected at authoring time.
	questions := []Question{{ID: "mc", Type: MultipleChoice, Options: []string{"often", " "}}}
	err := ValidateAnswers(questions, Answers{"mc": " "})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestValidateAnswersTextLengthCountsCharacters(t *testing.T) {
	questions := []Question{{ID: "t", Type: TextInput}}
	assert.NoError(t, ValidateAnswers(questions, Answers{"t": strings.Repeat("é", maxTextLength)}))
	assert.Error(t, ValidateAnswers(questions, Answers{"t": strings.Repeat("é", maxTextLength+1)}))
}

func TestEndToEndModerate(t *testing.T) {
	questions, bands := dissonanceQuiz()
	score := Score(questions, uniformAnswers(questions, 3.0))
	require.Equal(t, 30, score)

	band, matched := LookupBand(score, bands)
	assert.True(t, matched)
	assert.Equal(t, "Moderate dissonance", band.Label)
}

func TestEndToEndLowAtInclusiveMin(t *testing.T) {
	questions, bands := dissonanceQuiz()
	score := Score(questions, uniformAnswers(questions, 1.0))
	require.Equal(t, 10, score)

	band, matched := LookupBand(score, bands)
	assert.True(t, matched)
	assert.Equal(t, "Low dissonance", band.Label)
}
