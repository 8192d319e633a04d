// Package scoring reduces quiz answers to a numeric score and maps scores onto result bands.
package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lshigami/mybeing/internal/apperror"
)

type QuestionType string

const (
	Likert         QuestionType = "likert"
	YesNo          QuestionType = "yes_no"
	MultipleChoice QuestionType = "multiple_choice"
	TextInput      QuestionType = "text_input"
)

// Valid reports whether t is one of the supported question types.
func (t QuestionType) Valid() bool {
	switch t {
	case Likert, YesNo, MultipleChoice, TextInput:
		return true
	}
	return false
}

// Points awarded per question type.
const (
	LikertMin    = 1
	LikertMax    = 5
	YesPoints    = 2
	NoPoints     = 1
	ChoicePoints = 1
	TextPoints   = 1

	maxTextLength = 2000
)

type Question struct {
	ID      string
	Text    string
	Type    QuestionType
	Options []string
}

// Answers maps question id to the raw decoded JSON value.
type Answers map[string]any

// Score sums the contribution of every answered question. Unanswered questions add nothing.
// Likert values are summed as given; callers that need domain checks run ValidateAnswers first.
func Score(questions []Question, answers Answers) int {
	total := 0
	for _, q := range questions {
		v, ok := answers[q.ID]
		if !ok || v == nil {
			continue
		}
		switch q.Type {
		case Likert:
			if n, ok := numeric(v); ok {
				total += int(math.Round(n))
			}
		case YesNo:
			if yes, ok := yesNo(v); ok {
				if yes {
					total += YesPoints
				} else {
					total += NoPoints
				}
			}
		case MultipleChoice:
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				total += ChoicePoints
			}
		case TextInput:
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				total += TextPoints
			}
		}
	}
	return total
}

// Range returns the lowest and highest score a fully answered quiz can reach.
func Range(questions []Question) (min, max int) {
	for _, q := range questions {
		switch q.Type {
		case Likert:
			min += LikertMin
			max += LikertMax
		case YesNo:
			min += NoPoints
			max += YesPoints
		case MultipleChoice:
			min += ChoicePoints
			max += ChoicePoints
		case TextInput:
			max += TextPoints
		}
	}
	return min, max
}

// ValidateAnswers rejects answers that do not fit their question's type.
func ValidateAnswers(questions []Question, answers Answers) error {
	byID := make(map[string]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	var details []string
	for id, v := range answers {
		q, ok := byID[id]
		if !ok {
			details = append(details, fmt.Sprintf("unknown question %q", id))
			continue
		}
		if v == nil {
			continue
		}
		if msg := checkAnswer(q, v); msg != "" {
			details = append(details, fmt.Sprintf("question %q: %s", id, msg))
		}
	}
	if len(details) > 0 {
		return apperror.Validation("invalid answers", details...)
	}
	return nil
}

func checkAnswer(q Question, v any) string {
	switch q.Type {
	case Likert:
		n, ok := numeric(v)
		if !ok {
			return "likert answer must be a number"
		}
		if n != math.Trunc(n) || n < LikertMin || n > LikertMax {
			return fmt.Sprintf("likert answer must be an integer between %d and %d", LikertMin, LikertMax)
		}
	case YesNo:
		if _, ok := yesNo(v); !ok {
			return "yes/no answer must be a boolean"
		}
	case MultipleChoice:
		s, ok := v.(string)
		if !ok {
			return "choice must be a string"
		}
		if strings.TrimSpace(s) == "" {
			return "choice must not be blank"
		}
		for _, opt := range q.Options {
			if opt == s {
				return ""
			}
		}
		return fmt.Sprintf("%q is not one of the options", s)
	case TextInput:
		s, ok := v.(string)
		if !ok {
			return "text answer must be a string"
		}
		if utf8.RuneCountInString(s) > maxTextLength {
			return fmt.Sprintf("text answer exceeds %d characters", maxTextLength)
		}
	}
	return ""
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func yesNo(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "yes", "true":
			return true, true
		case "no", "false":
			return false, true
		}
	}
	return false, false
}
