package model

import (
	"encoding/json"

	"github.com/lshigami/mybeing/internal/scoring"
	"gorm.io/datatypes"
)

type Question struct {
	ID       uint           `gorm:"primarykey" json:"-"`
	QuizID   uint           `json:"quiz_id" gorm:"not null;uniqueIndex:idx_quiz_question_key"`
	Key      string         `json:"id" gorm:"column:question_key;size:64;not null;uniqueIndex:idx_quiz_question_key"`
	Text     string         `json:"text" gorm:"type:text;not null"`
	Type     string         `json:"type" gorm:"size:32;not null"` // likert, yes_no, multiple_choice, text_input
	Options  datatypes.JSON `json:"options,omitempty"`
	Position int            `json:"position" gorm:"not null"`
}

// OptionList decodes the stored options. Rows without options yield nil.
func (q Question) OptionList() []string {
	if len(q.Options) == 0 {
		return nil
	}
	var opts []string
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil
	}
	return opts
}

// SetOptions encodes opts into the JSON column.
func (q *Question) SetOptions(opts []string) {
	if len(opts) == 0 {
		q.Options = nil
		return
	}
	raw, _ := json.Marshal(opts)
	q.Options = datatypes.JSON(raw)
}

func (q Question) ToScoring() scoring.Question {
	return scoring.Question{
		ID:      q.Key,
		Text:    q.Text,
		Type:    scoring.QuestionType(q.Type),
		Options: q.OptionList(),
	}
}
