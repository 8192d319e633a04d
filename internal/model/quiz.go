package model

import (
	"time"

	"github.com/lshigami/mybeing/internal/scoring"
	"gorm.io/gorm"
)

type Quiz struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Slug        string         `json:"slug" gorm:"size:120;not null;uniqueIndex"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	Questions   []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE;"`
	Bands       []Band         `json:"bands,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE;"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// ScoringQuestions returns the questions in authored order as scoring inputs.
func (q *Quiz) ScoringQuestions() []scoring.Question {
	out := make([]scoring.Question, 0, len(q.Questions))
	for _, question := range q.Questions {
		out = append(out, question.ToScoring())
	}
	return out
}

// ScoringBands returns the bands in authored order. Lookup is first-match, so order matters.
func (q *Quiz) ScoringBands() []scoring.Band {
	out := make([]scoring.Band, 0, len(q.Bands))
	for _, b := range q.Bands {
		out = append(out, scoring.Band{Min: b.Min, Max: b.Max, Label: b.Label, Advice: b.Advice})
	}
	return out
}

type Band struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	QuizID   uint   `json:"quiz_id" gorm:"not null;index"`
	Min      int    `json:"min" gorm:"column:min_score;not null"`
	Max      int    `json:"max" gorm:"column:max_score;not null"`
	Label    string `json:"label" gorm:"not null"`
	Advice   string `json:"advice,omitempty" gorm:"type:text"`
	Position int    `json:"position" gorm:"not null"`
}
