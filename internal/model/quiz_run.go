package model

import (
	"time"

	"gorm.io/datatypes"
)

// QuizRun is one scored submission of a quiz.
type QuizRun struct {
	ID              uint           `gorm:"primarykey" json:"-"`
	PublicID        string         `json:"run_id" gorm:"size:36;not null;uniqueIndex"`
	QuizID          uint           `json:"-" gorm:"not null;index"`
	QuizSlug        string         `json:"quiz_slug" gorm:"size:120;not null;index"`
	Score           int            `json:"score"`
	BandLabel       string         `json:"band_label"`
	BandMatched     bool           `json:"band_matched"`
	Answers         datatypes.JSON `json:"answers"`
	Email           *string        `json:"email,omitempty" gorm:"size:254"`
	EmailAttachedAt *time.Time     `json:"email_attached_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at" gorm:"index"`
}
