package dto

import (
	"time"

	"github.com/lshigami/mybeing/internal/scoring"
)

// QuestionInput is one question inside QuizUpsertRequest.
type QuestionInput struct {
	ID      string   `json:"id" binding:"required,max=64"`
	Text    string   `json:"text" binding:"required"`
	Type    string   `json:"type" binding:"required,oneof=likert yes_no multiple_choice text_input"`
	Options []string `json:"options" binding:"omitempty,dive,required,max=200"`
}

type BandInput struct {
	Min    int    `json:"min"`
	Max    int    `json:"max"`
	Label  string `json:"label" binding:"required,max=120"`
	Advice string `json:"advice"`
}

// QuizUpsertRequest creates a quiz or replaces one completely.
type QuizUpsertRequest struct {
	Slug        string          `json:"slug" binding:"required,slug,max=120"`
	Title       string          `json:"title" binding:"required,max=200"`
	Description string          `json:"description"`
	Questions   []QuestionInput `json:"questions" binding:"required,min=1,dive"`
	Bands       []BandInput     `json:"bands" binding:"required,min=1,dive"`
}

type BandCheckResponse struct {
	Slug     string              `json:"slug"`
	MinScore int                 `json:"min_score"`
	MaxScore int                 `json:"max_score"`
	Valid    bool                `json:"valid"`
	Issues   []scoring.BandIssue `json:"issues"`
}

type ArticleUpsertRequest struct {
	Slug      string `json:"slug" binding:"required,slug,max=160"`
	Title     string `json:"title" binding:"required,max=200"`
	Excerpt   string `json:"excerpt"`
	Body      string `json:"body" binding:"required"`
	Published bool   `json:"published"`
}

type AdminArticleDTO struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type SessionResponse struct {
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type LoginResponse struct {
	Session SessionResponse `json:"session"`
	Token   string          `json:"token"`
}

type QuizStatsDTO struct {
	Slug         string           `json:"slug"`
	Runs         int64            `json:"runs"`
	AverageScore float64          `json:"average_score"`
	Emails       int64            `json:"emails"`
	Bands        map[string]int64 `json:"bands"`
}

type SubscriberStatsDTO struct {
	Active       int64 `json:"active"`
	Unsubscribed int64 `json:"unsubscribed"`
}

type AnalyticsResponse struct {
	Quizzes     []QuizStatsDTO     `json:"quizzes"`
	Subscribers SubscriberStatsDTO `json:"subscribers"`
}
