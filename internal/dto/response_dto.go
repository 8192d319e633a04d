package dto

import "time"

type ErrorResponse struct {
	Code    string     `json:"code"`
	Error   string     `json:"error"`
	Message string     `json:"message,omitempty"`
	Details []string   `json:"details,omitempty"`
	ResetAt *time.Time `json:"reset_at,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AttachEmailResponse struct {
	RunID string `json:"run_id"`
	Email string `json:"email"`
}

type SubscribeResponse struct {
	Email             string `json:"email"`
	Subscribed        bool   `json:"subscribed"`
	AlreadySubscribed bool   `json:"already_subscribed"`
}

type ArticleSummaryDTO struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

type ArticleDTO struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Limiter  string `json:"limiter"`
}
