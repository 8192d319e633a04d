package dto

// QuestionDTO is a quiz question as shown to readers.
type QuestionDTO struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

type BandDTO struct {
	Min    int    `json:"min"`
	Max    int    `json:"max"`
	Label  string `json:"label"`
	Advice string `json:"advice,omitempty"`
}

// QuizSummaryDTO is used for listing quizzes.
type QuizSummaryDTO struct {
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	QuestionCount int    `json:"question_count"`
}

// QuizDTO is a full quiz with its questions, bands and attainable score range.
type QuizDTO struct {
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Questions   []QuestionDTO `json:"questions" copier:"-"`
	Bands       []BandDTO     `json:"bands" copier:"-"`
	MinScore    int           `json:"min_score"`
	MaxScore    int           `json:"max_score"`
}

type BandResultDTO struct {
	Label  string `json:"label"`
	Advice string `json:"advice,omitempty"`
}

type SubmitQuizResponse struct {
	RunID    string        `json:"run_id"`
	QuizSlug string        `json:"quiz_slug"`
	Score    int           `json:"score"`
	MinScore int           `json:"min_score"`
	MaxScore int           `json:"max_score"`
	Band     BandResultDTO `json:"band"`
}
