// Package seed holds the built-in quiz catalog and loads it into an empty database.
package seed

import (
	"context"
	"fmt"

	"github.com/lshigami/mybeing/internal/apperror"
	"github.com/lshigami/mybeing/internal/dto"
	"github.com/lshigami/mybeing/internal/service"
	"github.com/rs/zerolog/log"
)

var dissonanceStatements = []string{
	"I often act in ways that contradict what I believe.",
	"I feel uneasy when my choices do not match my values.",
	"I find myself justifying decisions after I have made them.",
	"I avoid information that challenges my opinions.",
	"I change my beliefs to fit what I have already done.",
	"I feel torn between two things I care about.",
	"I downplay the downsides of choices I have committed to.",
	"I notice tension when friends point out my inconsistencies.",
	"I keep habits I know are not good for me.",
	"I feel relief when others agree with a decision I doubted.",
}

// Catalog returns the quizzes shipped with the site.
func Catalog() []dto.QuizUpsertRequest {
	dissonance := dto.QuizUpsertRequest{
		Slug:        "cognitive-dissonance",
		Title:       "How much cognitive dissonance are you carrying?",
		Description: "Ten statements about the gap between what you believe and what you do.",
		Bands: []dto.BandInput{
			{Min: 10, Max: 20, Label: "Low dissonance", Advice: "Your actions and beliefs mostly line up. Keep checking in with yourself."},
			{Min: 21, Max: 35, Label: "Moderate dissonance", Advice: "Some of your choices pull against your values. Pick one area and look at it honestly."},
			{Min: 36, Max: 50, Label: "High dissonance", Advice: "You are carrying a lot of inner conflict. Writing it down or talking it through can help."},
		},
	}
	for i, text := range dissonanceStatements {
		dissonance.Questions = append(dissonance.Questions, dto.QuestionInput{
			ID:   fmt.Sprintf("q%d", i+1),
			Text: text,
			Type: "likert",
		})
	}

	burnout := dto.QuizUpsertRequest{
		Slug:        "burnout-check",
		Title:       "Quick burnout check",
		Description: "Six questions on energy, focus and recovery.",
		Questions: []dto.QuestionInput{
			{ID: "tired", Text: "Do you wake up tired most days?", Type: "yes_no"},
			{ID: "dread", Text: "Do you dread the start of the work week?", Type: "yes_no"},
			{ID: "focus", Text: "Has your focus slipped over the last month?", Type: "yes_no"},
			{ID: "detach", Text: "Do you feel detached from people you work with?", Type: "yes_no"},
			{ID: "recharge", Text: "What recharges you most?", Type: "multiple_choice", Options: []string{"Time alone", "Time with friends", "Exercise", "Sleep"}},
			{ID: "note", Text: "Anything else on your mind?", Type: "text_input"},
		},
		Bands: []dto.BandInput{
			{Min: 5, Max: 6, Label: "Running steady", Advice: "Your reserves look healthy."},
			{Min: 7, Max: 8, Label: "Running low", Advice: "Protect your rest before it turns into exhaustion."},
			{Min: 9, Max: 10, Label: "Running on empty", Advice: "Several burnout signs are present. Consider talking to someone you trust."},
		},
	}

	return []dto.QuizUpsertRequest{dissonance, burnout}
}

// Run creates every catalog quiz that does not exist yet and returns how many were created.
func Run(ctx context.Context, quizzes service.AdminQuizService) (int, error) {
	created := 0
	for _, req := range Catalog() {
		_, err := quizzes.CreateQuiz(ctx, req)
		switch {
		case err == nil:
			created++
			log.Info().Str("slug", req.Slug).Msg("Seeded quiz")
		case apperror.HasCode(err, apperror.CodeConflict):
			log.Debug().Str("slug", req.Slug).Msg("Quiz already present, skipping seed")
		default:
			return created, fmt.Errorf("seed %s: %w", req.Slug, err)
		}
	}
	return created, nil
}
