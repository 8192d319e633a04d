package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/mybeing/internal/apperror"
	"github.com/lshigami/mybeing/internal/dto"
	"github.com/lshigami/mybeing/internal/model"
	"github.com/lshigami/mybeing/internal/repository"
	"github.com/lshigami/mybeing/internal/scoring"
	"github.com/rs/zerolog/log"
)

// QuizService serves quizzes to readers and scores their submissions.
type QuizService interface {
	ListQuizzes(ctx context.Context) ([]dto.QuizSummaryDTO, error)
	GetQuiz(ctx context.Context, slug string) (*dto.QuizDTO, error)
	SubmitQuiz(ctx context.Context, slug string, answers scoring.Answers) (*dto.SubmitQuizResponse, error)
	AttachEmail(ctx context.Context, slug, runID, email string) (*dto.AttachEmailResponse, error)
}

type quizService struct {
	quizRepo repository.QuizRepository
	runRepo  repository.QuizRunRepository
	now      func() time.Time
	newID    func() string
}

func NewQuizService(quizRepo repository.QuizRepository, runRepo repository.QuizRunRepository) QuizService {
	return &quizService{
		quizRepo: quizRepo,
		runRepo:  runRepo,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *quizService) ListQuizzes(ctx context.Context) ([]dto.QuizSummaryDTO, error) {
	quizzes, err := s.quizRepo.FindAllWithQuestionCount(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list quizzes")
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	out := make([]dto.QuizSummaryDTO, 0, len(quizzes))
	for _, q := range quizzes {
		out = append(out, dto.QuizSummaryDTO{
			Slug:          q.Slug,
			Title:         q.Title,
			Description:   q.Description,
			QuestionCount: q.QuestionCount,
		})
	}
	return out, nil
}

func (s *quizService) GetQuiz(ctx context.Context, slug string) (*dto.QuizDTO, error) {
	quiz, err := s.quizRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, repoErr(err, "quiz not found", "find quiz")
	}
	resp, err := toQuizDTO(quiz)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *quizService) SubmitQuiz(ctx context.Context, slug string, answers scoring.Answers) (*dto.SubmitQuizResponse, error) {
	quiz, err := s.quizRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, repoErr(err, "quiz not found", "find quiz")
	}
	questions := quiz.ScoringQuestions()
	if err := scoring.ValidateAnswers(questions, answers); err != nil {
		return nil, err
	}

	score := scoring.Score(questions, answers)
	band, matched := scoring.LookupBand(score, quiz.ScoringBands())
	if !matched {
		log.Warn().Str("quiz", slug).Int("score", score).Str("fallback_band", band.Label).
			Msg("Score matched no band, using the first band")
	}
	lo, hi := scoring.Range(questions)

	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, apperror.Validation("answers could not be encoded")
	}
	run := &model.QuizRun{
		PublicID:    s.newID(),
		QuizID:      quiz.ID,
		QuizSlug:    quiz.Slug,
		Score:       score,
		BandLabel:   band.Label,
		BandMatched: matched,
		Answers:     raw,
		CreatedAt:   s.now(),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		log.Error().Err(err).Str("quiz", slug).Msg("Failed to store quiz run")
		return nil, fmt.Errorf("store quiz run: %w", err)
	}

	log.Info().Str("quiz", slug).Str("run_id", run.PublicID).Int("score", score).Str("band", band.Label).Msg("Quiz submitted")
	return &dto.SubmitQuizResponse{
		RunID:    run.PublicID,
		QuizSlug: quiz.Slug,
		Score:    score,
		MinScore: lo,
		MaxScore: hi,
		Band:     dto.BandResultDTO{Label: band.Label, Advice: band.Advice},
	}, nil
}

func (s *quizService) AttachEmail(ctx context.Context, slug, runID, email string) (*dto.AttachEmailResponse, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return nil, apperror.NotFound("quiz run not found")
	}
	quiz, err := s.quizRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, repoErr(err, "quiz run not found", "find quiz")
	}
	run, err := s.runRepo.FindByPublicID(ctx, quiz.ID, runID)
	if err != nil {
		return nil, repoErr(err, "quiz run not found", "find quiz run")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.runRepo.AttachEmail(ctx, run.ID, email, s.now()); err != nil {
		log.Error().Err(err).Str("run_id", runID).Msg("Failed to attach email to quiz run")
		return nil, fmt.Errorf("attach email: %w", err)
	}
	return &dto.AttachEmailResponse{RunID: run.PublicID, Email: email}, nil
}
