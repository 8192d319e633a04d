package service

import (
	"context"
	"fmt"

	"github.com/lshigami/mybeing/internal/apperror"
	"github.com/lshigami/mybeing/internal/dto"
	"github.com/lshigami/mybeing/internal/repository"
	"github.com/lshigami/mybeing/internal/scoring"
	"github.com/rs/zerolog/log"
)

// AdminQuizService is the quiz CMS. Every write validates band coverage before it is stored.
type AdminQuizService interface {
	ListQuizzes(ctx context.Context) ([]dto.QuizDTO, error)
	CreateQuiz(ctx context.Context, req dto.QuizUpsertRequest) (*dto.QuizDTO, error)
	UpdateQuiz(ctx context.Context, slug string, req dto.QuizUpsertRequest) (*dto.QuizDTO, error)
	DeleteQuiz(ctx context.Context, slug string) error
	CheckBands(ctx context.Context, slug string) (*dto.BandCheckResponse, error)
	CheckAllBands(ctx context.Context) ([]dto.BandCheckResponse, error)
}

type adminQuizService struct {
	quizRepo repository.QuizRepository
}

func NewAdminQuizService(quizRepo repository.QuizRepository) AdminQuizService {
	return &adminQuizService{quizRepo: quizRepo}
}

func (s *adminQuizService) ListQuizzes(ctx context.Context) ([]dto.QuizDTO, error) {
	quizzes, err := s.quizRepo.FindAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	out := make([]dto.QuizDTO, 0, len(quizzes))
	for i := range quizzes {
		q, err := toQuizDTO(&quizzes[i])
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func (s *adminQuizService) CreateQuiz(ctx context.Context, req dto.QuizUpsertRequest) (*dto.QuizDTO, error) {
	quiz, err := buildQuiz(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.quizRepo.FindBySlug(ctx, quiz.Slug); err == nil {
		return nil, apperror.Conflict(fmt.Sprintf("quiz %q already exists", quiz.Slug))
	}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		log.Error().Err(err).Str("slug", quiz.Slug).Msg("Failed to create quiz in database")
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	log.Info().Str("slug", quiz.Slug).Int("questions", len(quiz.Questions)).Msg("Quiz created")
	return s.reload(ctx, quiz.Slug)
}

func (s *adminQuizService) UpdateQuiz(ctx context.Context, slug string, req dto.QuizUpsertRequest) (*dto.QuizDTO, error) {
	existing, err := s.quizRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, repoErr(err, "quiz not found", "find quiz")
	}
	quiz, err := buildQuiz(req)
	if err != nil {
		return nil, err
	}
	if quiz.Slug != slug {
		if _, err := s.quizRepo.FindBySlug(ctx, quiz.Slug); err == nil {
			return nil, apperror.Conflict(fmt.Sprintf("quiz %q already exists", quiz.Slug))
		}
	}
	if err := s.quizRepo.Replace(ctx, existing.ID, quiz); err != nil {
		return nil, repoErr(err, "quiz not found", "update quiz")
	}
	log.Info().Str("slug", slug).Str("new_slug", quiz.Slug).Msg("Quiz updated")
	return s.reload(ctx, quiz.Slug)
}

func (s *adminQuizService) DeleteQuiz(ctx context.Context, slug string) error {
	if err := s.quizRepo.Delete(ctx, slug); err != nil {
		return repoErr(err, "quiz not found", "delete quiz")
	}
	log.Info().Str("slug", slug).Msg("Quiz deleted")
	return nil
}

func (s *adminQuizService) CheckBands(ctx context.Context, slug string) (*dto.BandCheckResponse, error) {
	quiz, err := s.quizRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, repoErr(err, "quiz not found", "find quiz")
	}
	questions := quiz.ScoringQuestions()
	lo, hi := scoring.Range(questions)
	issues := scoring.ValidateBands(questions, quiz.ScoringBands())
	if issues == nil {
		issues = []scoring.BandIssue{}
	}
	return &dto.BandCheckResponse{
		Slug:     quiz.Slug,
		MinScore: lo,
		MaxScore: hi,
		Valid:    len(issues) == 0,
		Issues:   issues,
	}, nil
}

func (s *adminQuizService) CheckAllBands(ctx context.Context) ([]dto.BandCheckResponse, error) {
	quizzes, err := s.quizRepo.FindAll(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	out := make([]dto.BandCheckResponse, 0, len(quizzes))
	for _, q := range quizzes {
		check, err := s.CheckBands(ctx, q.Slug)
		if err != nil {
			return nil, err
		}
		out = append(out, *check)
	}
	return out, nil
}

func (s *adminQuizService) reload(ctx context.Context, slug string) (*dto.QuizDTO, error) {
	quiz, err := s.quizRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, repoErr(err, "quiz not found", "reload quiz")
	}
	resp, err := toQuizDTO(quiz)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
