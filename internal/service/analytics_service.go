package service

import (
	"context"
	"fmt"

	"github.com/lshigami/mybeing/internal/dto"
	"github.com/lshigami/mybeing/internal/repository"
)

// AnalyticsService summarises quiz runs and newsletter growth for the admin dashboard.
type AnalyticsService interface {
	Summary(ctx context.Context) (*dto.AnalyticsResponse, error)
}

type analyticsService struct {
	runRepo        repository.QuizRunRepository
	subscriberRepo repository.SubscriberRepository
}

func NewAnalyticsService(runRepo repository.QuizRunRepository, subscriberRepo repository.SubscriberRepository) AnalyticsService {
	return &analyticsService{runRepo: runRepo, subscriberRepo: subscriberRepo}
}

func (s *analyticsService) Summary(ctx context.Context) (*dto.AnalyticsResponse, error) {
	stats, err := s.runRepo.StatsByQuiz(ctx)
	if err != nil {
		return nil, fmt.Errorf("quiz run stats: %w", err)
	}
	bands, err := s.runRepo.BandCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("band counts: %w", err)
	}
	active, unsubscribed, err := s.subscriberRepo.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscriber counts: %w", err)
	}

	resp := &dto.AnalyticsResponse{
		Quizzes:     make([]dto.QuizStatsDTO, 0, len(stats)),
		Subscribers: dto.SubscriberStatsDTO{Active: active, Unsubscribed: unsubscribed},
	}
	index := make(map[string]int, len(stats))
	for _, st := range stats {
		index[st.QuizSlug] = len(resp.Quizzes)
		resp.Quizzes = append(resp.Quizzes, dto.QuizStatsDTO{
			Slug:         st.QuizSlug,
			Runs:         st.Runs,
			AverageScore: st.AverageScore,
			Emails:       st.Emails,
			Bands:        map[string]int64{},
		})
	}
	for _, b := range bands {
		if i, ok := index[b.QuizSlug]; ok {
			resp.Quizzes[i].Bands[b.BandLabel] = b.Count
		}
	}
	return resp, nil
}
