package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/mybeing/internal/dto"
	"github.com/lshigami/mybeing/internal/model"
	"github.com/lshigami/mybeing/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// NewsletterService manages newsletter subscriptions. Subscribing is idempotent.
type NewsletterService interface {
	Subscribe(ctx context.Context, req dto.SubscribeRequest) (*dto.SubscribeResponse, error)
	Unsubscribe(ctx context.Context, token string) error
}

type newsletterService struct {
	repo  repository.SubscriberRepository
	now   func() time.Time
	newID func() string
}

func NewNewsletterService(repo repository.SubscriberRepository) NewsletterService {
	return &newsletterService{repo: repo, now: time.Now, newID: uuid.NewString}
}

func (s *newsletterService) Subscribe(ctx context.Context, req dto.SubscribeRequest) (*dto.SubscribeResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = "site"
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.Active():
		return &dto.SubscribeResponse{Email: email, Subscribed: true, AlreadySubscribed: true}, nil
	case err == nil:
		existing.UnsubscribedAt = nil
		existing.Source = source
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("resubscribe: %w", err)
		}
		log.Info().Str("source", source).Msg("Subscriber re-activated")
		return &dto.SubscribeResponse{Email: email, Subscribed: true}, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("find subscriber: %w", err)
	}

	sub := &model.Subscriber{Email: email, Source: source, UnsubscribeToken: s.newID()}
	if err := s.repo.Create(ctx, sub); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent request subscribed the same address first.
			return &dto.SubscribeResponse{Email: email, Subscribed: true, AlreadySubscribed: true}, nil
		}
		log.Error().Err(err).Msg("Failed to store subscriber")
		return nil, fmt.Errorf("create subscriber: %w", err)
	}
	log.Info().Str("source", source).Msg("New newsletter subscriber")
	return &dto.SubscribeResponse{Email: email, Subscribed: true}, nil
}

func (s *newsletterService) Unsubscribe(ctx context.Context, token string) error {
	sub, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return repoErr(err, "subscription not found", "find subscriber")
	}
	if !sub.Active() {
		return nil
	}
	now := s.now()
	sub.UnsubscribedAt = &now
	if err := s.repo.Update(ctx, sub); err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	return nil
}

