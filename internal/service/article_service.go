package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/mybeing/internal/apperror"
	"github.com/lshigami/mybeing/internal/dto"
	"github.com/lshigami/mybeing/internal/model"
	"github.com/lshigami/mybeing/internal/repository"
	"github.com/rs/zerolog/log"
)

type ArticleService interface {
	ListPublished(ctx context.Context) ([]dto.ArticleSummaryDTO, error)
	GetPublished(ctx context.Context, slug string) (*dto.ArticleDTO, error)
	ListAll(ctx context.Context) ([]dto.AdminArticleDTO, error)
	CreateArticle(ctx context.Context, req dto.ArticleUpsertRequest) (*dto.AdminArticleDTO, error)
	UpdateArticle(ctx context.Context, slug string, req dto.ArticleUpsertRequest) (*dto.AdminArticleDTO, error)
	DeleteArticle(ctx context.Context, slug string) error
}

type articleService struct {
	repo repository.ArticleRepository
	now  func() time.Time
}

func NewArticleService(repo repository.ArticleRepository) ArticleService {
	return &articleService{repo: repo, now: time.Now}
}

func (s *articleService) ListPublished(ctx context.Context) ([]dto.ArticleSummaryDTO, error) {
	articles, err := s.repo.FindAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	out := make([]dto.ArticleSummaryDTO, 0, len(articles))
	if err := copier.Copy(&out, &articles); err != nil {
		return nil, fmt.Errorf("copy articles: %w", err)
	}
	return out, nil
}

func (s *articleService) GetPublished(ctx context.Context, slug string) (*dto.ArticleDTO, error) {
	a, err := s.repo.FindBySlug(ctx, slug, true)
	if err != nil {
		return nil, repoErr(err, "article not found", "find article")
	}
	var resp dto.ArticleDTO
	if err := copier.Copy(&resp, a); err != nil {
		return nil, fmt.Errorf("copy article: %w", err)
	}
	return &resp, nil
}

func (s *articleService) ListAll(ctx context.Context) ([]dto.AdminArticleDTO, error) {
	articles, err := s.repo.FindAll(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	out := make([]dto.AdminArticleDTO, 0, len(articles))
	if err := copier.Copy(&out, &articles); err != nil {
		return nil, fmt.Errorf("copy articles: %w", err)
	}
	return out, nil
}

func (s *articleService) CreateArticle(ctx context.Context, req dto.ArticleUpsertRequest) (*dto.AdminArticleDTO, error) {
	if _, err := s.repo.FindBySlug(ctx, req.Slug, false); err == nil {
		return nil, apperror.Conflict(fmt.Sprintf("article %q already exists", req.Slug))
	}
	a := &model.Article{}
	s.apply(a, req)
	if err := s.repo.Create(ctx, a); err != nil {
		log.Error().Err(err).Str("slug", req.Slug).Msg("Failed to create article")
		return nil, fmt.Errorf("create article: %w", err)
	}
	return toAdminArticle(a)
}

func (s *articleService) UpdateArticle(ctx context.Context, slug string, req dto.ArticleUpsertRequest) (*dto.AdminArticleDTO, error) {
	a, err := s.repo.FindBySlug(ctx, slug, false)
	if err != nil {
		return nil, repoErr(err, "article not found", "find article")
	}
	if req.Slug != slug {
		if _, err := s.repo.FindBySlug(ctx, req.Slug, false); err == nil {
			return nil, apperror.Conflict(fmt.Sprintf("article %q already exists", req.Slug))
		}
	}
	s.apply(a, req)
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return toAdminArticle(a)
}

func (s *articleService) DeleteArticle(ctx context.Context, slug string) error {
	if err := s.repo.Delete(ctx, slug); err != nil {
		return repoErr(err, "article not found", "delete article")
	}
	return nil
}

// apply copies req onto a. PublishedAt is set the first time an article is published and
// cleared when it is unpublished.
func (s *articleService) apply(a *model.Article, req dto.ArticleUpsertRequest) {
	a.Slug = req.Slug
	a.Title = req.Title
	a.Excerpt = req.Excerpt
	a.Body = req.Body
	switch {
	case req.Published && a.PublishedAt == nil:
		now := s.now()
		a.PublishedAt = &now
	case !req.Published:
		a.PublishedAt = nil
	}
	a.Published = req.Published
}

func toAdminArticle(a *model.Article) (*dto.AdminArticleDTO, error) {
	var resp dto.AdminArticleDTO
	if err := copier.Copy(&resp, a); err != nil {
		return nil, fmt.Errorf("copy article: %w", err)
	}
	return &resp, nil
}
