package repository

import (
	"context"

	"github.com/lshigami/mybeing/internal/model"
	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(ctx context.Context, a *model.Article) error
	Update(ctx context.Context, a *model.Article) error
	FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.Article, error)
	FindAll(ctx context.Context, publishedOnly bool) ([]model.Article, error)
	Delete(ctx context.Context, slug string) error
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, a *model.Article) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("slug = ? AND deleted_at IS NOT NULL", a.Slug).Delete(&model.Article{}).Error; err != nil {
			return err
		}
		return tx.Create(a).Error
	})
}

func (r *articleRepository) Update(ctx context.Context, a *model.Article) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *articleRepository) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.Article, error) {
	var a model.Article
	q := r.db.WithContext(ctx).Where("slug = ?", slug)
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	err := q.First(&a).Error
	return &a, err
}

func (r *articleRepository) FindAll(ctx context.Context, publishedOnly bool) ([]model.Article, error) {
	var articles []model.Article
	q := r.db.WithContext(ctx)
	if publishedOnly {
		q = q.Where("published = ?", true).Order("published_at DESC")
	} else {
		q = q.Order("updated_at DESC")
	}
	err := q.Order("id DESC").Find(&articles).Error
	return articles, err
}

func (r *articleRepository) Delete(ctx context.Context, slug string) error {
	res := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&model.Article{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
