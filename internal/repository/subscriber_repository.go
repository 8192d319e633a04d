package repository

import (
	"context"

	"github.com/lshigami/mybeing/internal/model"
	"gorm.io/gorm"
)

type SubscriberRepository interface {
	Create(ctx context.Context, s *model.Subscriber) error
	Update(ctx context.Context, s *model.Subscriber) error
	FindByEmail(ctx context.Context, email string) (*model.Subscriber, error)
	FindByToken(ctx context.Context, token string) (*model.Subscriber, error)
	Counts(ctx context.Context) (active, unsubscribed int64, err error)
}

type subscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(ctx context.Context, s *model.Subscriber) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *subscriberRepository) Update(ctx context.Context, s *model.Subscriber) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *subscriberRepository) FindByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	var s model.Subscriber
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&s).Error
	return &s, err
}

func (r *subscriberRepository) FindByToken(ctx context.Context, token string) (*model.Subscriber, error) {
	var s model.Subscriber
	err := r.db.WithContext(ctx).Where("unsubscribe_token = ?", token).First(&s).Error
	return &s, err
}

func (r *subscriberRepository) Counts(ctx context.Context) (int64, int64, error) {
	var active, unsubscribed int64
	db := r.db.WithContext(ctx).Model(&model.Subscriber{})
	if err := db.Where("unsubscribed_at IS NULL").Count(&active).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Subscriber{}).Where("unsubscribed_at IS NOT NULL").Count(&unsubscribed).Error; err != nil {
		return 0, 0, err
	}
	return active, unsubscribed, nil
}
