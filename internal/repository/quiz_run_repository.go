package repository

import (
	"context"
	"time"

	"github.com/lshigami/mybeing/internal/model"
	"gorm.io/gorm"
)

type QuizRunRepository interface {
	Create(ctx context.Context, run *model.QuizRun) error
	FindByPublicID(ctx context.Context, quizID uint, publicID string) (*model.QuizRun, error)
	AttachEmail(ctx context.Context, id uint, email string, at time.Time) error
	StatsByQuiz(ctx context.Context) ([]QuizRunStats, error)
	BandCounts(ctx context.Context) ([]BandCount, error)
}

// QuizRunStats and BandCount are grouped by quiz id and labelled with the live slug.
// Runs of deleted quizzes are left out.
type QuizRunStats struct {
	QuizSlug     string
	Runs         int64
	AverageScore float64
	Emails       int64
}

type BandCount struct {
	QuizSlug  string
	BandLabel string
	Count     int64
}

type quizRunRepository struct {
	db *gorm.DB
}

func NewQuizRunRepository(db *gorm.DB) QuizRunRepository {
	return &quizRunRepository{db: db}
}

func (r *quizRunRepository) Create(ctx context.Context, run *model.QuizRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *quizRunRepository) FindByPublicID(ctx context.Context, quizID uint, publicID string) (*model.QuizRun, error) {
	var run model.QuizRun
	err := r.db.WithContext(ctx).Where("quiz_id = ? AND public_id = ?", quizID, publicID).First(&run).Error
	return &run, err
}

func (r *quizRunRepository) AttachEmail(ctx context.Context, id uint, email string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.QuizRun{}).Where("id = ?", id).Updates(map[string]interface{}{
		"email":             email,
		"email_attached_at": at,
	}).Error
}

const liveQuizJoin = "JOIN quizzes ON quizzes.id = quiz_runs.quiz_id AND quizzes.deleted_at IS NULL"

func (r *quizRunRepository) StatsByQuiz(ctx context.Context) ([]QuizRunStats, error) {
	var stats []QuizRunStats
	err := r.db.WithContext(ctx).Model(&model.QuizRun{}).
		Joins(liveQuizJoin).
		Select("quizzes.slug AS quiz_slug, COUNT(quiz_runs.id) AS runs, AVG(quiz_runs.score) AS average_score, COUNT(quiz_runs.email) AS emails").
		Group("quizzes.id, quizzes.slug").
		Order("quizzes.slug").
		Scan(&stats).Error
	return stats, err
}

func (r *quizRunRepository) BandCounts(ctx context.Context) ([]BandCount, error) {
	var counts []BandCount
	err := r.db.WithContext(ctx).Model(&model.QuizRun{}).
		Joins(liveQuizJoin).
		Select("quizzes.slug AS quiz_slug, quiz_runs.band_label, COUNT(quiz_runs.id) AS count").
		Group("quizzes.id, quizzes.slug, quiz_runs.band_label").
		Order("quizzes.slug, quiz_runs.band_label").
		Scan(&counts).Error
	return counts, err
}
