package repository

import (
	"context"

	"github.com/lshigami/mybeing/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(ctx context.Context, quiz *model.Quiz) error
	FindBySlug(ctx context.Context, slug string) (*model.Quiz, error)
	FindAll(ctx context.Context, withDetails bool) ([]model.Quiz, error)
	FindAllWithQuestionCount(ctx context.Context) ([]QuizWithCount, error)
	// Replace overwrites the quiz fields, questions and bands of the quiz with id.
	Replace(ctx context.Context, id uint, quiz *model.Quiz) error
	Delete(ctx context.Context, slug string) error
}

type QuizWithCount struct {
	model.Quiz
	QuestionCount int
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func orderedDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.position ASC") }).
		Preload("Bands", func(db *gorm.DB) *gorm.DB { return db.Order("bands.position ASC") })
}

func (r *quizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A soft-deleted quiz still holds the slug's unique index entry.
		if err := purgeDeletedQuiz(tx, quiz.Slug); err != nil {
			return err
		}
		return tx.Create(quiz).Error
	})
}

func (r *quizRepository) FindBySlug(ctx context.Context, slug string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := orderedDetails(r.db.WithContext(ctx)).Where("slug = ?", slug).First(&quiz).Error
	return &quiz, err
}

func (r *quizRepository) FindAll(ctx context.Context, withDetails bool) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	q := r.db.WithContext(ctx)
	if withDetails {
		q = orderedDetails(q)
	}
	err := q.Order("quizzes.created_at ASC, quizzes.id ASC").Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) FindAllWithQuestionCount(ctx context.Context) ([]QuizWithCount, error) {
	var results []QuizWithCount
	err := r.db.WithContext(ctx).Model(&model.Quiz{}).
		Select("quizzes.*, (SELECT COUNT(*) FROM questions WHERE questions.quiz_id = quizzes.id) as question_count").
		Where("quizzes.deleted_at IS NULL").
		Order("quizzes.created_at ASC, quizzes.id ASC").
		Scan(&results).Error
	return results, err
}

func (r *quizRepository) Replace(ctx context.Context, id uint, quiz *model.Quiz) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Band{}).Error; err != nil {
			return err
		}
		if quiz.Slug != "" {
			if err := purgeDeletedQuiz(tx, quiz.Slug); err != nil {
				return err
			}
		}
		res := tx.Model(&model.Quiz{}).Where("id = ?", id).Updates(map[string]interface{}{
			"slug":        quiz.Slug,
			"title":       quiz.Title,
			"description": quiz.Description,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// Runs keep the slug they were taken under as a label; lookups go by quiz_id.
		if err := tx.Model(&model.QuizRun{}).Where("quiz_id = ?", id).Update("quiz_slug", quiz.Slug).Error; err != nil {
			return err
		}
		for i := range quiz.Questions {
			quiz.Questions[i].QuizID = id
		}
		for i := range quiz.Bands {
			quiz.Bands[i].QuizID = id
		}
		if len(quiz.Questions) > 0 {
			if err := tx.Create(&quiz.Questions).Error; err != nil {
				return err
			}
		}
		if len(quiz.Bands) > 0 {
			if err := tx.Create(&quiz.Bands).Error; err != nil {
				return err
			}
		}
		quiz.ID = id
		return nil
	})
}

func (r *quizRepository) Delete(ctx context.Context, slug string) error {
	res := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&model.Quiz{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func purgeDeletedQuiz(tx *gorm.DB, slug string) error {
	var stale model.Quiz
	err := tx.Unscoped().Where("slug = ? AND deleted_at IS NOT NULL", slug).First(&stale).Error
	if err == gorm.ErrRecordNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if err := tx.Where("quiz_id = ?", stale.ID).Delete(&model.Question{}).Error; err != nil {
		return err
	}
	if err := tx.Where("quiz_id = ?", stale.ID).Delete(&model.Band{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&stale).Error
}
