package seed

import (
	"context"
	"testing"

	"github.com/lshigami/mybeing/database/dbtest"
	"github.com/lshigami/mybeing/internal/repository"
	"github.com/lshigami/mybeing/internal/scoring"
	"github.com/lshigami/mybeing/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogBandsPartitionTheirRange(t *testing.T) {
	for _, req := range Catalog() {
		questions := make([]scoring.Question, 0, len(req.Questions))
		for _, q := range req.Questions {
			questions = append(questions, scoring.Question{ID: q.ID, Type: scoring.QuestionType(q.Type), Options: q.Options})
		}
		bands := make([]scoring.Band, 0, len(req.Bands))
		for _, b := range req.Bands {
			bands = append(bands, scoring.Band{Min: b.Min, Max: b.Max, Label: b.Label})
		}
		assert.Empty(t, scoring.ValidateBands(questions, bands), req.Slug)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	admin := service.NewAdminQuizService(repository.NewQuizRepository(dbtest.New(t)))

	n, err := Run(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = Run(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	quizzes, err := admin.ListQuizzes(ctx)
	require.NoError(t, err)
	assert.Len(t, quizzes, 2)
}
