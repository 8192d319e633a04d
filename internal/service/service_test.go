package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lshigami/mybeing/database/dbtest"
	"github.com/lshigami/mybeing/internal/apperror"
	"github.com/lshigami/mybeing/internal/dto"
	"github.com/lshigami/mybeing/internal/repository"
	"github.com/lshigami/mybeing/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type services struct {
	quiz       QuizService
	admin      AdminQuizService
	newsletter NewsletterService
	articles   ArticleService
	analytics  AnalyticsService
}

func newServices(t *testing.T) services {
	db := dbtest.New(t)
	quizRepo := repository.NewQuizRepository(db)
	runRepo := repository.NewQuizRunRepository(db)
	subRepo := repository.NewSubscriberRepository(db)
	return services{
		quiz:       NewQuizService(quizRepo, runRepo),
		admin:      NewAdminQuizService(quizRepo),
		newsletter: NewNewsletterService(subRepo),
		articles:   NewArticleService(repository.NewArticleRepository(db)),
		analytics:  NewAnalyticsService(runRepo, subRepo),
	}
}

func dissonanceRequest() dto.QuizUpsertRequest {
	req := dto.QuizUpsertRequest{Slug: "cognitive-dissonance", Title: "Cognitive dissonance"}
	for i := 1; i <= 10; i++ {
		req.Questions = append(req.Questions, dto.QuestionInput{ID: fmt.Sprintf("q%d", i), Text: "Statement", Type: "likert"})
	}
	req.Bands = []dto.BandInput{
		{Min: 10, Max: 20, Label: "Low dissonance"},
		{Min: 21, Max: 35, Label: "Moderate dissonance"},
		{Min: 36, Max: 50, Label: "High dissonance"},
	}
	return req
}

func uniform(v float64) scoring.Answers {
	a := scoring.Answers{}
	for i := 1; i <= 10; i++ {
		a[fmt.Sprintf("q%d", i)] = v
	}
	return a
}

func TestSubmitQuizScoresAndStoresRun(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	_, err := s.admin.CreateQuiz(ctx, dissonanceRequest())
	require.NoError(t, err)

	resp, err := s.quiz.SubmitQuiz(ctx, "cognitive-dissonance", uniform(3))
	require.NoError(t, err)
	assert.Equal(t, 30, resp.Score)
	assert.Equal(t, "Moderate dissonance", resp.Band.Label)
	assert.Equal(t, 10, resp.MinScore)
	assert.Equal(t, 50, resp.MaxScore)
	assert.NotEmpty(t, resp.RunID)

	resp, err = s.quiz.SubmitQuiz(ctx, "cognitive-dissonance", uniform(1))
	require.NoError(t, err)
	assert.Equal(t, "Low dissonance", resp.Band.Label)

	attached, err := s.quiz.AttachEmail(ctx, "cognitive-dissonance", resp.RunID, " Reader@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", attached.Email)

	summary, err := s.analytics.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, summary.Quizzes, 1)
	assert.Equal(t, int64(2), summary.Quizzes[0].Runs)
	assert.Equal(t, int64(1), summary.Quizzes[0].Emails)
	assert.InDelta(t, 20.0, summary.Quizzes[0].AverageScore, 0.001)
	assert.Equal(t, map[string]int64{"Moderate dissonance": 1, "Low dissonance": 1}, summary.Quizzes[0].Bands)
}

func TestSubmitQuizErrors(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	_, err := s.admin.CreateQuiz(ctx, dissonanceRequest())
	require.NoError(t, err)

	_, err = s.quiz.SubmitQuiz(ctx, "missing", uniform(3))
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))

	_, err = s.quiz.SubmitQuiz(ctx, "cognitive-dissonance", uniform(9))
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))

	_, err = s.quiz.AttachEmail(ctx, "cognitive-dissonance", "not-a-uuid", "a@example.com")
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))
}

func TestAttachEmailAfterRename(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	_, err := s.admin.CreateQuiz(ctx, dissonanceRequest())
	require.NoError(t, err)
	resp, err := s.quiz.SubmitQuiz(ctx, "cognitive-dissonance", uniform(3))
	require.NoError(t, err)

	req := dissonanceRequest()
	req.Slug = "dissonance"
	_, err = s.admin.UpdateQuiz(ctx, "cognitive-dissonance", req)
	require.NoError(t, err)

	attached, err := s.quiz.AttachEmail(ctx, "dissonance", resp.RunID, "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, resp.RunID, attached.RunID)

	_, err = s.quiz.AttachEmail(ctx, "cognitive-dissonance", resp.RunID, "reader@example.com")
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))

	summary, err := s.analytics.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, summary.Quizzes, 1)
	assert.Equal(t, "dissonance", summary.Quizzes[0].Slug)
	assert.Equal(t, int64(1), summary.Quizzes[0].Runs)
	assert.Equal(t, int64(1), summary.Quizzes[0].Emails)
}

func TestGetQuizKeepsOrder(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	_, err := s.admin.CreateQuiz(ctx, dissonanceRequest())
	require.NoError(t, err)

	q, err := s.quiz.GetQuiz(ctx, "cognitive-dissonance")
	require.NoError(t, err)
	require.Len(t, q.Questions, 10)
	assert.Equal(t, "q1", q.Questions[0].ID)
	assert.Equal(t, "q10", q.Questions[9].ID)
	require.Len(t, q.Bands, 3)
	assert.Equal(t, "High dissonance", q.Bands[2].Label)

	list, err := s.quiz.ListQuizzes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 10, list[0].QuestionCount)
}

func TestAdminQuizRejectsBadBands(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	req := dissonanceRequest()
	req.Bands[1].Min = 25 // leaves 21..24 uncovered
	_, err := s.admin.CreateQuiz(ctx, req)
	require.Error(t, err)
	e, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBandsInvalid, e.Code)
	assert.NotEmpty(t, e.Details)

	req = dissonanceRequest()
	req.Questions[0].Type = "multiple_choice"
	_, err = s.admin.CreateQuiz(ctx, req)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))

	req = dissonanceRequest()
	req.Questions[1].ID = "q1"
	_, err = s.admin.CreateQuiz(ctx, req)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))

	req = dissonanceRequest()
	req.Questions[0] = dto.QuestionInput{ID: "q1", Text: "Pick one", Type: "multiple_choice", Options: []string{"often", "   "}}
	_, err = s.admin.CreateQuiz(ctx, req)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestAdminQuizTrimsOptions(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	req := dissonanceRequest()
	req.Questions[0] = dto.QuestionInput{ID: "q1", Text: "Pick one", Type: "multiple_choice", Options: []string{" often ", "rarely"}}
	// One likert becomes a 1-point choice, so the domain is 10..46.
	req.Bands[2].Max = 46
	created, err := s.admin.CreateQuiz(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"often", "rarely"}, created.Questions[0].Options)

	answers := uniform(1)
	answers["q1"] = "often"
	resp, err := s.quiz.SubmitQuiz(ctx, "cognitive-dissonance", answers)
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Score)
	assert.Equal(t, "Low dissonance", resp.Band.Label)
}

func TestAdminQuizLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	_, err := s.admin.CreateQuiz(ctx, dissonanceRequest())
	require.NoError(t, err)

	_, err = s.admin.CreateQuiz(ctx, dissonanceRequest())
	assert.True(t, apperror.HasCode(err, apperror.CodeConflict))

	req := dissonanceRequest()
	req.Title = "Dissonance, revised"
	req.Bands = []dto.BandInput{{Min: 10, Max: 30, Label: "Lower"}, {Min: 31, Max: 50, Label: "Higher"}}
	updated, err := s.admin.UpdateQuiz(ctx, "cognitive-dissonance", req)
	require.NoError(t, err)
	assert.Equal(t, "Dissonance, revised", updated.Title)
	assert.Len(t, updated.Bands, 2)

	check, err := s.admin.CheckBands(ctx, "cognitive-dissonance")
	require.NoError(t, err)
	assert.True(t, check.Valid)
	assert.Empty(t, check.Issues)

	all, err := s.admin.CheckAllBands(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.admin.DeleteQuiz(ctx, "cognitive-dissonance"))
	assert.True(t, apperror.HasCode(s.admin.DeleteQuiz(ctx, "cognitive-dissonance"), apperror.CodeNotFound))
	_, err = s.quiz.GetQuiz(ctx, "cognitive-dissonance")
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))

	_, err = s.admin.CreateQuiz(ctx, dissonanceRequest())
	assert.NoError(t, err)
}

func TestNewsletterIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := repository.NewSubscriberRepository(db)
	ids := []string{"8c1d6c1e-2f4b-4d8e-9a57-0e1b2c3d4e5f", "5f0a9b7e-1c2d-4e3f-8a9b-0c1d2e3f4a5b"}
	svc := &newsletterService{repo: repo, now: time.Now, newID: func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}}

	first, err := svc.Subscribe(ctx, dto.SubscribeRequest{Email: "Reader@Example.com"})
	require.NoError(t, err)
	assert.False(t, first.AlreadySubscribed)

	second, err := svc.Subscribe(ctx, dto.SubscribeRequest{Email: "reader@example.com "})
	require.NoError(t, err)
	assert.True(t, second.AlreadySubscribed)

	active, _, err := repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), active)

	require.NoError(t, svc.Unsubscribe(ctx, "8c1d6c1e-2f4b-4d8e-9a57-0e1b2c3d4e5f"))
	require.NoError(t, svc.Unsubscribe(ctx, "8c1d6c1e-2f4b-4d8e-9a57-0e1b2c3d4e5f"))
	assert.True(t, apperror.HasCode(svc.Unsubscribe(ctx, "00000000-0000-0000-0000-000000000000"), apperror.CodeNotFound))

	again, err := svc.Subscribe(ctx, dto.SubscribeRequest{Email: "reader@example.com", Source: "quiz"})
	require.NoError(t, err)
	assert.False(t, again.AlreadySubscribed)

	// The token from the first subscription still works after re-subscribing.
	sub, err := repo.FindByEmail(ctx, "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, "8c1d6c1e-2f4b-4d8e-9a57-0e1b2c3d4e5f", sub.UnsubscribeToken)
	assert.Equal(t, "quiz", sub.Source)
	require.NoError(t, svc.Unsubscribe(ctx, "8c1d6c1e-2f4b-4d8e-9a57-0e1b2c3d4e5f"))
	active, _, err = repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), active)
}

func TestArticlePublishing(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	draft, err := s.articles.CreateArticle(ctx, dto.ArticleUpsertRequest{Slug: "on-burnout", Title: "On burnout", Body: "..."})
	require.NoError(t, err)
	assert.Nil(t, draft.PublishedAt)

	_, err = s.articles.GetPublished(ctx, "on-burnout")
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))

	live, err := s.articles.UpdateArticle(ctx, "on-burnout", dto.ArticleUpsertRequest{Slug: "on-burnout", Title: "On burnout", Body: "...", Published: true})
	require.NoError(t, err)
	require.NotNil(t, live.PublishedAt)

	list, err := s.articles.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "on-burnout", list[0].Slug)

	_, err = s.articles.CreateArticle(ctx, dto.ArticleUpsertRequest{Slug: "on-burnout", Title: "Dup", Body: "..."})
	assert.True(t, apperror.HasCode(err, apperror.CodeConflict))

	require.NoError(t, s.articles.DeleteArticle(ctx, "on-burnout"))
	all, err := s.articles.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
