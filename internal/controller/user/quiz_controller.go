package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mybeing/internal/controller"
	"github.com/lshigami/mybeing/internal/dto"
	"github.com/lshigami/mybeing/internal/middleware"
	"github.com/lshigami/mybeing/internal/ratelimit"
	"github.com/lshigami/mybeing/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	quizService service.QuizService
	limiters    *ratelimit.Limiters
}

func NewQuizController(quizService service.QuizService, limiters *ratelimit.Limiters) *QuizController {
	return &QuizController{quizService: quizService, limiters: limiters}
}

// ListQuizzes godoc
// @Summary List quizzes
// @Description Get every published quiz with its question count.
// @Tags Quizzes
// @Produce json
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	quizzes, err := c.quizService.ListQuizzes(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// GetQuiz godoc
// @Summary Get a quiz
// @Description Get a quiz with its questions, result bands and attainable score range.
// @Tags Quizzes
// @Produce json
// @Param slug path string true "Quiz slug"
// @Success 200 {object} dto.QuizDTO
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{slug} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.quizService.GetQuiz(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// SubmitQuiz godoc
// @Summary Submit quiz answers
// @Description Scores the answers, finds the matching result band and stores the run.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param slug path string true "Quiz slug"
// @Param answers body dto.SubmitQuizRequest true "Answers keyed by question id"
// @Success 200 {object} dto.SubmitQuizResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid answers"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 429 {object} dto.ErrorResponse "Too many submissions"
// @Router /quizzes/{slug}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	var req dto.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.quizService.SubmitQuiz(ctx.Request.Context(), ctx.Param("slug"), req.Answers)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AttachEmail godoc
// @Summary Email a quiz result
// @Description Attaches an email address to a finished quiz run.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param slug path string true "Quiz slug"
// @Param run_id path string true "Run id returned by submit"
// @Param email body dto.AttachEmailRequest true "Email address"
// @Success 200 {object} dto.AttachEmailResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid email"
// @Failure 404 {object} dto.ErrorResponse "Run not found"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Router /quizzes/{slug}/runs/{run_id}/email [post]
func (c *QuizController) AttachEmail(ctx *gin.Context) {
	var req dto.AttachEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	if !middleware.Allow(ctx, c.limiters.QuizEmailPerEmail, ratelimit.EmailKey(req.Email)) {
		return
	}
	resp, err := c.quizService.AttachEmail(ctx.Request.Context(), ctx.Param("slug"), ctx.Param("run_id"), req.Email)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	log.Info().Str("run_id", resp.RunID).Msg("Email attached to quiz run")
	ctx.JSON(http.StatusOK, resp)
}
