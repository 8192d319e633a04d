package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mybeing/internal/controller"
	"github.com/lshigami/mybeing/internal/dto"
	"github.com/lshigami/mybeing/internal/service"
)

type QuizController struct {
	adminQuizService service.AdminQuizService
}

func NewQuizController(adminQuizService service.AdminQuizService) *QuizController {
	return &QuizController{adminQuizService: adminQuizService}
}

// ListQuizzes godoc
// @Summary (Admin) List quizzes with questions and bands
// @Tags Admin - Quizzes
// @Produce json
// @Security AdminToken
// @Success 200 {array} dto.QuizDTO
// @Failure 401 {object} dto.ErrorResponse "Not logged in"
// @Router /admin/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	quizzes, err := c.adminQuizService.ListQuizzes(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// CreateQuiz godoc
// @Summary (Admin) Create a quiz
// @Description Bands must cover every attainable score exactly once, otherwise BANDS_INVALID is returned.
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Security AdminToken
// @Param quiz body dto.QuizUpsertRequest true "Quiz definition"
// @Success 201 {object} dto.QuizDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz or bands"
// @Failure 409 {object} dto.ErrorResponse "Slug already used"
// @Router /admin/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req dto.QuizUpsertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	quiz, err := c.adminQuizService.CreateQuiz(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, quiz)
}

// UpdateQuiz godoc
// @Summary (Admin) Replace a quiz
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Security AdminToken
// @Param slug path string true "Quiz slug"
// @Param quiz body dto.QuizUpsertRequest true "Quiz definition"
// @Success 200 {object} dto.QuizDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz or bands"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /admin/quizzes/{slug} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	var req dto.QuizUpsertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	quiz, err := c.adminQuizService.UpdateQuiz(ctx.Request.Context(), ctx.Param("slug"), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// DeleteQuiz godoc
// @Summary (Admin) Delete a quiz
// @Tags Admin - Quizzes
// @Security AdminToken
// @Param slug path string true "Quiz slug"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /admin/quizzes/{slug} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	if err := c.adminQuizService.DeleteQuiz(ctx.Request.Context(), ctx.Param("slug")); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CheckBands godoc
// @Summary (Admin) Check a stored quiz's band coverage
// @Tags Admin - Quizzes
// @Produce json
// @Security AdminToken
// @Param slug path string true "Quiz slug"
// @Success 200 {object} dto.BandCheckResponse
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /admin/quizzes/{slug}/band-check [get]
func (c *QuizController) CheckBands(ctx *gin.Context) {
	check, err := c.adminQuizService.CheckBands(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, check)
}
