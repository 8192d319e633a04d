package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mybeing/internal/controller"
	"github.com/lshigami/mybeing/internal/dto"
	"github.com/lshigami/mybeing/internal/service"
)

type ArticleController struct {
	articleService service.ArticleService
}

func NewArticleController(articleService service.ArticleService) *ArticleController {
	return &ArticleController{articleService: articleService}
}

// ListArticles godoc
// @Summary (Admin) List all articles, drafts included
// @Tags Admin - Articles
// @Produce json
// @Security AdminToken
// @Success 200 {array} dto.AdminArticleDTO
// @Router /admin/articles [get]
func (c *ArticleController) ListArticles(ctx *gin.Context) {
	articles, err := c.articleService.ListAll(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, articles)
}

// CreateArticle godoc
// @Summary (Admin) Create an article
// @Tags Admin - Articles
// @Accept json
// @Produce json
// @Security AdminToken
// @Param article body dto.ArticleUpsertRequest true "Article"
// @Success 201 {object} dto.AdminArticleDTO
// @Failure 409 {object} dto.ErrorResponse "Slug already used"
// @Router /admin/articles [post]
func (c *ArticleController) CreateArticle(ctx *gin.Context) {
	var req dto.ArticleUpsertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	article, err := c.articleService.CreateArticle(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, article)
}

// UpdateArticle godoc
// @Summary (Admin) Update an article
// @Tags Admin - Articles
// @Accept json
// @Produce json
// @Security AdminToken
// @Param slug path string true "Article slug"
// @Param article body dto.ArticleUpsertRequest true "Article"
// @Success 200 {object} dto.AdminArticleDTO
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Router /admin/articles/{slug} [put]
func (c *ArticleController) UpdateArticle(ctx *gin.Context) {
	var req dto.ArticleUpsertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	article, err := c.articleService.UpdateArticle(ctx.Request.Context(), ctx.Param("slug"), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, article)
}

// DeleteArticle godoc
// @Summary (Admin) Delete an article
// @Tags Admin - Articles
// @Security AdminToken
// @Param slug path string true "Article slug"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Router /admin/articles/{slug} [delete]
func (c *ArticleController) DeleteArticle(ctx *gin.Context) {
	if err := c.articleService.DeleteArticle(ctx.Request.Context(), ctx.Param("slug")); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
