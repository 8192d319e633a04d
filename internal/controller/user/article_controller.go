package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mybeing/internal/controller"
	"github.com/lshigami/mybeing/internal/service"
)

type ArticleController struct {
	articleService service.ArticleService
}

func NewArticleController(articleService service.ArticleService) *ArticleController {
	return &ArticleController{articleService: articleService}
}

// ListArticles godoc
// @Summary List published articles
// @Tags Articles
// @Produce json
// @Success 200 {array} dto.ArticleSummaryDTO
// @Router /articles [get]
func (c *ArticleController) ListArticles(ctx *gin.Context) {
	articles, err := c.articleService.ListPublished(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, articles)
}

// GetArticle godoc
// @Summary Get a published article
// @Tags Articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} dto.ArticleDTO
// @Failure 404 {object} dto.ErrorResponse "Article not found"
// @Router /articles/{slug} [get]
func (c *ArticleController) GetArticle(ctx *gin.Context) {
	article, err := c.articleService.GetPublished(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, article)
}
