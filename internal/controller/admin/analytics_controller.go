package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mybeing/internal/controller"
	"github.com/lshigami/mybeing/internal/service"
)

type AnalyticsController struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsController(analyticsService service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// Summary godoc
// @Summary (Admin) Quiz and newsletter analytics
// @Description Runs per quiz, average score, band distribution and subscriber counts.
// @Tags Admin - Analytics
// @Produce json
// @Security AdminToken
// @Success 200 {object} dto.AnalyticsResponse
// @Router /admin/analytics [get]
func (c *AnalyticsController) Summary(ctx *gin.Context) {
	summary, err := c.analyticsService.Summary(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}
