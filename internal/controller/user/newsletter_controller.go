package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mybeing/internal/controller"
	"github.com/lshigami/mybeing/internal/dto"
	"github.com/lshigami/mybeing/internal/middleware"
	"github.com/lshigami/mybeing/internal/ratelimit"
	"github.com/lshigami/mybeing/internal/service"
)

type NewsletterController struct {
	newsletterService service.NewsletterService
	limiters          *ratelimit.Limiters
}

func NewNewsletterController(newsletterService service.NewsletterService, limiters *ratelimit.Limiters) *NewsletterController {
	return &NewsletterController{newsletterService: newsletterService, limiters: limiters}
}

// Subscribe godoc
// @Summary Subscribe to the newsletter
// @Description Idempotent: subscribing an address that is already active succeeds.
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param subscription body dto.SubscribeRequest true "Email and optional source"
// @Success 200 {object} dto.SubscribeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid email"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Router /newsletter/subscribe [post]
func (c *NewsletterController) Subscribe(ctx *gin.Context) {
	var req dto.SubscribeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	if !middleware.Allow(ctx, c.limiters.NewsletterPerEmail, ratelimit.EmailKey(req.Email)) {
		return
	}
	resp, err := c.newsletterService.Subscribe(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Unsubscribe godoc
// @Summary Unsubscribe from the newsletter
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param token body dto.UnsubscribeRequest true "Unsubscribe token"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown token"
// @Router /newsletter/unsubscribe [post]
func (c *NewsletterController) Unsubscribe(ctx *gin.Context) {
	var req dto.UnsubscribeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	if err := c.newsletterService.Unsubscribe(ctx.Request.Context(), req.Token); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "unsubscribed"})
}
