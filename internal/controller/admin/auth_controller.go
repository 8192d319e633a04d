package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mybeing/internal/auth"
	"github.com/lshigami/mybeing/internal/controller"
	"github.com/lshigami/mybeing/internal/dto"
	"github.com/lshigami/mybeing/internal/middleware"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authenticator *auth.Authenticator
}

func NewAuthController(authenticator *auth.Authenticator) *AuthController {
	return &AuthController{authenticator: authenticator}
}

func toSessionResponse(s *auth.Session) dto.SessionResponse {
	return dto.SessionResponse{
		Email:       s.Email,
		Role:        s.Role,
		Permissions: s.Permissions,
		ExpiresAt:   s.ExpiresAt,
	}
}

// Login godoc
// @Summary (Admin) Log in as the site owner
// @Description Checks the owner credentials and sets the admin_token cookie. The token is also returned for Bearer use.
// @Tags Admin - Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Owner credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 429 {object} dto.ErrorResponse "Too many attempts"
// @Failure 503 {object} dto.ErrorResponse "Admin access not configured"
// @Router /admin/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	session, token, err := c.authenticator.Authenticate(req.Email, req.Password, req.SecretKey)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	http.SetCookie(ctx.Writer, c.authenticator.Cookie(token, session.ExpiresAt))
	log.Info().Time("expires_at", session.ExpiresAt).Msg("Admin logged in")
	ctx.JSON(http.StatusOK, dto.LoginResponse{Session: toSessionResponse(session), Token: token})
}

// Logout godoc
// @Summary (Admin) Log out
// @Description Clears the admin_token cookie.
// @Tags Admin - Auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /admin/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	http.SetCookie(ctx.Writer, c.authenticator.ClearCookie())
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}

// Me godoc
// @Summary (Admin) Current session
// @Tags Admin - Auth
// @Produce json
// @Security AdminToken
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} dto.ErrorResponse "Not logged in"
// @Router /admin/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	session, ok := middleware.AdminSession(ctx)
	if !ok {
		var err error
		session, err = c.authenticator.Verify(auth.TokenFromRequest(ctx.Request))
		if err != nil {
			controller.RespondError(ctx, err)
			return
		}
	}
	ctx.JSON(http.StatusOK, toSessionResponse(session))
}
