package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mybeing/internal/apperror"
	"github.com/lshigami/mybeing/internal/auth"
	"github.com/lshigami/mybeing/internal/dto"
	"github.com/rs/zerolog/log"
)

const sessionKey = "admin_session"

// RequireAdmin rejects requests without a valid owner session token.
func RequireAdmin(a *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := a.Verify(auth.TokenFromRequest(c.Request))
		if err != nil {
			e, ok := apperror.As(err)
			if !ok {
				e = apperror.New(apperror.CodeUnauthorized, "unauthorized")
			}
			log.Warn().Str("path", c.FullPath()).Str("code", string(e.Code)).Msg("Admin request rejected")
			status := e.Status()
			if status == http.StatusInternalServerError {
				status = http.StatusUnauthorized
			}
			c.AbortWithStatusJSON(status, dto.ErrorResponse{Code: string(e.Code), Error: e.Message})
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

// AdminSession returns the session stored by RequireAdmin.
func AdminSession(c *gin.Context) (*auth.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*auth.Session)
	return s, ok
}
