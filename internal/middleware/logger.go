// Package middleware holds the gin middleware shared by every route group.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RequestLogger writes one zerolog event per request in place of gin's text logger.
func RequestLogger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		event := log.Info()
		if param.StatusCode >= 500 {
			event = log.Error()
		} else if param.StatusCode >= 400 {
			event = log.Warn()
		}
		event.
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	})
}
