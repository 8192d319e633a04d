// Package controller holds the helpers shared by the admin and user controllers.
package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/mybeing/internal/apperror"
	"github.com/lshigami/mybeing/internal/dto"
	"github.com/rs/zerolog/log"
)

// RespondError writes err as a dto.ErrorResponse. Classified errors keep their status;
// anything else is logged and reported as a 500 without its message.
func RespondError(c *gin.Context, err error) {
	e, ok := apperror.As(err)
	if !ok {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled service error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:  string(apperror.CodeInternal),
			Error: "Internal server error",
		})
		return
	}

	switch e.Code {
	case apperror.CodeInvalidCredentials, apperror.CodeUnauthorized, apperror.CodeAdminNotConfigured:
		log.Warn().Str("path", c.FullPath()).Str("code", string(e.Code)).Msg("Request rejected")
	default:
		log.Debug().Str("path", c.FullPath()).Str("code", string(e.Code)).Str("message", e.Message).Msg("Request failed")
	}
	c.AbortWithStatusJSON(e.Status(), dto.ErrorResponse{
		Code:    string(e.Code),
		Error:   e.Message,
		Details: e.Details,
	})
}

// RespondBindError reports a request body that failed to bind or validate.
func RespondBindError(c *gin.Context, err error) {
	log.Warn().Err(err).Str("path", c.FullPath()).Msg("Failed to bind request")
	RespondError(c, apperror.Validation("Invalid request body", bindDetails(err)...))
}

func bindDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			details = append(details, fmt.Sprintf("%s: failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		details = append(details, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
	}
	return details
}
