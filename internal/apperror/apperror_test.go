package apperror

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeBandsInvalid, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeInvalidCredentials, http.StatusUnauthorized},
		{CodeAdminNotConfigured, http.StatusServiceUnavailable},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, New(c.code, "x").Status(), string(c.code))
	}
}

func TestAsUnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("loading quiz: %w", NotFound("quiz not found"))
	e, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, CodeNotFound, e.Code)
	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(fmt.Errorf("plain"), CodeNotFound))
}
