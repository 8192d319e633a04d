package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mybeing/internal/apperror"
	"github.com/lshigami/mybeing/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	RespondError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRespondErrorClassified(t *testing.T) {
	code, body := respond(t, apperror.New(apperror.CodeBandsInvalid, "bad bands", "gap 21-24"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "BANDS_INVALID", body.Code)
	assert.Equal(t, []string{"gap 21-24"}, body.Details)
}

func TestRespondErrorHidesInternalMessage(t *testing.T) {
	code, body := respond(t, errors.New("pq: connection reset"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.NotContains(t, body.Error, "pq")
}

func TestRespondBindError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	type req struct {
		Email string `json:"email" binding:"required,email"`
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	var r req
	err := c.ShouldBindJSON(&r)
	require.Error(t, err)
	RespondBindError(c, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}
