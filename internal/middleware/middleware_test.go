package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/lshigami/mybeing/config"
	"github.com/lshigami/mybeing/internal/auth"
	"github.com/lshigami/mybeing/internal/dto"
	"github.com/lshigami/mybeing/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }

func TestRateLimitReturns429WithHeaders(t *testing.T) {
	l := ratelimit.New(ratelimit.Config{Name: "api", Max: 2, Window: time.Minute}, ratelimit.NewMemoryStore())
	r := gin.New()
	r.POST("/submit", RateLimit(l, ByIP), okHandler)

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set("X-Forwarded-For", "198.51.100.4")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		w := do()
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("RateLimit-Limit"))
	}

	w := do()
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMITED", body.Code)
	require.NotNil(t, body.ResetAt)
	assert.True(t, body.ResetAt.After(time.Now()))
}

func TestRequireAdmin(t *testing.T) {
	a := auth.New(config.Admin{OwnerEmail: "owner@example.com", Password: "pw", JWTSecret: "s", TokenTTL: time.Hour})
	_, token, err := a.Authenticate("owner@example.com", "pw", "")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/admin/me", RequireAdmin(a), func(c *gin.Context) {
		s, ok := AdminSession(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": s.Email})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "owner@example.com")

	unconfigured := auth.New(config.Admin{})
	r2 := gin.New()
	r2.GET("/admin/me", RequireAdmin(unconfigured), okHandler)
	w = httptest.NewRecorder()
	r2.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/me", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestBurstGuard(t *testing.T) {
	g := NewBurstGuard(1, 2)
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.Use(g.Middleware())
	r.GET("/", okHandler)

	get := func(remoteAddr, forwardedFor string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remoteAddr
		if forwardedFor != "" {
			req.Header.Set("X-Forwarded-For", forwardedFor)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	// A rotating X-Forwarded-For from an untrusted peer does not open new buckets.
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, get("198.51.100.7:4000", fmt.Sprintf("203.0.113.%d", i)))
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// Clients without any forwarding header keep separate buckets.
	assert.Equal(t, http.StatusOK, get("198.51.100.8:4000", ""))

	assert.Equal(t, 0, g.Cleanup(time.Now()))
	assert.Equal(t, 2, g.Cleanup(time.Now().Add(time.Hour)))
}

func TestBurstGuardBehindTrustedProxy(t *testing.T) {
	g := NewBurstGuard(1, 1)
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies([]string{"10.0.0.0/8"}))
	r.Use(g.Middleware())
	r.GET("/", okHandler)

	get := func(forwardedFor string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.2:5000"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, get("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, get("203.0.113.1"))
	assert.Equal(t, http.StatusOK, get("203.0.113.2"))
}

func TestSlugValidator(t *testing.T) {
	require.NoError(t, RegisterValidators())
	type req struct {
		Slug string `binding:"required,slug"`
	}
	assert.NoError(t, binding.Validator.ValidateStruct(req{Slug: "cognitive-dissonance"}))
	assert.Error(t, binding.Validator.ValidateStruct(req{Slug: "Not A Slug"}))
	assert.Error(t, binding.Validator.ValidateStruct(req{Slug: "trailing-"}))
}

func TestSecureHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecureHeaders())
	r.GET("/", okHandler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
