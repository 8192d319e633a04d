package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mybeing/internal/apperror"
	"github.com/lshigami/mybeing/internal/dto"
	"github.com/lshigami/mybeing/internal/ratelimit"
	"github.com/rs/zerolog/log"
)

// KeyFunc derives the limiter key for a request.
type KeyFunc func(c *gin.Context) string

// ByIP keys on the forwarded client IP.
func ByIP(c *gin.Context) string { return ratelimit.ClientKey(c.Request, false) }

// ByIPAndUserAgent keys on the forwarded client IP plus a User-Agent fingerprint.
func ByIPAndUserAgent(c *gin.Context) string { return ratelimit.ClientKey(c.Request, true) }

// RateLimit rejects requests over the limiter's window budget with 429.
func RateLimit(l *ratelimit.Limiter, key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Allow(c, l, key(c)) {
			return
		}
		c.Next()
	}
}

// Allow checks key against l and writes the rate-limit headers. When the request is over the
// limit it aborts with a 429 body and returns false. Store failures let the request through.
func Allow(c *gin.Context, l *ratelimit.Limiter, key string) bool {
	res, err := l.Check(c.Request.Context(), key)
	if err != nil {
		log.Error().Err(err).Str("limiter", l.Name()).Msg("Rate limit check failed, allowing request")
		return true
	}
	setRateLimitHeaders(c, res)
	if res.Allowed {
		return true
	}

	retryAfter := secondsUntil(res.ResetAt)
	c.Header("Retry-After", strconv.Itoa(retryAfter))
	log.Warn().
		Str("limiter", l.Name()).
		Str("path", c.FullPath()).
		Time("reset_at", res.ResetAt).
		Msg("Rate limit exceeded")

	resetAt := res.ResetAt.UTC()
	c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
		Code:    string(apperror.CodeRateLimited),
		Error:   "Too many requests",
		Message: "Too many requests, please try again later.",
		ResetAt: &resetAt,
	})
	return false
}

func setRateLimitHeaders(c *gin.Context, res ratelimit.Result) {
	c.Header("RateLimit-Limit", strconv.Itoa(res.Limit))
	c.Header("RateLimit-Remaining", strconv.Itoa(res.Remaining))
	c.Header("RateLimit-Reset", strconv.Itoa(secondsUntil(res.ResetAt)))
}

func secondsUntil(t time.Time) int {
	s := int(math.Ceil(time.Until(t).Seconds()))
	if s < 0 {
		return 0
	}
	return s
}
