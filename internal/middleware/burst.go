package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/mybeing/internal/apperror"
	"github.com/lshigami/mybeing/internal/dto"
	"golang.org/x/time/rate"
)

type ipBucket struct {
	limiter    *rate.Limiter
	lastActive time.Time
}

// BurstGuard is a per-IP token bucket in front of every route. It catches floods that the
// per-route fixed windows would only see once their budget is spent. Clients are told apart
// by gin's ClientIP, so X-Forwarded-For only counts when it comes from a trusted proxy.
type BurstGuard struct {
	rps   rate.Limit
	burst int
	idle  time.Duration

	mu      sync.Mutex
	buckets map[string]*ipBucket
}

func NewBurstGuard(rps float64, burst int) *BurstGuard {
	return &BurstGuard{
		rps:     rate.Limit(rps),
		burst:   burst,
		idle:    30 * time.Minute,
		buckets: make(map[string]*ipBucket),
	}
}

func (g *BurstGuard) allow(ip string, now time.Time) bool {
	g.mu.Lock()
	b, ok := g.buckets[ip]
	if !ok {
		b = &ipBucket{limiter: rate.NewLimiter(g.rps, g.burst)}
		g.buckets[ip] = b
	}
	b.lastActive = now
	g.mu.Unlock()
	return b.limiter.AllowN(now, 1)
}

// Cleanup drops buckets idle for longer than the idle timeout and returns how many were removed.
func (g *BurstGuard) Cleanup(now time.Time) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	removed := 0
	for ip, b := range g.buckets {
		if now.Sub(b.lastActive) > g.idle {
			delete(g.buckets, ip)
			removed++
		}
	}
	return removed
}

func (g *BurstGuard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if !g.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Code:  string(apperror.CodeRateLimited),
				Error: "Too many requests",
			})
			return
		}
		c.Next()
	}
}
