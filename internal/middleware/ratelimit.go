// internal/middleware/ratelimit.go
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Ayash-Bera/copilot-chatbot/pkg/utils"
	"github.com/gin-gonic/gin"
)

// RateLimiter implements a simple in-memory per-IP rate limiter
type RateLimiter struct {
	visitors map[string]*Visitor
	mu       sync.Mutex
	rate     int           // requests per minute
	cleanup  time.Duration // cleanup interval
	now      func() time.Time
}

type Visitor struct {
	lastSeen time.Time
	count    int
}

// NewRateLimiter creates a rate limiter. Its cleanup loop stops with ctx.
func NewRateLimiter(ctx context.Context, rate int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*Visitor),
		rate:     rate,
		cleanup:  time.Minute,
		now:      time.Now,
	}

	go rl.cleanupVisitors(ctx)

	return rl
}

// RateLimit middleware function
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return rl.RateLimitWith(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusTooManyRequests, "Rate limit exceeded", nil)
	})
}

// RateLimitWith lets reject write the response for a limited request,
// for routes that answer with HTML rather than JSON.
func (rl *RateLimiter) RateLimitWith(reject gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			reject(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, exists := rl.visitors[ip]
	if !exists || now.Sub(v.lastSeen) > time.Minute {
		rl.visitors[ip] = &Visitor{lastSeen: now, count: 1}
		return true
	}

	if v.count >= rl.rate {
		return false
	}

	v.count++
	v.lastSeen = now
	return true
}

// cleanupVisitors removes old visitor entries
func (rl *RateLimiter) cleanupVisitors(ctx context.Context) {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.mu.Lock()
			for ip, v := range rl.visitors {
				if rl.now().Sub(v.lastSeen) > time.Minute*5 {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}
