package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/ecoindus/site-backend-go/internal/monitoring"
)

// RateLimiter hands out one token bucket per client IP
type RateLimiter struct {
	visitors    map[string]*visitor
	mu          sync.Mutex
	rate        rate.Limit
	burst       int
	idleTTL     time.Duration
	maxVisitors int
	stop        chan struct{}
	stopOnce    sync.Once
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a new rate limiter allowing rps requests per second
// with the given burst per IP
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		visitors:    make(map[string]*visitor),
		rate:        rate.Limit(rps),
		burst:       burst,
		idleTTL:     10 * time.Minute,
		maxVisitors: 10000,
		stop:        make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Stop ends the cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// cleanup removes idle visitors periodically
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for ip, v := range rl.visitors {
				if time.Since(v.lastSeen) > rl.idleTTL {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}

// Allow checks if a request from the given IP is allowed
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	v, exists := rl.visitors[ip]
	if !exists {
		if len(rl.visitors) >= rl.maxVisitors {
			rl.evictOldestLocked()
		}
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	rl.mu.Unlock()

	return v.limiter.Allow()
}

func (rl *RateLimiter) evictOldestLocked() {
	var oldestIP string
	var oldest time.Time
	for ip, v := range rl.visitors {
		if oldestIP == "" || v.lastSeen.Before(oldest) {
			oldestIP, oldest = ip, v.lastSeen
		}
	}
	delete(rl.visitors, oldestIP)
}

// RateLimit middleware limits requests per IP
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			monitoring.RateLimitExceeded.WithLabelValues(c.FullPath()).Inc()
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
