package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiterConfig holds the configuration for the rate limiter
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
}

const clientIdleTimeout = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiters keeps one token bucket per client IP.
type rateLimiters struct {
	mu      sync.Mutex
	config  RateLimiterConfig
	clients map[string]*clientLimiter
	sweep   time.Time
}

func (r *rateLimiters) get(ip string, now time.Time) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if now.Sub(r.sweep) > clientIdleTimeout {
		for key, cl := range r.clients {
			if now.Sub(cl.lastSeen) > clientIdleTimeout {
				delete(r.clients, key)
			}
		}
		r.sweep = now
	}

	cl, ok := r.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(r.config.RequestsPerSecond), r.config.Burst)}
		r.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// NewRateLimiterMiddleware creates a new rate limiter middleware
func NewRateLimiterMiddleware(config RateLimiterConfig) gin.HandlerFunc {
	limiters := &rateLimiters{
		config:  config,
		clients: make(map[string]*clientLimiter),
		sweep:   time.Now(),
	}

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP(), time.Now()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
