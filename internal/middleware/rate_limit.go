package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL       = 3 * time.Minute
	limiterSweepInterval = time.Minute
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type IPRateLimiter struct {
	ips map[string]*ipLimiter
	mu  *sync.RWMutex
	r   rate.Limit
	b   int
	ttl time.Duration
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*ipLimiter),
		mu:  &sync.RWMutex{},
		r:   r,
		b:   b,
		ttl: limiterIdleTTL,
	}
}

func (i *IPRateLimiter) GetLimiter(key string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	v, exists := i.ips[key]
	if !exists {
		v = &ipLimiter{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[key] = v
	}
	v.lastSeen = time.Now()

	return v.limiter
}

// evictIdle drops entries idle longer than the TTL so the map stays bounded
// by recently active clients rather than growing for the process lifetime.
func (i *IPRateLimiter) evictIdle(now time.Time) {
	i.mu.Lock()
	defer i.mu.Unlock()

	for key, v := range i.ips {
		if now.Sub(v.lastSeen) > i.ttl {
			delete(i.ips, key)
		}
	}
}

func (i *IPRateLimiter) sweep(interval time.Duration) {
	for {
		time.Sleep(interval)
		i.evictIdle(time.Now())
	}
}

// RateLimitByIP: r = requests per second, b = burst.
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewIPRateLimiter(r, b)
	go limiter.sweep(limiterSweepInterval)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests from this IP"})
			return
		}
		c.Next()
	}
}
