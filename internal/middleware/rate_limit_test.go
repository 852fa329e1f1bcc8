package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter_ReusesLimiterPerKey(t *testing.T) {
	l := NewIPRateLimiter(1, 1)

	first := l.GetLimiter("10.0.0.1")
	second := l.GetLimiter("10.0.0.1")
	assert.Same(t, first, second)

	other := l.GetLimiter("10.0.0.2")
	assert.NotSame(t, first, other)
}

func TestIPRateLimiter_EvictsIdleEntries(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	l.GetLimiter("10.0.0.1")
	l.GetLimiter("10.0.0.2")

	l.evictIdle(time.Now().Add(limiterIdleTTL + time.Second))

	l.mu.RLock()
	defer l.mu.RUnlock()
	assert.Empty(t, l.ips)
}

func TestIPRateLimiter_KeepsActiveEntries(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	limiter := l.GetLimiter("10.0.0.1")

	l.evictIdle(time.Now())

	assert.Same(t, limiter, l.GetLimiter("10.0.0.1"))
}
