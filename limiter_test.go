package hdsite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginLimiterBlocksAfterMax(t *testing.T) {
	limiter := NewLoginLimiter(2, 200*time.Millisecond)
	ip := "203.0.113.10"

	assert.True(t, limiter.Check(ip))
	limiter.Record(ip)
	assert.True(t, limiter.Check(ip))
	limiter.Record(ip)
	assert.False(t, limiter.Check(ip), "third attempt should be blocked")
}

func TestLoginLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewLoginLimiter(1, 150*time.Millisecond)
	ip := "203.0.113.20"

	limiter.Record(ip)
	assert.False(t, limiter.Check(ip))

	time.Sleep(200 * time.Millisecond)
	assert.True(t, limiter.Check(ip), "attempt after window should be allowed")
}

func TestLoginLimiterIsPerIP(t *testing.T) {
	limiter := NewLoginLimiter(1, 200*time.Millisecond)

	limiter.Record("203.0.113.30")
	assert.False(t, limiter.Check("203.0.113.30"))
	assert.True(t, limiter.Check("203.0.113.31"), "other ips are unaffected")
}
