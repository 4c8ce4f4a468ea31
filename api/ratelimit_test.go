package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginLimiterBlocksAfterBudget(t *testing.T) {
	rl := newLoginRateLimiter()
	now := time.Now()
	rl.now = func() time.Time { return now }

	for range maxLoginFailures {
		blocked, _ := rl.check("1.2.3.4")
		assert.False(t, blocked)
		rl.recordFailure("1.2.3.4")
	}

	blocked, retryAfter := rl.check("1.2.3.4")
	assert.True(t, blocked, "attempt after the budget is spent must be blocked")
	assert.Greater(t, retryAfter, time.Duration(0))

	// Other addresses are unaffected.
	blocked, _ = rl.check("5.6.7.8")
	assert.False(t, blocked)
}

func TestLoginLimiterWindowSlides(t *testing.T) {
	rl := newLoginRateLimiter()
	now := time.Now()
	rl.now = func() time.Time { return now }

	for range maxLoginFailures {
		rl.recordFailure("1.2.3.4")
	}
	blocked, _ := rl.check("1.2.3.4")
	assert.True(t, blocked)

	now = now.Add(loginWindow + time.Second)
	blocked, _ = rl.check("1.2.3.4")
	assert.False(t, blocked, "failures outside the window no longer count")
}

func TestLoginLimiterSuccessClears(t *testing.T) {
	rl := newLoginRateLimiter()

	for range maxLoginFailures - 1 {
		rl.recordFailure("1.2.3.4")
	}
	rl.recordSuccess("1.2.3.4")

	blocked, _ := rl.check("1.2.3.4")
	assert.False(t, blocked)

	rl.mu.Lock()
	_, tracked := rl.failures["1.2.3.4"]
	rl.mu.Unlock()
	assert.False(t, tracked, "success should drop the address entirely")
}

func TestFormThrottle(t *testing.T) {
	ft := newFormThrottle()

	for range formBurst {
		assert.True(t, ft.allow("1.2.3.4"))
	}
	assert.False(t, ft.allow("1.2.3.4"), "burst spent")
	assert.True(t, ft.allow("5.6.7.8"), "throttle is per address")
}

func TestExtractClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.7:52114"
	assert.Equal(t, "10.0.0.7", extractClientIP(r))

	// Proxy headers must not override the peer address.
	r.Header.Set("X-Forwarded-For", "8.8.8.8")
	assert.Equal(t, "10.0.0.7", extractClientIP(r))
}
