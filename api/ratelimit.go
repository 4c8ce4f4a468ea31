package api

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// loginWindow is the sliding window for counting failed logins.
	loginWindow = 15 * time.Minute
	// maxLoginFailures is the failure budget per source address; once
	// spent, further attempts are rejected before the password is even
	// checked.
	maxLoginFailures = 10
)

// loginRateLimiter tracks failed login attempts per source IP over a
// sliding window. A successful login clears the address's counter.
type loginRateLimiter struct {
	mu       sync.Mutex
	failures map[string][]time.Time

	now func() time.Time
}

func newLoginRateLimiter() *loginRateLimiter {
	return &loginRateLimiter{
		failures: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// check returns true if the address has exhausted its failure budget,
// along with how long the caller should wait.
func (rl *loginRateLimiter) check(ip string) (blocked bool, retryAfter time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	recent := rl.pruneLocked(ip)
	if len(recent) >= maxLoginFailures {
		return true, recent[0].Add(loginWindow).Sub(rl.now())
	}
	return false, 0
}

func (rl *loginRateLimiter) recordFailure(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.failures[ip] = append(rl.pruneLocked(ip), rl.now())
}

func (rl *loginRateLimiter) recordSuccess(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.failures, ip)
}

// pruneLocked drops failures outside the window and returns what's left.
func (rl *loginRateLimiter) pruneLocked(ip string) []time.Time {
	cutoff := rl.now().Add(-loginWindow)
	recent := rl.failures[ip][:0:len(rl.failures[ip])]
	for _, t := range rl.failures[ip] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	if len(recent) == 0 {
		delete(rl.failures, ip)
		return nil
	}
	rl.failures[ip] = recent
	return recent
}

// writeRateLimited sends a 429 Too Many Requests response.
func writeRateLimited(w http.ResponseWriter, retryAfter time.Duration) {
	secs := int(retryAfter.Seconds())
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	writeError(w, http.StatusTooManyRequests, "too many failed login attempts; try again later")
}

// ---------------------------------------------------------------------------
// Public form throttle
// ---------------------------------------------------------------------------

const (
	// formRate allows one form submission per 2 seconds per IP...
	formRate = rate.Limit(0.5)
	// ...with a burst of 5.
	formBurst = 5
)

// formThrottle applies a per-IP token bucket to the public contact and
// application endpoints.
type formThrottle struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newFormThrottle() *formThrottle {
	return &formThrottle{limiters: make(map[string]*rate.Limiter)}
}

func (t *formThrottle) allow(ip string) bool {
	t.mu.Lock()
	lim, ok := t.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(formRate, formBurst)
		t.limiters[ip] = lim
	}
	t.mu.Unlock()
	return lim.Allow()
}

// extractClientIP returns the request's direct peer address. Proxy
// headers are deliberately not consulted: the server is expected to sit
// directly on the listen port, and trusting X-Forwarded-For would let
// clients spoof their way past the login limiter.
func extractClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
