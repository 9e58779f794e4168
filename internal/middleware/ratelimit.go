package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// LoginRateLimiter limits sign-in and sign-up attempts per client IP. The
// remote API has no lockout of its own.
type LoginRateLimiter struct {
	attempts    map[string][]time.Time
	mutex       sync.Mutex
	maxAttempts int
	window      time.Duration
	now         func() time.Time
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewLoginRateLimiter creates a new login rate limiter
func NewLoginRateLimiter(maxAttempts int, window time.Duration) *LoginRateLimiter {
	rl := &LoginRateLimiter{
		attempts:    make(map[string][]time.Time),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
		stop:        make(chan struct{}),
	}

	// Start cleanup goroutine
	go rl.cleanup()

	return rl
}

// IsAllowed checks if a login attempt from the given IP is allowed
func (rl *LoginRateLimiter) IsAllowed(ip string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	valid := rl.prune(ip)
	return len(valid) < rl.maxAttempts
}

// RecordAttempt records a login attempt for the given IP
func (rl *LoginRateLimiter) RecordAttempt(ip string) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	rl.attempts[ip] = append(rl.prune(ip), rl.now())
}

// Reset forgets the attempts of ip, used after a successful sign-in
func (rl *LoginRateLimiter) Reset(ip string) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	delete(rl.attempts, ip)
}

// GetTimeUntilAllowed returns the time until the next login attempt is allowed
func (rl *LoginRateLimiter) GetTimeUntilAllowed(ip string) time.Duration {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	valid := rl.prune(ip)
	if len(valid) < rl.maxAttempts {
		return 0
	}

	// The oldest attempt in the window frees the next slot
	wait := valid[len(valid)-rl.maxAttempts].Add(rl.window).Sub(rl.now())
	if wait < 0 {
		return 0
	}
	return wait
}

// prune drops attempts outside the window. Caller holds the mutex.
func (rl *LoginRateLimiter) prune(ip string) []time.Time {
	cutoff := rl.now().Add(-rl.window)
	attempts := rl.attempts[ip]

	valid := attempts[:0]
	for _, attempt := range attempts {
		if attempt.After(cutoff) {
			valid = append(valid, attempt)
		}
	}

	if len(valid) == 0 {
		delete(rl.attempts, ip)
		return nil
	}
	rl.attempts[ip] = valid
	return valid
}

// cleanup removes old entries periodically
func (rl *LoginRateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mutex.Lock()
			for ip := range rl.attempts {
				rl.prune(ip)
			}
			rl.mutex.Unlock()
		}
	}
}

// Close stops the cleanup goroutine
func (rl *LoginRateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// RateLimitLogin provides rate limiting middleware for login endpoints.
// Every POST counts as an attempt.
func RateLimitLogin(rateLimiter *LoginRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Only apply rate limiting to POST requests (login attempts)
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := ClientIP(r)

			if !rateLimiter.IsAllowed(ip) {
				wait := rateLimiter.GetTimeUntilAllowed(ip).Round(time.Second)
				w.Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())))

				if IsHTMXRequest(r) {
					w.WriteHeader(http.StatusTooManyRequests)
					w.Write([]byte(`<div class="rounded-lg border border-red-200 bg-red-50 p-4 text-sm text-red-800">Too many attempts. Please try again in ` + wait.String() + `.</div>`))
				} else {
					http.Error(w, "Too many attempts. Please try again later.", http.StatusTooManyRequests)
				}
				return
			}

			rateLimiter.RecordAttempt(ip)
			next.ServeHTTP(w, r)
		})
	}
}
