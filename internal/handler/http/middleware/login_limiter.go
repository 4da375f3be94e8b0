package middleware

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"newspaper-agency/internal/handler/http/respond"
)

// LoginLimiter throttles credential checks per client address with a token
// bucket. Each address may burst Burst attempts and then one attempt every
// 1/PerSecond seconds.
type LoginLimiter struct {
	perSecond rate.Limit
	burst     int
	idle      time.Duration
	clientIP  ClientIP
	now       func() time.Time
	onReject  func()

	mu      sync.Mutex
	clients map[string]*client
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginLimiterConfig configures NewLoginLimiter.
type LoginLimiterConfig struct {
	PerMinute float64       // sustained attempts per minute
	Burst     int           // attempts allowed back to back
	Idle      time.Duration // forget clients quiet for this long
	ClientIP  ClientIP
	OnReject  func() // called for every throttled request
}

// NewLoginLimiter returns a limiter. Zero values mean 5/minute, burst 5,
// idle 10 minutes.
func NewLoginLimiter(cfg LoginLimiterConfig) *LoginLimiter {
	if cfg.PerMinute <= 0 {
		cfg.PerMinute = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	if cfg.Idle <= 0 {
		cfg.Idle = 10 * time.Minute
	}
	return &LoginLimiter{
		perSecond: rate.Limit(cfg.PerMinute / 60),
		burst:     cfg.Burst,
		idle:      cfg.Idle,
		clientIP:  cfg.ClientIP,
		now:       time.Now,
		onReject:  cfg.OnReject,
		clients:   make(map[string]*client),
	}
}

// reserve takes a token for key and returns how long the caller must wait
// when none is left.
func (l *LoginLimiter) reserve(key string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.perSecond, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	l.mu.Unlock()

	r := c.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Minute
	}
	delay := r.DelayFrom(now)
	if delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Middleware rejects throttled requests with 429 and a Retry-After header.
func (l *LoginLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := l.reserve(l.clientIP.Of(r))
		if !ok {
			if l.onReject != nil {
				l.onReject()
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			respond.SafeError(w, http.StatusTooManyRequests, errors.New("too many requests"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Cleanup drops clients idle for longer than the idle window and returns
// how many were removed.
func (l *LoginLimiter) Cleanup() int {
	cutoff := l.now().Add(-l.idle)
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for key, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, key)
			removed++
		}
	}
	return removed
}

// Run calls Cleanup every interval until ctx is done.
func (l *LoginLimiter) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.Cleanup()
		}
	}
}

// Tracked returns the number of addresses currently tracked.
func (l *LoginLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
