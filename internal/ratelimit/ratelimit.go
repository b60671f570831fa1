// Package ratelimit guards the websocket upgrade endpoint with a
// per-IP token bucket, grounded on iamvalenciia-kick-game-stream's
// internal/api/ratelimit.go IPRateLimiter and WebSocketRateLimiter.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// IPLimiter rate-limits requests per client IP using a token bucket,
// with a background sweep that drops buckets for IPs gone quiet.
type IPLimiter struct {
	perSecond float64
	burst     int
	cleanup   time.Duration

	mu       sync.Mutex
	entries  map[string]*entry
	stopOnce sync.Once
	stopCh   chan struct{}
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPLimiter starts the limiter's cleanup goroutine and returns it.
// Call Stop to release it.
func NewIPLimiter(perSecond float64, burst int) *IPLimiter {
	l := &IPLimiter{
		perSecond: perSecond,
		burst:     burst,
		cleanup:   5 * time.Minute,
		entries:   make(map[string]*entry),
		stopCh:    make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

func (l *IPLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

func (l *IPLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.cleanup)
	defer ticker.Stop()
	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-2 * l.cleanup)
			l.mu.Lock()
			for ip, e := range l.entries {
				if e.lastSeen.Before(cutoff) {
					delete(l.entries, ip)
				}
			}
			l.mu.Unlock()
		}
	}
}

// Allow reports whether a request from ip may proceed, consuming one
// token from its bucket if so.
func (l *IPLimiter) Allow(ip string) bool {
	l.mu.Lock()
	e, ok := l.entries[ip]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rate.Limit(l.perSecond), l.burst)}
		l.entries[ip] = e
	}
	e.lastSeen = time.Now()
	l.mu.Unlock()
	return e.limiter.Allow()
}

// ConnLimiter caps concurrent websocket connections per IP, since the
// token bucket above only bounds the rate of upgrade *attempts*, not
// how many stay open.
type ConnLimiter struct {
	maxPerIP int
	counts   sync.Map // map[string]*int32
}

func NewConnLimiter(maxPerIP int) *ConnLimiter {
	return &ConnLimiter{maxPerIP: maxPerIP}
}

// Acquire reports whether ip is under its connection cap and, if so,
// reserves a slot. Release must be called exactly once per successful
// Acquire when the connection closes.
func (c *ConnLimiter) Acquire(ip string) bool {
	actual, _ := c.counts.LoadOrStore(ip, new(int32))
	counter := actual.(*int32)
	for {
		cur := atomic.LoadInt32(counter)
		if int(cur) >= c.maxPerIP {
			return false
		}
		if atomic.CompareAndSwapInt32(counter, cur, cur+1) {
			return true
		}
	}
}

func (c *ConnLimiter) Release(ip string) {
	if v, ok := c.counts.Load(ip); ok {
		atomic.AddInt32(v.(*int32), -1)
	}
}

// ClientIP extracts the caller's address, preferring the first hop of
// X-Forwarded-For (reverse proxy deployments) over RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx >= 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
