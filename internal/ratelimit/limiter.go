// Package ratelimit enforces per-provider quota windows.
//
// Window state is process-local and unpersisted: every instance of the
// service enforces its own quota, so a horizontally scaled deployment can
// consume up to instance-count times the true provider quota. The Limiter
// interface exists so a shared backing store can be swapped in without
// touching the orchestration code.
package ratelimit

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/octobees/lead-outreach/internal/config"
)

// Limiter gates and records calls against named external services.
type Limiter interface {
	// CanMakeCall reports whether the service still has quota in the
	// current window. Services without a configured limit always pass.
	CanMakeCall(service string) bool
	// RecordCall consumes one unit of quota. Callers invoke it on the
	// decision to attempt a call, not on the call succeeding: the quota
	// limits attempts.
	RecordCall(service string)
	// RemainingCalls returns the quota left in the current window, or
	// math.MaxInt for unconstrained services.
	RemainingCalls(service string) int
}

type window struct {
	count   int
	resetAt time.Time
}

// WindowLimiter implements Limiter with lazily reset fixed windows. A window
// is created on first touch of a limited service and reset as a side effect
// of the next read after its period elapses; no timers are involved.
type WindowLimiter struct {
	mu      sync.Mutex
	limits  map[string]config.RateLimitConfig
	windows map[string]*window
	now     func() time.Time
}

// NewWindowLimiter builds a limiter for the configured service quotas.
func NewWindowLimiter(limits map[string]config.RateLimitConfig) *WindowLimiter {
	return &WindowLimiter{
		limits:  limits,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// touch returns the current window for a limited service, creating or
// resetting it as needed. Caller must hold l.mu.
func (l *WindowLimiter) touch(service string, limit config.RateLimitConfig) *window {
	now := l.now()
	w, ok := l.windows[service]
	if !ok {
		w = &window{count: 0, resetAt: now.Add(limit.Interval)}
		l.windows[service] = w
		return w
	}
	if now.After(w.resetAt) {
		w.count = 0
		w.resetAt = now.Add(limit.Interval)
	}
	return w
}

// CanMakeCall reports whether the service has quota left in its window.
func (l *WindowLimiter) CanMakeCall(service string) bool {
	limit, ok := l.limits[service]
	if !ok {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.touch(service, limit)
	if w.count >= limit.Requests {
		log.Printf("ratelimit service=%s exhausted limit=%d reset_at=%s", service, limit.Requests, w.resetAt.Format(time.RFC3339))
		return false
	}
	if w.count*5 >= limit.Requests*4 {
		log.Printf("ratelimit service=%s usage=%d/%d nearing quota", service, w.count, limit.Requests)
	}
	return true
}

// RecordCall consumes one unit of the service's window.
func (l *WindowLimiter) RecordCall(service string) {
	limit, ok := l.limits[service]
	if !ok {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.touch(service, limit)
	w.count++
}

// RemainingCalls returns the unused quota in the current window.
func (l *WindowLimiter) RemainingCalls(service string) int {
	limit, ok := l.limits[service]
	if !ok {
		return math.MaxInt
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.touch(service, limit)
	remaining := limit.Requests - w.count
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

var _ Limiter = (*WindowLimiter)(nil)
