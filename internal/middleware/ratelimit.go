// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"kuzenim/internal/observability"
)

// SharedLimiter is a fleet-wide limiter. *cache.WindowLimiter satisfies it.
type SharedLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Scope() string
}

// limiterEntry tracks request timestamps for a single client.
type limiterEntry struct {
	mu         sync.Mutex
	timestamps []time.Time
}

// RateLimiter limits requests per client identity. It consults the shared
// Valkey counter when one is configured and falls back to a per-process
// sliding window when Valkey is unavailable.
type RateLimiter struct {
	shared  SharedLimiter
	mu      sync.RWMutex
	clients map[string]*limiterEntry
	limit   int           // max requests per window
	window  time.Duration // sliding window duration
	stopCh  chan struct{}
}

// NewRateLimiter creates a rate limiter that allows limit requests per
// window. shared may be nil. It starts a background goroutine to clean up
// expired local entries.
func NewRateLimiter(shared SharedLimiter, limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		shared:  shared,
		clients: make(map[string]*limiterEntry),
		limit:   limit,
		window:  window,
		stopCh:  make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.cleanup()
			case <-rl.stopCh:
				return
			}
		}
	}()

	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// allow checks whether key is within the limit.
func (rl *RateLimiter) allow(ctx context.Context, key string) bool {
	if rl.shared != nil {
		ok, err := rl.shared.Allow(ctx, key)
		if err == nil {
			return ok
		}
		observability.ValkeyErrorsTotal.WithLabelValues("rate_limit").Inc()
		slog.Warn("shared rate limiter unavailable, using local window", "error", err)
	}
	return rl.allowLocal(key)
}

// allowLocal applies the in-process sliding window.
func (rl *RateLimiter) allowLocal(key string) bool {
	rl.mu.RLock()
	entry, exists := rl.clients[key]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		entry, exists = rl.clients[key]
		if !exists {
			entry = &limiterEntry{}
			rl.clients[key] = entry
		}
		rl.mu.Unlock()
	}

	now := time.Now()
	cutoff := now.Add(-rl.window)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	valid := entry.timestamps[:0]
	for _, ts := range entry.timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}
	entry.timestamps = valid

	if len(entry.timestamps) >= rl.limit {
		return false
	}

	entry.timestamps = append(entry.timestamps, now)
	return true
}

// cleanup removes local entries with no recent activity.
func (rl *RateLimiter) cleanup() {
	cutoff := time.Now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, entry := range rl.clients {
		entry.mu.Lock()
		hasRecent := false
		for _, ts := range entry.timestamps {
			if ts.After(cutoff) {
				hasRecent = true
				break
			}
		}
		entry.mu.Unlock()

		if !hasRecent {
			delete(rl.clients, key)
		}
	}
}

// Middleware returns an HTTP middleware that rate-limits by client identity.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(r.Context(), ClientIP(r)) {
			scope := "local"
			if rl.shared != nil {
				scope = rl.shared.Scope()
			}
			observability.RateLimitedTotal.WithLabelValues(scope).Inc()
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// unknownClient is the identity used when no address can be determined.
const unknownClient = "unknown"

// ClientIP extracts the caller identity: the first X-Forwarded-For entry,
// then X-Real-IP, then the transport address without its port. Header
// values that are not IP addresses are ignored. The headers are
// caller-controlled and must not be used for authorization.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := parseIP(first); ip != "" {
			return ip
		}
	}

	if ip := parseIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	addr := strings.TrimSpace(r.RemoteAddr)
	if addr == "" {
		return unknownClient
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		if host == "" {
			return unknownClient
		}
		return host
	}
	return addr
}

// parseIP returns the canonical form of s, or "" if s is not an IP address.
func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
