// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// window.go provides a Valkey-backed fixed-window request counter. Every
// replica shares the same counters, so limits hold across the fleet.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// windowKeyPrefix is the Valkey key prefix for rate-limit counters.
	windowKeyPrefix = "ratelimit:"

	// DefaultWindow is the counting window when none is configured.
	DefaultWindow = time.Minute
)

// incrScript increments the counter and starts its window on the first hit.
var incrScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// WindowLimiter allows up to limit hits per key per window.
type WindowLimiter struct {
	client *redis.Client
	scope  string
	limit  int
	window time.Duration
}

// NewWindowLimiter creates a limiter whose keys are namespaced by scope.
func NewWindowLimiter(client *redis.Client, scope string, limit int, window time.Duration) *WindowLimiter {
	if window <= 0 {
		window = DefaultWindow
	}
	return &WindowLimiter{client: client, scope: scope, limit: limit, window: window}
}

// Allow records a hit for key and reports whether it is within the limit.
// The counter and its expiry are set atomically so an abandoned key always
// expires.
func (l *WindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := incrScript.Run(ctx, l.client, []string{l.key(key)}, l.window.Milliseconds()).Int64()
	if err != nil {
		return true, fmt.Errorf("rate limit %s: %w", l.scope, err)
	}
	return n <= int64(l.limit), nil
}

// Scope returns the limiter's namespace.
func (l *WindowLimiter) Scope() string {
	return l.scope
}

func (l *WindowLimiter) key(key string) string {
	return windowKeyPrefix + l.scope + ":" + key
}
