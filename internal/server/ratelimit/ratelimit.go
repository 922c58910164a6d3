// Package ratelimit applies per-client token bucket limits to the API.
// AI-backed endpoints get strict hourly tiers, corpus writes get per-minute
// tiers, and reads fall through to a generous default.
package ratelimit

import (
	"sync"
	"time"
)

// evictAfter is how long a client+endpoint bucket may sit unused before
// the cleanup pass drops it.
const evictAfter = time.Hour

// Info describes the limit state for one request. The server copies it
// into X-RateLimit-* response headers.
type Info struct {
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds limiter configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// bucket is a token bucket for one client+endpoint pair. It carries its
// own last-use timestamp so eviction needs no bookkeeping beside it.
type bucket struct {
	mu       sync.Mutex
	capacity float64 // burst ceiling
	rate     float64 // tokens per second
	level    float64
	refilled time.Time
	used     time.Time
}

func newBucket(capacity int, rate float64) *bucket {
	now := time.Now()
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		level:    float64(capacity), // full at creation
		refilled: now,
		used:     now,
	}
}

// refill tops the bucket up for the time elapsed since the last refill.
// Callers hold b.mu.
func (b *bucket) refill(now time.Time) {
	b.level += now.Sub(b.refilled).Seconds() * b.rate
	if b.level > b.capacity {
		b.level = b.capacity
	}
	b.refilled = now
}

// take consumes one token if available and reports the state after the
// attempt: whether it was allowed, whole tokens remaining, and when the
// bucket will be full again.
func (b *bucket) take(now time.Time) (allowed bool, remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(now)
	b.used = now

	if b.level >= 1.0 {
		b.level -= 1.0
		allowed = true
	}

	remaining = int(b.level)
	reset = now
	if b.level < b.capacity {
		reset = now.Add(time.Duration((b.capacity - b.level) / b.rate * float64(time.Second)))
	}
	return allowed, remaining, reset
}

// idleSince reports the last time the bucket served a request.
func (b *bucket) idleSince() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used
}

// Limiter tracks one token bucket per client+endpoint pair.
type Limiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	config  *Config

	ticker *time.Ticker
	stop   chan struct{}
}

// NewLimiter creates a limiter. A nil config means the built-in defaults:
// enabled, 1000 requests per minute per client, hourly cleanup sweep.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.ticker = time.NewTicker(config.CleanupInterval)
		l.stop = make(chan struct{})
		go l.sweep()
	}

	return l
}

// Allow reports whether a request from the given client to the given
// endpoint may proceed. Whitelisted clients and unlimited endpoints pass
// without consuming anything; blacklisted clients never pass.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	tier := l.tierFor(path, method)
	if tier.Limit <= 0 {
		return true, Info{}
	}

	key := clientID + " " + method + " " + path
	b := l.bucketFor(key, tier)

	now := time.Now()
	allowed, remaining, reset := b.take(now)

	info := Info{
		Limit:     tier.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !allowed {
		if retry := time.Until(reset); retry > 0 {
			info.RetryAfter = retry
		}
	}
	return allowed, info
}

// tierFor resolves the endpoint tier for a request, falling back to the
// limiter's default when no configured tier matches.
func (l *Limiter) tierFor(path, method string) EndpointConfig {
	if tier, ok := matchTier(path, method, l.config.EndpointConfigs); ok {
		return tier
	}
	return EndpointConfig{
		Limit:  l.config.DefaultLimit,
		Window: l.config.DefaultWindow,
		Burst:  l.config.DefaultLimit,
	}
}

// bucketFor returns the bucket for a key, creating it on first use.
func (l *Limiter) bucketFor(key string, tier EndpointConfig) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	capacity := tier.Burst
	if capacity <= 0 {
		capacity = tier.Limit
	}
	rate := float64(tier.Limit) / tier.Window.Seconds()

	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.buckets[key]; ok {
		return b
	}
	b = newBucket(capacity, rate)
	l.buckets[key] = b
	return b
}

// sweep periodically drops buckets idle past the eviction window so quiet
// clients do not accumulate forever.
func (l *Limiter) sweep() {
	for {
		select {
		case <-l.ticker.C:
			l.evictIdle(time.Now().Add(-evictAfter))
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.idleSince().Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop ends the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
	}
	if l.stop != nil {
		close(l.stop)
	}
}
