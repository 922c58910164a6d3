package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

func TestParseTierBurstThenDenied(t *testing.T) {
	l := NewLimiter(defaultTestConfig())
	defer l.Stop()

	// The parse tier allows a burst of 5, refilling at 60/hour.
	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("127.0.0.1", "/api/parse", "POST")
		require.True(t, allowed, "burst request %d", i+1)
		assert.Equal(t, 60, info.Limit)
	}

	allowed, info := l.Allow("127.0.0.1", "/api/parse", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Positive(t, info.RetryAfter)
}

func TestRecommendationsTierMatchesByPrefix(t *testing.T) {
	l := NewLimiter(defaultTestConfig())
	defer l.Stop()

	// /api/users/{id}/recommendations has no exact tier entry; it must
	// pick up the /api/users/ prefix tier, not the 1000/minute default.
	_, info := l.Allow("127.0.0.1", "/api/users/user-42/recommendations", "POST")
	assert.Equal(t, 60, info.Limit)
}

func TestReadsUseDefaultTier(t *testing.T) {
	l := NewLimiter(defaultTestConfig())
	defer l.Stop()

	_, info := l.Allow("127.0.0.1", "/api/jobs", "GET")
	assert.Equal(t, 1000, info.Limit)
}

func TestHealthIsUnlimited(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.DefaultLimit = 1
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := l.Allow("127.0.0.1", "/health", "GET")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestClientsAreIsolated(t *testing.T) {
	l := NewLimiter(defaultTestConfig())
	defer l.Stop()

	for i := 0; i < 5; i++ {
		l.Allow("10.0.0.1", "/api/parse", "POST")
	}
	allowed, _ := l.Allow("10.0.0.1", "/api/parse", "POST")
	assert.False(t, allowed)

	// A different client still has a full bucket.
	allowed, _ = l.Allow("10.0.0.2", "/api/parse", "POST")
	assert.True(t, allowed)
}

func TestRefillAllowsAnotherRequest(t *testing.T) {
	cfg := &Config{
		Enabled: true,
		EndpointConfigs: []EndpointConfig{
			{Path: "/api/embed", Method: "POST", Limit: 2, Window: time.Second, Burst: 1},
		},
	}
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, _ := l.Allow("127.0.0.1", "/api/embed", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("127.0.0.1", "/api/embed", "POST")
	require.False(t, allowed)

	// 2 tokens/second: one token is back within 600ms.
	time.Sleep(600 * time.Millisecond)
	allowed, _ = l.Allow("127.0.0.1", "/api/embed", "POST")
	assert.True(t, allowed)
}

func TestWhitelistBypassesLimits(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.DefaultLimit = 1
	cfg.Whitelist = map[string]bool{"127.0.0.1": true}
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("127.0.0.1", "/api/search", "POST")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestBlacklistAlwaysDenied(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.Blacklist = map[string]bool{"192.168.1.1": true}
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, _ := l.Allow("192.168.1.1", "/api/jobs", "GET")
	assert.False(t, allowed)
}

func TestDisabledAllowsEverything(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("127.0.0.1", "/api/parse", "POST")
		require.True(t, allowed)
	}
}

func TestNilConfigUsesDefaults(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	allowed, info := l.Allow("127.0.0.1", "/api/jobs", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestConcurrentRequestsRespectLimit(t *testing.T) {
	cfg := &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	}
	l := NewLimiter(cfg)
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := l.Allow("127.0.0.1", "/api/jobs", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowedCount)
}

func TestEvictIdleDropsStaleBuckets(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		l.Allow(fmt.Sprintf("10.0.0.%d", i+1), "/api/jobs", "GET")
	}

	l.mu.RLock()
	created := len(l.buckets)
	l.mu.RUnlock()
	require.Equal(t, 10, created)

	// Everything was just used, so a sweep at the usual cutoff keeps all.
	l.evictIdle(time.Now().Add(-evictAfter))
	l.mu.RLock()
	kept := len(l.buckets)
	l.mu.RUnlock()
	assert.Equal(t, 10, kept)

	// A cutoff in the future treats every bucket as stale.
	l.evictIdle(time.Now().Add(time.Minute))
	l.mu.RLock()
	remaining := len(l.buckets)
	l.mu.RUnlock()
	assert.Zero(t, remaining)
}

func TestMatchTier(t *testing.T) {
	tiers := DefaultEndpointConfigs()

	tests := []struct {
		name      string
		path      string
		method    string
		wantMatch bool
		wantLimit int
	}{
		{"exact parse", "/api/parse", "POST", true, 60},
		{"exact extract", "/api/extract", "POST", true, 120},
		{"recommendations by prefix", "/api/users/abc/recommendations", "POST", true, 60},
		{"health unlimited", "/health", "GET", true, 0},
		{"unmatched read", "/api/blogs", "GET", false, 0},
		{"wrong method", "/api/parse", "GET", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, ok := matchTier(tt.path, tt.method, tiers)
			assert.Equal(t, tt.wantMatch, ok)
			if ok {
				assert.Equal(t, tt.wantLimit, tier.Limit)
			}
		})
	}
}
