package ratelimit

import "strings"

// matchTier finds the endpoint tier for a request. Exact path+method
// matches win; tiers whose path ends in "/" also match by prefix, which
// covers parameterized routes like /api/users/{id}/recommendations.
// The health check is never limited.
func matchTier(path, method string, tiers []EndpointConfig) (EndpointConfig, bool) {
	if path == "/health" && method == "GET" {
		return EndpointConfig{}, true
	}

	for _, tier := range tiers {
		if tier.Method == method && tier.Path == path {
			return tier, true
		}
	}

	for _, tier := range tiers {
		if tier.Method != method || !strings.HasSuffix(tier.Path, "/") {
			continue
		}
		if strings.HasPrefix(path, tier.Path) {
			return tier, true
		}
	}

	return EndpointConfig{}, false
}
