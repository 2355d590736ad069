// Package cache provides the TTL-bounded store for place search responses.
// It is the only state in the system that outlives a single request.
package cache

import (
	"context"
	"fmt"
	"strings"
)

// Store is a byte-oriented TTL cache. Implementations must treat any backend
// failure as a miss; caching is best-effort and never fails a request.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// SearchKey derives a stable cache key from the normalized search parameters.
func SearchKey(location string, interests []string, minRating float64, radiusM int) string {
	normalized := make([]string, 0, len(interests))
	for _, interest := range interests {
		interest = strings.ToLower(strings.TrimSpace(interest))
		if interest != "" {
			normalized = append(normalized, interest)
		}
	}
	return fmt.Sprintf("search:%s|%s|%.1f|%d",
		strings.ToLower(strings.TrimSpace(location)),
		strings.Join(normalized, ","),
		minRating,
		radiusM,
	)
}
