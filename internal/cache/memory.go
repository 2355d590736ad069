package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps entries in process with a fixed TTL.
type MemoryStore struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewMemoryStore creates an in-process cache. Expired entries are purged at
// twice the TTL interval.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryStore{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	value, found := s.cache.Get(key)
	if !found {
		return nil, false
	}
	data, ok := value.([]byte)
	return data, ok
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) {
	s.cache.Set(key, value, s.ttl)
}

var _ Store = (*MemoryStore)(nil)
