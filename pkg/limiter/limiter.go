package limiter

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterStore manages per-farmer rate limiters: farmer_id -> rate limiter
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *RateLimiterStore) GetLimiter(farmerID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[farmerID]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[farmerID] = limiter
	}
	return limiter
}

func (s *RateLimiterStore) SetLimiter(farmerID string, farmerRate rate.Limit, farmerBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[farmerID] = rate.NewLimiter(farmerRate, farmerBurst)
}

// Allow reports whether one more dashboard read for farmerID fits its budget.
func (s *RateLimiterStore) Allow(farmerID string) bool {
	return s.GetLimiter(farmerID).Allow()
}

func (s *RateLimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}
