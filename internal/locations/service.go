package locations

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cafephin/dashboard-backend/pkg/logger"
	"github.com/cafephin/dashboard-backend/pkg/redis"
	"github.com/cafephin/dashboard-backend/pkg/square"
)

// Lister is the upstream location listing.
type Lister interface {
	ListLocations(ctx context.Context) ([]square.Location, error)
}

// Cache is the small key/value surface the service needs. Satisfied by
// pkg/redis.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Service resolves the account's locations, serving from a short-lived
// cache when one is configured. Locations change rarely but are read on
// every report, so even a small TTL removes most upstream round trips.
// Every cache problem degrades to a live fetch.
type Service struct {
	upstream Lister
	cache    Cache
	ttl      time.Duration
	logger   *logger.Logger
}

// NewService wires the location resolver. A nil cache disables caching.
func NewService(upstream Lister, cache Cache, ttl time.Duration, logg *logger.Logger) *Service {
	return &Service{
		upstream: upstream,
		cache:    cache,
		ttl:      ttl,
		logger:   logg,
	}
}

func cacheKey() string {
	return redis.CacheKey("locations")
}

// List returns the account's locations in upstream order.
func (s *Service) List(ctx context.Context) ([]square.Location, error) {
	if s.cache != nil {
		if cached, ok := s.fromCache(ctx); ok {
			return cached, nil
		}
	}

	locs, err := s.upstream.ListLocations(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.store(ctx, locs)
	}
	return locs, nil
}

func (s *Service) fromCache(ctx context.Context) ([]square.Location, bool) {
	raw, err := s.cache.Get(ctx, cacheKey())
	if err != nil {
		if !redis.IsMiss(err) {
			s.warn(ctx, "location cache read failed", err)
		}
		return nil, false
	}
	var locs []square.Location
	if err := json.Unmarshal([]byte(raw), &locs); err != nil {
		s.warn(ctx, "location cache entry corrupt, refetching", err)
		return nil, false
	}
	return locs, true
}

func (s *Service) store(ctx context.Context, locs []square.Location) {
	payload, err := json.Marshal(locs)
	if err != nil {
		s.warn(ctx, "location cache encode failed", err)
		return
	}
	if err := s.cache.Set(ctx, cacheKey(), string(payload), s.ttl); err != nil {
		s.warn(ctx, "location cache write failed", err)
	}
}

func (s *Service) warn(ctx context.Context, msg string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Warn(s.logger.WithField(ctx, "error", err.Error()), msg)
}
