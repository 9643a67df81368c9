package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"agroalert.dev/dashboard-service/pkg/cache"
	"agroalert.dev/dashboard-service/pkg/common"
	"agroalert.dev/dashboard-service/pkg/models"
)

const (
	weatherKeyPrefix = "weather:location:"
	weatherAllKey    = "weather:all"
)

// CachedStore reads weather through a cache. Cache failures are logged and
// the read falls through to the wrapped Store.
type CachedStore struct {
	Store
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedStore(inner Store, c cache.Cache, ttl time.Duration) *CachedStore {
	return &CachedStore{
		Store:  inner,
		cache:  c,
		ttl:    ttl,
		logger: common.GetLoggerWith(common.LoggerNameStore, zap.String(common.LoggerFieldCategory, common.LoggerCategoryCache)),
	}
}

func (s *CachedStore) GetWeatherByLocation(ctx context.Context, locationName string) (*models.WeatherData, error) {
	key := weatherKeyPrefix + locationName

	var cached models.WeatherData
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("weather cache read failed", zap.String("key", key), zap.Error(err))
	} else if found {
		return &cached, nil
	}

	weather, err := s.Store.GetWeatherByLocation(ctx, locationName)
	if err != nil || weather == nil {
		return weather, err
	}
	if err := s.cache.Set(ctx, key, weather, s.ttl); err != nil {
		s.logger.Warn("weather cache write failed", zap.String("key", key), zap.Error(err))
	}
	return weather, nil
}

func (s *CachedStore) ListWeather(ctx context.Context) ([]models.WeatherData, error) {
	var cached []models.WeatherData
	found, err := s.cache.Get(ctx, weatherAllKey, &cached)
	if err != nil {
		s.logger.Warn("weather cache read failed", zap.String("key", weatherAllKey), zap.Error(err))
	} else if found {
		return common.NonNil(cached), nil
	}

	weather, err := s.Store.ListWeather(ctx)
	if err != nil {
		return weather, err
	}
	if err := s.cache.Set(ctx, weatherAllKey, weather, s.ttl); err != nil {
		s.logger.Warn("weather cache write failed", zap.String("key", weatherAllKey), zap.Error(err))
	}
	return weather, nil
}
