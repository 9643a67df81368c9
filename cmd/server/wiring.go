package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"agroalert.dev/dashboard-service/pkg/auth"
	"agroalert.dev/dashboard-service/pkg/cache"
	"agroalert.dev/dashboard-service/pkg/common"
	"agroalert.dev/dashboard-service/pkg/config"
	"agroalert.dev/dashboard-service/pkg/db"
	"agroalert.dev/dashboard-service/pkg/limiter"
	"agroalert.dev/dashboard-service/pkg/store"
)

const redisKeyPrefix = "agroalert:"

func dialector(c *config.Config) (gorm.Dialector, error) {
	switch c.DBType {
	case config.DBFile:
		return db.UseSqliteFileDialector(c.DBPath), nil
	case config.DBMemory:
		return db.UseMemorySqliteDialector(), nil
	case config.DBMysql:
		return db.UseMysqlDialector(c.MysqlDSN), nil
	}
	return nil, fmt.Errorf("unknown %s: %s", common.EnvKeyAgroDBType, c.DBType)
}

// localDB opens the process database. Only the local store type has one.
func localDB(c *config.Config) (*gorm.DB, error) {
	if c.StoreType != config.StoreLocal {
		return nil, fmt.Errorf("%s=%s has no local database", common.EnvKeyAgroStoreType, c.StoreType)
	}
	d, err := dialector(c)
	if err != nil {
		return nil, err
	}
	return db.GetInstance(d).Conn, nil
}

func newCache(ctx context.Context, c *config.Config) (cache.Cache, error) {
	switch c.CacheType {
	case config.CacheMemory:
		return cache.NewMemory(), nil
	case config.CacheRedis:
		r := cache.NewRedis(c.RedisAddr, c.RedisDB, redisKeyPrefix)
		if err := r.Ping(ctx); err != nil {
			return nil, fmt.Errorf("redis at %s: %w", c.RedisAddr, err)
		}
		return r, nil
	}
	return nil, nil
}

func newStore(ctx context.Context, c *config.Config) (store.Store, error) {
	var backend store.Backend
	switch c.StoreType {
	case config.StoreHosted:
		backend = store.NewRestBackend(c.BackendURL, c.BackendAnonKey, c.BackendTimeout)
	default:
		conn, err := localDB(c)
		if err != nil {
			return nil, err
		}
		backend = store.NewGormBackend(conn)
	}

	s := store.New(backend)
	weatherCache, err := newCache(ctx, c)
	if err != nil {
		return nil, err
	}
	if weatherCache == nil {
		return s, nil
	}
	return store.NewCachedStore(s, weatherCache, c.WeatherTTL), nil
}

func newAuth(c *config.Config) (auth.Provider, error) {
	if c.AuthType == config.AuthHosted {
		return auth.NewHostedProvider(c.BackendURL, c.BackendAnonKey, c.BackendTimeout), nil
	}
	conn, err := localDB(c)
	if err != nil {
		return nil, err
	}
	return auth.NewLocalProvider(conn, c.JWTSecret, c.SessionTTL), nil
}

func newLimiterStore(c *config.Config) *limiter.RateLimiterStore {
	common.GetLogger().Info("limiter created with:",
		zap.Float64("default_rate", c.DefaultRate),
		zap.Int("default_burst", c.DefaultBurst))
	return limiter.NewRateLimiterStore(rate.Limit(c.DefaultRate), c.DefaultBurst)
}
