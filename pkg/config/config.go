// Package config reads service settings from the environment and .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	z "github.com/Oudwins/zog"
	"github.com/joho/godotenv"

	"agroalert.dev/dashboard-service/pkg/common"
)

const (
	StoreLocal  = "local"
	StoreHosted = "hosted"

	DBFile   = "file"
	DBMemory = "memory"
	DBMysql  = "mysql"

	AuthLocal  = "local"
	AuthHosted = "hosted"

	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	StoreType string
	DBType    string
	DBPath    string
	MysqlDSN  string

	BackendURL     string
	BackendAnonKey string
	BackendTimeout time.Duration

	AuthType      string
	JWTSecret     string
	SessionTTL    time.Duration
	SessionCookie string

	CacheType  string
	RedisAddr  string
	RedisDB    int
	WeatherTTL time.Duration

	HTTPHostPort string
	GRPCHostPort string

	DefaultRate  float64
	DefaultBurst int
}

func Default() Config {
	return Config{
		StoreType:      StoreLocal,
		DBType:         DBFile,
		DBPath:         "agroalert.db",
		BackendTimeout: 10 * time.Second,
		AuthType:       AuthLocal,
		SessionTTL:     12 * time.Hour,
		SessionCookie:  "agroalert_session",
		CacheType:      CacheMemory,
		RedisAddr:      "127.0.0.1:6379",
		WeatherTTL:     10 * time.Minute,
		HTTPHostPort:   ":1080",
		DefaultRate:    5,
		DefaultBurst:   10,
	}
}

var configSchema = z.Struct(z.Shape{
	"StoreType":     z.String().Required().OneOf([]string{StoreLocal, StoreHosted}),
	"DBType":        z.String().Required().OneOf([]string{DBFile, DBMemory, DBMysql}),
	"AuthType":      z.String().Required().OneOf([]string{AuthLocal, AuthHosted}),
	"CacheType":     z.String().Required().OneOf([]string{CacheNone, CacheMemory, CacheRedis}),
	"SessionCookie": z.String().Min(1).Required(),
	"HTTPHostPort":  z.String().Min(1).Required(),
	"DefaultRate":   z.Float64().GT(0).Required(),
	"DefaultBurst":  z.Int().GT(0).Required(),
})

// Load applies the given .env files (or ./.env when none are named) to the
// process environment and builds the Config from it. A missing default .env
// is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// Read builds a Config from a single .env file without touching the process
// environment.
func Read(envFile string) (*Config, error) {
	values, err := godotenv.Read(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return FromLookup(func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	})
}

type parser struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (p *parser) setString(key string, dst *string) {
	if v, ok := p.lookup(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func (p *parser) setDuration(key string, dst *time.Duration) {
	var raw string
	p.setString(key, &raw)
	if raw == "" {
		return
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s, should be a duration like 30s: %w", key, err))
		return
	}
	*dst = d
}

func (p *parser) setFloat(key string, dst *float64) {
	var raw string
	p.setString(key, &raw)
	if raw == "" {
		return
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s, should be a float64 value: %w", key, err))
		return
	}
	*dst = f
}

func (p *parser) setInt(key string, dst *int) {
	var raw string
	p.setString(key, &raw)
	if raw == "" {
		return
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s, should be an int value: %w", key, err))
		return
	}
	*dst = i
}

func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	p := &parser{lookup: lookup}

	p.setString(common.EnvKeyAgroStoreType, &cfg.StoreType)
	p.setString(common.EnvKeyAgroDBType, &cfg.DBType)
	p.setString(common.EnvKeyAgroDbPath, &cfg.DBPath)
	p.setString(common.EnvKeyAgroMysqlDSN, &cfg.MysqlDSN)
	p.setString(common.EnvKeyAgroBackendURL, &cfg.BackendURL)
	p.setString(common.EnvKeyAgroBackendAnonKey, &cfg.BackendAnonKey)
	p.setDuration(common.EnvKeyAgroBackendTimeout, &cfg.BackendTimeout)
	p.setString(common.EnvKeyAgroAuthType, &cfg.AuthType)
	p.setString(common.EnvKeyAgroJWTSecret, &cfg.JWTSecret)
	p.setDuration(common.EnvKeyAgroSessionTTL, &cfg.SessionTTL)
	p.setString(common.EnvKeyAgroSessionCookie, &cfg.SessionCookie)
	p.setString(common.EnvKeyAgroCacheType, &cfg.CacheType)
	p.setString(common.EnvKeyAgroRedisAddr, &cfg.RedisAddr)
	p.setInt(common.EnvKeyAgroRedisDB, &cfg.RedisDB)
	p.setDuration(common.EnvKeyAgroWeatherTTL, &cfg.WeatherTTL)
	p.setString(common.EnvKeyAgroHttpHostPort, &cfg.HTTPHostPort)
	p.setString(common.EnvKeyAgroGrpcHostPort, &cfg.GRPCHostPort)
	p.setFloat(common.EnvKeyAgroDefaultRate, &cfg.DefaultRate)
	p.setInt(common.EnvKeyAgroDefaultBurst, &cfg.DefaultBurst)

	if len(p.errs) > 0 {
		return nil, errors.Join(p.errs...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings and the hosted backend credentials.
// Session signing settings are checked separately by ValidateSessions.
func (c *Config) Validate() error {
	if issues := configSchema.Validate(c); len(issues) > 0 {
		return fmt.Errorf("invalid configuration: %v", issues)
	}

	var errs []error
	if c.StoreType == StoreLocal && c.DBType == DBMysql && c.MysqlDSN == "" {
		errs = append(errs, fmt.Errorf("%s is required when %s=%s", common.EnvKeyAgroMysqlDSN, common.EnvKeyAgroDBType, DBMysql))
	}
	if c.StoreType == StoreHosted || c.AuthType == AuthHosted {
		if c.BackendURL == "" {
			errs = append(errs, fmt.Errorf("%s is required for the hosted backend", common.EnvKeyAgroBackendURL))
		}
		if c.BackendAnonKey == "" {
			errs = append(errs, fmt.Errorf("%s is required for the hosted backend", common.EnvKeyAgroBackendAnonKey))
		}
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", common.EnvKeyAgroSessionTTL))
	}
	if c.BackendTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", common.EnvKeyAgroBackendTimeout))
	}
	return errors.Join(errs...)
}

// ValidateSessions checks what issuing officer sessions needs: local auth
// signs tokens with AGRO_JWT_SECRET and keeps officers in the local store.
func (c *Config) ValidateSessions() error {
	if c.AuthType != AuthLocal {
		return nil
	}
	var errs []error
	if c.StoreType != StoreLocal {
		errs = append(errs, fmt.Errorf("%s=%s needs %s=%s", common.EnvKeyAgroAuthType, AuthLocal, common.EnvKeyAgroStoreType, StoreLocal))
	}
	if len(c.JWTSecret) < 16 {
		errs = append(errs, fmt.Errorf("%s must be at least 16 characters", common.EnvKeyAgroJWTSecret))
	}
	return errors.Join(errs...)
}
