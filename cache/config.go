package cache

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-projectinfo/internal/cacheinfra"
)

// Backend names a cache implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
)

// Config exposes cache configuration options for consumers of the cache package.
type Config struct {
	Backend   Backend      `yaml:"backend"`
	Namespace string       `yaml:"namespace"`
	Memory    MemoryConfig `yaml:"memory"`
	Redis     RedisConfig  `yaml:"redis"`
}

// MemoryConfig sizes the in-process backend.
type MemoryConfig struct {
	Capacity           int           `yaml:"capacity"`
	NumShards          int           `yaml:"num_shards"`
	TTL                time.Duration `yaml:"ttl"`
	EvictionPercentage int           `yaml:"eviction_percentage"`
	EvictionInterval   time.Duration `yaml:"eviction_interval"`
}

// RedisConfig points the Redis backend at a server.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend: BackendMemory,
		Memory:  convertFromInternal(cacheinfra.DefaultConfig()),
		Redis:   RedisConfig{Addr: "localhost:6379"},
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Backend, validation.Required, validation.In(BackendMemory, BackendRedis)),
	)
	if err != nil {
		return err
	}

	switch c.Backend {
	case BackendRedis:
		return validation.ValidateStruct(&c.Redis,
			validation.Field(&c.Redis.Addr, validation.Required),
			validation.Field(&c.Redis.DB, validation.Min(0)),
		)
	default:
		return c.Memory.toInternal().Validate()
	}
}

// NewCache constructs the backend selected by cfg. The returned close
// function releases backend resources and is never nil.
func NewCache(cfg Config) (Cache, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	switch cfg.Backend {
	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return NewRedisCache(client), client.Close, nil
	case BackendMemory:
		store, err := cacheinfra.NewSturdycStore(cfg.Memory.toInternal())
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("cache: unsupported backend %q", cfg.Backend)
	}
}

// NewRedisCache wraps a caller owned Redis client.
func NewRedisCache(client redis.UniversalClient) Cache {
	return cacheinfra.NewRedisStore(client)
}

func (c MemoryConfig) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
}

func convertFromInternal(cfg cacheinfra.Config) MemoryConfig {
	return MemoryConfig{
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		TTL:                cfg.TTL,
		EvictionPercentage: cfg.EvictionPercentage,
		EvictionInterval:   cfg.EvictionInterval,
	}
}
