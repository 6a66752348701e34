package cache

import (
	"context"
	"errors"

	"github.com/goliatone/go-projectinfo/internal/cacheinfra"
)

// ErrInvalidResultType is returned when a cached value cannot be decoded into
// the type the caller asked for.
var ErrInvalidResultType = cacheinfra.ErrDecode

// KeySerializer builds the cache key stored for a logical key name.
// It is responsible for producing stable keys across calls.
type KeySerializer interface {
	SerializeKey(name string) string
}

// FetchFn is the function signature GetOrFetch expects when fetching from the source of truth.
type FetchFn[T any] func(ctx context.Context) (T, error)

// Cache is the key-value cache the service keeps derived copies in.
// Values are stored by copy: Get decodes into dest, it never aliases what Set received.
type Cache interface {
	HasKey(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// GetOrFetch returns the value cached under key. On a miss it calls fetchFn,
// stores the result under key and returns it. Errors from either side are
// returned as is; a failed fetch leaves the cache untouched.
func GetOrFetch[T any](ctx context.Context, c Cache, key string, fetchFn FetchFn[T]) (T, error) {
	var zero T

	ok, err := c.HasKey(ctx, key)
	if err != nil {
		return zero, err
	}

	if ok {
		var cached T
		found, err := c.Get(ctx, key, &cached)
		if err != nil {
			return zero, err
		}
		// the entry can vanish between HasKey and Get, fall through to the source
		if found {
			return cached, nil
		}
	}

	value, err := fetchFn(ctx)
	if err != nil {
		return zero, err
	}

	if err := c.Set(ctx, key, value); err != nil {
		return zero, err
	}

	return value, nil
}

// IsInvalidResultType reports whether err came from decoding a cached value.
func IsInvalidResultType(err error) bool {
	return errors.Is(err, ErrInvalidResultType)
}
