// Package cache provides the key-value cache contract used by the project info
// service, its backends and key serialization.
//
// # Overview
//
// This package exports:
//
//   - Cache: has-key, get, set and delete over string keys
//   - GetOrFetch: a type-safe read-through helper built on Cache
//   - KeySerializer: builds stable, optionally namespaced, cache keys
//   - Instrumented: a Cache decorator that counts operations in Prometheus
//
// # Basic Usage
//
//	c, closeFn, err := cache.NewCache(cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer closeFn()
//
//	list, err := cache.GetOrFetch(ctx, c, "projectinfoPojoList_", func(ctx context.Context) ([]projectinfo.ProjectInfo, error) {
//		return store.FindAll(ctx)
//	})
//
// # Backends
//
// Two backends are available through Config.Backend:
//
//   - memory: an in-process sturdyc client. sturdyc always expires entries, the
//     default TTL is one year so that entries effectively live until deleted.
//   - redis: a go-redis client. Entries are written without expiration.
//
// Both backends store msgpack encoded bytes, so values read back are always
// fresh copies and mutating them does not change what is cached.
//
// # Consistency
//
// The cache is not transactional. Between a miss and the following Set another
// caller may delete the key, so a stale listing can be written back. Callers
// accept this race; nothing in this package locks around read-through.
package cache
