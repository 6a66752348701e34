package cache

import "strings"

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// defaultKeySerializer joins an optional namespace and the key name. Without
// namespace the name is returned untouched, so keys written by other services
// sharing the cache stay readable.
type defaultKeySerializer struct {
	namespace string
}

// NewDefaultKeySerializer creates a key serializer without namespace.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

// NewNamespacedKeySerializer creates a key serializer that prefixes every key
// with namespace.
func NewNamespacedKeySerializer(namespace string) KeySerializer {
	return &defaultKeySerializer{namespace: strings.TrimSpace(namespace)}
}

// SerializeKey builds a cache key from name.
func (s *defaultKeySerializer) SerializeKey(name string) string {
	if s.namespace == "" {
		return name
	}
	return s.namespace + KeySeparator + name
}
