package cache

import "time"

// NoExpiration keeps an entry until it is overwritten or deleted.
const NoExpiration time.Duration = -1

// Cache is a key-addressed byte store. A missing, expired or unreadable entry
// is reported as a miss; callers never see the difference.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}
