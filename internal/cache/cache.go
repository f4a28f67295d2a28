package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores raw API response bodies keyed by request URL.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from a fully-built request URL, query string
// included. Auth material carried in headers never reaches the key.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "insightsgpt:v1:" + hex.EncodeToString(sum[:])
}
