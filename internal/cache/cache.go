// Package cache provides the process-lifetime TTL cache used at the
// transport layer (fetched pages, robots.txt rulings). Nothing here is ever
// written to disk: research state does not survive the process.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Cache stores text by key until its TTL expires or the process exits.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Flush()
}

// Key derives a stable cache key from a URL.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "govbrief:v1:" + hex.EncodeToString(hash[:])
}
