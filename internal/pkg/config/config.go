package config

import (
	"io"
	"time"
)

// Config is the read-only view of runtime settings. Keys are dotted paths
// such as "database.mongodb.url". A missing key yields the zero value.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetUint64(key string) uint64
	GetFloat64(key string) float64

	// GetSecond reads an integer number of seconds.
	GetSecond(key string) time.Duration

	// GetArray splits a comma separated value. Elements are trimmed and
	// empty elements are dropped, so an unset key yields an empty slice.
	GetArray(key string) []string
}
