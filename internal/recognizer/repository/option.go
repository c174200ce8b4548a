package repository

import "time"

// Options configures a context store backend.
type Options struct {
	// TTL bounds how long an idle conversation context is retained. Zero keeps it forever
	// (memory store: until evicted by Size).
	TTL time.Duration

	// Size caps the number of contexts held by the in-memory store.
	Size int

	// KeyPrefix namespaces keys in shared backends such as Redis.
	KeyPrefix string
}

const (
	DefaultSize      = 10000
	DefaultTTL       = 24 * time.Hour
	DefaultKeyPrefix = "nlu:context:"
)

// WithDefaults fills zero fields.
func (o Options) WithDefaults() Options {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.KeyPrefix == "" {
		o.KeyPrefix = DefaultKeyPrefix
	}
	return o
}
