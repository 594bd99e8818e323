package repository

import "context"

// IKeyValueStore is the single local namespace all persistent state lives in:
// the three study cache mappings plus the course list. Values are opaque JSON
// blobs; read-modify-write callers are not serialized against each other, so
// concurrent writers to the same key can lose updates. Accepted limitation
// given the low write concurrency of a single-user backend.
type IKeyValueStore interface {
	// Get returns the stored value or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
