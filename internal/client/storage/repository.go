// Package storage holds the client's durable key-value state. The session
// token lives here between process runs; everything else in the application
// is in-memory only.
package storage

import "context"

// Repository is a flat key-value store.
//
// Contract:
//   - Get returns (nil, nil) when the key is absent.
//   - Set upserts.
//   - Delete and Clear are idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
