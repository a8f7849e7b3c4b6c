// Package blob defines the key-addressed JSON document store and its
// filesystem, GCS and SQLite implementations. Keys are slash-separated
// paths like "scenarios/ab12cd34"; every document is a single JSON object.
package blob

import "context"

// Store persists JSON documents under string keys. Each Put is independently
// atomic from the caller's perspective; there is no cross-key consistency
// guarantee and concurrent writers to the same key race (last write wins).
type Store interface {
	// Put serializes doc and stores it under key, creating any parent
	// structure and overwriting unconditionally.
	Put(ctx context.Context, key string, doc any) error

	// Get loads the document under key into out. Returns
	// domain.ErrNotFound when the key does not exist.
	Get(ctx context.Context, key string, out any) error

	// List returns the raw bytes of every document whose key starts with
	// prefix, in no particular order. Entries that cannot be read are
	// skipped; decoding (and skipping undecodable documents) is the
	// caller's concern.
	List(ctx context.Context, prefix string) ([][]byte, error)

	// Close releases backend resources.
	Close() error
}
