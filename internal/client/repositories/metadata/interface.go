// Package metadata is the durable key/value slot behind the credential store.
// Two implementations exist: SQLite (a file next to the CLI) and Redis (a
// slot shared between several CLI instances).
package metadata

import "context"

// Repository stores opaque values by key.
//
// Get returns (nil, nil) for a missing key. SetMany writes all pairs or none.
// Delete ignores keys that do not exist.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
}
