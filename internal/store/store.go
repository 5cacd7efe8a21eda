// Package store implements the persistent key-value store behind the
// tracker. Values are opaque serialized blobs; the app layer owns the JSON
// codec. An absent key is reported as ErrKeyNotFound and means "empty
// collection" to callers, never a fatal condition.
package store

import (
	"context"
	"errors"
)

// The three keys the tracker persists under. They mirror the collection
// split: one blob for transactions, one for budgets, and a separate UI-only
// theme flag.
const (
	KeyTransactions = "finance-transactions"
	KeyBudgets      = "finance-budgets"
	KeyTheme        = "finance-theme"
)

var ErrKeyNotFound = errors.New("key not found")

// Store is an opaque get/set-with-serialization key-value store.
type Store interface {
	// Get returns the value for key, or ErrKeyNotFound if absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set writes the value for key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
