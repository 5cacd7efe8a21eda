// Package ledger holds the authoritative ordered collection of transaction
// records. It owns ID assignment and supplies filtered, sorted views; all
// derived figures live in the stats package.
package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

// Ledger is an in-memory ordered transaction collection. It is not safe for
// concurrent use; the app controller serializes access.
type Ledger struct {
	items []core.Transaction
}

// Filter selects a subset of the ledger. Zero values match everything, so
// the empty Filter returns the whole ledger.
type Filter struct {
	Search   string
	Type     core.TransactionType
	Category string
}

func New() *Ledger {
	return &Ledger{}
}

// Add validates the input, assigns a fresh unique ID and creation timestamp,
// and appends the record. UUIDs keep IDs pairwise distinct even when two
// calls land in the same millisecond.
func (l *Ledger) Add(in core.TransactionInput) (core.Transaction, error) {
	if err := in.Validate(); err != nil {
		return core.Transaction{}, err
	}
	tx := core.Transaction{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Amount:    in.Amount,
		Type:      in.Type,
		Category:  in.Category,
		Date:      in.Date,
		CreatedAt: time.Now(),
	}
	l.items = append(l.items, tx)
	return tx, nil
}

// Update replaces the record whose ID matches, keeping its position and
// original CreatedAt. A stale ID is reported as core.ErrNotFound rather than
// silently ignored.
func (l *Ledger) Update(tx core.Transaction) error {
	if err := tx.Input().Validate(); err != nil {
		return err
	}
	for i, existing := range l.items {
		if existing.ID == tx.ID {
			tx.CreatedAt = existing.CreatedAt
			l.items[i] = tx
			return nil
		}
	}
	return core.ErrNotFound
}

// Remove deletes the record with the given ID.
func (l *Ledger) Remove(id string) error {
	for i, tx := range l.items {
		if tx.ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

// Get returns the transaction with the given ID.
func (l *Ledger) Get(id string) (core.Transaction, error) {
	for _, tx := range l.items {
		if tx.ID == id {
			return tx, nil
		}
	}
	return core.Transaction{}, core.ErrNotFound
}

// All returns a copy of the ledger in insertion order.
func (l *Ledger) All() []core.Transaction {
	out := make([]core.Transaction, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Ledger) Len() int {
	return len(l.items)
}

// Filter returns the matching transactions sorted most-recently-created
// first. The three predicates are ANDed: case-insensitive substring match on
// the title, exact type, exact category. The sort is stable so records
// created at the same instant keep their original relative order.
func (l *Ledger) Filter(f Filter) []core.Transaction {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]core.Transaction, 0, len(l.items))
	for _, tx := range l.items {
		if search != "" && !strings.Contains(strings.ToLower(tx.Title), search) {
			continue
		}
		if f.Type != "" && tx.Type != f.Type {
			continue
		}
		if f.Category != "" && tx.Category != f.Category {
			continue
		}
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Categories returns the distinct category labels present in the ledger, in
// first-encountered order, for the filter dropdown.
func (l *Ledger) Categories() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, tx := range l.items {
		if _, ok := seen[tx.Category]; ok {
			continue
		}
		seen[tx.Category] = struct{}{}
		out = append(out, tx.Category)
	}
	return out
}

// Replace swaps in a loaded snapshot, used once at startup. Records with
// duplicate IDs are dropped beyond the first occurrence so the uniqueness
// invariant holds even against a corrupted snapshot.
func (l *Ledger) Replace(items []core.Transaction) {
	seen := make(map[string]struct{}, len(items))
	l.items = l.items[:0]
	for _, tx := range items {
		if _, ok := seen[tx.ID]; ok {
			continue
		}
		seen[tx.ID] = struct{}{}
		l.items = append(l.items, tx)
	}
}
