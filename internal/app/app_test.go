package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/store"
)

// failingStore rejects the first n writes, then delegates to a memory store.
type failingStore struct {
	*store.MemoryStore
	failures int
}

func (s *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failures > 0 {
		s.failures--
		return errors.New("quota exceeded")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func newApp(t *testing.T) (*App, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemory()
	a := New(s)
	if err := a.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return a, s
}

func paycheck() core.TransactionInput {
	return core.TransactionInput{
		Title:    "Paycheck",
		Amount:   core.Money{Cents: 100000},
		Type:     core.Income,
		Category: "Salary",
		Date:     "2024-01-01",
	}
}

func groceries(cents int64) core.TransactionInput {
	return core.TransactionInput{
		Title:    "Groceries",
		Amount:   core.Money{Cents: cents},
		Type:     core.Expense,
		Category: "Food & Dining",
		Date:     "2024-01-02",
	}
}

func TestLoadEmptyStore(t *testing.T) {
	a, _ := newApp(t)
	if len(a.Transactions(ledger.Filter{})) != 0 {
		t.Fatalf("expected empty ledger")
	}
	if len(a.Budgets()) != 0 {
		t.Fatalf("expected empty budgets")
	}
	if a.Theme() {
		t.Fatalf("expected light theme default")
	}
	s := a.Summary()
	if s.Balance.Cents != 0 {
		t.Fatalf("expected zero balance, got %d", s.Balance.Cents)
	}
}

func TestAddTransactionUpdatesSummary(t *testing.T) {
	a, _ := newApp(t)
	ctx := context.Background()

	if _, err := a.AddTransaction(ctx, paycheck()); err != nil {
		t.Fatalf("add: %v", err)
	}
	s := a.Summary()
	if s.Income.Cents != 100000 || s.Balance.Cents != 100000 {
		t.Fatalf("expected income and balance 100000, got %+v", s)
	}
}

func TestPersistAndReload(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	a := New(s)
	if err := a.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	tx, err := a.AddTransaction(ctx, groceries(15000))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := a.UpsertBudget(ctx, "Food & Dining", core.Money{Cents: 10000}); err != nil {
		t.Fatalf("upsert budget: %v", err)
	}
	if err := a.SetTheme(ctx, true); err != nil {
		t.Fatalf("set theme: %v", err)
	}

	// Fresh App against the same store sees the identical snapshot.
	b := New(s)
	if err := b.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	txs := b.Transactions(ledger.Filter{})
	if len(txs) != 1 || txs[0].ID != tx.ID || txs[0].Amount.Cents != 15000 {
		t.Fatalf("transactions not round-tripped: %+v", txs)
	}
	budgets := b.Budgets()
	if len(budgets) != 1 || budgets[0].Amount.Cents != 10000 {
		t.Fatalf("budgets not round-tripped: %+v", budgets)
	}
	if budgets[0].Spent.Cents != 15000 {
		t.Fatalf("spent must be recomputed from reloaded ledger, got %d", budgets[0].Spent.Cents)
	}
	if !b.Theme() {
		t.Fatalf("theme not round-tripped")
	}
}

func TestBudgetsAlwaysMaterializedFresh(t *testing.T) {
	a, _ := newApp(t)
	ctx := context.Background()

	a.UpsertBudget(ctx, "Food & Dining", core.Money{Cents: 10000})
	tx, err := a.AddTransaction(ctx, groceries(15000))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	budgets := a.Budgets()
	if budgets[0].Spent.Cents != 15000 {
		t.Fatalf("expected spent 15000, got %d", budgets[0].Spent.Cents)
	}

	// Deleting the only expense in the category drops spent to zero on the
	// next read without any recalculate call.
	if err := a.DeleteTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	budgets = a.Budgets()
	if budgets[0].Spent.Cents != 0 {
		t.Fatalf("expected spent 0 after delete, got %d", budgets[0].Spent.Cents)
	}
}

func TestStaleReferencesSurface(t *testing.T) {
	a, _ := newApp(t)
	ctx := context.Background()

	ghost := core.Transaction{
		ID:       "gone",
		Title:    "ghost",
		Amount:   core.Money{Cents: 100},
		Type:     core.Expense,
		Category: "Other",
		Date:     "2024-01-01",
	}
	if err := a.UpdateTransaction(ctx, ghost); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := a.DeleteTransaction(ctx, "gone"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
	if err := a.DeleteBudget(ctx, "gone"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("delete budget: expected ErrNotFound, got %v", err)
	}
}

func TestPersistRetriesTransientFailure(t *testing.T) {
	fs := &failingStore{MemoryStore: store.NewMemory(), failures: 2}
	a := New(fs)
	ctx := context.Background()
	if err := a.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	// Two failures are within the retry budget; the write succeeds.
	if _, err := a.AddTransaction(ctx, paycheck()); err != nil {
		t.Fatalf("expected retry to absorb transient failures, got %v", err)
	}
}

func TestPersistFailureIsSurfaced(t *testing.T) {
	fs := &failingStore{MemoryStore: store.NewMemory(), failures: 100}
	a := New(fs)
	ctx := context.Background()
	if err := a.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	tx, err := a.AddTransaction(ctx, paycheck())
	if err == nil {
		t.Fatalf("expected persist failure to surface")
	}
	// The in-memory record stands; the next successful mutation rewrites
	// the full collection.
	if tx.ID == "" {
		t.Fatalf("expected the applied record back alongside the error")
	}
	if len(a.Transactions(ledger.Filter{})) != 1 {
		t.Fatalf("in-memory state must stand after persist failure")
	}
}

func TestLoadCorruptPayloadFails(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()
	s.Set(ctx, store.KeyTransactions, []byte(`{not json`))
	a := New(s)
	err := a.Load(ctx)
	if err == nil || !strings.Contains(err.Error(), "decode transactions") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestUsedCategories(t *testing.T) {
	a, _ := newApp(t)
	ctx := context.Background()
	a.AddTransaction(ctx, groceries(100))
	a.AddTransaction(ctx, paycheck())
	got := a.UsedCategories()
	if len(got) != 2 || got[0] != "Food & Dining" || got[1] != "Salary" {
		t.Fatalf("unexpected categories: %v", got)
	}
}
