// Package app owns the top-level application state: the transaction ledger,
// the budget register, and the UI theme flag. Every mutation flows through
// the App and is persisted to the store before the call returns; derived
// views are pure functions of the current snapshot, recomputed on every
// read.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"fintrack/internal/budget"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
	"fintrack/internal/stats"
	"fintrack/internal/store"
)

const (
	persistAttempts = 3
	persistBackoff  = 50 * time.Millisecond
)

// App serializes all access to the snapshot; mutation and read methods are
// safe for concurrent use.
type App struct {
	mu      sync.Mutex
	store   store.Store
	ledger  *ledger.Ledger
	budgets *budget.Register
	dark    bool
}

func New(s store.Store) *App {
	return &App{
		store:   s,
		ledger:  ledger.New(),
		budgets: budget.New(),
	}
}

// Load reads the persisted snapshot once at startup. Absent keys mean empty
// collections and the light theme; only unreadable or corrupt payloads are
// errors.
func (a *App) Load(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	data, err := a.store.Get(ctx, store.KeyTransactions)
	switch {
	case err == store.ErrKeyNotFound:
		a.ledger.Replace(nil)
	case err != nil:
		return fmt.Errorf("load transactions: %w", err)
	default:
		var items []core.Transaction
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("decode transactions: %w", err)
		}
		a.ledger.Replace(items)
	}

	data, err = a.store.Get(ctx, store.KeyBudgets)
	switch {
	case err == store.ErrKeyNotFound:
		a.budgets.Replace(nil)
	case err != nil:
		return fmt.Errorf("load budgets: %w", err)
	default:
		var items []core.Budget
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("decode budgets: %w", err)
		}
		a.budgets.Replace(items)
	}

	data, err = a.store.Get(ctx, store.KeyTheme)
	switch {
	case err == store.ErrKeyNotFound:
		a.dark = false
	case err != nil:
		return fmt.Errorf("load theme: %w", err)
	default:
		dark, err := strconv.ParseBool(string(data))
		if err != nil {
			return fmt.Errorf("decode theme: %w", err)
		}
		a.dark = dark
	}

	slog.InfoContext(ctx, "Snapshot loaded",
		log.FieldComponent, log.ComponentApp,
		"transactions", a.ledger.Len(),
		"budgets", a.budgets.Len(),
		"dark_theme", a.dark)
	return nil
}

// AddTransaction appends a new record and persists the ledger. On a persist
// failure the in-memory record stands and the error is surfaced; the next
// successful mutation rewrites the full collection.
func (a *App) AddTransaction(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := a.ledger.Add(in)
	if err != nil {
		return core.Transaction{}, err
	}
	slog.InfoContext(ctx, "Transaction added",
		log.FieldComponent, log.ComponentApp,
		log.FieldTransactionID, tx.ID,
		"title", tx.Title,
		"type", string(tx.Type),
		log.FieldAmountCents, tx.Amount.Cents,
		log.FieldCategory, tx.Category)
	if err := a.persistTransactions(ctx); err != nil {
		return tx, err
	}
	return tx, nil
}

// UpdateTransaction replaces the full record keyed by ID.
func (a *App) UpdateTransaction(ctx context.Context, tx core.Transaction) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ledger.Update(tx); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Transaction updated", log.FieldComponent, log.ComponentApp, log.FieldTransactionID, tx.ID)
	return a.persistTransactions(ctx)
}

func (a *App) DeleteTransaction(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ledger.Remove(id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Transaction deleted", log.FieldComponent, log.ComponentApp, log.FieldTransactionID, id)
	return a.persistTransactions(ctx)
}

// UpsertBudget sets the limit for a category, overwriting any existing
// budget for it.
func (a *App) UpsertBudget(ctx context.Context, category string, amount core.Money) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.budgets.Upsert(category, amount); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Budget upserted", log.FieldComponent, log.ComponentApp, log.FieldCategory, category, log.FieldAmountCents, amount.Cents)
	return a.persistBudgets(ctx)
}

func (a *App) DeleteBudget(ctx context.Context, category string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.budgets.Remove(category); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Budget deleted", log.FieldComponent, log.ComponentApp, log.FieldCategory, category)
	return a.persistBudgets(ctx)
}

// SetTheme stores the UI-only dark flag under its own key.
func (a *App) SetTheme(ctx context.Context, dark bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.dark = dark
	return a.persist(ctx, store.KeyTheme, []byte(strconv.FormatBool(dark)))
}

func (a *App) Theme() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dark
}

// Transactions returns the filtered, most-recent-first view of the ledger.
func (a *App) Transactions(f ledger.Filter) []core.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.Filter(f)
}

func (a *App) Transaction(id string) (core.Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.Get(id)
}

// Budgets returns the materialized budget sequence: spent is recomputed from
// the current ledger on every call, never carried over.
func (a *App) Budgets() []core.Budget {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.budgets.Materialize(a.ledger.All())
}

func (a *App) Summary() core.Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return stats.Summarize(a.ledger.All())
}

func (a *App) Breakdown() []core.CategoryAmount {
	a.mu.Lock()
	defer a.mu.Unlock()
	return stats.CategoryBreakdown(a.ledger.All())
}

func (a *App) TopCategories() []stats.RankedCategory {
	a.mu.Lock()
	defer a.mu.Unlock()
	return stats.TopCategories(stats.CategoryBreakdown(a.ledger.All()), stats.RankedCategories)
}

// UsedCategories lists the distinct categories present in the ledger, for
// the filter dropdown.
func (a *App) UsedCategories() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.Categories()
}

func (a *App) persistTransactions(ctx context.Context) error {
	data, err := json.Marshal(a.ledger.All())
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	return a.persist(ctx, store.KeyTransactions, data)
}

// persistBudgets writes the materialized sequence so the stored blob matches
// what the UI last saw; spent is still discarded on load.
func (a *App) persistBudgets(ctx context.Context) error {
	data, err := json.Marshal(a.budgets.Materialize(a.ledger.All()))
	if err != nil {
		return fmt.Errorf("encode budgets: %w", err)
	}
	return a.persist(ctx, store.KeyBudgets, data)
}

// persist writes through the store with capped exponential backoff. A store
// that stays unavailable surfaces the failure to the caller instead of
// letting memory and disk diverge silently.
func (a *App) persist(ctx context.Context, key string, value []byte) error {
	backoff := retry.WithMaxRetries(persistAttempts-1, retry.NewExponential(persistBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := a.store.Set(ctx, key, value); err != nil {
			slog.WarnContext(ctx, "Persist attempt failed", log.FieldComponent, log.ComponentApp, log.FieldKey, key, log.FieldError, err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "Persist failed after retries", log.FieldComponent, log.ComponentApp, log.FieldKey, key, log.FieldError, err)
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
