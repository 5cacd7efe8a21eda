package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// DateLayout is the wire format for transaction dates. The date is user
// assigned and distinct from CreatedAt, which only orders the list view.
const DateLayout = "2006-01-02"

type (
	TransactionType string

	Money struct {
		Cents int64 `json:"cents"`
	}

	Transaction struct {
		ID        string          `json:"id"`
		Title     string          `json:"title"`
		Amount    Money           `json:"amount"`
		Type      TransactionType `json:"type"`
		Category  string          `json:"category"`
		Date      string          `json:"date"` // ISO date, DateLayout
		CreatedAt time.Time       `json:"created_at"`
	}

	// TransactionInput is what the presentation boundary submits; ID and
	// CreatedAt are assigned by the ledger.
	TransactionInput struct {
		Title    string          `json:"title"`
		Amount   Money           `json:"amount"`
		Type     TransactionType `json:"type"`
		Category string          `json:"category"`
		Date     string          `json:"date"`
	}

	Budget struct {
		Category string `json:"category"`
		Amount   Money  `json:"amount"`
		// Spent is derived from the ledger on every materialization and is
		// never read back as authoritative.
		Spent Money `json:"spent"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyTitle    = errors.New("empty title")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyCategory = errors.New("empty category")
	ErrNotFound      = errors.New("not found")
)

// FieldErrors maps input field names to validation messages so the UI can
// surface them inline per field.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateDate checks that s is a parseable ISO date.
func ValidateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrInvalidDate
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// Validate reports all field-level problems at once rather than failing on
// the first, so the boundary can render every inline error in one pass.
func (in TransactionInput) Validate() error {
	fe := FieldErrors{}
	if strings.TrimSpace(in.Title) == "" {
		fe["title"] = "title is required"
	} else if len(in.Title) > 200 {
		fe["title"] = "title too long (max 200 characters)"
	}
	if in.Amount.Cents <= 0 {
		fe["amount"] = "amount must be greater than 0"
	}
	if !in.Type.Valid() {
		fe["type"] = "type must be income or expense"
	}
	if strings.TrimSpace(in.Category) == "" {
		fe["category"] = "category is required"
	}
	if err := ValidateDate(in.Date); err != nil {
		fe["date"] = "date is required in YYYY-MM-DD format"
	}
	if len(fe) > 0 {
		return fe
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("missing transaction id")
	}
	return t.Input().Validate()
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	return b.Amount.Validate()
}

// Input returns the mutable fields of a transaction, used when an edit
// replaces the full record keyed by ID.
func (t Transaction) Input() TransactionInput {
	return TransactionInput{
		Title:    t.Title,
		Amount:   t.Amount,
		Type:     t.Type,
		Category: t.Category,
		Date:     t.Date,
	}
}
