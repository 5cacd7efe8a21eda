package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// handleTransactions serves the collection: GET lists (with optional filter
// query parameters), POST records a new transaction.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		MethodNotAllowedError("GET, POST").Write(w)
	}
}

// handleTransactionByID serves a single record: PUT replaces it, DELETE
// removes it.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		NotFoundError("transaction not found").Write(w)
		return
	}

	switch r.Method {
	case http.MethodGet:
		tx, err := s.app.Transaction(id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		NewResponse().JSON(map[string]any{"transaction": tx}).Write(w)
	case http.MethodPut:
		s.updateTransaction(w, r, id)
	case http.MethodDelete:
		if err := s.app.DeleteTransaction(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		MethodNotAllowedError("GET, PUT, DELETE").Write(w)
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	transactions := s.app.Transactions(parseFilter(r))
	NewResponse().JSON(map[string]any{"transactions": transactions}).Write(w)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	input, err := parseTransactionInput(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	tx, err := s.app.AddTransaction(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	NewResponse().
		Status(http.StatusCreated).
		JSON(map[string]any{"transaction": tx}).
		Write(w)
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request, id string) {
	input, err := parseTransactionInput(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	tx := core.Transaction{
		ID:       id,
		Title:    input.Title,
		Amount:   input.Amount,
		Type:     input.Type,
		Category: input.Category,
		Date:     input.Date,
	}
	if err := s.app.UpdateTransaction(r.Context(), tx); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := s.app.Transaction(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewResponse().JSON(map[string]any{"transaction": updated}).Write(w)
}

// parseTransactionInput reads the submitted fields; the amount arrives as a
// decimal string ("12.34") and is converted to cents at the boundary.
func parseTransactionInput(r *http.Request) (core.TransactionInput, error) {
	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		return core.TransactionInput{}, err
	}

	input := core.TransactionInput{
		Title:    parser.Get("title"),
		Type:     core.TransactionType(parser.Get("type")),
		Category: parser.Get("category"),
		Date:     parser.Get("date"),
	}
	if raw := parser.Get("amount"); raw != "" {
		cents, err := core.ParseDecimalToCents(raw)
		if err == nil {
			input.Amount = core.Money{Cents: cents}
		}
		// A malformed amount leaves Cents at zero and fails field
		// validation with the rest of the input.
	}
	return input, nil
}

// writeError maps domain errors to HTTP responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var fe core.FieldErrors
	switch {
	case errors.As(err, &fe):
		ValidationFailed(fe).Write(w)
	case errors.Is(err, core.ErrNotFound):
		NotFoundError("not found").Write(w)
	case errors.Is(err, core.ErrInvalidAmount):
		UnprocessableEntityError("amount must be greater than 0").Write(w)
	case errors.Is(err, core.ErrEmptyCategory):
		UnprocessableEntityError("category is required").Write(w)
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			log.FieldComponent, log.ComponentHTTP,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldError, err)
		InternalServerError("internal error").Write(w)
	}
}
