package http

import (
	"net/http"
	"net/url"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/stats"
)

// budgetView is a budget with its derived status attached for the UI.
type budgetView struct {
	core.Budget
	Status core.BudgetStatus `json:"status"`
}

// handleBudgets serves the budget collection: GET lists budgets with their
// spending status, POST creates or overwrites the budget for a category.
func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listBudgets(w, r)
	case http.MethodPost:
		s.upsertBudget(w, r)
	default:
		MethodNotAllowedError("GET, POST").Write(w)
	}
}

// handleBudgetByCategory removes the budget for one category. The category
// segment is URL-escaped since labels like "Food & Dining" carry reserved
// characters.
func (s *Server) handleBudgetByCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		MethodNotAllowedError("DELETE").Write(w)
		return
	}

	escaped := strings.TrimPrefix(r.URL.Path, "/api/budgets/")
	category, err := url.PathUnescape(escaped)
	if err != nil || category == "" {
		NotFoundError("budget not found").Write(w)
		return
	}

	if err := s.app.DeleteBudget(r.Context(), category); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listBudgets(w http.ResponseWriter, r *http.Request) {
	budgets := s.app.Budgets()
	views := make([]budgetView, 0, len(budgets))
	for _, b := range budgets {
		status, err := stats.StatusOf(b)
		if err != nil {
			writeError(w, r, err)
			return
		}
		views = append(views, budgetView{Budget: b, Status: status})
	}
	NewResponse().JSON(map[string]any{"budgets": views}).Write(w)
}

func (s *Server) upsertBudget(w http.ResponseWriter, r *http.Request) {
	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	category := parser.Get("category")
	var amount core.Money
	if raw := parser.Get("amount"); raw != "" {
		cents, err := core.ParseDecimalToCents(raw)
		if err != nil {
			UnprocessableEntityError("amount must be greater than 0").Write(w)
			return
		}
		amount = core.Money{Cents: cents}
	}

	if err := s.app.UpsertBudget(r.Context(), category, amount); err != nil {
		writeError(w, r, err)
		return
	}

	budgets := s.app.Budgets()
	for _, b := range budgets {
		if b.Category == strings.TrimSpace(category) {
			status, err := stats.StatusOf(b)
			if err != nil {
				writeError(w, r, err)
				return
			}
			NewResponse().
				Status(http.StatusCreated).
				JSON(map[string]any{"budget": budgetView{Budget: b, Status: status}}).
				Write(w)
			return
		}
	}
	InternalServerError("internal error").Write(w)
}
