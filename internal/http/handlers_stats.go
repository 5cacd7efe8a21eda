package http

import (
	"net/http"

	"fintrack/internal/core"
)

// handleSummary returns the derived views in one payload: overall totals,
// the per-category expense breakdown, and the ranked chart series.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	NewResponse().JSON(map[string]any{
		"summary":        s.app.Summary(),
		"breakdown":      s.app.Breakdown(),
		"top_categories": s.app.TopCategories(),
	}).Write(w)
}

// handleCategories returns the advisory category labels plus the categories
// actually present in the ledger. Transactions may carry categories outside
// the advisory lists.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	NewResponse().JSON(map[string]any{
		"expense": core.ExpenseCategories,
		"income":  core.IncomeCategories,
		"used":    s.app.UsedCategories(),
	}).Write(w)
}

// handleTheme reads or stores the UI theme preference.
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		NewResponse().JSON(map[string]any{"dark": s.app.Theme()}).Write(w)
	case http.MethodPut:
		parser := NewRequestBodyParser(r)
		if err := parser.Parse(); err != nil {
			BadRequestError(err.Error()).Write(w)
			return
		}
		if !parser.Has("dark") {
			BadRequestError("missing field: dark").Write(w)
			return
		}
		dark := parser.GetBool("dark")
		if err := s.app.SetTheme(r.Context(), dark); err != nil {
			writeError(w, r, err)
			return
		}
		NewResponse().JSON(map[string]any{"dark": dark}).Write(w)
	default:
		MethodNotAllowedError("GET, PUT").Write(w)
	}
}
