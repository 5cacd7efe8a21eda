package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// parseFilter extracts the transaction list filter from query parameters.
// "all" and the empty string both mean "no constraint".
func parseFilter(r *http.Request) ledger.Filter {
	q := r.URL.Query()
	f := ledger.Filter{
		Search: strings.TrimSpace(q.Get("search")),
	}
	if typ := strings.TrimSpace(q.Get("type")); typ != "" && typ != "all" {
		f.Type = core.TransactionType(typ)
	}
	if cat := strings.TrimSpace(q.Get("category")); cat != "" && cat != "all" {
		f.Category = cat
	}
	return f
}

// sanitizeInput removes potentially dangerous characters and trims
// whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
