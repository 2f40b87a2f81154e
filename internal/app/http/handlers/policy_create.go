package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// CreatePolicy issues the contract for the session's current quote and
// returns its PDF.
func (h *Handlers) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	res, err := h.Svc.GeneratePolicy(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set(HeaderPolicyNumber, res.Policy.Number)
	w.Header().Set(HeaderQuoteID, strconv.FormatInt(res.Policy.QuoteID, 10))
	writePDF(w, res.Document, res.PDF)
}
