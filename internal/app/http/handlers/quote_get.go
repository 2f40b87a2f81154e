package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) GetQuote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "quoteID"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, "quote id must be a positive integer")
		return
	}

	q, items, err := h.Svc.GetQuote(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newQuoteResponse(q, items))
}
