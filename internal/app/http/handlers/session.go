package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"leadway/caution_backend/internal/service/caution"
)

func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.Svc.Session(chi.URLParam(r, "sessionID"))
	if !ok || s.Quote == nil {
		writeServiceError(w, r, caution.ErrSessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(s))
}

// DeleteSession forgets the session's quote. Unknown sessions are not an
// error.
func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.Svc.ResetSession(chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}
