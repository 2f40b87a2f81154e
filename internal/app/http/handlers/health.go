package handlers

import (
	"context"
	"net/http"
	"time"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Ready pings the quote store.
func (h *Handlers) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Svc.Ready(ctx); err != nil {
		writeError(w, http.StatusServiceUnavailable, errorResponse{Error: "not_ready", Message: err.Error()})
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}
