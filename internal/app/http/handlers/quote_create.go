package handlers

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"leadway/caution_backend/internal/domain/quote/document"
)

const (
	HeaderSessionID        = "X-Session-ID"
	HeaderQuoteID          = "X-Quote-ID"
	HeaderPolicyNumber     = "X-Policy-Number"
	HeaderDocumentWarnings = "X-Document-Warnings"
)

// CreateQuote stores the quote, makes it the session's current one and
// returns the offer PDF.
func (h *Handlers) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req CreateQuoteRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.Svc.GenerateQuote(r.Context(), strings.TrimSpace(r.Header.Get(HeaderSessionID)), req.Form())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set(HeaderSessionID, res.SessionID)
	w.Header().Set(HeaderQuoteID, strconv.FormatInt(res.Quote.ID, 10))
	writePDF(w, res.Document, res.PDF)
}

// PreviewQuote renders the offer without storing it.
func (h *Handlers) PreviewQuote(w http.ResponseWriter, r *http.Request) {
	var req CreateQuoteRequest
	if !h.decode(w, r, &req) {
		return
	}

	_, res, err := h.Svc.Preview(req.Form())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writePDF(w, res.Document, res.PDF)
}

func writePDF(w http.ResponseWriter, doc *document.Document, pdf []byte) {
	if len(doc.Warnings) > 0 {
		w.Header().Set(HeaderDocumentWarnings, strings.Join(doc.Warnings, "; "))
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
