package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"leadway/caution_backend/internal/domain/quote"
	"leadway/caution_backend/internal/service/caution"
)

type errorResponse struct {
	Error   string             `json:"error"`
	Message string             `json:"message"`
	Fields  []quote.FieldError `json:"fields,omitempty"`
	QuoteID int64              `json:"quote_id,omitempty"`
	Stage   string             `json:"stage,omitempty"`

	PolicyNumber string `json:"policy_number,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, resp errorResponse) {
	writeJSON(w, status, resp)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: msg})
}

// writeServiceError maps domain and storage failures to HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr    *quote.ValidationError
		partial *caution.PartialFailureError
	)
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, errorResponse{
			Error: "validation_failed", Message: "the quote form is invalid", Fields: verr.Fields,
		})
	case errors.Is(err, caution.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, errorResponse{
			Error: "session_not_found", Message: "no quote has been generated in this session",
		})
	case errors.As(err, &partial):
		slog.ErrorContext(r.Context(), "partial persistence failure",
			"stage", partial.Stage, "quote_id", partial.QuoteID, "err", partial.Err)
		resp := errorResponse{
			Error:   "partial_failure",
			Message: partial.Error(),
			QuoteID: partial.QuoteID,
			Stage:   string(partial.Stage),
		}
		if partial.Policy != nil {
			resp.PolicyNumber = partial.Policy.Number
			w.Header().Set(HeaderPolicyNumber, partial.Policy.Number)
		}
		writeError(w, http.StatusBadGateway, resp)
	case errors.Is(err, quote.ErrDuplicateKey):
		writeError(w, http.StatusConflict, errorResponse{Error: "duplicate", Message: err.Error()})
	case errors.Is(err, quote.ErrInvalidTransition):
		writeError(w, http.StatusConflict, errorResponse{Error: "invalid_transition", Message: err.Error()})
	case errors.Is(err, quote.ErrNotFound):
		writeError(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()})
	case errors.Is(err, quote.ErrStorage):
		slog.ErrorContext(r.Context(), "storage failure", "err", err)
		writeError(w, http.StatusBadGateway, errorResponse{Error: "storage_failure", Message: "the quote store is unavailable"})
	default:
		slog.ErrorContext(r.Context(), "request failed", "err", err)
		writeError(w, http.StatusInternalServerError, errorResponse{Error: "internal", Message: "internal error"})
	}
}

// validationError turns struct tag failures into the domain validation error
// so both kinds render the same way.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &quote.ValidationError{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe), fieldMessage(fe))
	}
	return out
}

func fieldPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + fe.Param()
	case "coverage":
		return "unknown coverage"
	case "datetime":
		return "must be a date formatted " + fe.Param()
	}
	return "is invalid (" + fe.Tag() + ")"
}
