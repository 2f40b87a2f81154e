package caution

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"leadway/caution_backend/internal/domain/quote"
)

var (
	quotesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "caution_quotes_generated_total",
		Help: "Quotes persisted and rendered.",
	})

	policiesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "caution_policies_created_total",
		Help: "Policies persisted with their quote contracted.",
	})

	persistenceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "caution_persistence_failures_total",
		Help: "Failed store operations by stage and error kind.",
	}, []string{"stage", "kind"})

	documentWarnings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "caution_document_warnings_total",
		Help: "Document elements omitted because an asset was missing.",
	}, []string{"variant"})
)

func errorKind(err error) string {
	switch {
	case errors.Is(err, quote.ErrDuplicateKey):
		return "duplicate"
	case errors.Is(err, quote.ErrValidation):
		return "validation"
	case errors.Is(err, quote.ErrNotFound):
		return "not_found"
	case errors.Is(err, quote.ErrInvalidTransition):
		return "invalid_transition"
	}
	return "storage"
}
