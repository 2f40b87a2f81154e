// Package caution runs the quote and contract flows: pricing, persistence,
// document rendering and the per-user session between the two steps.
package caution

import (
	"context"

	"leadway/caution_backend/internal/domain/quote"
)

// Store holds quotes, their lots and policies. Implementations map unique
// violations to quote.ErrDuplicateKey, missing rows to quote.ErrNotFound and
// everything else to quote.ErrStorage. No call is transactional across
// another.
type Store interface {
	InsertQuote(ctx context.Context, q *quote.Quote) (int64, error)
	InsertLineItems(ctx context.Context, quoteID int64, items []quote.LineItem) error
	InsertPolicy(ctx context.Context, p quote.Policy) (int64, error)
	PolicyForQuote(ctx context.Context, quoteID int64) (quote.Policy, error)
	// UpdateQuoteStatus moves the quote from one status to the next and fails
	// with quote.ErrInvalidTransition when it is not currently in from.
	UpdateQuoteStatus(ctx context.Context, quoteID int64, from, to quote.Status) error
	GetQuote(ctx context.Context, id int64) (*quote.Quote, error)
	ListLineItems(ctx context.Context, quoteID int64) ([]quote.LineItem, error)
	Ping(ctx context.Context) error
}
