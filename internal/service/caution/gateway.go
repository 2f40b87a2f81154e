package caution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"leadway/caution_backend/internal/domain/quote"
)

type Stage string

const (
	StageQuote     Stage = "quote"
	StageLineItems Stage = "line_items"
	StagePolicy    Stage = "policy"
	StageStatus    Stage = "status"
)

// PartialFailureError reports a failure after an earlier write succeeded.
// Nothing is rolled back: QuoteID names the row left behind, and Policy the
// policy already stored when the status update failed.
type PartialFailureError struct {
	Stage   Stage
	QuoteID int64
	Policy  *quote.Policy
	Err     error
}

func (e *PartialFailureError) Error() string {
	if e.Policy != nil {
		return fmt.Sprintf("%s failed after quote %d and policy %s were stored: %v",
			e.Stage, e.QuoteID, e.Policy.Number, e.Err)
	}
	return fmt.Sprintf("%s failed after quote %d was stored: %v", e.Stage, e.QuoteID, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

// Gateway sequences the writes of the two flows over a Store.
type Gateway struct {
	store Store
	log   *slog.Logger
}

func NewGateway(store Store, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{store: store, log: log}
}

// CreateQuote stores q in status Generated, then its lots tagged with the new
// id. It returns the quote id.
func (g *Gateway) CreateQuote(ctx context.Context, q *quote.Quote, items []quote.LineItem) (int64, error) {
	q.Status = quote.StatusGenerated
	id, err := g.store.InsertQuote(ctx, q)
	if err != nil {
		persistenceFailures.WithLabelValues(string(StageQuote), errorKind(err)).Inc()
		g.log.Error("insert quote failed", "insured", q.Insured, "err", err)
		return 0, fmt.Errorf("insert quote: %w", err)
	}
	q.ID = id

	if len(items) == 0 {
		return id, nil
	}
	tagged := make([]quote.LineItem, len(items))
	for i, it := range items {
		it.QuoteID = id
		tagged[i] = it
	}
	if err := g.store.InsertLineItems(ctx, id, tagged); err != nil {
		persistenceFailures.WithLabelValues(string(StageLineItems), errorKind(err)).Inc()
		g.log.Error("insert line items failed, quote left without lots", "quote_id", id, "err", err)
		return id, &PartialFailureError{Stage: StageLineItems, QuoteID: id, Err: err}
	}
	copy(items, tagged)
	return id, nil
}

// CreatePolicy stores p against quoteID, then marks the quote Contracted.
// A second policy for a contracted quote fails with quote.ErrDuplicateKey and
// leaves the first one untouched. When the quote is still Generated, the
// policy already stored for it is kept and only the status update is run
// again, so a failed status update can be retried.
func (g *Gateway) CreatePolicy(ctx context.Context, quoteID int64, p quote.Policy) (quote.Policy, error) {
	p.QuoteID = quoteID
	id, err := g.store.InsertPolicy(ctx, p)
	switch {
	case err == nil:
		p.ID = id
	case errors.Is(err, quote.ErrDuplicateKey):
		stored, ok := g.pendingPolicy(ctx, quoteID)
		if !ok {
			persistenceFailures.WithLabelValues(string(StagePolicy), errorKind(err)).Inc()
			g.log.Error("insert policy failed", "quote_id", quoteID, "policy", p.Number, "err", err)
			return p, fmt.Errorf("insert policy: %w", err)
		}
		g.log.Info("resuming status update for stored policy", "quote_id", quoteID, "policy", stored.Number)
		p = stored
	default:
		persistenceFailures.WithLabelValues(string(StagePolicy), errorKind(err)).Inc()
		g.log.Error("insert policy failed", "quote_id", quoteID, "policy", p.Number, "err", err)
		return p, fmt.Errorf("insert policy: %w", err)
	}

	if err := g.store.UpdateQuoteStatus(ctx, quoteID, quote.StatusGenerated, quote.StatusContracted); err != nil {
		persistenceFailures.WithLabelValues(string(StageStatus), errorKind(err)).Inc()
		g.log.Error("quote status update failed, policy left in place",
			"quote_id", quoteID, "policy", p.Number, "err", err)
		stored := p
		return p, &PartialFailureError{Stage: StageStatus, QuoteID: quoteID, Policy: &stored, Err: err}
	}
	return p, nil
}

// pendingPolicy returns the policy stored for quoteID while the quote is still
// Generated.
func (g *Gateway) pendingPolicy(ctx context.Context, quoteID int64) (quote.Policy, bool) {
	stored, err := g.store.PolicyForQuote(ctx, quoteID)
	if err != nil {
		if !errors.Is(err, quote.ErrNotFound) {
			g.log.Warn("policy lookup failed", "quote_id", quoteID, "err", err)
		}
		return quote.Policy{}, false
	}
	q, err := g.store.GetQuote(ctx, quoteID)
	if err != nil {
		g.log.Warn("quote lookup failed", "quote_id", quoteID, "err", err)
		return quote.Policy{}, false
	}
	return stored, q.Status == quote.StatusGenerated
}
