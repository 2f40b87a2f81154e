// Package memory is a process-local store enforcing the same keys as the
// relational schema. It backs STORE_BACKEND=memory and the tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"leadway/caution_backend/internal/domain/quote"
)

type Store struct {
	mu sync.RWMutex

	nextQuote, nextItem, nextPolicy int64

	quotes         map[int64]quote.Quote
	items          map[int64][]quote.LineItem
	policies       map[int64]quote.Policy
	policyByNumber map[string]int64
	policyByQuote  map[int64]int64
}

func New() *Store {
	return &Store{
		quotes:         map[int64]quote.Quote{},
		items:          map[int64][]quote.LineItem{},
		policies:       map[int64]quote.Policy{},
		policyByNumber: map[string]int64{},
		policyByQuote:  map[int64]int64{},
	}
}

func (s *Store) InsertQuote(ctx context.Context, q *quote.Quote) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", quote.ErrStorage, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextQuote++
	row := *q
	row.ID = s.nextQuote
	if row.ApprovalDetail != nil {
		d := *row.ApprovalDetail
		row.ApprovalDetail = &d
	}
	s.quotes[row.ID] = row
	return row.ID, nil
}

func (s *Store) InsertLineItems(ctx context.Context, quoteID int64, items []quote.LineItem) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", quote.ErrStorage, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quotes[quoteID]; !ok {
		return fmt.Errorf("quote %d: %w", quoteID, quote.ErrNotFound)
	}
	for _, it := range items {
		s.nextItem++
		it.ID = s.nextItem
		it.QuoteID = quoteID
		s.items[quoteID] = append(s.items[quoteID], it)
	}
	return nil
}

func (s *Store) InsertPolicy(ctx context.Context, p quote.Policy) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", quote.ErrStorage, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quotes[p.QuoteID]; !ok {
		return 0, fmt.Errorf("quote %d: %w", p.QuoteID, quote.ErrNotFound)
	}
	if _, dup := s.policyByNumber[p.Number]; dup {
		return 0, fmt.Errorf("policy number %s: %w", p.Number, quote.ErrDuplicateKey)
	}
	if _, dup := s.policyByQuote[p.QuoteID]; dup {
		return 0, fmt.Errorf("policy for quote %d: %w", p.QuoteID, quote.ErrDuplicateKey)
	}

	s.nextPolicy++
	p.ID = s.nextPolicy
	s.policies[p.ID] = p
	s.policyByNumber[p.Number] = p.ID
	s.policyByQuote[p.QuoteID] = p.ID
	return p.ID, nil
}

func (s *Store) UpdateQuoteStatus(ctx context.Context, quoteID int64, from, to quote.Status) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", quote.ErrStorage, err)
	}
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%s -> %s: %w", from, to, quote.ErrInvalidTransition)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quotes[quoteID]
	if !ok {
		return fmt.Errorf("quote %d: %w", quoteID, quote.ErrNotFound)
	}
	if q.Status != from {
		return fmt.Errorf("quote %d is %s: %w", quoteID, q.Status, quote.ErrInvalidTransition)
	}
	q.Status = to
	s.quotes[quoteID] = q
	return nil
}

func (s *Store) GetQuote(ctx context.Context, id int64) (*quote.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", quote.ErrStorage, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quotes[id]
	if !ok {
		return nil, fmt.Errorf("quote %d: %w", id, quote.ErrNotFound)
	}
	return &q, nil
}

func (s *Store) ListLineItems(ctx context.Context, quoteID int64) ([]quote.LineItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", quote.ErrStorage, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.items[quoteID]
	out := make([]quote.LineItem, len(items))
	copy(out, items)
	return out, nil
}

// PolicyForQuote returns the policy linked to a quote.
func (s *Store) PolicyForQuote(ctx context.Context, quoteID int64) (quote.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.policyByQuote[quoteID]
	if !ok {
		return quote.Policy{}, fmt.Errorf("policy of quote %d: %w", quoteID, quote.ErrNotFound)
	}
	return s.policies[id], nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
