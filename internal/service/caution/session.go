package caution

import (
	"time"

	"leadway/caution_backend/internal/domain/quote"
)

// Session carries the last generated quote of one user until a contract is
// issued for it.
type Session struct {
	ID        string
	Quote     *quote.Quote
	LineItems []quote.LineItem
	QuoteID   int64
	CreatedAt time.Time
}

// Sessions is the keyed session storage, satisfied by session.Store.
type Sessions interface {
	Get(id string) (*Session, bool)
	Add(id string, s *Session)
	Remove(id string)
}
