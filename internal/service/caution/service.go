package caution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"leadway/caution_backend/internal/domain/quote"
	"leadway/caution_backend/internal/domain/quote/document"
	"leadway/caution_backend/internal/domain/quote/pdf"
)

var ErrSessionNotFound = errors.New("no quote in session")

// Archiver keeps a copy of every rendered document.
type Archiver interface {
	Archive(ctx context.Context, name string, data []byte) error
}

// Notifier announces issued contracts.
type Notifier interface {
	NotifyDocument(ctx context.Context, fileName, caption string, data []byte) error
}

type Deps struct {
	Store     Store
	Sessions  Sessions
	Assembler *document.Assembler
	Renderer  pdf.Generator
	Numbers   quote.PolicyNumberGenerator
	Archiver  Archiver
	Notifier  Notifier
	Now       func() time.Time
	Logger    *slog.Logger
}

type Service struct {
	store     Store
	gateway   *Gateway
	sessions  Sessions
	assembler *document.Assembler
	renderer  pdf.Generator
	numbers   quote.PolicyNumberGenerator
	archiver  Archiver
	notifier  Notifier
	now       func() time.Time
	log       *slog.Logger
}

func NewService(d Deps) *Service {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Service{
		store:     d.Store,
		gateway:   NewGateway(d.Store, d.Logger),
		sessions:  d.Sessions,
		assembler: d.Assembler,
		renderer:  d.Renderer,
		numbers:   d.Numbers,
		archiver:  d.Archiver,
		notifier:  d.Notifier,
		now:       d.Now,
		log:       d.Logger,
	}
}

type Rendered struct {
	Document *document.Document
	PDF      []byte
}

type QuoteResult struct {
	SessionID string
	Quote     *quote.Quote
	LineItems []quote.LineItem
	Rendered
}

type PolicyResult struct {
	Policy quote.Policy
	Quote  *quote.Quote
	Rendered
}

// Preview prices and renders the offer without storing anything or
// touching the session.
func (s *Service) Preview(f quote.Form) (*quote.Quote, Rendered, error) {
	q, items, err := quote.Build(f, s.now())
	if err != nil {
		return nil, Rendered{}, err
	}
	rendered, err := s.render(s.assembler.Offer(q, items))
	if err != nil {
		return nil, Rendered{}, err
	}
	return q, rendered, nil
}

// GenerateQuote builds, stores and renders a quote, then makes it the
// session's current quote. A new session id is issued when sessionID is
// empty. A storage failure clears the session.
func (s *Service) GenerateQuote(ctx context.Context, sessionID string, f quote.Form) (*QuoteResult, error) {
	q, items, err := quote.Build(f, s.now())
	if err != nil {
		return nil, err
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	id, err := s.gateway.CreateQuote(ctx, q, items)
	if err != nil {
		s.sessions.Remove(sessionID)
		return nil, err
	}

	s.sessions.Add(sessionID, &Session{
		ID:        sessionID,
		Quote:     q,
		LineItems: items,
		QuoteID:   id,
		CreatedAt: s.now(),
	})

	rendered, err := s.render(s.assembler.Offer(q, items))
	if err != nil {
		return nil, err
	}
	quotesGenerated.Inc()
	s.log.Info("quote generated", "quote_id", id, "session_id", sessionID,
		"coverage", q.Coverage, "gross_premium", q.GrossPremium)

	s.archive(ctx, fmt.Sprintf("cotations/%d_%s", id, rendered.Document.FileName), rendered)
	return &QuoteResult{SessionID: sessionID, Quote: q, LineItems: items, Rendered: rendered}, nil
}

// GeneratePolicy issues the contract for the session's quote. The session is
// cleared once the policy and status update are stored, and kept otherwise so
// the step can be triggered again.
func (s *Service) GeneratePolicy(ctx context.Context, sessionID string) (*PolicyResult, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok || sess.Quote == nil {
		return nil, fmt.Errorf("session %q: %w", sessionID, ErrSessionNotFound)
	}

	p := quote.NewPolicy(sess.QuoteID, s.numbers.Next(), s.now())
	p, err := s.gateway.CreatePolicy(ctx, sess.QuoteID, p)
	if err != nil {
		return nil, err
	}
	policiesCreated.Inc()

	q := *sess.Quote
	q.Status = quote.StatusContracted
	s.sessions.Remove(sessionID)

	rendered, err := s.render(s.assembler.ContractFor(&q, p))
	if err != nil {
		return nil, err
	}
	s.log.Info("policy issued", "quote_id", q.ID, "policy", p.Number, "variant", rendered.Document.Variant)

	s.archive(ctx, "contrats/"+rendered.Document.FileName, rendered)
	if s.notifier != nil {
		caption := fmt.Sprintf("Nouveau contrat %s\n%s\n%s", p.Number, q.Insured, q.Coverage)
		if err := s.notifier.NotifyDocument(ctx, rendered.Document.FileName, caption, rendered.PDF); err != nil {
			s.log.Warn("contract notification failed", "policy", p.Number, "err", err)
		}
	}
	return &PolicyResult{Policy: p, Quote: &q, Rendered: rendered}, nil
}

func (s *Service) ResetSession(sessionID string) {
	s.sessions.Remove(sessionID)
}

func (s *Service) Session(sessionID string) (*Session, bool) {
	return s.sessions.Get(sessionID)
}

// GetQuote loads a stored quote with its lots.
func (s *Service) GetQuote(ctx context.Context, id int64) (*quote.Quote, []quote.LineItem, error) {
	q, err := s.store.GetQuote(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.store.ListLineItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return q, items, nil
}

func (s *Service) Ready(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) render(doc *document.Document) (Rendered, error) {
	if n := len(doc.Warnings); n > 0 {
		documentWarnings.WithLabelValues(string(doc.Variant)).Add(float64(n))
		s.log.Warn("document assembled with missing assets", "file", doc.FileName, "warnings", doc.Warnings)
	}
	out, err := s.renderer.Generate(doc)
	if err != nil {
		return Rendered{}, fmt.Errorf("render %s: %w", doc.FileName, err)
	}
	return Rendered{Document: doc, PDF: out}, nil
}

func (s *Service) archive(ctx context.Context, key string, r Rendered) {
	if s.archiver == nil {
		return
	}
	if err := s.archiver.Archive(ctx, key, r.PDF); err != nil {
		s.log.Warn("document archive failed", "key", key, "err", err)
	}
}
