package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"leadway/caution_backend/internal/domain/quote"
)

const (
	tableQuotes    = "cotations"
	tableLineItems = "lots"
	tablePolicies  = "polices"

	dateLayout = "2006-01-02"
)

type quoteRow struct {
	ID                   int64   `json:"id,omitempty"`
	Insured              string  `json:"assure"`
	Subscriber           string  `json:"souscripteur"`
	Beneficiary          string  `json:"beneficiaire"`
	BeneficiaryAddress   string  `json:"adresse_beneficiaire"`
	InsuredAddress       string  `json:"adresse"`
	MarketLocation       string  `json:"situation_geo"`
	MarketNumber         string  `json:"num_marche"`
	ContractingAuthority string  `json:"autorite"`
	FilingDate           string  `json:"date_depot"`
	MarketObject         string  `json:"objet"`
	Coverage             string  `json:"couverture"`
	ApprovalDetail       *string `json:"detail_agrement,omitempty"`
	MarketAmount         float64 `json:"montant_marche"`
	Duration             int     `json:"duree"`
	BondedAmount         float64 `json:"montant_caution"`
	NetPremium           float64 `json:"prime_nette"`
	AnalysisFee          float64 `json:"frais_analyse"`
	AccessoryFee         float64 `json:"accessoires"`
	Tax                  float64 `json:"taxes"`
	GrossPremium         float64 `json:"prime_ttc"`
	QuoteDate            string  `json:"date_cotation"`
	Sureties             string  `json:"suretes_text"`
	Status               string  `json:"statut"`
}

type lineItemRow struct {
	ID          int64   `json:"id,omitempty"`
	QuoteID     int64   `json:"cotation_id"`
	Number      string  `json:"lot_num"`
	Amount      float64 `json:"montant"`
	Description string  `json:"designation"`
}

type policyRow struct {
	ID            int64  `json:"id,omitempty"`
	QuoteID       int64  `json:"cotation_id"`
	Number        string `json:"police_num"`
	IssueDate     string `json:"date_emission"`
	EffectDate    string `json:"date_effet"`
	ExpiryDate    string `json:"date_echeance"`
	DurationLabel string `json:"duree_police"`
}

type idRow struct {
	ID int64 `json:"id"`
}

func toQuoteRow(q *quote.Quote) quoteRow {
	return quoteRow{
		Insured:              q.Insured,
		Subscriber:           q.Subscriber,
		Beneficiary:          q.Beneficiary,
		BeneficiaryAddress:   q.BeneficiaryAddress,
		InsuredAddress:       q.InsuredAddress,
		MarketLocation:       q.MarketLocation,
		MarketNumber:         q.MarketNumber,
		ContractingAuthority: q.ContractingAuthority,
		FilingDate:           q.FilingDate,
		MarketObject:         q.MarketObject,
		Coverage:             string(q.Coverage),
		ApprovalDetail:       q.ApprovalDetail,
		MarketAmount:         q.MarketAmount,
		Duration:             int(q.Duration),
		BondedAmount:         q.BondedAmount,
		NetPremium:           q.NetPremium,
		AnalysisFee:          q.AnalysisFee,
		AccessoryFee:         q.AccessoryFee,
		Tax:                  q.Tax,
		GrossPremium:         q.GrossPremium,
		QuoteDate:            q.QuoteDate.Format(time.RFC3339),
		Sureties:             q.Sureties,
		Status:               string(q.Status),
	}
}

func (r quoteRow) toQuote() *quote.Quote {
	q := &quote.Quote{
		ID:                   r.ID,
		Insured:              r.Insured,
		InsuredAddress:       r.InsuredAddress,
		Subscriber:           r.Subscriber,
		Beneficiary:          r.Beneficiary,
		BeneficiaryAddress:   r.BeneficiaryAddress,
		MarketLocation:       r.MarketLocation,
		MarketNumber:         r.MarketNumber,
		ContractingAuthority: r.ContractingAuthority,
		FilingDate:           r.FilingDate,
		MarketObject:         r.MarketObject,
		Coverage:             quote.Coverage(r.Coverage),
		ApprovalDetail:       r.ApprovalDetail,
		MarketAmount:         r.MarketAmount,
		Duration:             quote.Duration(r.Duration),
		BondedAmount:         r.BondedAmount,
		Premium: quote.Premium{
			NetPremium:       r.NetPremium,
			BaseAccessoryFee: quote.BaseAccessoryFee(r.NetPremium),
			AccessoryFee:     r.AccessoryFee,
			AnalysisFee:      r.AnalysisFee,
			Tax:              r.Tax,
			GrossPremium:     r.GrossPremium,
		},
		QuoteDate: parseTimestamp(r.QuoteDate),
		Sureties:  r.Sureties,
		Status:    quote.Status(r.Status),
	}
	return q
}

// parseTimestamp accepts what PostgREST returns for timestamptz, timestamp
// and date columns.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", dateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Store implements the quote store over the cotations, lots and polices
// tables.
type Store struct {
	c *Client
}

func NewStore(c *Client) *Store {
	return &Store{c: c}
}

func (s *Store) InsertQuote(ctx context.Context, q *quote.Quote) (int64, error) {
	var rows []idRow
	err := s.c.rest(ctx, request{
		method: http.MethodPost,
		path:   tableQuotes,
		query:  url.Values{"select": {"id"}},
		body:   toQuoteRow(q),
		prefer: "return=representation",
	}, &rows)
	if err != nil {
		return 0, fmt.Errorf("insert quote: %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("insert quote: %w: empty insert response", quote.ErrStorage)
	}
	return rows[0].ID, nil
}

func (s *Store) InsertLineItems(ctx context.Context, quoteID int64, items []quote.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]lineItemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, lineItemRow{
			QuoteID:     quoteID,
			Number:      it.Number,
			Amount:      it.Amount,
			Description: it.Description,
		})
	}
	err := s.c.rest(ctx, request{
		method: http.MethodPost,
		path:   tableLineItems,
		body:   rows,
		prefer: "return=minimal",
	}, nil)
	if err != nil {
		return fmt.Errorf("insert lots of quote %d: %w", quoteID, err)
	}
	return nil
}

func (s *Store) InsertPolicy(ctx context.Context, p quote.Policy) (int64, error) {
	var rows []idRow
	err := s.c.rest(ctx, request{
		method: http.MethodPost,
		path:   tablePolicies,
		query:  url.Values{"select": {"id"}},
		body: policyRow{
			QuoteID:       p.QuoteID,
			Number:        p.Number,
			IssueDate:     p.IssueDate.Format(dateLayout),
			EffectDate:    p.EffectDate.Format(dateLayout),
			ExpiryDate:    p.ExpiryDate.Format(dateLayout),
			DurationLabel: p.DurationLabel,
		},
		prefer: "return=representation",
	}, &rows)
	if err != nil {
		return 0, fmt.Errorf("insert policy %s: %w", p.Number, err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("insert policy %s: %w: empty insert response", p.Number, quote.ErrStorage)
	}
	return rows[0].ID, nil
}

// PolicyForQuote returns the policy linked to quoteID.
func (s *Store) PolicyForQuote(ctx context.Context, quoteID int64) (quote.Policy, error) {
	var rows []policyRow
	err := s.c.rest(ctx, request{
		method: http.MethodGet,
		path:   tablePolicies,
		query: url.Values{
			"select":      {"*"},
			"cotation_id": {"eq." + strconv.FormatInt(quoteID, 10)},
			"limit":       {"1"},
		},
	}, &rows)
	if err != nil {
		return quote.Policy{}, fmt.Errorf("get policy of quote %d: %w", quoteID, err)
	}
	if len(rows) == 0 {
		return quote.Policy{}, fmt.Errorf("policy of quote %d: %w", quoteID, quote.ErrNotFound)
	}
	r := rows[0]
	return quote.Policy{
		ID:            r.ID,
		QuoteID:       r.QuoteID,
		Number:        r.Number,
		IssueDate:     parseTimestamp(r.IssueDate),
		EffectDate:    parseTimestamp(r.EffectDate),
		ExpiryDate:    parseTimestamp(r.ExpiryDate),
		DurationLabel: r.DurationLabel,
	}, nil
}

// UpdateQuoteStatus only patches the row while it is still in from.
func (s *Store) UpdateQuoteStatus(ctx context.Context, quoteID int64, from, to quote.Status) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%s -> %s: %w", from, to, quote.ErrInvalidTransition)
	}
	var rows []idRow
	err := s.c.rest(ctx, request{
		method: http.MethodPatch,
		path:   tableQuotes,
		query: url.Values{
			"id":     {"eq." + strconv.FormatInt(quoteID, 10)},
			"statut": {"eq." + string(from)},
			"select": {"id"},
		},
		body:   map[string]string{"statut": string(to)},
		prefer: "return=representation",
	}, &rows)
	if err != nil {
		return fmt.Errorf("update status of quote %d: %w", quoteID, err)
	}
	if len(rows) > 0 {
		return nil
	}

	current, err := s.GetQuote(ctx, quoteID)
	if err != nil {
		return err
	}
	return fmt.Errorf("quote %d is %s: %w", quoteID, current.Status, quote.ErrInvalidTransition)
}

func (s *Store) GetQuote(ctx context.Context, id int64) (*quote.Quote, error) {
	var rows []quoteRow
	err := s.c.rest(ctx, request{
		method: http.MethodGet,
		path:   tableQuotes,
		query: url.Values{
			"select": {"*"},
			"id":     {"eq." + strconv.FormatInt(id, 10)},
			"limit":  {"1"},
		},
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("get quote %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("quote %d: %w", id, quote.ErrNotFound)
	}
	return rows[0].toQuote(), nil
}

func (s *Store) ListLineItems(ctx context.Context, quoteID int64) ([]quote.LineItem, error) {
	var rows []lineItemRow
	err := s.c.rest(ctx, request{
		method: http.MethodGet,
		path:   tableLineItems,
		query: url.Values{
			"select":      {"id,cotation_id,lot_num,montant,designation"},
			"cotation_id": {"eq." + strconv.FormatInt(quoteID, 10)},
			"order":       {"id.asc"},
		},
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("list lots of quote %d: %w", quoteID, err)
	}
	out := make([]quote.LineItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, quote.LineItem{
			ID:          r.ID,
			QuoteID:     r.QuoteID,
			Number:      r.Number,
			Amount:      r.Amount,
			Description: r.Description,
		})
	}
	return out, nil
}

func (s *Store) Ping(ctx context.Context) error {
	var rows []idRow
	err := s.c.rest(ctx, request{
		method: http.MethodGet,
		path:   tableQuotes,
		query:  url.Values{"select": {"id"}, "limit": {"1"}},
	}, &rows)
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
