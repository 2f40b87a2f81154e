package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"leadway/caution_backend/internal/domain/quote"
)

const quoteColumns = `id, assure, souscripteur, beneficiaire, adresse_beneficiaire, adresse,
	situation_geo, num_marche, autorite, date_depot, objet, couverture, detail_agrement,
	montant_marche, duree, montant_caution, prime_nette, frais_analyse, accessoires, taxes,
	prime_ttc, date_cotation, suretes_text, statut`

// Store implements the quote store on the same schema as the hosted
// project, talking to Postgres directly.
type Store struct {
	db *DB
}

func NewStore(db *DB) *Store {
	return &Store{db: db}
}

func (s *Store) InsertQuote(ctx context.Context, q *quote.Quote) (int64, error) {
	var id int64
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO cotations (assure, souscripteur, beneficiaire, adresse_beneficiaire, adresse,
			situation_geo, num_marche, autorite, date_depot, objet, couverture, detail_agrement,
			montant_marche, duree, montant_caution, prime_nette, frais_analyse, accessoires, taxes,
			prime_ttc, date_cotation, suretes_text, statut)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23)
		RETURNING id`,
		q.Insured, q.Subscriber, q.Beneficiary, q.BeneficiaryAddress, q.InsuredAddress,
		q.MarketLocation, q.MarketNumber, q.ContractingAuthority, q.FilingDate, q.MarketObject,
		string(q.Coverage), q.ApprovalDetail,
		q.MarketAmount, int(q.Duration), q.BondedAmount, q.NetPremium, q.AnalysisFee,
		q.AccessoryFee, q.Tax, q.GrossPremium, q.QuoteDate, q.Sureties, string(q.Status),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert quote: %w", mapError(err))
	}
	return id, nil
}

func (s *Store) InsertLineItems(ctx context.Context, quoteID int64, items []quote.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	_, err := s.db.Pool.CopyFrom(ctx,
		pgx.Identifier{"lots"},
		[]string{"cotation_id", "lot_num", "montant", "designation"},
		pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
			it := items[i]
			return []any{quoteID, it.Number, it.Amount, it.Description}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("insert lots of quote %d: %w", quoteID, mapError(err))
	}
	return nil
}

func (s *Store) InsertPolicy(ctx context.Context, p quote.Policy) (int64, error) {
	var id int64
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO polices (cotation_id, police_num, date_emission, date_effet, date_echeance, duree_police)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		p.QuoteID, p.Number, p.IssueDate, p.EffectDate, p.ExpiryDate, p.DurationLabel,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert policy %s: %w", p.Number, mapError(err))
	}
	return id, nil
}

func (s *Store) PolicyForQuote(ctx context.Context, quoteID int64) (quote.Policy, error) {
	var p quote.Policy
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, cotation_id, police_num, date_emission, date_effet, date_echeance, duree_police
		FROM polices WHERE cotation_id = $1`, quoteID,
	).Scan(&p.ID, &p.QuoteID, &p.Number, &p.IssueDate, &p.EffectDate, &p.ExpiryDate, &p.DurationLabel)
	if err != nil {
		return quote.Policy{}, fmt.Errorf("policy of quote %d: %w", quoteID, mapError(err))
	}
	return p, nil
}

func (s *Store) UpdateQuoteStatus(ctx context.Context, quoteID int64, from, to quote.Status) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%s -> %s: %w", from, to, quote.ErrInvalidTransition)
	}
	tag, err := s.db.Pool.Exec(ctx,
		`UPDATE cotations SET statut = $1 WHERE id = $2 AND statut = $3`,
		string(to), quoteID, string(from))
	if err != nil {
		return fmt.Errorf("update status of quote %d: %w", quoteID, mapError(err))
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var current string
	err = s.db.Pool.QueryRow(ctx, `SELECT statut FROM cotations WHERE id = $1`, quoteID).Scan(&current)
	if err != nil {
		return fmt.Errorf("quote %d: %w", quoteID, mapError(err))
	}
	return fmt.Errorf("quote %d is %s: %w", quoteID, current, quote.ErrInvalidTransition)
}

func (s *Store) GetQuote(ctx context.Context, id int64) (*quote.Quote, error) {
	var (
		q        quote.Quote
		coverage string
		duration int
		status   string
	)
	err := s.db.Pool.QueryRow(ctx, `SELECT `+quoteColumns+` FROM cotations WHERE id = $1`, id).Scan(
		&q.ID, &q.Insured, &q.Subscriber, &q.Beneficiary, &q.BeneficiaryAddress, &q.InsuredAddress,
		&q.MarketLocation, &q.MarketNumber, &q.ContractingAuthority, &q.FilingDate, &q.MarketObject,
		&coverage, &q.ApprovalDetail,
		&q.MarketAmount, &duration, &q.BondedAmount, &q.NetPremium, &q.AnalysisFee, &q.AccessoryFee,
		&q.Tax, &q.GrossPremium, &q.QuoteDate, &q.Sureties, &status,
	)
	if err != nil {
		return nil, fmt.Errorf("quote %d: %w", id, mapError(err))
	}
	q.Coverage = quote.Coverage(coverage)
	q.Duration = quote.Duration(duration)
	q.Status = quote.Status(status)
	q.BaseAccessoryFee = quote.BaseAccessoryFee(q.NetPremium)
	return &q, nil
}

func (s *Store) ListLineItems(ctx context.Context, quoteID int64) ([]quote.LineItem, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, cotation_id, lot_num, montant, designation
		FROM lots WHERE cotation_id = $1 ORDER BY id`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list lots of quote %d: %w", quoteID, mapError(err))
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (quote.LineItem, error) {
		var it quote.LineItem
		err := row.Scan(&it.ID, &it.QuoteID, &it.Number, &it.Amount, &it.Description)
		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("list lots of quote %d: %w", quoteID, mapError(err))
	}
	return items, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return mapError(err)
	}
	return nil
}

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return quote.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %s", quote.ErrDuplicateKey, pgErr.ConstraintName)
		case pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%w: %s", quote.ErrNotFound, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%w: %v", quote.ErrStorage, err)
}
