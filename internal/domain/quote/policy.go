package quote

import (
	"math/big"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPolicyPrefix = "3240-800"
	DefaultPolicySuffix = "25"

	// policyTermDays is added to the effect date to get the expiry date.
	policyTermDays      = 364
	PolicyDurationLabel = "365 jours"

	policyDigits = 6
)

type Policy struct {
	ID            int64
	QuoteID       int64
	Number        string
	IssueDate     time.Time
	EffectDate    time.Time
	ExpiryDate    time.Time
	DurationLabel string
}

// PolicyNumberGenerator frames six digits taken from a random UUID between a
// fixed prefix and suffix.
type PolicyNumberGenerator struct {
	Prefix  string
	Suffix  string
	NewUUID func() uuid.UUID
}

func NewPolicyNumberGenerator(prefix, suffix string) PolicyNumberGenerator {
	return PolicyNumberGenerator{Prefix: prefix, Suffix: suffix, NewUUID: uuid.New}
}

func (g PolicyNumberGenerator) Next() string {
	newUUID := g.NewUUID
	if newUUID == nil {
		newUUID = uuid.New
	}
	u := newUUID()
	digits := new(big.Int).SetBytes(u[:]).String()
	for len(digits) < policyDigits {
		digits = "0" + digits
	}
	return g.Prefix + digits[:policyDigits] + g.Suffix
}

// NewPolicy issues a policy taking effect on the issue day.
func NewPolicy(quoteID int64, number string, issued time.Time) Policy {
	day := time.Date(issued.Year(), issued.Month(), issued.Day(), 0, 0, 0, 0, issued.Location())
	return Policy{
		QuoteID:       quoteID,
		Number:        number,
		IssueDate:     day,
		EffectDate:    day,
		ExpiryDate:    day.AddDate(0, 0, policyTermDays),
		DurationLabel: PolicyDurationLabel,
	}
}
