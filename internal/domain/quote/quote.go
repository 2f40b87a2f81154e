package quote

import (
	"fmt"
	"math"
	"time"
)

type Status string

const (
	StatusGenerated  Status = "Générée"
	StatusContracted Status = "Contractualisée"
)

// CanTransitionTo reports whether s may move to next. The only edge is
// Generated -> Contracted.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusGenerated && next == StatusContracted
}

type Coverage string

const (
	CoverageSubmission            Coverage = "Soumission"
	CoverageStartupAdvance        Coverage = "Avance sur démarrage"
	CoverageGoodExecution         Coverage = "Bonne exécution"
	CoverageRetentionGuarantee    Coverage = "Retenue de garantie"
	CoverageProvisional           Coverage = "Provisoire"
	CoverageInsuranceIntermediary Coverage = "Intermédiaire d'assurance"
	CoverageTravelAgency          Coverage = "Agence de voyage"
	CoverageEstablishmentFounder  Coverage = "Fondateur d'établissement"
	CoverageApprovalBond          Coverage = "Caution d'agrément"
)

var Coverages = []Coverage{
	CoverageSubmission,
	CoverageStartupAdvance,
	CoverageGoodExecution,
	CoverageRetentionGuarantee,
	CoverageProvisional,
	CoverageInsuranceIntermediary,
	CoverageTravelAgency,
	CoverageEstablishmentFounder,
	CoverageApprovalBond,
}

func ParseCoverage(s string) (Coverage, bool) {
	for _, c := range Coverages {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// AllowsLineItems is false for the professional bonds, which are quoted on a
// single amount.
func (c Coverage) AllowsLineItems() bool {
	switch c {
	case CoverageInsuranceIntermediary, CoverageTravelAgency,
		CoverageEstablishmentFounder, CoverageApprovalBond:
		return false
	}
	return true
}

// Duration is a guarantee duration in days.
type Duration int

var Durations = []Duration{30, 90, 150, 180, 365}

const DefaultDuration Duration = 365

func (d Duration) Valid() bool {
	for _, v := range Durations {
		if v == d {
			return true
		}
	}
	return false
}

func (d Duration) Label() string { return fmt.Sprintf("%d jours", int(d)) }

type Quote struct {
	ID int64

	Insured              string
	InsuredAddress       string
	Subscriber           string
	Beneficiary          string
	BeneficiaryAddress   string
	MarketLocation       string
	MarketNumber         string
	ContractingAuthority string
	FilingDate           string
	MarketObject         string
	Coverage             Coverage
	ApprovalDetail       *string

	MarketAmount float64
	Duration     Duration
	BondedAmount float64

	Premium

	QuoteDate time.Time
	Sureties  string
	Status    Status
}

// Validate checks the record invariants before it is persisted.
func (q *Quote) Validate() error {
	verr := &ValidationError{}
	if q.Insured == "" {
		verr.Add("insured", "must not be blank")
	}
	if !(q.BondedAmount > 0) {
		verr.Add("bonded_amount", "must be greater than zero")
	}
	if _, ok := ParseCoverage(string(q.Coverage)); !ok {
		verr.Add("coverage", fmt.Sprintf("unknown coverage %q", q.Coverage))
	}
	if !q.Duration.Valid() {
		verr.Add("duration", fmt.Sprintf("unsupported duration %d", int(q.Duration)))
	}
	if q.ApprovalDetail != nil && q.Coverage != CoverageApprovalBond {
		verr.Add("approval_detail", "only allowed for "+string(CoverageApprovalBond))
	}
	if !q.Premium.Consistent() {
		verr.Add("premium", "gross premium does not match its components")
	}
	return verr.OrNil()
}

type LineItem struct {
	ID          int64
	QuoteID     int64
	Number      string
	Amount      float64
	Description string
}

// SumLineItems is the bonded amount implied by a lot breakdown.
func SumLineItems(items []LineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Amount
	}
	return total
}

const premiumTolerance = 1e-6

// Consistent reports whether the premium obeys the gross and tax identities.
func (p Premium) Consistent() bool {
	base := p.NetPremium + p.AccessoryFee + p.AnalysisFee
	return math.Abs(p.Tax-TaxRate*base) <= premiumTolerance*math.Max(1, base) &&
		math.Abs(p.GrossPremium-(base+p.Tax)) <= premiumTolerance*math.Max(1, base)
}
