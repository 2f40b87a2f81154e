package quote

import (
	"math"
	"strings"
	"time"

	"leadway/caution_backend/internal/domain/locale"
)

const (
	// FilingDatePerContract replaces the filing date for every coverage but Submission.
	FilingDatePerContract = "Selon contrat"
	notAvailable          = "N/A"
)

// Form carries the raw values typed in the quotation form.
type Form struct {
	Insured            string
	InsuredAddress     string
	Subscriber         string
	Beneficiary        string
	BeneficiaryAddress string

	MarketLocation       string
	MarketNumber         string
	ContractingAuthority string
	MarketObject         string
	FilingDate           *time.Time

	Coverage       Coverage
	ApprovalDetail string
	MarketAmount   float64
	Duration       Duration

	// BondedAmount is ignored in favour of the lot total when LineItems is set,
	// unless both are given and disagree.
	BondedAmount float64
	LineItems    []LineItem

	RatePercent      float64
	ReductionPercent float64
	ExtraAccessories float64
	AnalysisFee      float64

	Sureties string
}

// Build validates the form, prices it and returns the quote record with its
// lots. The quote is in status Generated and has no ID yet.
func Build(f Form, now time.Time) (*Quote, []LineItem, error) {
	bonded, items, err := resolveBondedAmount(f)
	if err != nil {
		return nil, nil, err
	}

	premium := ComputePremium(TariffInput{
		BondedAmount:     bonded,
		RatePercent:      f.RatePercent,
		ReductionPercent: f.ReductionPercent,
		ExtraAccessories: f.ExtraAccessories,
		AnalysisFee:      f.AnalysisFee,
	})

	q := NewRecord(f, bonded, premium, now)
	if err := q.Validate(); err != nil {
		return nil, nil, err
	}
	return q, items, nil
}

// NewRecord applies the defaulting rules to a priced form.
func NewRecord(f Form, bonded float64, p Premium, now time.Time) *Quote {
	insured := strings.TrimSpace(f.Insured)
	address := strings.TrimSpace(f.InsuredAddress)

	duration := f.Duration
	if duration == 0 {
		duration = DefaultDuration
	}

	q := &Quote{
		Insured:              insured,
		InsuredAddress:       orNA(address),
		Subscriber:           firstNonBlank(f.Subscriber, insured),
		Beneficiary:          firstNonBlank(f.Beneficiary, insured),
		BeneficiaryAddress:   firstNonBlank(f.BeneficiaryAddress, orNA(address)),
		MarketLocation:       orNA(f.MarketLocation),
		MarketNumber:         orNA(f.MarketNumber),
		ContractingAuthority: orNA(f.ContractingAuthority),
		FilingDate:           FilingDatePerContract,
		MarketObject:         orNA(f.MarketObject),
		Coverage:             f.Coverage,
		MarketAmount:         f.MarketAmount,
		Duration:             duration,
		BondedAmount:         bonded,
		Premium:              p,
		QuoteDate:            now,
		Status:               StatusGenerated,
	}

	if f.Coverage == CoverageSubmission {
		filed := now
		if f.FilingDate != nil {
			filed = *f.FilingDate
		}
		q.FilingDate = locale.FrenchDate(filed)
	} else {
		q.Sureties = strings.TrimSpace(f.Sureties)
	}

	if f.Coverage == CoverageApprovalBond {
		detail := strings.TrimSpace(f.ApprovalDetail)
		q.ApprovalDetail = &detail
	}
	return q
}

func resolveBondedAmount(f Form) (float64, []LineItem, error) {
	verr := &ValidationError{}
	if strings.TrimSpace(f.Insured) == "" {
		verr.Add("insured", "must not be blank")
	}
	if f.Duration != 0 && !f.Duration.Valid() {
		verr.Add("duration", "unsupported duration")
	}
	for _, nv := range []struct {
		field string
		v     float64
	}{
		{"rate_percent", f.RatePercent},
		{"reduction_percent", f.ReductionPercent},
		{"extra_accessories", f.ExtraAccessories},
		{"analysis_fee", f.AnalysisFee},
		{"market_amount", f.MarketAmount},
	} {
		if nv.v < 0 {
			verr.Add(nv.field, "must not be negative")
		}
	}

	bonded := f.BondedAmount
	var items []LineItem
	if len(f.LineItems) > 0 {
		if !f.Coverage.AllowsLineItems() {
			verr.Add("line_items", "not allowed for "+string(f.Coverage))
		}
		items = make([]LineItem, 0, len(f.LineItems))
		for _, it := range f.LineItems {
			if it.Amount < 0 {
				verr.Add("line_items", "amount must not be negative")
			}
			items = append(items, LineItem{
				Number:      strings.TrimSpace(it.Number),
				Amount:      it.Amount,
				Description: strings.TrimSpace(it.Description),
			})
		}
		total := SumLineItems(items)
		if bonded != 0 && math.Abs(bonded-total) > premiumTolerance {
			verr.Add("bonded_amount", "does not match the sum of the line items")
		}
		bonded = total
	}
	if !(bonded > 0) {
		verr.Add("bonded_amount", "must be greater than zero")
	}
	if err := verr.OrNil(); err != nil {
		return 0, nil, err
	}
	return bonded, items, nil
}

func firstNonBlank(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}

func orNA(v string) string {
	return firstNonBlank(v, notAvailable)
}
