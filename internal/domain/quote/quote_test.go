package quote

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.March, 5, 10, 30, 0, 0, time.UTC)

func TestComputePremium_EndToEndScenario(t *testing.T) {
	p := ComputePremium(TariffInput{
		BondedAmount: 10_000_000,
		RatePercent:  0.1,
	})

	assert.InDelta(t, 10_000, p.NetPremium, 1e-6)
	assert.Equal(t, 5_000.0, p.BaseAccessoryFee)
	assert.InDelta(t, 5_000, p.AccessoryFee, 1e-6)
	assert.InDelta(t, 2_175, p.Tax, 1e-6)
	assert.InDelta(t, 17_175, p.GrossPremium, 1e-6)
}

func TestComputePremium_GrossIsSumOfParts(t *testing.T) {
	inputs := []TariffInput{
		{BondedAmount: 1, RatePercent: 0.1},
		{BondedAmount: 250_000_000, RatePercent: 1.5, ReductionPercent: 10, ExtraAccessories: 2_500, AnalysisFee: 25_000},
		{BondedAmount: 9_999_999_999, RatePercent: 2, ReductionPercent: 50, AnalysisFee: 100_000},
		{BondedAmount: 123_456.78, RatePercent: 0.75, ReductionPercent: 3.3, ExtraAccessories: 1_000},
	}
	for _, in := range inputs {
		p := ComputePremium(in)
		sum := p.NetPremium + p.AccessoryFee + p.AnalysisFee + p.Tax
		assert.InDelta(t, sum, p.GrossPremium, 1e-6)
		assert.InDelta(t, TaxRate*(p.NetPremium+p.AccessoryFee+p.AnalysisFee), p.Tax, 1e-6)
		assert.True(t, p.Consistent())
	}
}

func TestBaseAccessoryFee_Tiers(t *testing.T) {
	cases := []struct {
		net  float64
		want float64
	}{
		{0, 5_000},
		{100_000, 5_000},
		{100_000.01, 7_500},
		{500_000, 7_500},
		{500_001, 10_000},
		{1_000_000, 10_000},
		{5_000_000, 15_000},
		{10_000_000, 20_000},
		{10_000_000.5, 30_000},
		{50_000_000, 30_000},
		{50_000_000.01, 50_000},
		{math.MaxFloat64, 50_000},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BaseAccessoryFee(tc.net), "net=%v", tc.net)
	}
}

func TestComputePremium_ExtraAccessoriesAndReduction(t *testing.T) {
	p := ComputePremium(TariffInput{
		BondedAmount:     100_000_000,
		RatePercent:      1,
		ReductionPercent: 20,
		ExtraAccessories: 2_000,
		AnalysisFee:      10_000,
	})
	assert.InDelta(t, 800_000, p.NetPremium, 1e-6)
	assert.Equal(t, 10_000.0, p.BaseAccessoryFee)
	assert.InDelta(t, 12_000, p.AccessoryFee, 1e-6)
	assert.InDelta(t, 0.145*822_000, p.Tax, 1e-6)
}

func baseForm() Form {
	return Form{
		Insured:        "SOCIETE BATIR SARL",
		InsuredAddress: "01 BP 100 Abidjan 01",
		Coverage:       CoverageGoodExecution,
		Duration:       180,
		BondedAmount:   10_000_000,
		RatePercent:    0.1,
	}
}

func TestBuild_Defaults(t *testing.T) {
	q, items, err := Build(baseForm(), fixedNow)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.Equal(t, "SOCIETE BATIR SARL", q.Subscriber)
	assert.Equal(t, "SOCIETE BATIR SARL", q.Beneficiary)
	assert.Equal(t, "01 BP 100 Abidjan 01", q.BeneficiaryAddress)
	assert.Equal(t, FilingDatePerContract, q.FilingDate)
	assert.Equal(t, "N/A", q.MarketLocation)
	assert.Equal(t, "N/A", q.ContractingAuthority)
	assert.Nil(t, q.ApprovalDetail)
	assert.Equal(t, StatusGenerated, q.Status)
	assert.Equal(t, fixedNow, q.QuoteDate)
	assert.InDelta(t, 17_175, q.GrossPremium, 1e-6)
}

func TestBuild_ExplicitParties(t *testing.T) {
	f := baseForm()
	f.Subscriber = "HOLDING BATIR"
	f.Beneficiary = "AGEROUTE"
	f.BeneficiaryAddress = "Plateau, Abidjan"

	q, _, err := Build(f, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "HOLDING BATIR", q.Subscriber)
	assert.Equal(t, "AGEROUTE", q.Beneficiary)
	assert.Equal(t, "Plateau, Abidjan", q.BeneficiaryAddress)
}

func TestBuild_SubmissionFilingDate(t *testing.T) {
	f := baseForm()
	f.Coverage = CoverageSubmission
	filed := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	f.FilingDate = &filed
	f.Sureties = "Caution personnelle"

	q, _, err := Build(f, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "1 février 2026", q.FilingDate)
	assert.Empty(t, q.Sureties, "sureties are not collected for submission bonds")

	f.FilingDate = nil
	q, _, err = Build(f, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "5 mars 2026", q.FilingDate)
}

func TestBuild_ApprovalDetailOnlyForApprovalBond(t *testing.T) {
	f := baseForm()
	f.ApprovalDetail = "Agrément courtier"
	q, _, err := Build(f, fixedNow)
	require.NoError(t, err)
	assert.Nil(t, q.ApprovalDetail)

	f.Coverage = CoverageApprovalBond
	q, _, err = Build(f, fixedNow)
	require.NoError(t, err)
	require.NotNil(t, q.ApprovalDetail)
	assert.Equal(t, "Agrément courtier", *q.ApprovalDetail)
}

func TestBuild_LineItemsSetBondedAmount(t *testing.T) {
	f := baseForm()
	f.BondedAmount = 0
	f.LineItems = []LineItem{
		{Number: "1", Amount: 4_000_000, Description: "Voirie"},
		{Number: "2", Amount: 6_000_000, Description: "Assainissement"},
	}
	q, items, err := Build(f, fixedNow)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 10_000_000.0, q.BondedAmount)

	f.BondedAmount = 9_000_000
	_, _, err = Build(f, fixedNow)
	require.ErrorIs(t, err, ErrValidation)
}

func TestBuild_LineItemsRejectedForProfessionalBonds(t *testing.T) {
	f := baseForm()
	f.Coverage = CoverageTravelAgency
	f.LineItems = []LineItem{{Number: "1", Amount: 1_000}}
	_, _, err := Build(f, fixedNow)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "line_items", verr.Fields[0].Field)
}

func TestBuild_InputValidation(t *testing.T) {
	f := baseForm()
	f.Insured = "   "
	f.BondedAmount = 0

	_, _, err := Build(f, fixedNow)
	require.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	fields := []string{}
	for _, fe := range verr.Fields {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "insured")
	assert.Contains(t, fields, "bonded_amount")
}

func TestBuild_RejectsUnknownDuration(t *testing.T) {
	f := baseForm()
	f.Duration = 45
	_, _, err := Build(f, fixedNow)
	require.ErrorIs(t, err, ErrValidation)

	f.Duration = 0
	q, _, err := Build(f, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, DefaultDuration, q.Duration)
	assert.Equal(t, "365 jours", q.Duration.Label())
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusGenerated.CanTransitionTo(StatusContracted))
	assert.False(t, StatusContracted.CanTransitionTo(StatusGenerated))
	assert.False(t, StatusContracted.CanTransitionTo(StatusContracted))
	assert.False(t, StatusGenerated.CanTransitionTo(StatusGenerated))
}

func TestParseCoverage(t *testing.T) {
	c, ok := ParseCoverage("Caution d'agrément")
	require.True(t, ok)
	assert.Equal(t, CoverageApprovalBond, c)
	assert.False(t, c.AllowsLineItems())

	_, ok = ParseCoverage("Inconnue")
	assert.False(t, ok)
}

func TestPolicyNumberGenerator(t *testing.T) {
	u := uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479")
	g := PolicyNumberGenerator{Prefix: DefaultPolicyPrefix, Suffix: DefaultPolicySuffix, NewUUID: func() uuid.UUID { return u }}

	n := g.Next()
	// 0xf47ac10b58cc4372a5670e02b2c3d479 = 324969006592305634633390616021200786553
	assert.Equal(t, "3240-800"+"324969"+"25", n)
	assert.Len(t, NewPolicyNumberGenerator("A-", "-Z").Next(), len("A-")+6+len("-Z"))
}

func TestNewPolicy_Dates(t *testing.T) {
	p := NewPolicy(42, "3240-80012345625", fixedNow)
	assert.Equal(t, int64(42), p.QuoteID)
	assert.Equal(t, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), p.EffectDate)
	assert.Equal(t, p.EffectDate, p.IssueDate)
	assert.Equal(t, time.Date(2027, time.March, 4, 0, 0, 0, 0, time.UTC), p.ExpiryDate)
	assert.Equal(t, "365 jours", p.DurationLabel)
}
