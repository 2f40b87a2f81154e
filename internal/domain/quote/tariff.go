package quote

// TaxRate applies to net premium plus accessory and analysis fees.
const TaxRate = 0.145

type TariffInput struct {
	BondedAmount     float64
	RatePercent      float64
	ReductionPercent float64
	ExtraAccessories float64
	AnalysisFee      float64
}

type Premium struct {
	NetPremium       float64
	BaseAccessoryFee float64
	AccessoryFee     float64
	AnalysisFee      float64
	Tax              float64
	GrossPremium     float64
}

type accessoryTier struct {
	upTo float64
	fee  float64
}

// Upper bounds are inclusive. Net premiums above the last bound pay topAccessoryFee.
var accessoryTiers = []accessoryTier{
	{100_000, 5_000},
	{500_000, 7_500},
	{1_000_000, 10_000},
	{5_000_000, 15_000},
	{10_000_000, 20_000},
	{50_000_000, 30_000},
}

const topAccessoryFee = 50_000

// BaseAccessoryFee looks up the flat fee for a net premium.
func BaseAccessoryFee(netPremium float64) float64 {
	for _, t := range accessoryTiers {
		if netPremium <= t.upTo {
			return t.fee
		}
	}
	return topAccessoryFee
}

// ComputePremium applies the tariff. Inputs are assumed non-negative; the
// caller rejects a non-positive bonded amount beforehand.
func ComputePremium(in TariffInput) Premium {
	net := (in.RatePercent / 100) * in.BondedAmount * (1 - in.ReductionPercent/100)
	base := BaseAccessoryFee(net)
	acc := base + in.ExtraAccessories
	tax := TaxRate * (net + acc + in.AnalysisFee)
	return Premium{
		NetPremium:       net,
		BaseAccessoryFee: base,
		AccessoryFee:     acc,
		AnalysisFee:      in.AnalysisFee,
		Tax:              tax,
		GrossPremium:     net + acc + in.AnalysisFee + tax,
	}
}
