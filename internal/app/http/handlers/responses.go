package handlers

import (
	"time"

	"leadway/caution_backend/internal/domain/locale"
	"leadway/caution_backend/internal/domain/quote"
	"leadway/caution_backend/internal/service/caution"
)

type premiumResponse struct {
	NetPremium       float64 `json:"net_premium"`
	BaseAccessoryFee float64 `json:"base_accessory_fee"`
	AccessoryFee     float64 `json:"accessory_fee"`
	AnalysisFee      float64 `json:"analysis_fee"`
	Tax              float64 `json:"tax"`
	GrossPremium     float64 `json:"gross_premium"`
	GrossPremiumText string  `json:"gross_premium_text"`
	GrossInWords     string  `json:"gross_premium_words"`
}

func newPremiumResponse(p quote.Premium) premiumResponse {
	return premiumResponse{
		NetPremium:       p.NetPremium,
		BaseAccessoryFee: p.BaseAccessoryFee,
		AccessoryFee:     p.AccessoryFee,
		AnalysisFee:      p.AnalysisFee,
		Tax:              p.Tax,
		GrossPremium:     p.GrossPremium,
		GrossPremiumText: locale.FormatMoney(p.GrossPremium),
		GrossInWords:     locale.AmountInWords(locale.WholeUnits(p.GrossPremium)),
	}
}

type lineItemResponse struct {
	ID          int64   `json:"id,omitempty"`
	Number      string  `json:"number"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type quoteResponse struct {
	ID                   int64              `json:"id"`
	Status               string             `json:"status"`
	Insured              string             `json:"insured"`
	InsuredAddress       string             `json:"insured_address"`
	Subscriber           string             `json:"subscriber"`
	Beneficiary          string             `json:"beneficiary"`
	BeneficiaryAddress   string             `json:"beneficiary_address"`
	MarketLocation       string             `json:"market_location"`
	MarketNumber         string             `json:"market_number"`
	ContractingAuthority string             `json:"contracting_authority"`
	FilingDate           string             `json:"filing_date"`
	MarketObject         string             `json:"market_object"`
	Coverage             string             `json:"coverage"`
	ApprovalDetail       *string            `json:"approval_detail,omitempty"`
	MarketAmount         float64            `json:"market_amount"`
	Duration             int                `json:"duration"`
	BondedAmount         float64            `json:"bonded_amount"`
	Premium              premiumResponse    `json:"premium"`
	QuoteDate            time.Time          `json:"quote_date"`
	Sureties             string             `json:"sureties"`
	LineItems            []lineItemResponse `json:"line_items"`
}

func newQuoteResponse(q *quote.Quote, items []quote.LineItem) quoteResponse {
	resp := quoteResponse{
		ID:                   q.ID,
		Status:               string(q.Status),
		Insured:              q.Insured,
		InsuredAddress:       q.InsuredAddress,
		Subscriber:           q.Subscriber,
		Beneficiary:          q.Beneficiary,
		BeneficiaryAddress:   q.BeneficiaryAddress,
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
		Premium:              newPremiumResponse(q.Premium),
		QuoteDate:            q.QuoteDate,
		Sureties:             q.Sureties,
		LineItems:            make([]lineItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.LineItems = append(resp.LineItems, lineItemResponse{
			ID:          it.ID,
			Number:      it.Number,
			Amount:      it.Amount,
			Description: it.Description,
		})
	}
	return resp
}

type sessionResponse struct {
	SessionID string        `json:"session_id"`
	QuoteID   int64         `json:"quote_id"`
	CreatedAt time.Time     `json:"created_at"`
	Quote     quoteResponse `json:"quote"`
}

func newSessionResponse(s *caution.Session) sessionResponse {
	return sessionResponse{
		SessionID: s.ID,
		QuoteID:   s.QuoteID,
		CreatedAt: s.CreatedAt,
		Quote:     newQuoteResponse(s.Quote, s.LineItems),
	}
}
