package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"leadway/caution_backend/internal/domain/quote"
)

const (
	maxBodyBytes = 1 << 20
	dateLayout   = "2006-01-02"
)

type TariffRequest struct {
	BondedAmount     float64 `json:"bonded_amount" validate:"gt=0"`
	RatePercent      float64 `json:"rate_percent" validate:"gte=0,lte=100"`
	ReductionPercent float64 `json:"reduction_percent" validate:"gte=0,lte=100"`
	ExtraAccessories float64 `json:"extra_accessories" validate:"gte=0"`
	AnalysisFee      float64 `json:"analysis_fee" validate:"gte=0"`
}

type LineItemRequest struct {
	Number      string  `json:"number" validate:"required,max=50"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Description string  `json:"description" validate:"max=500"`
}

type CreateQuoteRequest struct {
	Insured            string `json:"insured" validate:"required,max=200"`
	InsuredAddress     string `json:"insured_address" validate:"max=300"`
	Subscriber         string `json:"subscriber" validate:"max=200"`
	Beneficiary        string `json:"beneficiary" validate:"max=200"`
	BeneficiaryAddress string `json:"beneficiary_address" validate:"max=300"`

	MarketLocation       string `json:"market_location" validate:"max=300"`
	MarketNumber         string `json:"market_number" validate:"max=100"`
	ContractingAuthority string `json:"contracting_authority" validate:"max=300"`
	MarketObject         string `json:"market_object" validate:"max=1000"`
	FilingDate           string `json:"filing_date" validate:"omitempty,datetime=2006-01-02"`

	Coverage       string  `json:"coverage" validate:"required,coverage"`
	ApprovalDetail string  `json:"approval_detail" validate:"max=300"`
	MarketAmount   float64 `json:"market_amount" validate:"gte=0"`
	Duration       int     `json:"duration" validate:"omitempty,oneof=30 90 150 180 365"`

	BondedAmount float64           `json:"bonded_amount" validate:"gte=0"`
	LineItems    []LineItemRequest `json:"line_items" validate:"omitempty,max=200,dive"`

	RatePercent      float64 `json:"rate_percent" validate:"gte=0,lte=100"`
	ReductionPercent float64 `json:"reduction_percent" validate:"gte=0,lte=100"`
	ExtraAccessories float64 `json:"extra_accessories" validate:"gte=0"`
	AnalysisFee      float64 `json:"analysis_fee" validate:"gte=0"`

	Sureties string `json:"sureties" validate:"max=2000"`
}

func (req CreateQuoteRequest) Form() quote.Form {
	f := quote.Form{
		Insured:              req.Insured,
		InsuredAddress:       req.InsuredAddress,
		Subscriber:           req.Subscriber,
		Beneficiary:          req.Beneficiary,
		BeneficiaryAddress:   req.BeneficiaryAddress,
		MarketLocation:       req.MarketLocation,
		MarketNumber:         req.MarketNumber,
		ContractingAuthority: req.ContractingAuthority,
		MarketObject:         req.MarketObject,
		Coverage:             quote.Coverage(req.Coverage),
		ApprovalDetail:       req.ApprovalDetail,
		MarketAmount:         req.MarketAmount,
		Duration:             quote.Duration(req.Duration),
		BondedAmount:         req.BondedAmount,
		RatePercent:          req.RatePercent,
		ReductionPercent:     req.ReductionPercent,
		ExtraAccessories:     req.ExtraAccessories,
		AnalysisFee:          req.AnalysisFee,
		Sureties:             req.Sureties,
	}
	if req.FilingDate != "" {
		// Checked by the datetime tag.
		if d, err := time.Parse(dateLayout, req.FilingDate); err == nil {
			f.FilingDate = &d
		}
	}
	for _, it := range req.LineItems {
		f.LineItems = append(f.LineItems, quote.LineItem{
			Number:      strings.TrimSpace(it.Number),
			Amount:      it.Amount,
			Description: strings.TrimSpace(it.Description),
		})
	}
	return f
}

// decode reads a JSON body into dst and runs the struct validations.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) (ok bool) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		badRequest(w, decodeMessage(err))
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		badRequest(w, "body must contain a single JSON object")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeServiceError(w, r, validationError(err))
		return false
	}
	return true
}

func decodeMessage(err error) string {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		maxErr    *http.MaxBytesError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		return fmt.Sprintf("field %q must be a %s", typeErr.Field, typeErr.Type)
	case errors.As(err, &maxErr):
		return "body too large"
	case errors.Is(err, io.EOF):
		return "empty body"
	}
	return err.Error()
}
