package handlers

import (
	"net/http"

	"leadway/caution_backend/internal/domain/quote"
)

// Tariff prices a bond without building a quote.
func (h *Handlers) Tariff(w http.ResponseWriter, r *http.Request) {
	var req TariffRequest
	if !h.decode(w, r, &req) {
		return
	}
	p := quote.ComputePremium(quote.TariffInput{
		BondedAmount:     req.BondedAmount,
		RatePercent:      req.RatePercent,
		ReductionPercent: req.ReductionPercent,
		ExtraAccessories: req.ExtraAccessories,
		AnalysisFee:      req.AnalysisFee,
	})
	writeJSON(w, http.StatusOK, newPremiumResponse(p))
}
