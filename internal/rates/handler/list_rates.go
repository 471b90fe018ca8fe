package handler

import (
	"net/http"

	"fxconvert/internal/domain"
	"fxconvert/internal/rates"
)

type rateEntry struct {
	Code string `json:"code"`
	Rate string `json:"rate"`
}

type ListRatesResponse struct {
	Base        string      `json:"base"`
	Rates       []rateEntry `json:"rates"`
	LastUpdated string      `json:"last_updated,omitempty"`
	Remaining   int         `json:"remaining_today"`
}

func (h *Handler) ListRates(w http.ResponseWriter, r *http.Request) {
	status := h.service.Status(r.Context(), rates.Today())

	entries := h.service.ListRates()
	out := make([]rateEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, rateEntry{Code: e.Code, Rate: e.Rate.String()})
	}

	writeJSON(w, http.StatusOK, ListRatesResponse{
		Base:        domain.ReferenceCode,
		Rates:       out,
		LastUpdated: status.LastUpdated,
		Remaining:   status.Remaining,
	})
}
