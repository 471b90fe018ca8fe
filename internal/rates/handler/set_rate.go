package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fxconvert/internal/rates"
)

type SetRateRequest struct {
	Rate string `json:"rate"`
}

type SetRateResponse struct {
	Code string `json:"code"`
	Rate string `json:"rate"`
}

// SetRate overrides one rate in the live table. The override is
// intentionally not persisted: the next successful remote refresh
// replaces it.
func (h *Handler) SetRate(w http.ResponseWriter, r *http.Request) {
	code := rates.NormalizeCode(chi.URLParam(r, "code"))
	if err := rates.ValidateCode(code); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req SetRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	value, err := rates.ParseRate(req.Rate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err = h.service.SetRate(code, value); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SetRateResponse{Code: code, Rate: value.String()})
}
