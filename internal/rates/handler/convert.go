package handler

import (
	"net/http"

	"fxconvert/internal/rates"
)

type ConvertResponse struct {
	Amount string `json:"amount"`
	From   string `json:"from"`
	To     string `json:"to"`
	Result string `json:"result"`
	Pretty string `json:"pretty"`
}

func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	from := rates.NormalizeCode(r.URL.Query().Get("from"))
	to := rates.NormalizeCode(r.URL.Query().Get("to"))

	if err := rates.ValidateCode(from); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := rates.ValidateCode(to); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := rates.ParseAmount(r.URL.Query().Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Convert(amount, from, to)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		Amount: amount.String(),
		From:   from,
		To:     to,
		Result: result.String(),
		Pretty: rates.Present(result, to),
	})
}
