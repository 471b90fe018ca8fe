package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"fxconvert/internal/rates"
)

type RefreshResponse struct {
	Status    string `json:"status"`
	Updated   int    `json:"updated"`
	Remaining int    `json:"remaining_today"`
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	res := h.service.Refresh(r.Context(), rates.Today())

	switch res.Status {
	case rates.StatusQuotaExceeded:
		writeError(w, http.StatusTooManyRequests, "daily refresh quota spent")
	case rates.StatusFailed:
		msg := "couldn't refresh rates this time"
		logrus.WithError(res.Err).WithField("handler", "Refresh").Error(msg)
		writeError(w, http.StatusBadGateway, msg)
	default:
		writeJSON(w, http.StatusOK, RefreshResponse{
			Status:    string(res.Status),
			Updated:   res.Updated,
			Remaining: res.Remaining,
		})
	}
}
