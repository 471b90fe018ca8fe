package api

import (
	"fxconvert/internal/rates/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(rateHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	router.Get("/api/v1/rates", rateHandler.ListRates)
	router.Get("/api/v1/convert", rateHandler.Convert)
	router.Post("/api/v1/rates/refresh", rateHandler.Refresh)
	router.Put("/api/v1/rates/{code:[A-Za-z]{3}}", rateHandler.SetRate)
	return router
}
