package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"leadway/caution_backend/internal/app/config"
	"leadway/caution_backend/internal/app/http/handlers"
	"leadway/caution_backend/internal/app/http/middleware"
	"leadway/caution_backend/internal/service/caution"
)

func NewRouter(cfg config.Config, svc *caution.Service, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	h := handlers.New(svc)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.InternalAuth(cfg.InternalToken))

			r.Post("/tariff", h.Tariff)

			r.Post("/quotes", h.CreateQuote)
			r.Post("/quotes/preview", h.PreviewQuote)
			r.Get("/quotes/{quoteID}", h.GetQuote)

			r.Get("/sessions/{sessionID}", h.GetSession)
			r.Delete("/sessions/{sessionID}", h.DeleteSession)
			r.Post("/sessions/{sessionID}/policy", h.CreatePolicy)
		})
	})

	return r
}
