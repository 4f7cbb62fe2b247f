package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/payment-gateway/internal/payment"
	"github.com/frahmantamala/payment-gateway/internal/transport/middleware"
	"github.com/frahmantamala/payment-gateway/internal/transport/swagger"
)

func RegisterAllRoutes(router *chi.Mux, paymentHandler *payment.Handler, bankBaseURL string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(bankBaseURL)

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if paymentHandler != nil {
			r.Route("/payments", func(pr chi.Router) {
				pr.Post("/", paymentHandler.ProcessPayment) // POST /api/payments
				pr.Get("/{id}", paymentHandler.GetPayment)  // GET /api/payments/:id
			})
		}
	})
}
