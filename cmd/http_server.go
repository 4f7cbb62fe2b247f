package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/payment-gateway/internal"
	"github.com/frahmantamala/payment-gateway/internal/acquiringbank"
	"github.com/frahmantamala/payment-gateway/internal/core/events"
	"github.com/frahmantamala/payment-gateway/internal/payment"
	"github.com/frahmantamala/payment-gateway/internal/payment/inmemory"
	"github.com/frahmantamala/payment-gateway/internal/transport/rest"
	"github.com/frahmantamala/payment-gateway/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle payment API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config         *internal.Config
	Router         *chi.Mux
	Logger         *slog.Logger
	Store          *inmemory.PaymentStore
	Registry       *acquiringbank.Registry
	EventBus       *events.EventBus
	PaymentHandler *payment.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.PaymentHandler, deps.Config.AcquiringBank.BaseURL, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()

	store := inmemory.NewPaymentStore(lg)

	firstBank := acquiringbank.NewFirstBankClient(config.AcquiringBank, lg)
	registry := acquiringbank.NewRegistry(lg, firstBank)

	eventBus := events.NewEventBus(lg)
	registerAuditSubscribers(eventBus, lg)

	validator := payment.NewValidator(time.Now)
	service := payment.NewService(store, registry, validator, time.Now, eventBus, config.AcquiringBank.BankName(), lg)
	paymentHandler := payment.NewHandler(service, lg)

	return &Dependencies{
		Config:         config,
		Logger:         lg,
		Router:         chi.NewRouter(),
		Store:          store,
		Registry:       registry,
		EventBus:       eventBus,
		PaymentHandler: paymentHandler,
	}, nil
}

// registerAuditSubscribers logs every terminal payment outcome; events only
// ever carry masked card data.
func registerAuditSubscribers(bus *events.EventBus, lg *slog.Logger) {
	auditLog := func(ctx context.Context, event events.Event) error {
		lg.Info("payment outcome",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}

	bus.Subscribe(events.EventTypePaymentAuthorized, auditLog)
	bus.Subscribe(events.EventTypePaymentDeclined, auditLog)
	bus.Subscribe(events.EventTypePaymentRejected, auditLog)
}
