package payment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/payment-gateway/internal"
	"github.com/frahmantamala/payment-gateway/internal/acquiringbank"
	"github.com/frahmantamala/payment-gateway/internal/core/events"
	"github.com/frahmantamala/payment-gateway/internal/core/datamodel/payment"
)

// Store is the idempotent payment store contract. Add must be atomic per
// id: the first insert wins and every caller observes the canonical value.
type Store interface {
	Add(p *payment.Payment) *payment.Payment
	Get(id uuid.UUID) (*payment.Payment, bool)
}

// BankClientRegistry resolves a named acquiring bank client.
type BankClientRegistry interface {
	Get(bankName string) (acquiringbank.Client, error)
}

// Service orchestrates the payment pipeline: validate, construct the
// entity, call the bank, classify, persist.
type Service struct {
	store       Store
	registry    BankClientRegistry
	validator   *Validator
	now         func() time.Time
	eventBus    *events.EventBus
	defaultBank string
	logger      *slog.Logger
}

func NewService(store Store, registry BankClientRegistry, validator *Validator, now func() time.Time, eventBus *events.EventBus, defaultBank string, logger *slog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	if defaultBank == "" {
		defaultBank = internal.DefaultBankName
	}
	return &Service{
		store:       store,
		registry:    registry,
		validator:   validator,
		now:         now,
		eventBus:    eventBus,
		defaultBank: defaultBank,
		logger:      logger,
	}
}

func (s *Service) ProcessPayment(ctx context.Context, req *PostPaymentRequest) *Result {
	fieldErrors := s.validator.Validate(req)

	// The entity is constructed even for invalid requests so the rejection
	// is stored for later masked lookup.
	p := payment.New(
		req.PaymentID,
		req.CardNumber,
		req.ExpiryMonth,
		req.ExpiryYear,
		req.Currency,
		req.Amount,
		req.CVV,
		s.now())

	s.logger.Info("payment processing started", "payment_id", p.ID)

	if !fieldErrors.Valid() {
		s.logger.Warn("payment validation failed",
			"payment_id", p.ID,
			"invalid_fields", len(fieldErrors))

		p.MarkRejected()
		stored := s.store.Add(p)
		s.publishOutcome(ctx, stored)

		return ValidationFailedResult(fieldErrors)
	}

	bankName := strings.TrimSpace(req.AcquiringBankName)
	if bankName == "" {
		bankName = s.defaultBank
	}

	client, err := s.registry.Get(bankName)
	if err != nil {
		s.logger.Error("bank client lookup failed", "error", err, "bank_name", bankName)
		return InternalErrorResult("payment could not be routed")
	}

	bankResponse := client.ProcessPayment(ctx, p)

	if !bankResponse.Success {
		// Nothing is persisted on a bank failure so a caller retry with the
		// same id can still become the stored attempt.
		message := bankResponse.ErrorMessage
		if message == "" {
			message = "unknown bank error"
		}
		s.logger.Warn("bank error for payment", "payment_id", p.ID, "message", message)
		return BankErrorResult(message)
	}

	if bankResponse.Authorized {
		p.MarkAuthorized(bankResponse.AuthorizationCode)
		s.logger.Info("payment authorized", "payment_id", p.ID)
	} else {
		p.MarkDeclined()
		s.logger.Info("payment declined", "payment_id", p.ID)
	}

	stored := s.store.Add(p)
	s.publishOutcome(ctx, stored)

	return SuccessResult(stored)
}

func (s *Service) GetPayment(ctx context.Context, id uuid.UUID) *Result {
	if p, ok := s.store.Get(id); ok {
		return SuccessResult(p)
	}
	return NotFoundResult()
}

func (s *Service) publishOutcome(ctx context.Context, p *payment.Payment) {
	if s.eventBus == nil {
		return
	}

	var eventType string
	switch p.Status {
	case payment.StatusAuthorized:
		eventType = events.EventTypePaymentAuthorized
	case payment.StatusDeclined:
		eventType = events.EventTypePaymentDeclined
	case payment.StatusRejected:
		eventType = events.EventTypePaymentRejected
	default:
		return
	}

	s.eventBus.Publish(ctx, events.NewPaymentProcessedEvent(
		eventType,
		p.ID,
		string(p.Status),
		p.LastFourDigits,
		p.Currency,
		p.Amount,
		p.AuthorizationCode))
}
