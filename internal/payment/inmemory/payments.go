package inmemory

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/frahmantamala/payment-gateway/internal/core/datamodel/payment"
)

// PaymentStore keeps processed payments in a concurrent map keyed by
// payment id, which doubles as the idempotency key.
type PaymentStore struct {
	payments sync.Map
	logger   *slog.Logger
}

func NewPaymentStore(logger *slog.Logger) *PaymentStore {
	return &PaymentStore{logger: logger}
}

// Add inserts the payment under its id, or returns the already-stored value
// when one exists. The card number is masked immediately before the insert
// attempt, so a stored payment is never observable unmasked; a duplicate's
// content is discarded.
func (s *PaymentStore) Add(p *payment.Payment) *payment.Payment {
	if existing, ok := s.payments.Load(p.ID); ok {
		s.logger.Warn("idempotency duplicate detected", "payment_id", p.ID)
		return existing.(*payment.Payment)
	}

	p.MaskCardNumber()

	actual, loaded := s.payments.LoadOrStore(p.ID, p)
	if loaded {
		s.logger.Warn("idempotency duplicate detected", "payment_id", p.ID)
	}
	return actual.(*payment.Payment)
}

func (s *PaymentStore) Get(id uuid.UUID) (*payment.Payment, bool) {
	value, ok := s.payments.Load(id)
	if !ok {
		return nil, false
	}
	return value.(*payment.Payment), true
}
