package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePaymentAuthorized = "payment.authorized"
	EventTypePaymentDeclined   = "payment.declined"
	EventTypePaymentRejected   = "payment.rejected"
)

// PaymentProcessedEvent records the terminal outcome of a payment. Only
// masked card data ever rides on an event payload.
type PaymentProcessedEvent struct {
	BaseEvent
	PaymentID         string `json:"payment_id"`
	Status            string `json:"status"`
	LastFourDigits    string `json:"last_four_digits"`
	Currency          string `json:"currency"`
	Amount            int64  `json:"amount"`
	AuthorizationCode string `json:"authorization_code,omitempty"`
}

func NewPaymentProcessedEvent(eventType string, paymentID uuid.UUID, status, lastFourDigits, currency string, amount int64, authorizationCode string) *PaymentProcessedEvent {
	return &PaymentProcessedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"payment_id":       paymentID.String(),
				"status":           status,
				"last_four_digits": lastFourDigits,
				"currency":         currency,
				"amount":           amount,
			},
		},
		PaymentID:         paymentID.String(),
		Status:            status,
		LastFourDigits:    lastFourDigits,
		Currency:          currency,
		Amount:            amount,
		AuthorizationCode: authorizationCode,
	}
}
