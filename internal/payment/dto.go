package payment

import (
	"github.com/google/uuid"

	"github.com/frahmantamala/payment-gateway/internal/core/common/validation"
	"github.com/frahmantamala/payment-gateway/internal/core/datamodel/payment"
)

// PostPaymentRequest is the inbound payload for POST /api/payments.
type PostPaymentRequest struct {
	PaymentID         uuid.UUID `json:"paymentId"`
	CardNumber        string    `json:"cardNumber"`
	ExpiryMonth       int       `json:"expiryMonth"`
	ExpiryYear        int       `json:"expiryYear"`
	Currency          string    `json:"currency"`
	Amount            int64     `json:"amount"`
	CVV               string    `json:"cvv"`
	AcquiringBankName string    `json:"acquiringBankName"`
}

// PostPaymentResponse is returned after processing a payment. The card
// number itself never appears on any response shape, only the last four.
type PostPaymentResponse struct {
	ID                 uuid.UUID `json:"id"`
	Status             string    `json:"status"`
	CardNumberLastFour string    `json:"cardNumberLastFour"`
	ExpiryMonth        int       `json:"expiryMonth"`
	ExpiryYear         int       `json:"expiryYear"`
	Currency           string    `json:"currency"`
	Amount             int64     `json:"amount"`
	AuthorizationCode  string    `json:"authorizationCode,omitempty"`
}

// GetPaymentResponse is the lookup shape; it omits the authorization code.
type GetPaymentResponse struct {
	ID                 uuid.UUID `json:"id"`
	Status             string    `json:"status"`
	CardNumberLastFour string    `json:"cardNumberLastFour"`
	ExpiryMonth        int       `json:"expiryMonth"`
	ExpiryYear         int       `json:"expiryYear"`
	Currency           string    `json:"currency"`
	Amount             int64     `json:"amount"`
}

type ValidationErrorResponse struct {
	Message string                 `json:"message"`
	Errors  validation.FieldErrors `json:"errors"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func NewPostPaymentResponse(p *payment.Payment) PostPaymentResponse {
	return PostPaymentResponse{
		ID:                 p.ID,
		Status:             string(p.Status),
		CardNumberLastFour: p.LastFourDigits,
		ExpiryMonth:        p.ExpiryMonth,
		ExpiryYear:         p.ExpiryYear,
		Currency:           p.Currency,
		Amount:             p.Amount,
		AuthorizationCode:  p.AuthorizationCode,
	}
}

func NewGetPaymentResponse(p *payment.Payment) GetPaymentResponse {
	return GetPaymentResponse{
		ID:                 p.ID,
		Status:             string(p.Status),
		CardNumberLastFour: p.LastFourDigits,
		ExpiryMonth:        p.ExpiryMonth,
		ExpiryYear:         p.ExpiryYear,
		Currency:           p.Currency,
		Amount:             p.Amount,
	}
}
