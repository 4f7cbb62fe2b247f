package acquiringbank

import (
	"errors"
)

// PaymentRequest is the wire shape posted to the acquiring bank.
type PaymentRequest struct {
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	Currency   string `json:"currency"`
	Amount     int64  `json:"amount"`
	CVV        string `json:"cvv"`
}

func (r *PaymentRequest) Validate() error {
	if r.CardNumber == "" {
		return errors.New("card_number is required")
	}
	if r.ExpiryDate == "" {
		return errors.New("expiry_date is required")
	}
	if r.Currency == "" {
		return errors.New("currency is required")
	}
	if r.Amount <= 0 {
		return errors.New("amount must be greater than 0")
	}
	return nil
}

// PaymentResponse is the wire shape the acquiring bank answers with.
type PaymentResponse struct {
	Authorized        bool   `json:"authorized"`
	AuthorizationCode string `json:"authorization_code,omitempty"`
}
