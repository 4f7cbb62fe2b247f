package payment

import (
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/payment-gateway/internal/core/common/validation"
	"github.com/frahmantamala/payment-gateway/internal/core/datamodel/payment"
)

var supportedCurrencies = []string{"USD", "GBP", "EUR"}

// Validator checks a payment request field by field, collecting every
// applicable message. The current time is injected so expiry checks are
// deterministic under test.
type Validator struct {
	now func() time.Time
}

func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{now: now}
}

func (v *Validator) Validate(req *PostPaymentRequest) validation.FieldErrors {
	builder := validation.NewValidator()

	builder.Field("paymentId", req.PaymentID).
		Custom(func(interface{}) (string, bool) {
			if req.PaymentID == uuid.Nil {
				return "payment id is required", false
			}
			return "", true
		})

	builder.Field("cardNumber", req.CardNumber).
		Required("card number is required").
		LengthBetween(14, 19, "card number must be between 14 and 19 characters long").
		DigitsOnly("card number must only contain numeric characters")

	builder.Field("expiryMonth", req.ExpiryMonth).
		IntBetween(1, 12, "expiry month must be between 1 and 12")

	now := v.now()
	currentYear := now.Year()
	currentMonth := int(now.Month())
	fourDigitYear := payment.FourDigitYear(req.ExpiryYear)

	builder.Field("expiryYear", req.ExpiryYear).
		Custom(func(interface{}) (string, bool) {
			if fourDigitYear < currentYear {
				return "expiry year must be in the future", false
			}
			return "", true
		})

	// Same-year-past-month expiries are reported against the month, not the
	// year.
	builder.Field("expiryMonth", req.ExpiryMonth).
		Custom(func(interface{}) (string, bool) {
			if fourDigitYear == currentYear && req.ExpiryMonth < currentMonth {
				return "expiry date must be in the future", false
			}
			return "", true
		})

	builder.Field("currency", req.Currency).
		Required("currency is required").
		LengthBetween(3, 3, "currency must be 3 characters").
		OneOfFold(supportedCurrencies, "currency must be one of: USD, GBP, EUR")

	builder.Field("amount", req.Amount).
		GreaterThan(0, "amount must be greater than 0")

	builder.Field("cvv", req.CVV).
		Required("cvv is required").
		LengthBetween(3, 4, "cvv must be 3-4 characters long").
		DigitsOnly("cvv must only contain numeric characters")

	return builder.Validate()
}
