package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusAuthorized Status = "Authorized"
	StatusDeclined   Status = "Declined"
	StatusRejected   Status = "Rejected"
)

const maskRune = '*'

// Payment is the domain record for a single card payment attempt. Status
// starts at Pending and moves exactly once to one of the terminal states;
// LastFourDigits is derived at construction and never changes afterwards.
type Payment struct {
	ID                uuid.UUID
	CardNumber        string
	LastFourDigits    string
	ExpiryMonth       int
	ExpiryYear        int
	Currency          string
	Amount            int64
	CVV               string
	Status            Status
	CreatedAt         time.Time
	AuthorizationCode string
}

func New(id uuid.UUID, cardNumber string, expiryMonth, expiryYear int, currency string, amount int64, cvv string, createdAt time.Time) *Payment {
	return &Payment{
		ID:             id,
		CardNumber:     cardNumber,
		LastFourDigits: lastFour(cardNumber),
		ExpiryMonth:    expiryMonth,
		ExpiryYear:     expiryYear,
		Currency:       strings.ToUpper(currency),
		Amount:         amount,
		CVV:            cvv,
		Status:         StatusPending,
		CreatedAt:      createdAt,
	}
}

// ExpiryDate renders the card expiry as MM/yyyy, the wire format the
// acquiring bank expects.
func (p *Payment) ExpiryDate() string {
	return fmt.Sprintf("%02d/%04d", p.ExpiryMonth, FourDigitYear(p.ExpiryYear))
}

func (p *Payment) MarkAuthorized(authorizationCode string) {
	if p.Status != StatusPending {
		return
	}
	p.Status = StatusAuthorized
	p.AuthorizationCode = authorizationCode
}

func (p *Payment) MarkDeclined() {
	if p.Status != StatusPending {
		return
	}
	p.Status = StatusDeclined
}

func (p *Payment) MarkRejected() {
	if p.Status != StatusPending {
		return
	}
	p.Status = StatusRejected
}

// MaskCardNumber irreversibly replaces all but the trailing four digits of
// the card number with the mask rune.
func (p *Payment) MaskCardNumber() {
	if len(p.CardNumber) <= 4 {
		return
	}
	p.CardNumber = strings.Repeat(string(maskRune), len(p.CardNumber)-4) + lastFour(p.CardNumber)
}

func lastFour(cardNumber string) string {
	if len(cardNumber) < 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}

// FourDigitYear normalizes a two-digit year to the current century.
func FourDigitYear(year int) int {
	if year >= 0 && year < 100 {
		return year + 2000
	}
	return year
}
