package acquiringbank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/frahmantamala/payment-gateway/internal"
	acquiringbanktypes "github.com/frahmantamala/payment-gateway/internal/core/datamodel/acquiringbank"
	"github.com/frahmantamala/payment-gateway/internal/core/datamodel/payment"
)

// Client is the capability contract for a single acquiring bank
// integration. Implementations never return a Go error: every failure mode
// is folded into a Response variant, and cancellation aborts retries.
type Client interface {
	BankName() string
	ProcessPayment(ctx context.Context, p *payment.Payment) Response
}

const FirstBankName = "FirstAcquiringBank"

// errBankBusy marks a transient condition the retry loop may try again.
var errBankBusy = errors.New("acquiring bank temporarily unavailable")

// FirstBankClient talks to the reference acquiring bank over HTTP with a
// bounded per-call timeout and exponential backoff on transient failures.
type FirstBankClient struct {
	httpClient *http.Client
	baseURL    string
	maxRetries uint64
	backoff    time.Duration
	logger     *slog.Logger
}

func NewFirstBankClient(cfg internal.AcquiringBankConfig, logger *slog.Logger) *FirstBankClient {
	return &FirstBankClient{
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries: uint64(cfg.Retries()),
		backoff:    cfg.Backoff(),
		logger:     logger,
	}
}

func (c *FirstBankClient) BankName() string {
	return FirstBankName
}

// ProcessPayment submits the payment and classifies the outcome. Transport
// errors and HTTP 503 are retried with backoff delays of backoff*2^(n-1)
// before retry n; any other failure is terminal on the first occurrence.
func (c *FirstBankClient) ProcessPayment(ctx context.Context, p *payment.Payment) Response {
	var response Response

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.backoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		result, transient := c.attempt(ctx, p)
		if transient {
			return retry.RetryableError(errBankBusy)
		}
		response = result
		return nil
	})

	if err != nil {
		if ctx.Err() != nil {
			c.logger.Warn("bank call canceled", "payment_id", p.ID)
			return ErrorResponse("request canceled")
		}
		c.logger.Error("bank unavailable after retries",
			"payment_id", p.ID,
			"max_retries", c.maxRetries)
		return UnavailableResponse("bank service unavailable")
	}

	return response
}

// attempt makes a single call to the bank. The bool result reports whether
// the failure is transient and eligible for retry.
func (c *FirstBankClient) attempt(ctx context.Context, p *payment.Payment) (Response, bool) {
	wireReq := acquiringbanktypes.PaymentRequest{
		CardNumber: p.CardNumber,
		ExpiryDate: p.ExpiryDate(),
		Currency:   p.Currency,
		Amount:     p.Amount,
		CVV:        p.CVV,
	}

	if err := wireReq.Validate(); err != nil {
		c.logger.Error("bank request validation failed", "error", err, "payment_id", p.ID)
		return ErrorResponse(fmt.Sprintf("invalid bank request: %v", err)), false
	}

	reqBody, err := json.Marshal(wireReq)
	if err != nil {
		c.logger.Error("failed to marshal bank request", "error", err, "payment_id", p.ID)
		return ErrorResponse("failed to encode bank request"), false
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments", bytes.NewBuffer(reqBody))
	if err != nil {
		c.logger.Error("failed to create bank request", "error", err, "payment_id", p.ID)
		return ErrorResponse("failed to create bank request"), false
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("bank request failed", "error", err, "payment_id", p.ID)
		return Response{}, true
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		io.Copy(io.Discard, resp.Body)
		c.logger.Warn("bank temporarily unavailable", "payment_id", p.ID)
		return Response{}, true
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		content, _ := io.ReadAll(resp.Body)
		c.logger.Error("bank returned error status",
			"status", resp.StatusCode,
			"response", string(content),
			"payment_id", p.ID)
		return UnavailableResponse(fmt.Sprintf("bank returned %d", resp.StatusCode)), false
	}

	var wireResp acquiringbanktypes.PaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&wireResp); err != nil {
		c.logger.Error("failed to decode bank response", "error", err, "payment_id", p.ID)
		return ErrorResponse("invalid response from bank"), false
	}

	if wireResp.Authorized {
		return AuthorizedResponse(wireResp.AuthorizationCode), false
	}
	return DeclinedResponse(), false
}
