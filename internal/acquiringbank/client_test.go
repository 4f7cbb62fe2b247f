package acquiringbank_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/payment-gateway/internal"
	"github.com/frahmantamala/payment-gateway/internal/acquiringbank"
	"github.com/frahmantamala/payment-gateway/internal/core/datamodel/payment"
)

func testPayment() *payment.Payment {
	return payment.New(uuid.New(), "4111111111111111", 6, 2030, "USD", 1050, "123", time.Now().UTC())
}

func newClient(baseURL string) *acquiringbank.FirstBankClient {
	cfg := internal.AcquiringBankConfig{
		BaseURL:        baseURL,
		TimeoutSeconds: 2,
		MaxRetries:     3,
		RetryBackoff:   5 * time.Millisecond,
	}
	return acquiringbank.NewFirstBankClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var _ = Describe("FirstBankClient", func() {
	It("reports its registered bank name", func() {
		Expect(newClient("http://localhost:0").BankName()).To(Equal("FirstAcquiringBank"))
	})

	Describe("ProcessPayment", func() {
		It("sends the payment in the bank wire format", func() {
			var body map[string]interface{}
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				Expect(r.URL.Path).To(Equal("/payments"))
				Expect(r.Header.Get("Content-Type")).To(Equal("application/json"))
				Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())
				json.NewEncoder(w).Encode(map[string]interface{}{
					"authorized":         true,
					"authorization_code": "auth-1",
				})
			}))
			defer server.Close()

			resp := newClient(server.URL).ProcessPayment(context.Background(), testPayment())

			Expect(resp.Success).To(BeTrue())
			Expect(body).To(HaveKeyWithValue("card_number", "4111111111111111"))
			Expect(body).To(HaveKeyWithValue("expiry_date", "06/2030"))
			Expect(body).To(HaveKeyWithValue("currency", "USD"))
			Expect(body).To(HaveKeyWithValue("amount", float64(1050)))
			Expect(body).To(HaveKeyWithValue("cvv", "123"))
		})

		It("returns an authorized response with the bank authorization code", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"authorized":         true,
					"authorization_code": "0bb07405-6d44-4b50-a14f-7ae0beff13ad",
				})
			}))
			defer server.Close()

			resp := newClient(server.URL).ProcessPayment(context.Background(), testPayment())

			Expect(resp.Success).To(BeTrue())
			Expect(resp.Authorized).To(BeTrue())
			Expect(resp.AuthorizationCode).To(Equal("0bb07405-6d44-4b50-a14f-7ae0beff13ad"))
		})

		It("returns a declined response when the bank does not authorize", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{"authorized": false})
			}))
			defer server.Close()

			resp := newClient(server.URL).ProcessPayment(context.Background(), testPayment())

			Expect(resp.Success).To(BeTrue())
			Expect(resp.Authorized).To(BeFalse())
			Expect(resp.AuthorizationCode).To(BeEmpty())
		})

		It("retries through 503 responses and succeeds when the bank recovers", func() {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) <= 2 {
					w.WriteHeader(http.StatusServiceUnavailable)
					return
				}
				json.NewEncoder(w).Encode(map[string]interface{}{
					"authorized":         true,
					"authorization_code": "auth-1",
				})
			}))
			defer server.Close()

			resp := newClient(server.URL).ProcessPayment(context.Background(), testPayment())

			Expect(resp.Success).To(BeTrue())
			Expect(resp.Authorized).To(BeTrue())
			Expect(calls.Load()).To(Equal(int32(3)))
		})

		It("gives up after exhausting retries against a persistently unavailable bank", func() {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(http.StatusServiceUnavailable)
			}))
			defer server.Close()

			resp := newClient(server.URL).ProcessPayment(context.Background(), testPayment())

			Expect(resp.Success).To(BeFalse())
			Expect(resp.ErrorMessage).To(Equal("bank service unavailable"))
			Expect(calls.Load()).To(Equal(int32(4)))
		})

		It("treats a non-503 error status as terminal without retrying", func() {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(http.StatusBadRequest)
			}))
			defer server.Close()

			resp := newClient(server.URL).ProcessPayment(context.Background(), testPayment())

			Expect(resp.Success).To(BeFalse())
			Expect(resp.ErrorMessage).To(Equal("bank returned 400"))
			Expect(calls.Load()).To(Equal(int32(1)))
		})

		It("fails on an undecodable success body", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			}))
			defer server.Close()

			resp := newClient(server.URL).ProcessPayment(context.Background(), testPayment())

			Expect(resp.Success).To(BeFalse())
			Expect(resp.ErrorMessage).To(Equal("invalid response from bank"))
		})

		It("retries transport failures until the bank becomes reachable", func() {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) == 1 {
					// Hijack and drop the connection to force a transport error.
					conn, _, err := w.(http.Hijacker).Hijack()
					Expect(err).NotTo(HaveOccurred())
					conn.Close()
					return
				}
				json.NewEncoder(w).Encode(map[string]interface{}{
					"authorized":         true,
					"authorization_code": "auth-1",
				})
			}))
			defer server.Close()

			resp := newClient(server.URL).ProcessPayment(context.Background(), testPayment())

			Expect(resp.Success).To(BeTrue())
			Expect(calls.Load()).To(Equal(int32(2)))
		})

		It("aborts retries when the context is canceled", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			}))
			defer server.Close()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			resp := newClient(server.URL).ProcessPayment(ctx, testPayment())

			Expect(resp.Success).To(BeFalse())
			Expect(resp.ErrorMessage).To(Equal("request canceled"))
		})
	})
})
