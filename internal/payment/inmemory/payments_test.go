package inmemory_test

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/payment-gateway/internal/core/datamodel/payment"
	"github.com/frahmantamala/payment-gateway/internal/payment/inmemory"
)

func newPayment(id uuid.UUID, cardNumber string) *payment.Payment {
	return payment.New(id, cardNumber, 6, 2030, "USD", 1050, "123", time.Now().UTC())
}

var _ = Describe("PaymentStore", func() {
	var store *inmemory.PaymentStore

	BeforeEach(func() {
		store = inmemory.NewPaymentStore(slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("Add", func() {
		It("stores a payment and masks its card number exactly once", func() {
			p := newPayment(uuid.New(), "4111111111111111")
			p.MarkAuthorized("auth-1")

			stored := store.Add(p)

			Expect(stored).To(BeIdenticalTo(p))
			Expect(stored.CardNumber).To(Equal("************1111"))
			Expect(stored.LastFourDigits).To(Equal("1111"))

			// A second Add of the same instance must not mask again.
			again := store.Add(p)
			Expect(again.CardNumber).To(Equal("************1111"))
		})

		It("returns the first stored payment for a duplicate id", func() {
			id := uuid.New()
			first := newPayment(id, "4111111111111111")
			first.MarkAuthorized("auth-1")

			duplicate := newPayment(id, "5105105105105100")
			duplicate.MarkDeclined()

			stored := store.Add(first)
			got := store.Add(duplicate)

			Expect(got).To(BeIdenticalTo(stored))
			Expect(got.Status).To(Equal(payment.StatusAuthorized))
			Expect(got.LastFourDigits).To(Equal("1111"))
		})

		It("keeps a single canonical payment under concurrent duplicate inserts", func() {
			id := uuid.New()

			var wg sync.WaitGroup
			results := make([]*payment.Payment, 16)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					p := newPayment(id, "4111111111111111")
					p.MarkAuthorized("auth-1")
					results[i] = store.Add(p)
				}(i)
			}
			wg.Wait()

			canonical, ok := store.Get(id)
			Expect(ok).To(BeTrue())
			for _, got := range results {
				Expect(got).To(BeIdenticalTo(canonical))
			}
			Expect(canonical.CardNumber).To(Equal("************1111"))
		})
	})

	Describe("Get", func() {
		It("returns false for an unknown id", func() {
			_, ok := store.Get(uuid.New())
			Expect(ok).To(BeFalse())
		})

		It("never exposes an unmasked card number", func() {
			id := uuid.New()
			p := newPayment(id, "4111111111111111")
			p.MarkAuthorized("auth-1")
			store.Add(p)

			got, ok := store.Get(id)
			Expect(ok).To(BeTrue())
			Expect(strings.Contains(got.CardNumber, "411111111111")).To(BeFalse())
			Expect(got.CardNumber).To(HaveSuffix("1111"))
		})
	})
})
