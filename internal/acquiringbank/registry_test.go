package acquiringbank_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/payment-gateway/internal"
	"github.com/frahmantamala/payment-gateway/internal/acquiringbank"
	"github.com/frahmantamala/payment-gateway/internal/core/datamodel/payment"
)

type stubBankClient struct {
	name string
}

func (s *stubBankClient) BankName() string {
	return s.name
}

func (s *stubBankClient) ProcessPayment(_ context.Context, _ *payment.Payment) acquiringbank.Response {
	return acquiringbank.DeclinedResponse()
}

var _ = Describe("Registry", func() {
	var registry *acquiringbank.Registry

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		registry = acquiringbank.NewRegistry(logger,
			&stubBankClient{name: "FirstAcquiringBank"},
			&stubBankClient{name: "SecondAcquiringBank"})
	})

	It("resolves a registered bank by exact name", func() {
		client, err := registry.Get("FirstAcquiringBank")
		Expect(err).NotTo(HaveOccurred())
		Expect(client.BankName()).To(Equal("FirstAcquiringBank"))
	})

	It("resolves bank names case-insensitively", func() {
		for _, name := range []string{"firstacquiringbank", "FIRSTACQUIRINGBANK", "firstAcquiringBank"} {
			client, err := registry.Get(name)
			Expect(err).NotTo(HaveOccurred(), "name %q", name)
			Expect(client.BankName()).To(Equal("FirstAcquiringBank"))
		}
	})

	It("distinguishes between registered banks", func() {
		client, err := registry.Get("secondacquiringbank")
		Expect(err).NotTo(HaveOccurred())
		Expect(client.BankName()).To(Equal("SecondAcquiringBank"))
	})

	It("returns a configuration error for an unknown bank", func() {
		client, err := registry.Get("NoSuchBank")
		Expect(client).To(BeNil())

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeUnknownBank))
		Expect(appErr.StatusCode).To(Equal(http.StatusInternalServerError))
	})
})
