package validation_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/payment-gateway/internal/core/common/validation"
)

var _ = Describe("ValidationBuilder", func() {
	It("reports no errors for a passing subject", func() {
		builder := validation.NewValidator()
		builder.Field("code", "12345").
			Required("code is required").
			DigitsOnly("code must only contain numeric characters")

		errs := builder.Validate()
		Expect(errs.Valid()).To(BeTrue())
		Expect(errs).To(BeEmpty())
	})

	It("collects every failing rule on a field, in rule order", func() {
		builder := validation.NewValidator()
		builder.Field("code", "ab").
			LengthBetween(3, 4, "code must be 3-4 characters long").
			DigitsOnly("code must only contain numeric characters")

		errs := builder.Validate()
		Expect(errs.Valid()).To(BeFalse())
		Expect(errs["code"]).To(Equal([]string{
			"code must be 3-4 characters long",
			"code must only contain numeric characters",
		}))
	})

	It("reports only the presence message for an empty value", func() {
		builder := validation.NewValidator()
		builder.Field("code", "").
			Required("code is required").
			LengthBetween(3, 4, "code must be 3-4 characters long").
			DigitsOnly("code must only contain numeric characters")

		errs := builder.Validate()
		Expect(errs["code"]).To(Equal([]string{"code is required"}))
	})

	It("checks every field independently", func() {
		builder := validation.NewValidator()
		builder.Field("amount", int64(0)).GreaterThan(0, "amount must be greater than 0")
		builder.Field("month", 13).IntBetween(1, 12, "month must be between 1 and 12")

		errs := builder.Validate()
		Expect(errs).To(HaveLen(2))
		Expect(errs).To(HaveKey("amount"))
		Expect(errs).To(HaveKey("month"))
	})

	It("matches membership case-insensitively", func() {
		allowed := []string{"USD", "GBP", "EUR"}

		builder := validation.NewValidator()
		builder.Field("currency", "gbp").OneOfFold(allowed, "unsupported currency")
		Expect(builder.Validate().Valid()).To(BeTrue())

		builder = validation.NewValidator()
		builder.Field("currency", "JPY").OneOfFold(allowed, "unsupported currency")
		Expect(builder.Validate()["currency"]).To(ContainElement("unsupported currency"))
	})

	It("appends messages when the same field is declared twice", func() {
		builder := validation.NewValidator()
		builder.Field("month", 0).IntBetween(1, 12, "month must be between 1 and 12")
		builder.Field("month", 0).Custom(func(interface{}) (string, bool) {
			return "expiry date must be in the future", false
		})

		errs := builder.Validate()
		Expect(errs["month"]).To(Equal([]string{
			"month must be between 1 and 12",
			"expiry date must be in the future",
		}))
	})
})
