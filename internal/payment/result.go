package payment

import (
	"github.com/frahmantamala/payment-gateway/internal/core/common/validation"
	"github.com/frahmantamala/payment-gateway/internal/core/datamodel/payment"
)

type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultValidationFailed
	ResultBankError
	ResultNotFound
	ResultInternalError
)

// Result is the closed set of orchestration outcomes. Business outcomes are
// always returned as a Result, never raised as errors.
type Result struct {
	Type             ResultType
	Payment          *payment.Payment
	ValidationErrors validation.FieldErrors
	ErrorMessage     string
}

func SuccessResult(p *payment.Payment) *Result {
	return &Result{
		Type:    ResultSuccess,
		Payment: p,
	}
}

func ValidationFailedResult(fieldErrors validation.FieldErrors) *Result {
	return &Result{
		Type:             ResultValidationFailed,
		ValidationErrors: fieldErrors,
	}
}

func BankErrorResult(message string) *Result {
	return &Result{
		Type:         ResultBankError,
		ErrorMessage: message,
	}
}

func NotFoundResult() *Result {
	return &Result{
		Type: ResultNotFound,
	}
}

func InternalErrorResult(message string) *Result {
	return &Result{
		Type:         ResultInternalError,
		ErrorMessage: message,
	}
}
