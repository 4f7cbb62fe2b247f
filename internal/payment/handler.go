package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/google/uuid"

	"github.com/frahmantamala/payment-gateway/internal/transport"
)

type ServiceAPI interface {
	ProcessPayment(ctx context.Context, req *PostPaymentRequest) *Result
	GetPayment(ctx context.Context, id uuid.UUID) *Result
}

type Handler struct {
	transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.BaseHandler{Logger: logger},
		Service:     service,
	}
}

// ProcessPayment handles POST /api/payments.
func (h *Handler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req PostPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("ProcessPayment: failed to parse request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.Service.ProcessPayment(r.Context(), &req)

	switch result.Type {
	case ResultSuccess:
		h.WriteJSON(w, http.StatusOK, NewPostPaymentResponse(result.Payment))
	case ResultValidationFailed:
		h.WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Message: "request validation failed",
			Errors:  result.ValidationErrors,
		})
	case ResultBankError:
		h.WriteJSON(w, http.StatusServiceUnavailable, MessageResponse{
			Message: result.ErrorMessage,
		})
	default:
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

// GetPayment handles GET /api/payments/{id}.
func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")
	id, err := uuid.Parse(rawID)
	if err != nil {
		h.Logger.Warn("GetPayment: invalid payment id", "id", rawID)
		h.WriteError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	result := h.Service.GetPayment(r.Context(), id)

	switch result.Type {
	case ResultSuccess:
		h.WriteJSON(w, http.StatusOK, NewGetPaymentResponse(result.Payment))
	case ResultNotFound:
		h.WriteJSON(w, http.StatusNotFound, MessageResponse{
			Message: fmt.Sprintf("payment with id %s not found", id),
		})
	default:
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
