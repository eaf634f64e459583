package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avoropaev/propdesk/internal/dto"
	paymentservice "github.com/avoropaev/propdesk/internal/service/paymentservice"
	"github.com/avoropaev/propdesk/pkg/utils"
)

type Service interface {
	HandleNotification(ctx context.Context, n paymentservice.Notification) error
}

type PaymentHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Webhook godoc
//
//	@Summary		Payment provider callback
//	@Description	Receive a payment status notification from the crypto payment provider. Duplicate notifications are acknowledged without side effects.
//	@Tags			Payment
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PaymentWebhookDTO	true	"Provider notification payload"
//	@Success		200		{object}	utils.Response
//	@Failure		400		{object}	utils.Response	"Malformed payload"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/payment/webhook [post]
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentWebhookDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OrderID == "" || req.PaymentStatus == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "order_id and payment_status are required")
		return
	}

	err := h.paymentService.HandleNotification(r.Context(), paymentservice.Notification{
		OrderNumber:   req.OrderID,
		PaymentID:     req.PaymentID,
		PaymentStatus: req.PaymentStatus,
		PayAmount:     req.PayAmount,
		PayCurrency:   req.PayCurrency,
	})
	if err != nil {
		// Unknown orders and unrecognized statuses are acknowledged so the
		// provider stops retrying. Only infrastructure failures come back
		// as 5xx, those are worth a provider-side retry.
		switch {
		case errors.Is(err, paymentservice.ErrOrderNotFound):
			utils.RespondWithJSON(w, http.StatusOK, utils.Response{Success: false, Message: "order not found"})
		case errors.Is(err, paymentservice.ErrUnknownStatus):
			utils.RespondWithJSON(w, http.StatusOK, utils.Response{Success: false, Message: "unknown payment status"})
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Success: true, Message: "OK"})
}
