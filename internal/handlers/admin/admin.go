package admin

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avoropaev/propdesk/internal/domain"
	"github.com/avoropaev/propdesk/internal/dto"
	deliveryservice "github.com/avoropaev/propdesk/internal/service/deliveryservice"
	orderservice "github.com/avoropaev/propdesk/internal/service/orderservice"
	"github.com/avoropaev/propdesk/pkg/utils"
	"github.com/avoropaev/propdesk/pkg/validate"
)

type OrderService interface {
	GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
}

type DeliveryService interface {
	Deliver(ctx context.Context, orderNumber string) (*domain.Account, error)
	ListAvailable(ctx context.Context, accountSize int, platformType string) ([]domain.Account, error)
}

type AdminHandler struct {
	orderService    OrderService
	deliveryService DeliveryService
}

func New(orderService OrderService, deliveryService DeliveryService) *AdminHandler {
	return &AdminHandler{
		orderService:    orderService,
		deliveryService: deliveryService,
	}
}

// GetOrder godoc
//
//	@Summary		Get order details
//	@Description	Retrieve the full payment and delivery state of a single order
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			number	path		string	true	"Order number"
//	@Success		200		{object}	dto.AdminOrderResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Admin access required"
//	@Failure		404		{object}	utils.Response	"Order not found"
//	@Failure		422		{object}	utils.Response	"Invalid order number"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/orders/{number} [get]
func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "number")
	if !validate.IsLuna(orderNumber) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid order number")
		return
	}

	order, err := h.orderService.GetByNumber(r.Context(), orderNumber)
	if err != nil {
		if errors.Is(err, orderservice.ErrOrderNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := dto.AdminOrderResponseDTO{
		Number:         order.OrderNumber,
		UserID:         order.UserID,
		AccountType:    order.AccountType,
		AccountSize:    order.AccountSize,
		PlatformType:   order.PlatformType,
		Amount:         order.Amount,
		Currency:       order.Currency,
		PaymentID:      order.PaymentID,
		PaymentStatus:  order.PaymentStatus,
		OrderStatus:    order.OrderStatus,
		DeliveryStatus: order.DeliveryStatus,
		AccountID:      order.AccountID,
		CreatedAt:      order.CreatedAt.Format(time.RFC3339),
	}
	if order.PaidAt != nil {
		resp.PaidAt = order.PaidAt.Format(time.RFC3339)
	}
	if order.DeliveredAt != nil {
		resp.DeliveredAt = order.DeliveredAt.Format(time.RFC3339)
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// TriggerDelivery godoc
//
//	@Summary		Manually deliver an order
//	@Description	Run the same account assignment as the payment webhook for a paid order whose automatic delivery failed. Safe to repeat.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			number	path		string	true	"Order number"
//	@Success		200		{object}	dto.DeliverOrderResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Order is not paid"
//	@Failure		403		{object}	utils.Response	"Admin access required"
//	@Failure		404		{object}	utils.Response	"Order not found"
//	@Failure		409		{object}	utils.Response	"No matching account available"
//	@Failure		422		{object}	utils.Response	"Invalid order number"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/orders/{number}/deliver [post]
func (h *AdminHandler) TriggerDelivery(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "number")
	if !validate.IsLuna(orderNumber) {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid order number")
		return
	}

	account, err := h.deliveryService.Deliver(r.Context(), orderNumber)
	if err != nil {
		switch {
		case errors.Is(err, deliveryservice.ErrOrderNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, deliveryservice.ErrOrderNotPaid):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, deliveryservice.ErrNoAccountAvailable):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.DeliverOrderResponseDTO{
		Number:     orderNumber,
		AccountID:  account.ID,
		LoginID:    account.LoginID,
		ServerName: account.ServerName,
	})
}

// ListAvailableAccounts godoc
//
//	@Summary		List available pool accounts
//	@Description	Show the accounts still available for delivery, optionally filtered by size and platform
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			size		query		int		false	"Account size filter"
//	@Param			platform	query		string	false	"Platform filter (mt4, mt5)"
//	@Success		200			{array}		dto.AvailableAccountDTO
//	@Failure		400			{object}	utils.Response	"Invalid filter"
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		403			{object}	utils.Response	"Admin access required"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/accounts [get]
func (h *AdminHandler) ListAvailableAccounts(w http.ResponseWriter, r *http.Request) {
	var size int
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid size filter")
			return
		}
		size = parsed
	}
	platform := r.URL.Query().Get("platform")

	accounts, err := h.deliveryService.ListAvailable(r.Context(), size, platform)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.AvailableAccountDTO, len(accounts))
	for i, account := range accounts {
		response[i] = dto.AvailableAccountDTO{
			ID:           account.ID,
			AccountType:  account.AccountType,
			AccountSize:  account.AccountSize,
			PlatformType: account.PlatformType,
			LoginID:      account.LoginID,
			ServerName:   account.ServerName,
			CreatedAt:    account.CreatedAt.Format(time.RFC3339),
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
