package orders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/avoropaev/propdesk/internal/domain"
	"github.com/avoropaev/propdesk/internal/dto"

	orderservice "github.com/avoropaev/propdesk/internal/service/orderservice"
	"github.com/avoropaev/propdesk/pkg/auth"
	"github.com/avoropaev/propdesk/pkg/utils"
)

type Service interface {
	CreateOrder(ctx context.Context, userID int, accountType string, accountSize int, platformType string, amount float64, currency string) (*domain.Order, error)
	GetOrders(ctx context.Context, userID int) ([]domain.Order, error)
}

type OrderHandler struct {
	orderService Service
}

func New(orderService Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// AddOrder godoc
//
//	@Summary		Create a new order
//	@Description	Place an order for a funded account of the requested type, size and platform.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.CreateOrderRequestDTO	true	"Order parameters"
//	@Security		BearerAuth
//	@Success		202	{object}	dto.GetOrdersResponseDTO	"Order accepted, awaiting payment"
//	@Failure		400	{object}	utils.Response	"Bad request"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		422	{object}	utils.Response	"Unknown account type, size or platform"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/orders [post]
func (h *OrderHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), userID, req.AccountType, req.AccountSize, req.PlatformType, req.Amount, req.Currency)
	if err != nil {
		switch {
		case errors.Is(err, orderservice.ErrInvalidAccountType),
			errors.Is(err, orderservice.ErrInvalidAccountSize),
			errors.Is(err, orderservice.ErrInvalidPlatformType):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, toOrderDTO(order))
}

// GetOrders godoc
//
//	@Summary		Get orders list for user
//	@Description	Retrieve the orders placed by the authorized user, newest first
//	@Tags			Orders
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.GetOrdersResponseDTO
//	@Failure		204	{object}	utils.Response	"No data available"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/orders [get]
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	orders, err := h.orderService.GetOrders(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if len(orders) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	var response []dto.GetOrdersResponseDTO
	for i := range orders {
		response = append(response, *toOrderDTO(&orders[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toOrderDTO(order *domain.Order) *dto.GetOrdersResponseDTO {
	return &dto.GetOrdersResponseDTO{
		Number:         order.OrderNumber,
		AccountType:    order.AccountType,
		AccountSize:    order.AccountSize,
		PlatformType:   order.PlatformType,
		Amount:         order.Amount,
		Currency:       order.Currency,
		PaymentStatus:  order.PaymentStatus,
		OrderStatus:    order.OrderStatus,
		DeliveryStatus: order.DeliveryStatus,
		CreatedAt:      order.CreatedAt.Format(time.RFC3339),
	}
}
