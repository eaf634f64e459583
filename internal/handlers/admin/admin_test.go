package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/avoropaev/propdesk/internal/domain"
	deliveryservice "github.com/avoropaev/propdesk/internal/service/deliveryservice"
	orderservice "github.com/avoropaev/propdesk/internal/service/orderservice"
	"github.com/avoropaev/propdesk/pkg/utils"
)

func NewMock(t *testing.T) (*AdminHandler, *MockOrderService, *MockDeliveryService) {
	ctrl := gomock.NewController(t)
	orderService := NewMockOrderService(ctrl)
	deliveryService := NewMockDeliveryService(ctrl)
	handler := New(orderService, deliveryService)
	defer ctrl.Finish()
	return handler, orderService, deliveryService
}

func withNumber(req *http.Request, number string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("number", number)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetOrderHandler(t *testing.T) {
	handler, orderService, _ := NewMock(t)

	paidAt := time.Date(2024, 12, 9, 16, 11, 2, 0, time.UTC)
	order := &domain.Order{
		ID:            1,
		OrderNumber:   "4561261212345467",
		UserID:        7,
		AccountType:   domain.AccountTypeTwoStep,
		AccountSize:   10000,
		PlatformType:  domain.PlatformMT4,
		Amount:        99,
		Currency:      "usd",
		PaymentID:     "5077125051",
		PaymentStatus: domain.PaymentPaid,
		OrderStatus:   domain.OrderProcessing,
		CreatedAt:     time.Date(2024, 12, 9, 16, 9, 57, 0, time.UTC),
		PaidAt:        &paidAt,
	}

	tests := []struct {
		name          string
		number        string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name:   "Order found",
			number: "4561261212345467",
			prepareMock: func() {
				orderService.EXPECT().GetByNumber(gomock.Any(), "4561261212345467").Return(order, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid order number",
			number:        "12345",
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid order number",
		},
		{
			name:   "Order not found",
			number: "4561261212345467",
			prepareMock: func() {
				orderService.EXPECT().GetByNumber(gomock.Any(), "4561261212345467").Return(nil, orderservice.ErrOrderNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "Order not found",
		},
		{
			name:   "Internal error",
			number: "4561261212345467",
			prepareMock: func() {
				orderService.EXPECT().GetByNumber(gomock.Any(), "4561261212345467").Return(nil, errors.New("db is down"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("GET", "/api/admin/orders/"+tt.number, nil)
			req = withNumber(req, tt.number)
			rr := httptest.NewRecorder()

			handler.GetOrder(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			} else {
				var resp map[string]any
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, "4561261212345467", resp["number"])
				assert.Equal(t, "paid", resp["payment_status"])
			}
		})
	}
}

func TestTriggerDeliveryHandler(t *testing.T) {
	handler, _, deliveryService := NewMock(t)

	account := &domain.Account{
		ID:         42,
		LoginID:    "88100500",
		ServerName: "Propdesk-Live01",
	}

	tests := []struct {
		name          string
		number        string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name:   "Delivery succeeds",
			number: "4561261212345467",
			prepareMock: func() {
				deliveryService.EXPECT().Deliver(gomock.Any(), "4561261212345467").Return(account, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid order number",
			number:        "12345",
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid order number",
		},
		{
			name:   "Order not found",
			number: "4561261212345467",
			prepareMock: func() {
				deliveryService.EXPECT().Deliver(gomock.Any(), "4561261212345467").Return(nil, deliveryservice.ErrOrderNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "Order not found",
		},
		{
			name:   "Order not paid",
			number: "4561261212345467",
			prepareMock: func() {
				deliveryService.EXPECT().Deliver(gomock.Any(), "4561261212345467").Return(nil, deliveryservice.ErrOrderNotPaid)
			},
			expectedCode:  http.StatusPaymentRequired,
			expectedError: deliveryservice.ErrOrderNotPaid.Error(),
		},
		{
			name:   "Pool exhausted",
			number: "4561261212345467",
			prepareMock: func() {
				deliveryService.EXPECT().Deliver(gomock.Any(), "4561261212345467").Return(nil, deliveryservice.ErrNoAccountAvailable)
			},
			expectedCode:  http.StatusConflict,
			expectedError: deliveryservice.ErrNoAccountAvailable.Error(),
		},
		{
			name:   "Internal error",
			number: "4561261212345467",
			prepareMock: func() {
				deliveryService.EXPECT().Deliver(gomock.Any(), "4561261212345467").Return(nil, errors.New("db is down"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/admin/orders/"+tt.number+"/deliver", nil)
			req = withNumber(req, tt.number)
			rr := httptest.NewRecorder()

			handler.TriggerDelivery(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			} else {
				var resp map[string]any
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, float64(42), resp["account_id"])
				assert.Equal(t, "88100500", resp["login_id"])
			}
		})
	}
}

func TestListAvailableAccountsHandler(t *testing.T) {
	handler, _, deliveryService := NewMock(t)

	accounts := []domain.Account{
		{
			ID:           42,
			AccountType:  domain.AccountTypeTwoStep,
			AccountSize:  10000,
			PlatformType: domain.PlatformMT4,
			Status:       domain.AccountAvailable,
			LoginID:      "88100500",
			ServerName:   "Propdesk-Live01",
			CreatedAt:    time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	tests := []struct {
		name         string
		query        string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:  "Unfiltered listing",
			query: "",
			prepareMock: func() {
				deliveryService.EXPECT().ListAvailable(gomock.Any(), 0, "").Return(accounts, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:  "Filtered by size and platform",
			query: "?size=10000&platform=mt4",
			prepareMock: func() {
				deliveryService.EXPECT().ListAvailable(gomock.Any(), 10000, "mt4").Return(accounts, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid size filter",
			query:        "?size=ten",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:  "Internal error",
			query: "",
			prepareMock: func() {
				deliveryService.EXPECT().ListAvailable(gomock.Any(), 0, "").Return(nil, errors.New("db is down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("GET", "/api/admin/accounts"+tt.query, nil)
			rr := httptest.NewRecorder()

			handler.ListAvailableAccounts(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusOK {
				var resp []map[string]any
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, 1)
				_, hasPassword := resp[0]["password"]
				assert.False(t, hasPassword, "pool listing must not expose passwords")
			}
		})
	}
}
