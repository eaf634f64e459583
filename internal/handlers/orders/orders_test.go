package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avoropaev/propdesk/internal/domain"
	orderservice "github.com/avoropaev/propdesk/internal/service/orderservice"
	"github.com/avoropaev/propdesk/pkg/auth"
	"github.com/avoropaev/propdesk/pkg/utils"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*OrderHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func authCtx(req *http.Request, userID int) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, userID))
}

func TestAddOrderHandler(t *testing.T) {
	handler, service := NewMock(t)

	createdAt := time.Date(2024, 12, 9, 16, 9, 57, 0, time.UTC)
	newOrder := &domain.Order{
		ID:             1,
		OrderNumber:    "4561261212345467",
		UserID:         1,
		AccountType:    domain.AccountTypeTwoStep,
		AccountSize:    10000,
		PlatformType:   domain.PlatformMT4,
		Amount:         99,
		Currency:       "usd",
		PaymentStatus:  domain.PaymentPending,
		OrderStatus:    domain.OrderPending,
		DeliveryStatus: domain.DeliveryPending,
		CreatedAt:      createdAt,
	}

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful order creation",
			body: `{"account_type":"two_step","account_size":10000,"platform_type":"mt4","amount":99,"currency":"usd"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateOrder(gomock.Any(), 1, "two_step", 10000, "mt4", float64(99), "usd").
					Return(newOrder, nil)
			},
			expectedCode: http.StatusAccepted,
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Unknown account type",
			body: `{"account_type":"mega","account_size":10000,"platform_type":"mt4","amount":99,"currency":"usd"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateOrder(gomock.Any(), 1, "mega", 10000, "mt4", float64(99), "usd").
					Return(nil, orderservice.ErrInvalidAccountType)
			},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: orderservice.ErrInvalidAccountType.Error(),
		},
		{
			name: "Unknown platform",
			body: `{"account_type":"two_step","account_size":10000,"platform_type":"ninja","amount":99,"currency":"usd"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateOrder(gomock.Any(), 1, "two_step", 10000, "ninja", float64(99), "usd").
					Return(nil, orderservice.ErrInvalidPlatformType)
			},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: orderservice.ErrInvalidPlatformType.Error(),
		},
		{
			name: "Internal error",
			body: `{"account_type":"two_step","account_size":10000,"platform_type":"mt4","amount":99,"currency":"usd"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateOrder(gomock.Any(), 1, "two_step", 10000, "mt4", float64(99), "usd").
					Return(nil, errors.New("db is down"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/user/orders", bytes.NewReader([]byte(tt.body)))
			req = authCtx(req, 1)
			rr := httptest.NewRecorder()

			handler.AddOrder(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			} else {
				var resp struct {
					Number        string `json:"number"`
					PaymentStatus string `json:"payment_status"`
				}
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, "4561261212345467", resp.Number)
				assert.Equal(t, domain.PaymentPending, resp.PaymentStatus)
			}
		})
	}
}

func TestGetOrdersHandler(t *testing.T) {
	handler, service := NewMock(t)

	orders := []domain.Order{
		{
			OrderNumber:    "4561261212345467",
			AccountType:    domain.AccountTypeTwoStep,
			AccountSize:    10000,
			PlatformType:   domain.PlatformMT4,
			Amount:         99,
			Currency:       "usd",
			PaymentStatus:  domain.PaymentPaid,
			OrderStatus:    domain.OrderCompleted,
			DeliveryStatus: domain.DeliveryDelivered,
			CreatedAt:      time.Date(2024, 12, 9, 16, 9, 57, 0, time.UTC),
		},
	}

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name: "Orders found",
			prepareMock: func() {
				service.EXPECT().GetOrders(gomock.Any(), 1).Return(orders, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name: "No orders",
			prepareMock: func() {
				service.EXPECT().GetOrders(gomock.Any(), 1).Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Internal error",
			prepareMock: func() {
				service.EXPECT().GetOrders(gomock.Any(), 1).Return(nil, errors.New("db is down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("GET", "/api/user/orders", nil)
			req = authCtx(req, 1)
			rr := httptest.NewRecorder()

			handler.GetOrders(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusOK {
				var resp []map[string]any
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, tt.expectedLen)
			}
		})
	}
}
