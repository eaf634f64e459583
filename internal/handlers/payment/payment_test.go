package payment

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	paymentservice "github.com/avoropaev/propdesk/internal/service/paymentservice"
	"github.com/avoropaev/propdesk/pkg/utils"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*PaymentHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestWebhookHandler(t *testing.T) {
	handler, service := NewMock(t)

	validBody := `{"order_id":"4561261212345467","payment_id":"5077125051","payment_status":"finished","pay_amount":99,"pay_currency":"usdt"}`
	wantNotification := paymentservice.Notification{
		OrderNumber:   "4561261212345467",
		PaymentID:     "5077125051",
		PaymentStatus: "finished",
		PayAmount:     99,
		PayCurrency:   "usdt",
	}

	tests := []struct {
		name            string
		body            string
		prepareMock     func()
		expectedCode    int
		expectedSuccess bool
	}{
		{
			name: "Finished payment acknowledged",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().HandleNotification(gomock.Any(), wantNotification).Return(nil)
			},
			expectedCode:    http.StatusOK,
			expectedSuccess: true,
		},
		{
			name: "Duplicate notification acknowledged",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().HandleNotification(gomock.Any(), wantNotification).Return(nil)
			},
			expectedCode:    http.StatusOK,
			expectedSuccess: true,
		},
		{
			name:            "Malformed payload",
			body:            `{not json`,
			prepareMock:     func() {},
			expectedCode:    http.StatusBadRequest,
			expectedSuccess: false,
		},
		{
			name:            "Missing order id",
			body:            `{"payment_status":"finished"}`,
			prepareMock:     func() {},
			expectedCode:    http.StatusBadRequest,
			expectedSuccess: false,
		},
		{
			name: "Unknown order is acknowledged without retry",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().HandleNotification(gomock.Any(), wantNotification).Return(paymentservice.ErrOrderNotFound)
			},
			expectedCode:    http.StatusOK,
			expectedSuccess: false,
		},
		{
			name: "Unknown provider status is acknowledged without retry",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().HandleNotification(gomock.Any(), wantNotification).Return(paymentservice.ErrUnknownStatus)
			},
			expectedCode:    http.StatusOK,
			expectedSuccess: false,
		},
		{
			name: "Database failure is retryable",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().HandleNotification(gomock.Any(), wantNotification).Return(errors.New("db is down"))
			},
			expectedCode:    http.StatusInternalServerError,
			expectedSuccess: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/payment/webhook", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Webhook(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			var resp utils.Response
			err := json.NewDecoder(rr.Body).Decode(&resp)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedSuccess, resp.Success)
		})
	}
}
