package paymentservice

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/avoropaev/propdesk/internal/config"
	"github.com/avoropaev/propdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

type fakeHTTPClient struct {
	statusCode int
	body       []byte
	err        error
	lastURL    string
}

func (f *fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return nil, errors.New("not used")
}

func (f *fakeHTTPClient) Get(ctx context.Context, url string, headers http.Header) (int, []byte, http.Header, error) {
	f.lastURL = url
	return f.statusCode, f.body, nil, f.err
}

func NewMock(t *testing.T) (*Service, *MockOrderRepo, *MockAllocator, *fakeHTTPClient) {
	ctrl := gomock.NewController(t)
	orderRepo := NewMockOrderRepo(ctrl)
	allocator := NewMockAllocator(ctrl)
	client := &fakeHTTPClient{}
	cfg := &config.Config{ProviderAddress: "http://localhost:8081", ProviderAPIKey: "test-key"}
	service := New(cfg, orderRepo, allocator, client)
	defer ctrl.Finish()
	return service, orderRepo, allocator, client
}

func pendingOrder() *domain.Order {
	return &domain.Order{
		ID:             1,
		OrderNumber:    "4561261212345467",
		UserID:         7,
		AccountSize:    1000,
		PlatformType:   domain.PlatformMT4,
		PaymentStatus:  domain.PaymentPending,
		OrderStatus:    domain.OrderPending,
		DeliveryStatus: domain.DeliveryPending,
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		provider  string
		want      string
		expectErr bool
	}{
		{provider: "waiting", want: domain.PaymentPending},
		{provider: "confirming", want: domain.PaymentPending},
		{provider: "partially_paid", want: domain.PaymentPending},
		{provider: "finished", want: domain.PaymentPaid},
		{provider: "paid", want: domain.PaymentPaid},
		{provider: "failed", want: domain.PaymentFailed},
		{provider: "expired", want: domain.PaymentFailed},
		{provider: "refunded", want: domain.PaymentFailed},
		{provider: "banana", expectErr: true},
		{provider: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			got, err := NormalizeStatus(tt.provider)
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrUnknownStatus)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestHandleNotification(t *testing.T) {
	notification := Notification{
		OrderNumber:   "4561261212345467",
		PaymentID:     "pay-123",
		PaymentStatus: "finished",
		PayAmount:     99.0,
		PayCurrency:   "usdt",
	}

	tests := []struct {
		name          string
		notification  Notification
		prepareMock   func(orderRepo *MockOrderRepo, allocator *MockAllocator)
		expectedError error
	}{
		{
			name:         "First finished notification marks paid and delivers",
			notification: notification,
			prepareMock: func(orderRepo *MockOrderRepo, allocator *MockAllocator) {
				order := pendingOrder()
				orderRepo.EXPECT().FindByOrderNumber(gomock.Any(), "4561261212345467").Return(order, nil)
				orderRepo.EXPECT().MarkPaid(gomock.Any(), order.ID, "pay-123", gomock.Any()).Return(true, nil)
				allocator.EXPECT().Deliver(gomock.Any(), "4561261212345467").Return(&domain.Account{ID: 42}, nil)
			},
		},
		{
			name:         "Duplicate notification is a no-op",
			notification: notification,
			prepareMock: func(orderRepo *MockOrderRepo, allocator *MockAllocator) {
				order := pendingOrder()
				order.PaymentStatus = domain.PaymentPaid
				orderRepo.EXPECT().FindByOrderNumber(gomock.Any(), "4561261212345467").Return(order, nil)
				orderRepo.EXPECT().MarkPaid(gomock.Any(), order.ID, "pay-123", gomock.Any()).Return(false, nil)
			},
		},
		{
			name:         "Delivery failure is not returned to the provider",
			notification: notification,
			prepareMock: func(orderRepo *MockOrderRepo, allocator *MockAllocator) {
				order := pendingOrder()
				orderRepo.EXPECT().FindByOrderNumber(gomock.Any(), "4561261212345467").Return(order, nil)
				orderRepo.EXPECT().MarkPaid(gomock.Any(), order.ID, "pay-123", gomock.Any()).Return(true, nil)
				allocator.EXPECT().Deliver(gomock.Any(), "4561261212345467").Return(nil, errors.New("no matching account available"))
			},
		},
		{
			name: "Waiting status leaves the order untouched",
			notification: Notification{
				OrderNumber:   "4561261212345467",
				PaymentStatus: "waiting",
			},
			prepareMock: func(orderRepo *MockOrderRepo, allocator *MockAllocator) {
				orderRepo.EXPECT().FindByOrderNumber(gomock.Any(), "4561261212345467").Return(pendingOrder(), nil)
			},
		},
		{
			name: "Expired payment marks the order failed",
			notification: Notification{
				OrderNumber:   "4561261212345467",
				PaymentStatus: "expired",
			},
			prepareMock: func(orderRepo *MockOrderRepo, allocator *MockAllocator) {
				order := pendingOrder()
				orderRepo.EXPECT().FindByOrderNumber(gomock.Any(), "4561261212345467").Return(order, nil)
				orderRepo.EXPECT().MarkPaymentFailed(gomock.Any(), order.ID).Return(nil)
			},
		},
		{
			name: "Unknown order is rejected",
			notification: Notification{
				OrderNumber:   "999",
				PaymentStatus: "finished",
			},
			prepareMock: func(orderRepo *MockOrderRepo, allocator *MockAllocator) {
				orderRepo.EXPECT().FindByOrderNumber(gomock.Any(), "999").Return(nil, nil)
			},
			expectedError: ErrOrderNotFound,
		},
		{
			name: "Unknown provider status is rejected before any lookup",
			notification: Notification{
				OrderNumber:   "4561261212345467",
				PaymentStatus: "banana",
			},
			prepareMock:   func(orderRepo *MockOrderRepo, allocator *MockAllocator) {},
			expectedError: ErrUnknownStatus,
		},
		{
			name:         "Database failure propagates",
			notification: notification,
			prepareMock: func(orderRepo *MockOrderRepo, allocator *MockAllocator) {
				orderRepo.EXPECT().FindByOrderNumber(gomock.Any(), "4561261212345467").Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, orderRepo, allocator, _ := NewMock(t)
			tt.prepareMock(orderRepo, allocator)

			err := service.HandleNotification(context.Background(), tt.notification)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorContains(t, err, tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckPayment(t *testing.T) {
	order := domain.Order{
		ID:          1,
		OrderNumber: "4561261212345467",
		PaymentID:   "pay-123",
	}

	tests := []struct {
		name        string
		order       domain.Order
		client      fakeHTTPClient
		prepareMock func(orderRepo *MockOrderRepo, allocator *MockAllocator)
		expectErr   bool
	}{
		{
			name:  "Finished payment is applied through the webhook path",
			order: order,
			client: fakeHTTPClient{
				statusCode: http.StatusOK,
				body:       []byte(`{"payment_id":"pay-123","order_id":"4561261212345467","payment_status":"finished","pay_amount":99,"pay_currency":"usdt"}`),
			},
			prepareMock: func(orderRepo *MockOrderRepo, allocator *MockAllocator) {
				o := pendingOrder()
				orderRepo.EXPECT().FindByOrderNumber(gomock.Any(), "4561261212345467").Return(o, nil)
				orderRepo.EXPECT().MarkPaid(gomock.Any(), o.ID, "pay-123", gomock.Any()).Return(true, nil)
				allocator.EXPECT().Deliver(gomock.Any(), "4561261212345467").Return(&domain.Account{ID: 42}, nil)
			},
		},
		{
			name:        "Order without payment id is rejected",
			order:       domain.Order{OrderNumber: "4561261212345467"},
			prepareMock: func(orderRepo *MockOrderRepo, allocator *MockAllocator) {},
			expectErr:   true,
		},
		{
			name:        "Provider error propagates",
			order:       order,
			client:      fakeHTTPClient{err: errors.New("connection refused")},
			prepareMock: func(orderRepo *MockOrderRepo, allocator *MockAllocator) {},
			expectErr:   true,
		},
		{
			name:        "Unexpected provider status code propagates",
			order:       order,
			client:      fakeHTTPClient{statusCode: http.StatusBadGateway},
			prepareMock: func(orderRepo *MockOrderRepo, allocator *MockAllocator) {},
			expectErr:   true,
		},
		{
			name:        "Malformed provider body propagates",
			order:       order,
			client:      fakeHTTPClient{statusCode: http.StatusOK, body: []byte("not-json")},
			prepareMock: func(orderRepo *MockOrderRepo, allocator *MockAllocator) {},
			expectErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, orderRepo, allocator, client := NewMock(t)
			*client = tt.client
			tt.prepareMock(orderRepo, allocator)

			err := service.CheckPayment(context.Background(), tt.order)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "http://localhost:8081/v1/payment/pay-123", client.lastURL)
			}
		})
	}
}
