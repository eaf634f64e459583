package paymentservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avoropaev/propdesk/internal/config"
	"github.com/avoropaev/propdesk/internal/domain"
	"github.com/avoropaev/propdesk/pkg/clients"
	"go.uber.org/zap"
)

type OrderRepo interface {
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	MarkPaid(ctx context.Context, orderID int, paymentID string, paidAt time.Time) (bool, error)
	MarkPaymentFailed(ctx context.Context, orderID int) error
}

type Allocator interface {
	Deliver(ctx context.Context, orderNumber string) (*domain.Account, error)
}

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrUnknownStatus   = errors.New("unknown payment status")
	ErrProviderRequest = errors.New("payment provider request failed")
)

// Notification is a provider webhook payload normalized to the fields this
// system cares about. Amount and currency are logged for reconciliation but
// never used for matching.
type Notification struct {
	OrderNumber   string
	PaymentID     string
	PaymentStatus string
	PayAmount     float64
	PayCurrency   string
}

type providerPaymentResponse struct {
	PaymentID     string  `json:"payment_id"`
	OrderID       string  `json:"order_id"`
	PaymentStatus string  `json:"payment_status"`
	PayAmount     float64 `json:"pay_amount"`
	PayCurrency   string  `json:"pay_currency"`
}

type Service struct {
	url       string
	apiKey    string
	orderRepo OrderRepo
	allocator Allocator
	client    clients.HTTPClientI
}

func New(cfg *config.Config, orderRepo OrderRepo, allocator Allocator, client clients.HTTPClientI) *Service {
	return &Service{
		url:       cfg.ProviderAddress,
		apiKey:    cfg.ProviderAPIKey,
		orderRepo: orderRepo,
		allocator: allocator,
		client:    client,
	}
}

// NormalizeStatus maps provider payment statuses onto the ledger's
// pending|paid|failed set.
func NormalizeStatus(providerStatus string) (string, error) {
	switch providerStatus {
	case "waiting", "confirming", "confirmed", "sending", "partially_paid":
		return domain.PaymentPending, nil
	case "finished", "paid":
		return domain.PaymentPaid, nil
	case "failed", "refunded", "expired":
		return domain.PaymentFailed, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, providerStatus)
}

// HandleNotification applies one provider notification to the ledger and, on
// the first transition into 'paid', triggers delivery. Duplicate
// notifications are no-ops. A delivery failure is logged and alerted but not
// returned: the webhook must be acknowledged so the provider stops retrying,
// and the reconciler picks the order up later.
func (s *Service) HandleNotification(ctx context.Context, n Notification) error {
	status, err := NormalizeStatus(n.PaymentStatus)
	if err != nil {
		return err
	}

	order, err := s.orderRepo.FindByOrderNumber(ctx, n.OrderNumber)
	if err != nil {
		return err
	}
	if order == nil {
		zap.L().Warn("notification for unknown order",
			zap.String("orderNumber", n.OrderNumber),
			zap.String("paymentID", n.PaymentID),
		)
		return ErrOrderNotFound
	}

	zap.L().Info("payment notification",
		zap.String("orderNumber", n.OrderNumber),
		zap.String("paymentID", n.PaymentID),
		zap.String("providerStatus", n.PaymentStatus),
		zap.Float64("payAmount", n.PayAmount),
		zap.String("payCurrency", n.PayCurrency),
	)

	switch status {
	case domain.PaymentPending:
		return nil
	case domain.PaymentFailed:
		return s.orderRepo.MarkPaymentFailed(ctx, order.ID)
	}

	transitioned, err := s.orderRepo.MarkPaid(ctx, order.ID, n.PaymentID, time.Now())
	if err != nil {
		return err
	}
	if !transitioned {
		zap.L().Info("duplicate payment notification ignored", zap.String("orderNumber", n.OrderNumber))
		return nil
	}

	if _, err := s.allocator.Deliver(ctx, order.OrderNumber); err != nil {
		zap.L().Error("delivery after payment failed, order left for reconciliation",
			zap.String("orderNumber", order.OrderNumber),
			zap.Error(err),
		)
	}
	return nil
}

// CheckPayment asks the provider for the current status of the order's
// payment and applies the answer through the same idempotent path as the
// webhook.
func (s *Service) CheckPayment(ctx context.Context, order domain.Order) error {
	if order.PaymentID == "" {
		return fmt.Errorf("order %s has no payment id", order.OrderNumber)
	}

	url := s.url + "/v1/payment/" + order.PaymentID
	headers := http.Header{}
	if s.apiKey != "" {
		headers.Set("x-api-key", s.apiKey)
	}

	statusCode, respBody, _, err := s.client.Get(ctx, url, headers)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderRequest, err)
	}
	if statusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status code %d", ErrProviderRequest, statusCode)
	}

	var resp providerPaymentResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return fmt.Errorf("can't parse provider response: %w", err)
	}

	return s.HandleNotification(ctx, Notification{
		OrderNumber:   order.OrderNumber,
		PaymentID:     resp.PaymentID,
		PaymentStatus: resp.PaymentStatus,
		PayAmount:     resp.PayAmount,
		PayCurrency:   resp.PayCurrency,
	})
}
