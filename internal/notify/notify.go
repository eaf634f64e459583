package notify

import (
	"context"
	"fmt"

	"github.com/avoropaev/propdesk/internal/domain"
	"go.uber.org/zap"
)

type Sender interface {
	Send(text string) error
}

const queueSize = 64

// Service fans notifications out to the operator channel without blocking
// the caller. Delivery of a notification is best effort: a full queue or a
// failed send is logged and dropped, never bubbled back into the payment or
// delivery path.
type Service struct {
	sender Sender
	queue  chan string
}

func New(sender Sender) *Service {
	return &Service{
		sender: sender,
		queue:  make(chan string, queueSize),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			zap.L().Info("notify dispatcher stopped")
			return
		case text := <-s.queue:
			if s.sender == nil {
				continue
			}
			if err := s.sender.Send(text); err != nil {
				zap.L().Error("can't send notification", zap.Error(err))
			}
		}
	}
}

func (s *Service) enqueue(text string) {
	select {
	case s.queue <- text:
	default:
		zap.L().Warn("notification queue full, dropping", zap.String("text", text))
	}
}

func (s *Service) CredentialsDelivered(order *domain.Order, account *domain.Account) {
	zap.L().Info("credentials delivered",
		zap.String("orderNumber", order.OrderNumber),
		zap.Int("accountID", account.ID),
		zap.String("loginID", account.LoginID),
		zap.String("serverName", account.ServerName),
	)
	s.enqueue(fmt.Sprintf(
		"Order %s delivered: %s %d %s, login %s on %s",
		order.OrderNumber, order.AccountType, order.AccountSize, order.PlatformType,
		account.LoginID, account.ServerName,
	))
}

func (s *Service) PoolExhausted(order *domain.Order) {
	zap.L().Warn("pool exhausted, order awaiting accounts",
		zap.String("orderNumber", order.OrderNumber),
		zap.String("accountType", order.AccountType),
		zap.Int("accountSize", order.AccountSize),
		zap.String("platformType", order.PlatformType),
	)
	s.enqueue(fmt.Sprintf(
		"ATTENTION: no %s %d %s account left for paid order %s, replenish the pool",
		order.AccountType, order.AccountSize, order.PlatformType, order.OrderNumber,
	))
}
