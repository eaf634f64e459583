package deliveryservice

import (
	"context"
	"errors"
	"time"

	"github.com/avoropaev/propdesk/internal/domain"
	"go.uber.org/zap"
)

type OrderRepo interface {
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	MarkDelivered(ctx context.Context, orderID int, accountID int, deliveredAt time.Time) error
}

type AccountRepo interface {
	Claim(ctx context.Context, order *domain.Order, now time.Time) (*domain.Account, error)
	FindByOrderID(ctx context.Context, orderID int) (*domain.Account, error)
	FindAvailable(ctx context.Context, accountSize int, platformType string) ([]domain.Account, error)
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Notifier interface {
	CredentialsDelivered(order *domain.Order, account *domain.Account)
	PoolExhausted(order *domain.Order)
}

const (
	// maxClaimAttempts bounds the contention loop around the atomic claim.
	// The claim is a single conditional update, so an immediate re-select is
	// cheap and three attempts are plenty.
	maxClaimAttempts = 3
	claimRetryDelay  = time.Millisecond * 100
	deliverTimeout   = time.Second * 5
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotPaid       = errors.New("order is not paid")
	ErrNoAccountAvailable = errors.New("no matching account available")
)

type Service struct {
	orderRepo   OrderRepo
	accountRepo AccountRepo
	notifier    Notifier
}

func New(orderRepo OrderRepo, accountRepo AccountRepo, notifier Notifier) *Service {
	return &Service{
		orderRepo:   orderRepo,
		accountRepo: accountRepo,
		notifier:    notifier,
	}
}

// Deliver assigns exactly one pooled account to the order identified by
// orderNumber. Calling it again for an already delivered order is a no-op
// that returns the account already linked to the order. Every delivery path
// in the system, webhook or manual, goes through here.
func (s *Service) Deliver(ctx context.Context, orderNumber string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, deliverTimeout)
	defer cancel()

	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if order.DeliveryStatus == domain.DeliveryDelivered {
		zap.L().Info("order already delivered", zap.String("orderNumber", orderNumber))
		return s.accountRepo.FindByOrderID(ctx, order.ID)
	}
	if order.PaymentStatus != domain.PaymentPaid {
		return nil, ErrOrderNotPaid
	}

	account, err := s.claimWithRetry(ctx, order)
	if err != nil {
		return nil, err
	}
	if account == nil {
		zap.L().Warn("account pool exhausted",
			zap.String("orderNumber", order.OrderNumber),
			zap.String("accountType", order.AccountType),
			zap.Int("accountSize", order.AccountSize),
			zap.String("platformType", order.PlatformType),
		)
		s.notifier.PoolExhausted(order)
		return nil, ErrNoAccountAvailable
	}

	zap.L().Info("account delivered",
		zap.String("orderNumber", order.OrderNumber),
		zap.Int("accountID", account.ID),
	)
	s.notifier.CredentialsDelivered(order, account)
	return account, nil
}

// ListAvailable reports the accounts still sitting in the pool, optionally
// narrowed by size and platform. Zero size and empty platform mean no filter.
func (s *Service) ListAvailable(ctx context.Context, accountSize int, platformType string) ([]domain.Account, error) {
	return s.accountRepo.FindAvailable(ctx, accountSize, platformType)
}

// claimWithRetry runs the claim and the ledger update in one transaction. A
// nil account after all attempts means nothing matched, either a drained
// pool or every candidate row locked by a concurrent claim.
func (s *Service) claimWithRetry(ctx context.Context, order *domain.Order) (*domain.Account, error) {
	for attempt := 1; attempt <= maxClaimAttempts; attempt++ {
		var account *domain.Account
		err := s.accountRepo.InTransaction(ctx, func(ctx context.Context) error {
			now := time.Now()
			claimed, err := s.accountRepo.Claim(ctx, order, now)
			if err != nil {
				return err
			}
			if claimed == nil {
				return nil
			}
			if err := s.orderRepo.MarkDelivered(ctx, order.ID, claimed.ID, now); err != nil {
				return err
			}
			account = claimed
			return nil
		})
		if err == nil && account != nil {
			return account, nil
		}
		if err != nil && attempt == maxClaimAttempts {
			return nil, err
		}
		if attempt < maxClaimAttempts {
			zap.L().Warn("claim attempt came up empty, retrying",
				zap.String("orderNumber", order.OrderNumber),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(claimRetryDelay):
			}
		}
	}
	return nil, nil
}
