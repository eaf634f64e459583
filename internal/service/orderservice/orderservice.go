package orderservice

import (
	"context"
	"errors"
	"time"

	"github.com/avoropaev/propdesk/internal/domain"
	"github.com/avoropaev/propdesk/pkg/validate"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repo interface {
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	Save(ctx context.Context, order *domain.Order) error
	FindOrdersByUserID(ctx context.Context, userID int) ([]domain.Order, error)
}

// orderNumberLen is the length of generated order references, Luhn check
// digit included.
const orderNumberLen = 16

var (
	ErrInvalidAccountType  = errors.New("invalid account type")
	ErrInvalidPlatformType = errors.New("invalid platform type")
	ErrInvalidAccountSize  = errors.New("invalid account size")
	ErrOrderNotFound       = errors.New("order not found")
)

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

// CreateOrder registers a checkout: a new order with a generated Luhn-checked
// order number and a merchant payment reference handed to the payment
// provider. Payment and delivery both start pending.
func (s *Service) CreateOrder(ctx context.Context, userID int, accountType string, accountSize int, platformType string, amount float64, currency string) (*domain.Order, error) {
	if !domain.ValidAccountType(accountType) {
		return nil, ErrInvalidAccountType
	}
	if !domain.ValidPlatformType(platformType) {
		return nil, ErrInvalidPlatformType
	}
	if accountSize <= 0 {
		return nil, ErrInvalidAccountSize
	}

	orderNumber, err := validate.NewNumber(orderNumberLen)
	if err != nil {
		zap.L().Error("can't generate order number", zap.Error(err))
		return nil, err
	}

	if currency == "" {
		currency = "usd"
	}
	order := &domain.Order{
		OrderNumber:    orderNumber,
		UserID:         userID,
		AccountType:    accountType,
		AccountSize:    accountSize,
		PlatformType:   platformType,
		Amount:         amount,
		Currency:       currency,
		PaymentID:      uuid.NewString(),
		PaymentStatus:  domain.PaymentPending,
		OrderStatus:    domain.OrderPending,
		DeliveryStatus: domain.DeliveryPending,
		CreatedAt:      time.Now(),
	}

	if err := s.repo.Save(ctx, order); err != nil {
		zap.L().Error("can't save order: ", zap.Error(err))
		return nil, err
	}

	zap.L().Info("order created",
		zap.String("orderNumber", order.OrderNumber),
		zap.Int("userID", userID),
	)
	return order, nil
}

func (s *Service) GetOrders(ctx context.Context, userID int) ([]domain.Order, error) {
	orders, err := s.repo.FindOrdersByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	order, err := s.repo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
