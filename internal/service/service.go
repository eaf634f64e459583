package service

import (
	"context"

	"github.com/avoropaev/propdesk/internal/config"
	"github.com/avoropaev/propdesk/internal/domain"
	authhandlers "github.com/avoropaev/propdesk/internal/handlers/auth"
	"github.com/avoropaev/propdesk/internal/notify"
	"github.com/avoropaev/propdesk/internal/repo"
	authservice "github.com/avoropaev/propdesk/internal/service/authservice"
	deliveryservice "github.com/avoropaev/propdesk/internal/service/deliveryservice"
	orderservice "github.com/avoropaev/propdesk/internal/service/orderservice"
	paymentservice "github.com/avoropaev/propdesk/internal/service/paymentservice"
	pkgauth "github.com/avoropaev/propdesk/pkg/auth"
	"github.com/avoropaev/propdesk/pkg/clients"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID int, accountType string, accountSize int, platformType string, amount float64, currency string) (*domain.Order, error)
	GetOrders(ctx context.Context, userID int) ([]domain.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
}

type PaymentService interface {
	HandleNotification(ctx context.Context, n paymentservice.Notification) error
	CheckPayment(ctx context.Context, order domain.Order) error
}

type DeliveryService interface {
	Deliver(ctx context.Context, orderNumber string) (*domain.Account, error)
	ListAvailable(ctx context.Context, accountSize int, platformType string) ([]domain.Account, error)
}

type Services struct {
	AuthService     authhandlers.Service
	OrderService    OrderService
	PaymentService  PaymentService
	DeliveryService DeliveryService
}

func New(cfg *config.Config, repo *repo.Repositories, notifier *notify.Service) *Services {
	authService := authservice.New(repo.UserRepo, &pkgauth.HashService{}, &pkgauth.JWTService{})
	orderService := orderservice.New(repo.OrderRepo)
	deliveryService := deliveryservice.New(repo.OrderRepo, repo.AccountRepo, notifier)
	paymentService := paymentservice.New(cfg, repo.OrderRepo, deliveryService, clients.NewHTTPClient())

	return &Services{
		AuthService:     authService,
		OrderService:    orderService,
		PaymentService:  paymentService,
		DeliveryService: deliveryService,
	}
}
