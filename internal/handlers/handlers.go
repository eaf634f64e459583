package handlers

import (
	"net/http"

	_ "github.com/avoropaev/propdesk/docs"
	adminhandlers "github.com/avoropaev/propdesk/internal/handlers/admin"
	authhandlers "github.com/avoropaev/propdesk/internal/handlers/auth"
	ordershandlers "github.com/avoropaev/propdesk/internal/handlers/orders"
	paymenthandlers "github.com/avoropaev/propdesk/internal/handlers/payment"
	"github.com/avoropaev/propdesk/internal/service"
	"github.com/avoropaev/propdesk/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	AddOrder(w http.ResponseWriter, r *http.Request)
	GetOrders(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	Webhook(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	GetOrder(w http.ResponseWriter, r *http.Request)
	TriggerDelivery(w http.ResponseWriter, r *http.Request)
	ListAvailableAccounts(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	OrderHandler   OrderHandler
	PaymentHandler PaymentHandler
	AdminHandler   AdminHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		OrderHandler:   ordershandlers.New(s.OrderService),
		PaymentHandler: paymenthandlers.New(s.PaymentService),
		AdminHandler:   adminhandlers.New(s.OrderService, s.DeliveryService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Route("/orders", func(r chi.Router) {
				r.Post("/", h.OrderHandler.AddOrder)
				r.Get("/", h.OrderHandler.GetOrders)
			})
		})
	})
	r.Post("/api/payment/webhook", h.PaymentHandler.Webhook)
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(auth.AuthMiddleware, auth.AdminMiddleware)
		r.Route("/orders/{number}", func(r chi.Router) {
			r.Get("/", h.AdminHandler.GetOrder)
			r.Post("/deliver", h.AdminHandler.TriggerDelivery)
		})
		r.Get("/accounts", h.AdminHandler.ListAvailableAccounts)
	})

	return r
}
