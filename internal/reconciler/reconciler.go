package reconciler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/avoropaev/propdesk/internal/domain"
	"github.com/avoropaev/propdesk/internal/service/deliveryservice"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maxCheckRetries    = 3
	checkRetryInterval = time.Second * 1
)

// processingOrders keeps one in-flight reconciliation per order across
// overlapping sweeps.
var processingOrders sync.Map

type OrderRepo interface {
	FindAwaitingPayment(ctx context.Context, limit uint32) ([]domain.Order, error)
	FindAwaitingDelivery(ctx context.Context, limit uint32) ([]domain.Order, error)
}

type PaymentChecker interface {
	CheckPayment(ctx context.Context, order domain.Order) error
}

type Allocator interface {
	Deliver(ctx context.Context, orderNumber string) (*domain.Account, error)
}

// Service is the background recovery loop. It polls the payment provider for
// orders whose payment never produced a webhook, and retries delivery for
// paid orders that are still waiting on the pool. Both paths reuse the same
// idempotent services the webhook uses, so a sweep racing a live webhook is
// harmless.
type Service struct {
	orderRepo      OrderRepo
	payments       PaymentChecker
	allocator      Allocator
	limit          uint32
	workerPool     WorkerPoolI
	updateInterval time.Duration
}

func New(orderRepo OrderRepo, payments PaymentChecker, allocator Allocator) *Service {
	return &Service{
		orderRepo:      orderRepo,
		payments:       payments,
		allocator:      allocator,
		limit:          1000,
		workerPool:     NewWorkerPool(10),
		updateInterval: time.Minute,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("reconciler started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping reconciler")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	awaitingPayment, err := s.orderRepo.FindAwaitingPayment(ctx, s.limit)
	if err != nil {
		zap.L().Error("failed to fetch orders awaiting payment", zap.Error(err))
		return
	}
	awaitingDelivery, err := s.orderRepo.FindAwaitingDelivery(ctx, s.limit)
	if err != nil {
		zap.L().Error("failed to fetch orders awaiting delivery", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, order := range awaitingPayment {
		s.dispatch(ctx, &g, order, s.checkPayment)
	}
	for _, order := range awaitingDelivery {
		s.dispatch(ctx, &g, order, s.redeliver)
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("error reconciling orders", zap.Error(err))
	}
}

func (s *Service) dispatch(ctx context.Context, g *errgroup.Group, order domain.Order, handle func(ctx context.Context, order domain.Order) error) {
	if _, loaded := processingOrders.LoadOrStore(order.OrderNumber, struct{}{}); loaded {
		return
	}

	g.Go(func() error {
		err := s.workerPool.AddTask(ctx, func() error {
			defer processingOrders.Delete(order.OrderNumber)
			return handle(ctx, order)
		})
		if err != nil {
			processingOrders.Delete(order.OrderNumber)
			return err
		}
		return nil
	})
}

func (s *Service) checkPayment(ctx context.Context, order domain.Order) error {
	var err error
	for attempt := 1; attempt <= maxCheckRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err = s.payments.CheckPayment(ctx, order)
		if err == nil {
			return nil
		}
		zap.L().Warn("payment check failed",
			zap.String("orderNumber", order.OrderNumber),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt < maxCheckRetries {
			time.Sleep(checkRetryInterval * time.Duration(attempt))
		}
	}
	return err
}

func (s *Service) redeliver(ctx context.Context, order domain.Order) error {
	_, err := s.allocator.Deliver(ctx, order.OrderNumber)
	if errors.Is(err, deliveryservice.ErrNoAccountAvailable) {
		// Expected while the pool is drained; the exhaustion alert already
		// went out and the next sweep retries.
		return nil
	}
	return err
}
