package orderrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/avoropaev/propdesk/internal/domain"
	"github.com/avoropaev/propdesk/internal/pg"
	"go.uber.org/zap"
)

const orderColumns = `id, order_number, user_id, account_type, account_size, platform_type, amount, currency, payment_id, payment_status, order_status, delivery_status, account_id, created_at, paid_at, delivered_at`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func scanOrder(row interface{ Scan(dest ...any) error }, order *domain.Order) error {
	return row.Scan(
		&order.ID, &order.OrderNumber, &order.UserID,
		&order.AccountType, &order.AccountSize, &order.PlatformType,
		&order.Amount, &order.Currency, &order.PaymentID,
		&order.PaymentStatus, &order.OrderStatus, &order.DeliveryStatus,
		&order.AccountID, &order.CreatedAt, &order.PaidAt, &order.DeliveredAt,
	)
}

func (r *Repository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE order_number = $1
    `
	row := r.db.QueryRow(ctx, query, orderNumber)

	var order domain.Order
	err := scanOrder(row, &order)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find order", zap.Error(err))
		return nil, err
	}
	return &order, nil
}

func (r *Repository) FindOrdersByUserID(ctx context.Context, userID int) ([]domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := scanOrder(rows, &order); err != nil {
			zap.L().Error("can't scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *Repository) Save(ctx context.Context, order *domain.Order) error {
	query := `
        INSERT INTO orders (order_number, user_id, account_type, account_size, platform_type, amount, currency, payment_id, payment_status, order_status, delivery_status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query,
			order.OrderNumber, order.UserID, order.AccountType, order.AccountSize,
			order.PlatformType, order.Amount, order.Currency, order.PaymentID,
			order.PaymentStatus, order.OrderStatus, order.DeliveryStatus, order.CreatedAt,
		)
		if err := row.Scan(&order.ID); err != nil {
			zap.L().Error("can't save order", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// MarkPaid transitions an order into payment_status='paid' exactly once. The
// returned bool is false when the order was already out of 'pending', which
// is how duplicate provider notifications are detected.
func (r *Repository) MarkPaid(ctx context.Context, orderID int, paymentID string, paidAt time.Time) (bool, error) {
	query := `
        UPDATE orders
        SET payment_status = 'paid', order_status = 'processing', payment_id = $1, paid_at = $2
        WHERE id = $3 AND payment_status = 'pending'
    `
	var transitioned bool
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, query, paymentID, paidAt, orderID)
		if err != nil {
			zap.L().Error("failed to mark order paid", zap.Error(err))
			return err
		}
		transitioned = tag.RowsAffected() == 1
		return nil
	})
	if err != nil {
		return false, err
	}
	return transitioned, nil
}

func (r *Repository) MarkPaymentFailed(ctx context.Context, orderID int) error {
	query := `
        UPDATE orders
        SET payment_status = 'failed', order_status = 'failed'
        WHERE id = $1 AND payment_status = 'pending'
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := r.db.Exec(ctx, query, orderID); err != nil {
			zap.L().Error("failed to mark order payment failed", zap.Error(err))
			return err
		}
		return nil
	})
	return err
}

// MarkDelivered records the account link on the ledger side. It is called
// inside the same transaction as the account claim so a failed write releases
// the claimed account.
func (r *Repository) MarkDelivered(ctx context.Context, orderID int, accountID int, deliveredAt time.Time) error {
	query := `
        UPDATE orders
        SET delivery_status = 'delivered', order_status = 'completed', account_id = $1, delivered_at = $2
        WHERE id = $3 AND delivery_status <> 'delivered'
    `
	_, err := r.db.Exec(ctx, query, accountID, deliveredAt, orderID)
	if err != nil {
		zap.L().Error("failed to mark order delivered", zap.Error(err))
		return err
	}
	return nil
}

// FindAwaitingDelivery returns paid orders whose delivery is still pending,
// oldest payment first.
func (r *Repository) FindAwaitingDelivery(ctx context.Context, limit uint32) ([]domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE payment_status = 'paid' AND delivery_status = 'pending'
        ORDER BY paid_at ASC
        LIMIT $1
    `
	return r.findMany(ctx, query, int(limit))
}

// FindAwaitingPayment returns orders with a provider payment created but no
// terminal payment status yet. The reconciler polls the provider for these.
func (r *Repository) FindAwaitingPayment(ctx context.Context, limit uint32) ([]domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE payment_status = 'pending' AND payment_id <> ''
        ORDER BY created_at ASC
        LIMIT $1
    `
	return r.findMany(ctx, query, int(limit))
}

func (r *Repository) findMany(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get orders for processing", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := scanOrder(rows, &order); err != nil {
			zap.L().Error("can't scan order row for processing", zap.Error(err))
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
