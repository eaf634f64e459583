package accountrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/avoropaev/propdesk/internal/domain"
	"github.com/avoropaev/propdesk/internal/pg"
	"go.uber.org/zap"
)

const accountColumns = `id, account_type, account_size, platform_type, status, login_id, password, investor_password, server_name, order_id, created_at, delivered_at`

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

func scanAccount(row interface{ Scan(dest ...any) error }, acc *domain.Account) error {
	return row.Scan(
		&acc.ID, &acc.AccountType, &acc.AccountSize, &acc.PlatformType,
		&acc.Status, &acc.LoginID, &acc.Password, &acc.InvestorPassword,
		&acc.ServerName, &acc.OrderID, &acc.CreatedAt, &acc.DeliveredAt,
	)
}

// Claim atomically takes the oldest available account matching the order's
// type, size and platform, marks it delivered and links it to the order. The
// sub-select locks the candidate row with SKIP LOCKED so two concurrent
// claims can never pick the same account; the selection and the status
// transition are one statement. Returns (nil, nil) when nothing matched,
// either because the pool is exhausted or every candidate is locked by an
// in-flight claim.
func (r *Repository) Claim(ctx context.Context, order *domain.Order, now time.Time) (*domain.Account, error) {
	query := `
        UPDATE accounts
        SET status = 'delivered', order_id = $1, delivered_at = $2
        WHERE id = (
            SELECT id
            FROM accounts
            WHERE status = 'available'
              AND account_type = $3
              AND account_size = $4
              AND platform_type = $5
            ORDER BY created_at ASC
            LIMIT 1
            FOR UPDATE SKIP LOCKED
        )
        RETURNING ` + accountColumns + `
    `
	row := r.db.QueryRow(ctx, query, order.ID, now, order.AccountType, order.AccountSize, order.PlatformType)

	var account domain.Account
	err := scanAccount(row, &account)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't claim account", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

func (r *Repository) FindByOrderID(ctx context.Context, orderID int) (*domain.Account, error) {
	query := `
        SELECT ` + accountColumns + `
        FROM accounts
        WHERE order_id = $1
    `
	row := r.db.QueryRow(ctx, query, orderID)

	var account domain.Account
	err := scanAccount(row, &account)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find account by order", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

func (r *Repository) FindAvailable(ctx context.Context, accountSize int, platformType string) ([]domain.Account, error) {
	query := `
        SELECT ` + accountColumns + `
        FROM accounts
        WHERE status = 'available'
          AND ($1 = 0 OR account_size = $1)
          AND ($2 = '' OR platform_type = $2)
        ORDER BY created_at ASC
    `
	rows, err := r.db.Query(ctx, query, accountSize, platformType)
	if err != nil {
		zap.L().Error("can't list available accounts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := scanAccount(rows, &account); err != nil {
			zap.L().Error("can't scan account row", zap.Error(err))
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// InTransaction exposes the repo's transaction scope so the claim and the
// ledger update commit or roll back together.
func (r *Repository) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.txManager.Begin(ctx, fn)
}
