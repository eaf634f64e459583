package repo

import (
	"github.com/avoropaev/propdesk/internal/pg"
	accountrepo "github.com/avoropaev/propdesk/internal/repo/account-repo"
	orderrepo "github.com/avoropaev/propdesk/internal/repo/order-repo"
	userrepo "github.com/avoropaev/propdesk/internal/repo/user-repo"
)

type Repositories struct {
	UserRepo    *userrepo.Repository
	OrderRepo   *orderrepo.Repository
	AccountRepo *accountrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	userRepo := userrepo.New(conn)
	orderRepo := orderrepo.New(conn, txManager)
	accountRepo := accountrepo.New(conn, txManager)

	return &Repositories{
		UserRepo:    userRepo,
		OrderRepo:   orderRepo,
		AccountRepo: accountRepo,
	}
}
