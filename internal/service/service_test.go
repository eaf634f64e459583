package service

import (
	"testing"

	"github.com/avoropaev/propdesk/internal/config"
	"github.com/avoropaev/propdesk/internal/notify"
	"github.com/avoropaev/propdesk/internal/pg"
	"github.com/avoropaev/propdesk/internal/repo"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockDB.Close()

	repos := repo.New(mockDB, pg.NewMockTXManager(ctrl))
	cfg := &config.Config{ProviderAddress: "http://localhost:8081"}

	services := New(cfg, repos, notify.New(nil))

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.OrderService)
	assert.NotNil(t, services.PaymentService)
	assert.NotNil(t, services.DeliveryService)
}
