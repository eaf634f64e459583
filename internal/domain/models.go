package domain

import "time"

// Payment statuses as stored on an order. Provider-specific statuses are
// normalized to these before anything touches the ledger.
const (
	PaymentPending string = "pending"
	PaymentPaid    string = "paid"
	PaymentFailed  string = "failed"
)

// Order lifecycle statuses.
const (
	OrderPending    string = "pending"
	OrderProcessing string = "processing"
	OrderCompleted  string = "completed"
	OrderFailed     string = "failed"
)

// Delivery statuses.
const (
	DeliveryPending   string = "pending"
	DeliveryDelivered string = "delivered"
	DeliveryFailed    string = "failed"
)

// Account pool statuses.
const (
	AccountAvailable string = "available"
	AccountReserved  string = "reserved"
	AccountDelivered string = "delivered"
)

// Challenge types sold by the shop.
const (
	AccountTypeInstant string = "instant"
	AccountTypeHFT     string = "hft"
	AccountTypeOneStep string = "one_step"
	AccountTypeTwoStep string = "two_step"
)

// Trading platforms.
const (
	PlatformMT4 string = "mt4"
	PlatformMT5 string = "mt5"
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
}

type Order struct {
	ID             int        `db:"id"`
	OrderNumber    string     `db:"order_number"`
	UserID         int        `db:"user_id"`
	AccountType    string     `db:"account_type"`
	AccountSize    int        `db:"account_size"`
	PlatformType   string     `db:"platform_type"`
	Amount         float64    `db:"amount"`
	Currency       string     `db:"currency"`
	PaymentID      string     `db:"payment_id"`
	PaymentStatus  string     `db:"payment_status"`
	OrderStatus    string     `db:"order_status"`
	DeliveryStatus string     `db:"delivery_status"`
	AccountID      *int       `db:"account_id"`
	CreatedAt      time.Time  `db:"created_at"`
	PaidAt         *time.Time `db:"paid_at"`
	DeliveredAt    *time.Time `db:"delivered_at"`
}

// Account is one pre-provisioned set of trading-platform credentials held in
// the pool. Credentials are issued once by the provisioning side and never
// regenerated; OrderID is set exactly once, when the account is delivered.
type Account struct {
	ID               int        `db:"id"`
	AccountType      string     `db:"account_type"`
	AccountSize      int        `db:"account_size"`
	PlatformType     string     `db:"platform_type"`
	Status           string     `db:"status"`
	LoginID          string     `db:"login_id"`
	Password         string     `db:"password"`
	InvestorPassword string     `db:"investor_password"`
	ServerName       string     `db:"server_name"`
	OrderID          *int       `db:"order_id"`
	CreatedAt        time.Time  `db:"created_at"`
	DeliveredAt      *time.Time `db:"delivered_at"`
}

func ValidAccountType(t string) bool {
	switch t {
	case AccountTypeInstant, AccountTypeHFT, AccountTypeOneStep, AccountTypeTwoStep:
		return true
	}
	return false
}

func ValidPlatformType(p string) bool {
	return p == PlatformMT4 || p == PlatformMT5
}
