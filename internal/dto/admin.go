package dto

type AdminOrderResponseDTO struct {
	Number         string  `json:"number" example:"4561261212345467"`
	UserID         int     `json:"user_id" example:"7"`
	AccountType    string  `json:"account_type" example:"two_step"`
	AccountSize    int     `json:"account_size" example:"10000"`
	PlatformType   string  `json:"platform_type" example:"mt4"`
	Amount         float64 `json:"amount" example:"99"`
	Currency       string  `json:"currency" example:"usd"`
	PaymentID      string  `json:"payment_id" example:"5077125051"`
	PaymentStatus  string  `json:"payment_status" example:"paid"`
	OrderStatus    string  `json:"order_status" example:"completed"`
	DeliveryStatus string  `json:"delivery_status" example:"delivered"`
	AccountID      *int    `json:"account_id,omitempty" example:"42"`
	CreatedAt      string  `json:"created_at" example:"2024-12-09T16:09:57+03:00"`
	PaidAt         string  `json:"paid_at,omitempty" example:"2024-12-09T16:11:02+03:00"`
	DeliveredAt    string  `json:"delivered_at,omitempty" example:"2024-12-09T16:11:03+03:00"`
}

type DeliverOrderResponseDTO struct {
	Number     string `json:"number" example:"4561261212345467"`
	AccountID  int    `json:"account_id" example:"42"`
	LoginID    string `json:"login_id" example:"88100500"`
	ServerName string `json:"server_name" example:"Propdesk-Live01"`
}

// AvailableAccountDTO deliberately omits passwords: the pool listing is an
// inventory view, credentials leave the system only through delivery.
type AvailableAccountDTO struct {
	ID           int    `json:"id" example:"42"`
	AccountType  string `json:"account_type" example:"two_step"`
	AccountSize  int    `json:"account_size" example:"10000"`
	PlatformType string `json:"platform_type" example:"mt4"`
	LoginID      string `json:"login_id" example:"88100500"`
	ServerName   string `json:"server_name" example:"Propdesk-Live01"`
	CreatedAt    string `json:"created_at" example:"2024-12-01T10:00:00+03:00"`
}
