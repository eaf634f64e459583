package dto

type CreateOrderRequestDTO struct {
	AccountType  string  `json:"account_type" example:"two_step"`
	AccountSize  int     `json:"account_size" example:"10000"`
	PlatformType string  `json:"platform_type" example:"mt4"`
	Amount       float64 `json:"amount" example:"99"`
	Currency     string  `json:"currency" example:"usd"`
}

type GetOrdersResponseDTO struct {
	Number         string  `json:"number" example:"4561261212345467"`
	AccountType    string  `json:"account_type" example:"two_step"`
	AccountSize    int     `json:"account_size" example:"10000"`
	PlatformType   string  `json:"platform_type" example:"mt4"`
	Amount         float64 `json:"amount" example:"99"`
	Currency       string  `json:"currency" example:"usd"`
	PaymentStatus  string  `json:"payment_status" example:"paid"`
	OrderStatus    string  `json:"order_status" example:"completed"`
	DeliveryStatus string  `json:"delivery_status" example:"delivered"`
	CreatedAt      string  `json:"created_at" example:"2024-12-09T16:09:57+03:00"`
}
