package dto

// PaymentWebhookDTO is the payment provider's notification payload. Amount
// and currency are informational, matching is done by order_id only.
type PaymentWebhookDTO struct {
	OrderID       string  `json:"order_id" example:"4561261212345467"`
	PaymentID     string  `json:"payment_id" example:"5077125051"`
	PaymentStatus string  `json:"payment_status" example:"finished"`
	PayAmount     float64 `json:"pay_amount" example:"99"`
	PayCurrency   string  `json:"pay_currency" example:"usdt"`
}
