package payment

import "time"

type Method string

const (
	MethodCash    Method = "cash"
	MethodCard    Method = "card"
	MethodMomo    Method = "momo"
	MethodZaloPay Method = "zalopay"
	MethodBanking Method = "banking"
)

func (m Method) IsValid() bool {
	switch m {
	case MethodCash, MethodCard, MethodMomo, MethodZaloPay, MethodBanking:
		return true
	}
	return false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Payment is written once per successful checkout and never updated.
// CustomerPaid and ChangeAmount are only set for cash.
type Payment struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"order_id"`
	Amount         int64     `json:"amount"`
	Method         Method    `json:"method"`
	Status         Status    `json:"status"`
	Reference      string    `json:"reference"`
	CustomerPaid   *int64    `json:"customer_paid,omitempty"`
	ChangeAmount   *int64    `json:"change_amount,omitempty"`
	DiscountAmount int64     `json:"discount_amount"`
	TaxAmount      int64     `json:"tax_amount"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
