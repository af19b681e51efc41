package checkout

import (
	"cafe-pos/internal/order"
	"cafe-pos/internal/payment"

	"github.com/shopspring/decimal"
)

type DiscountKind string

const (
	DiscountPercent DiscountKind = "percent"
	DiscountAmount  DiscountKind = "amount"
)

// Input is what the cashier enters in the payment dialog. An empty
// DiscountKind means no discount.
type Input struct {
	Method        payment.Method
	DiscountKind  DiscountKind
	DiscountValue decimal.Decimal
	Tendered      int64 // cash handed over, ignored for other methods
	CustomerName  string
	CustomerPhone string
	Notes         string
}

type Settlement struct {
	Method         payment.Method `json:"method"`
	Subtotal       int64          `json:"subtotal"`
	Tax            int64          `json:"tax"`
	DiscountAmount int64          `json:"discount_amount"`
	Amount         int64          `json:"amount"`
	Tendered       int64          `json:"tendered"`
	Change         int64          `json:"change"`
	CustomerName   *string        `json:"customer_name,omitempty"`
	CustomerPhone  *string        `json:"customer_phone,omitempty"`
	Notes          *string        `json:"notes,omitempty"`
}

// Receipt is the outcome of a successful Pay.
type Receipt struct {
	Settlement   *Settlement      `json:"settlement"`
	Payment      *payment.Payment `json:"payment"`
	Order        *order.Order     `json:"-"`
	Instructions []string         `json:"instructions"`
}
