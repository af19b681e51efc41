package checkout

import (
	"fmt"
	"math"

	"cafe-pos/internal/apperr"
	"cafe-pos/internal/money"
	"cafe-pos/internal/order"
	"cafe-pos/internal/payment"
	"cafe-pos/internal/utils"

	"github.com/shopspring/decimal"
)

var (
	maxPercent = decimal.NewFromInt(100)
	maxAmount  = decimal.NewFromInt(math.MaxInt64)
)

// Calculate derives the settlement for o. It reads o and in only and always
// returns the same result for the same arguments.
//
//	tax      = round(subtotal × 10%)
//	discount = round(subtotal × pct / 100) | flat amount, not clamped
//	amount   = subtotal + tax − discount
//	change   = tendered − amount (cash only)
func Calculate(o *order.Order, in Input) (*Settlement, error) {
	if o == nil {
		return nil, order.ErrOrderNotFound
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	subtotal := o.Total
	if subtotal < 0 {
		return nil, apperr.Invalid("total", "must not be negative")
	}
	tax := money.Tax(subtotal, money.VATRate)
	if subtotal > math.MaxInt64-tax {
		return nil, apperr.Invalid("total", "is out of range")
	}

	var discount int64
	switch in.DiscountKind {
	case DiscountPercent:
		discount = money.PercentOf(subtotal, in.DiscountValue)
	case DiscountAmount:
		discount = in.DiscountValue.IntPart()
	}

	amount := subtotal + tax - discount

	s := &Settlement{
		Method:         in.Method,
		Subtotal:       subtotal,
		Tax:            tax,
		DiscountAmount: discount,
		Amount:         amount,
		CustomerName:   utils.OptionalStr(in.CustomerName),
		CustomerPhone:  utils.OptionalStr(in.CustomerPhone),
		Notes:          utils.OptionalStr(in.Notes),
	}

	if in.Method == payment.MethodCash {
		if in.Tendered < amount {
			return nil, fmt.Errorf("%w: tendered %d, due %d", apperr.ErrInsufficientPayment, in.Tendered, amount)
		}
		if amount < 0 && in.Tendered > math.MaxInt64+amount {
			return nil, apperr.Invalid("tendered", "change is out of range")
		}
		s.Tendered = in.Tendered
		s.Change = money.Change(in.Tendered, amount)
	}

	return s, nil
}

func validate(in Input) error {
	if !in.Method.IsValid() {
		return apperr.Invalid("method", fmt.Sprintf("unknown payment method %q", in.Method))
	}
	if in.Tendered < 0 {
		return apperr.Invalid("tendered", "must not be negative")
	}

	switch in.DiscountKind {
	case "":
		if !in.DiscountValue.IsZero() {
			return apperr.Invalid("discount_kind", "is required with a discount value")
		}
	case DiscountPercent:
		if in.DiscountValue.IsNegative() {
			return apperr.Invalid("discount", "must not be negative")
		}
		if in.DiscountValue.GreaterThan(maxPercent) {
			return apperr.Invalid("discount", "percent must be at most 100")
		}
	case DiscountAmount:
		if in.DiscountValue.IsNegative() {
			return apperr.Invalid("discount", "must not be negative")
		}
		if !in.DiscountValue.IsInteger() {
			return apperr.Invalid("discount", "amount must be whole currency units")
		}
		// larger values would wrap in IntPart
		if in.DiscountValue.GreaterThan(maxAmount) {
			return apperr.Invalid("discount", "amount is out of range")
		}
	default:
		return apperr.Invalid("discount_kind", fmt.Sprintf("unknown discount kind %q", in.DiscountKind))
	}
	return nil
}
