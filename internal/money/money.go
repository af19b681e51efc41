// Package money holds the integer currency arithmetic used by orders and
// checkout. Amounts are whole currency units (VND has no minor unit).
package money

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// VATRate is the fixed value-added tax applied at checkout.
var VATRate = decimal.RequireFromString("0.10")

var hundred = decimal.NewFromInt(100)

// LineTotal returns price × quantity.
func LineTotal(price int64, quantity int) int64 {
	return price * int64(quantity)
}

// Sum adds amounts.
func Sum(amounts ...int64) int64 {
	var total int64
	for _, a := range amounts {
		total += a
	}
	return total
}

// Round converts d to whole units, rounding halves up.
func Round(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// Tax returns round(subtotal × rate).
func Tax(subtotal int64, rate decimal.Decimal) int64 {
	return Round(decimal.NewFromInt(subtotal).Mul(rate))
}

// PercentOf returns round(amount × percent / 100).
func PercentOf(amount int64, percent decimal.Decimal) int64 {
	return Round(decimal.NewFromInt(amount).Mul(percent).Div(hundred))
}

// Change is what the cashier hands back. Negative means the customer is short.
func Change(tendered, total int64) int64 {
	return tendered - total
}

// FormatVND renders an amount the way receipts print it, e.g. 110.000đ.
func FormatVND(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, digits[i])
	}
	return sign + string(out) + "đ"
}
